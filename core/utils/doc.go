// Package utils provides small conversion helpers shared by the command line
// prompts and the HTTP handlers.
package utils
