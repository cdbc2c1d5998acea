// Package server holds the HTTP server configuration.
//
// The Config struct defines the bind address and the API key protecting every
// route except /swagger and /metrics. It is embedded in core/config under the
// "server" key (SERVER_PORT, SERVER_API_KEY).
package server
