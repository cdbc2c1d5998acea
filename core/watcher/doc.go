// Package watcher turns filesystem notifications for a workspace into file
// events for the reconcile engine.
//
// Raw notifications are collected for a short debounce window and folded: a
// create followed by writes is a single "created", a rename is paired with the
// create of the new name, and the write-temp-then-rename sequence editors use
// on save comes out as "saved". Directories are watched recursively and new
// directories are picked up as they appear.
package watcher
