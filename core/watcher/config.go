package watcher

import "time"

// Config holds configuration for the workspace file watcher.
type Config struct {
	// Enabled starts the watcher together with the HTTP server.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Debounce is how long changes are collected before they are emitted.
	Debounce time.Duration `mapstructure:"debounce" default:"300ms"`
	// Ignore lists doublestar globs, relative to the workspace root, that are never watched.
	Ignore []string `mapstructure:"ignore" default:"**/.git/**,**/node_modules/**,**/*.tmp"`
	// QueueSize is the capacity of the event channel.
	QueueSize int `mapstructure:"queue_size" default:"500"`
}

func (c Config) debounce() time.Duration {
	if c.Debounce <= 0 {
		return 300 * time.Millisecond
	}
	return c.Debounce
}

func (c Config) queueSize() int {
	if c.QueueSize <= 0 {
		return 500
	}
	return c.QueueSize
}
