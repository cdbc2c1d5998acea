package server

import "net"

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface to bind. Empty binds every interface.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
}

// Address returns the listen address for fiber.
func (c Config) Address() string {
	port := c.Port
	if port == "" {
		port = "8080"
	}
	return net.JoinHostPort(c.Host, port)
}
