// Package config defines the server configuration structure.
package config

import (
	"net"
	"strconv"

	"github.com/yndnr/tlsedge-go/internal/server/redirectserver"
)

// Ports returns the plaintext/TLS port pair handed to the redirect listener.
func (c *ServerConfig) Ports() redirectserver.Ports {
	return redirectserver.NewPorts(c.Server.HTTPPort, c.Server.HTTPSPort)
}

// SecureAddr returns the bind address of the TLS listener.
func (c *ServerConfig) SecureAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(int(c.Server.HTTPSPort)))
}

// RedirectAddr returns the bind address of the plaintext redirect listener.
func (c *ServerConfig) RedirectAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(int(c.Server.HTTPPort)))
}
