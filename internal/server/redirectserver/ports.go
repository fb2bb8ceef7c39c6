package redirectserver

import "strconv"

// Ports is the plaintext/TLS port pair. It is a value type and is copied
// into the redirect handler; nothing mutates it after construction.
type Ports struct {
	HTTP  uint16
	HTTPS uint16
}

// NewPorts creates a new Ports.
func NewPorts(http, https uint16) Ports {
	return Ports{HTTP: http, HTTPS: https}
}

func (p Ports) httpString() string {
	return strconv.FormatUint(uint64(p.HTTP), 10)
}

func (p Ports) httpsString() string {
	return strconv.FormatUint(uint64(p.HTTPS), 10)
}
