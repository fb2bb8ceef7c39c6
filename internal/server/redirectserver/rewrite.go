package redirectserver

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrInvalidHost is returned when the Host header cannot become an
	// HTTPS authority.
	ErrInvalidHost = errors.New("redirectserver: invalid host")

	// ErrInvalidTarget is returned when the request-target is not in
	// origin form.
	ErrInvalidTarget = errors.New("redirectserver: invalid request target")
)

const defaultHTTPSPort = "443"

// RewriteTarget builds the HTTPS URL a plaintext request is redirected to.
//
// host is the request's Host header, requestURI its path and query.
// The scheme becomes https, an empty requestURI becomes "/", and the port
// of host is rewritten from ports.HTTP to ports.HTTPS. Only a trailing
// ":port" token equal to ports.HTTP is replaced; digits elsewhere in the
// host are left alone. A host with a different explicit port keeps it.
// A host without a port is accepted, since browsers omit a default ":80",
// and gets ports.HTTPS appended unless that is 443. IPv6 literals may
// carry a zone encoded as "%25", as in "[fe80::1%25eth0]:80".
func RewriteTarget(host, requestURI string, ports Ports) (*url.URL, error) {
	if requestURI == "" {
		requestURI = "/"
	}
	if !strings.HasPrefix(requestURI, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, requestURI)
	}

	authority, err := rewriteAuthority(host, ports)
	if err != nil {
		return nil, err
	}

	target, err := url.Parse("https://" + authority + requestURI)
	if err != nil {
		return nil, fmt.Errorf("redirectserver: build target: %w", err)
	}
	// A '/', '?' or '#' smuggled into the host would move part of it into
	// the path; the parsed authority must be exactly what we built. The
	// parser stores an IPv6 zone decoded, so compare against that form.
	want, err := url.PathUnescape(authority)
	if err != nil || target.Host != want || target.User != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHost, host)
	}

	return target, nil
}

// rewriteAuthority swaps the plaintext port of host for the TLS port.
func rewriteAuthority(host string, ports Ports) (string, error) {
	if host == "" {
		return "", fmt.Errorf("%w: empty host", ErrInvalidHost)
	}
	if strings.ContainsAny(host, "@/?#\\ \t") {
		return "", fmt.Errorf("%w: %q", ErrInvalidHost, host)
	}

	hostname, port, err := splitHostPort(host)
	if err != nil {
		return "", err
	}
	if hostname == "" {
		return "", fmt.Errorf("%w: %q has no hostname", ErrInvalidHost, host)
	}

	switch port {
	case "":
		if ports.httpsString() == defaultHTTPSPort {
			return bracketIPv6(hostname), nil
		}
		return net.JoinHostPort(hostname, ports.httpsString()), nil
	case ports.httpString():
		return net.JoinHostPort(hostname, ports.httpsString()), nil
	default:
		return net.JoinHostPort(hostname, port), nil
	}
}

// splitHostPort splits host into hostname and port, where the port is
// optional. IPv6 literals must be bracketed.
func splitHostPort(host string) (hostname, port string, err error) {
	if strings.HasPrefix(host, "[") {
		end := strings.IndexByte(host, ']')
		if end < 0 {
			return "", "", fmt.Errorf("%w: %q missing ']'", ErrInvalidHost, host)
		}
		rest := host[end+1:]
		if rest == "" {
			return host[1:end], "", nil
		}
		if !strings.HasPrefix(rest, ":") {
			return "", "", fmt.Errorf("%w: %q", ErrInvalidHost, host)
		}
		return validPort(host, host[1:end], rest[1:])
	}

	i := strings.LastIndexByte(host, ':')
	if i < 0 {
		return host, "", nil
	}
	if strings.Count(host, ":") > 1 {
		return "", "", fmt.Errorf("%w: %q is an unbracketed IPv6 address", ErrInvalidHost, host)
	}
	return validPort(host, host[:i], host[i+1:])
}

func validPort(host, hostname, port string) (string, string, error) {
	if port == "" {
		return "", "", fmt.Errorf("%w: %q has an empty port", ErrInvalidHost, host)
	}
	if len(port) > 5 {
		return "", "", fmt.Errorf("%w: %q port out of range", ErrInvalidHost, host)
	}
	n := 0
	for _, c := range port {
		if c < '0' || c > '9' {
			return "", "", fmt.Errorf("%w: %q port is not numeric", ErrInvalidHost, host)
		}
		n = n*10 + int(c-'0')
	}
	if n == 0 || n > 65535 {
		return "", "", fmt.Errorf("%w: %q port out of range", ErrInvalidHost, host)
	}
	return hostname, strconv.Itoa(n), nil
}

func bracketIPv6(hostname string) string {
	if strings.Contains(hostname, ":") {
		return "[" + hostname + "]"
	}
	return hostname
}
