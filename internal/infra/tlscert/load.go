package tlscert

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// ErrCertificateLoad matches every error returned by Load.
var ErrCertificateLoad = errors.New("tlscert: certificate load failed")

// CertificateLoadError reports a failure to build the TLS context from a
// certificate and key pair. It names both paths.
type CertificateLoadError struct {
	CertPath string
	KeyPath  string
	Cause    error
}

func (e *CertificateLoadError) Error() string {
	return fmt.Sprintf("tlscert: couldn't load PEM certificate %q and key %q: %v",
		e.CertPath, e.KeyPath, e.Cause)
}

// Unwrap exposes both ErrCertificateLoad and the underlying cause.
func (e *CertificateLoadError) Unwrap() []error {
	return []error{ErrCertificateLoad, e.Cause}
}

// Load reads a PEM certificate chain and its private key and returns the
// TLS configuration used by the secure listener. On failure the returned
// config is nil and the error is a *CertificateLoadError.
func Load(certPath, keyPath string) (*tls.Config, error) {
	cert, err := loadKeyPair(certPath, keyPath)
	if err != nil {
		return nil, &CertificateLoadError{
			CertPath: certPath,
			KeyPath:  keyPath,
			Cause:    err,
		}
	}

	return NewConfig(cert), nil
}

// NewConfig returns the server TLS configuration for a single certificate.
func NewConfig(cert tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"h2", "http/1.1"},
	}
}

func loadKeyPair(certPath, keyPath string) (tls.Certificate, error) {
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("read certificate: %w", err)
	}

	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("read key: %w", err)
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("parse key pair: %w", err)
	}

	if cert.Leaf == nil {
		leaf, err := x509.ParseCertificate(cert.Certificate[0])
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("parse leaf: %w", err)
		}
		cert.Leaf = leaf
	}

	return cert, nil
}

// Info describes the leaf certificate of a TLS configuration.
type Info struct {
	Subject     string
	DNSNames    []string
	IPAddresses []net.IP
	NotBefore   time.Time
	NotAfter    time.Time
}

// InfoOf returns the leaf certificate metadata of cfg.
func InfoOf(cfg *tls.Config) (Info, error) {
	if cfg == nil || len(cfg.Certificates) == 0 || len(cfg.Certificates[0].Certificate) == 0 {
		return Info{}, errors.New("tlscert: no certificate configured")
	}

	leaf := cfg.Certificates[0].Leaf
	if leaf == nil {
		var err error
		leaf, err = x509.ParseCertificate(cfg.Certificates[0].Certificate[0])
		if err != nil {
			return Info{}, fmt.Errorf("tlscert: parse leaf: %w", err)
		}
	}

	return Info{
		Subject:     leaf.Subject.String(),
		DNSNames:    leaf.DNSNames,
		IPAddresses: leaf.IPAddresses,
		NotBefore:   leaf.NotBefore,
		NotAfter:    leaf.NotAfter,
	}, nil
}

// ValidAt reports whether t falls inside the certificate validity period.
func (i Info) ValidAt(t time.Time) bool {
	return !t.Before(i.NotBefore) && !t.After(i.NotAfter)
}
