// Package tlscerttest writes self-signed certificates for tests.
package tlscerttest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Pair is a generated certificate and key.
type Pair struct {
	CertPEM []byte
	KeyPEM  []byte
	// CertPath and KeyPath are set by Write.
	CertPath string
	KeyPath  string
	// Pool trusts the certificate, for client configs.
	Pool *x509.CertPool
	Leaf *x509.Certificate
}

// Generate creates a self-signed ECDSA certificate valid for localhost,
// 127.0.0.1 and ::1.
func Generate(t testing.TB) Pair {
	t.Helper()
	return GenerateValid(t, time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))
}

// GenerateValid is Generate with an explicit validity period.
func GenerateValid(t testing.TB, notBefore, notAfter time.Time) Pair {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		t.Fatalf("generate serial: %v", err)
	}

	template := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: "localhost", Organization: []string{"tlsedge test"}},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1"), net.IPv6loopback},
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("parse certificate: %v", err)
	}

	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}

	pool := x509.NewCertPool()
	pool.AddCert(leaf)

	return Pair{
		CertPEM: pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		KeyPEM:  pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}),
		Pool:    pool,
		Leaf:    leaf,
	}
}

// Write generates a pair and writes cert.pem and key.pem into dir.
func Write(t testing.TB, dir string) Pair {
	t.Helper()

	p := Generate(t)
	p.CertPath = filepath.Join(dir, "cert.pem")
	p.KeyPath = filepath.Join(dir, "key.pem")

	if err := os.WriteFile(p.CertPath, p.CertPEM, 0o644); err != nil {
		t.Fatalf("write certificate: %v", err)
	}
	if err := os.WriteFile(p.KeyPath, p.KeyPEM, 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}

	return p
}
