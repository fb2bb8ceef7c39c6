// Package supervisor starts and runs the two listeners of tlsedge-server.
//
// Startup is ordered and every step is fatal:
//
//  1. the TLS context is built from the certificate and key files;
//  2. the plaintext redirect port is bound;
//  3. the TLS port is bound.
//
// Both binds are attempted even if one fails, and every failure is
// reported with the name of its listener. Afterwards the two accept loops
// run as supervised tasks. The redirect task ending is logged but leaves
// the secure listener running; the secure task ending ends Run.
package supervisor
