// Package conninfo carries accepted-connection metadata into request
// contexts.
package conninfo

import (
	"context"
	"net"
	"time"
)

type contextKey struct{}

// Info describes the connection a request arrived on.
type Info struct {
	RemoteAddr net.Addr
	LocalAddr  net.Addr
	AcceptedAt time.Time
}

// With returns ctx carrying the metadata of c. It matches the shape of
// http.Server.ConnContext.
func With(ctx context.Context, c net.Conn) context.Context {
	return context.WithValue(ctx, contextKey{}, Info{
		RemoteAddr: c.RemoteAddr(),
		LocalAddr:  c.LocalAddr(),
		AcceptedAt: time.Now(),
	})
}

// FromContext returns the connection metadata stored by With.
func FromContext(ctx context.Context) (Info, bool) {
	info, ok := ctx.Value(contextKey{}).(Info)
	return info, ok
}
