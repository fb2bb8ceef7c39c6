package handler

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/yndnr/tlsedge-go/internal/server/httpserver/conninfo"
	"github.com/yndnr/tlsedge-go/internal/telemetry/logger"
)

// handleRoot handles GET /. It reports the peer address of the connection
// the request arrived on.
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	log := logger.L(r.Context())

	info, ok := conninfo.FromContext(r.Context())
	if !ok {
		log.Error("connection info missing from request context")
		h.writeError(w, r, http.StatusInternalServerError, CodeNoConnInfo, "connection info unavailable")
		return
	}

	log.Info("connection info", "remote_addr", info.RemoteAddr.String())

	resp := PeerResponse{
		RemoteAddr:  info.RemoteAddr.String(),
		LocalAddr:   info.LocalAddr.String(),
		Protocol:    r.Proto,
		ConnectedAt: info.AcceptedAt.UTC().Format(time.RFC3339Nano),
	}
	if r.TLS != nil {
		resp.TLSVersion = tls.VersionName(r.TLS.Version)
		resp.ALPN = r.TLS.NegotiatedProtocol
		resp.ServerName = r.TLS.ServerName
	}

	h.writeJSON(w, r, http.StatusOK, resp)
}
