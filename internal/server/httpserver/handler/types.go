package handler

import "time"

// Error codes carried in Response.Code and the X-Error-Code header.
const (
	CodeOK              = "OK"
	CodeNoConnInfo      = "EDGE-SYS-5001"
	CodeInternal        = "EDGE-SYS-5000"
	CodeTooManyRequests = "EDGE-SYS-4290"
)

// Response is the standard API response envelope.
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      CodeOK,
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
	}
}

// PeerResponse is the body of GET /.
type PeerResponse struct {
	RemoteAddr  string `json:"remote_addr"`
	LocalAddr   string `json:"local_addr"`
	Protocol    string `json:"protocol"`
	TLSVersion  string `json:"tls_version,omitempty"`
	ALPN        string `json:"alpn,omitempty"`
	ServerName  string `json:"server_name,omitempty"`
	ConnectedAt string `json:"connected_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
