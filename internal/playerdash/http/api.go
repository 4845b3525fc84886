package http

import "encoding/json"

// ErrorResponse is the plain error body for request-level failures
// (missing session, missing or malformed uid).
type ErrorResponse struct {
	Error string `json:"error"`
}

// ProxyResponse is the normalized body for proxied upstream calls.
type ProxyResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Store string `json:"store"`
}

// uidRequest is the JSON body accepted by both proxy endpoints.
type uidRequest struct {
	UID string `json:"uid"`
}
