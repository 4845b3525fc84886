package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pixelforge/playerdash/internal/playerdash/upstream"
	"github.com/pixelforge/playerdash/pkg/httpx"
	"github.com/pixelforge/playerdash/pkg/slogx"
)

// ProxyHandler exposes the two authenticated JSON endpoints that forward
// player lookups to the third-party statistics APIs.
type ProxyHandler struct {
	Profiles *upstream.ProfileClient
	Likes    *upstream.LikeClient
}

// HandleViewProfile proxies a profile lookup for the posted uid.
func (h *ProxyHandler) HandleViewProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := parseUID(w, r)
	if !ok {
		return
	}

	data, err := h.Profiles.Lookup(r.Context(), uid)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ProxyResponse{Success: true, Data: data})
}

// HandleSendLike proxies a like delivery for the posted uid.
func (h *ProxyHandler) HandleSendLike(w http.ResponseWriter, r *http.Request) {
	uid, ok := parseUID(w, r)
	if !ok {
		return
	}

	data, err := h.Likes.Send(r.Context(), uid)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ProxyResponse{
		Success: true,
		Message: "Like sent successfully!",
		Data:    data,
	})
}

// parseUID decodes and validates the uid field. A valid uid is all digits
// and at least 6 characters long. On failure the error response has already
// been written and ok is false.
func parseUID(w http.ResponseWriter, r *http.Request) (uid string, ok bool) {
	var req uidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UID == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "UID is required"})
		return "", false
	}

	if !validUID(req.UID) {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid UID format"})
		return "", false
	}
	return req.UID, true
}

func validUID(uid string) bool {
	if len(uid) < 6 {
		return false
	}
	for _, c := range uid {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// writeUpstreamError maps upstream failures onto the endpoint's response
// contract. Statuses other than 404 and 429 deliberately collapse into a
// 500 so upstream internals do not leak to the browser.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var statusErr *upstream.StatusError
	switch {
	case errors.Is(err, upstream.ErrPlayerNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, ProxyResponse{
			Success: false,
			Error:   "Player not found",
		})
	case errors.Is(err, upstream.ErrRateLimited):
		httpx.WriteJSON(w, http.StatusTooManyRequests, ProxyResponse{
			Success: false,
			Error:   "Rate limit exceeded. Please try again later.",
		})
	case errors.Is(err, upstream.ErrTimeout):
		httpx.WriteJSON(w, http.StatusInternalServerError, ProxyResponse{
			Success: false,
			Error:   "Request timed out. Please try again.",
		})
	case errors.As(err, &statusErr):
		httpx.WriteJSON(w, http.StatusInternalServerError, ProxyResponse{
			Success: false,
			Error:   fmt.Sprintf("API returned status code: %d", statusErr.Code),
		})
	default:
		log.Error("upstream request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ProxyResponse{
			Success: false,
			Error:   "Failed to connect to API",
		})
	}
}
