package handler

import (
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// HeaderAPIKey is the request header carrying the caller's API key.
const HeaderAPIKey = "api_key"

// requireAPIKey rejects the request with 401 unless the api_key header
// matches a configured key. It is a no-op when no keys are configured.
func (h *Handler) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.keys.Verify(r.Header.Get(HeaderAPIKey)); err != nil {
			zctx.From(r.Context()).Debug("Rejected API key", zap.String("method", r.Method))
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next(w, r)
	}
}
