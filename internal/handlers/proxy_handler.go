package handlers

import (
	"io"
	"net/http"
	"time"
)

// ProxyHandler forwards requests verbatim to the upstream web app so a
// browser front-end can reach it without CORS trouble. The upstream response
// comes back byte for byte; only a transport failure produces a response of
// our own.
type ProxyHandler struct {
	Target string
	HTTP   *http.Client
}

func NewProxyHandler(target string) *ProxyHandler {
	return &ProxyHandler{
		Target: target,
		// The web app can take a while on cold starts.
		HTTP: &http.Client{Timeout: 60 * time.Second},
	}
}

func (h *ProxyHandler) Forward(w http.ResponseWriter, r *http.Request) {
	targetURL := h.Target
	if r.URL.RawQuery != "" {
		targetURL += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, targetURL, r.Body)
	if err != nil {
		h.proxyError(w, err)
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := h.HTTP.Do(req)
	if err != nil {
		h.proxyError(w, err)
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}

func (h *ProxyHandler) proxyError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadGateway, map[string]interface{}{
		"ok":     false,
		"error":  "proxy_error",
		"detail": err.Error(),
	})
}
