package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync/atomic"

	"znkr.io/tokendiff/diff"
	"znkr.io/tokendiff/tokendiff/config"
	"znkr.io/tokendiff/tokendiff/report"
)

// maxBodyBytes limits the size of a diff request. Token limits are enforced after decoding.
const maxBodyBytes = 1 << 20

type request struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type handler struct {
	cfg atomic.Pointer[config.Config]
	mux *http.ServeMux
}

func newHandler(cfg *config.Config) *handler {
	h := &handler{mux: http.NewServeMux()}
	h.cfg.Store(cfg)
	h.mux.HandleFunc("/diff", h.serveDiff)
	h.mux.HandleFunc("/healthz", h.serveHealth)
	return h
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.mux.ServeHTTP(w, req)
}

func (h *handler) serveHealth(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
	case http.MethodHead:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if req.Method == http.MethodGet {
		w.Write([]byte("ok"))
	}
}

func (h *handler) serveDiff(w http.ResponseWriter, req *http.Request) {
	cfg := h.cfg.Load()

	if req.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		errorf(w, http.StatusMethodNotAllowed, "method %s not allowed", req.Method)
		return
	}

	var in request
	body := http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&in); err != nil {
		if maxErr := (*http.MaxBytesError)(nil); errors.As(err, &maxErr) {
			errorf(w, http.StatusRequestEntityTooLarge, "request body exceeds %d bytes", maxErr.Limit)
			return
		}
		errorf(w, http.StatusBadRequest, "decoding request: %v", err)
		return
	}

	if limit := cfg.MaxTokens; limit > 0 {
		if n := countTokens(in.Old); n > limit {
			errorf(w, http.StatusRequestEntityTooLarge, "old text has %d tokens, limit is %d", n, limit)
			return
		}
		if n := countTokens(in.New); n > limit {
			errorf(w, http.StatusRequestEntityTooLarge, "new text has %d tokens, limit is %d", n, limit)
			return
		}
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, "json", diff.Diff(in.Old, in.New), report.Options{}); err != nil {
		errorf(w, http.StatusInternalServerError, "%v", err)
		log.Printf("failed to serve %v: %v", req.URL.EscapedPath(), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func countTokens(text string) int {
	return strings.Count(text, diff.Delimiter) + 1
}

func errorf(w http.ResponseWriter, code int, format string, args ...any) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(code)
	fmt.Fprintf(w, format, args...)
}
