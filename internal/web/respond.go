package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/vbonduro/shoplist/internal/domain"
	"github.com/vbonduro/shoplist/internal/service"
)

// ownerHeader names the list owner. Authentication happens upstream; a
// missing header selects the shared anonymous list.
const ownerHeader = "X-User"

func owner(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(ownerHeader))
}

type errorResponse struct {
	Success    bool     `json:"success"`
	Error      string   `json:"error"`
	DidYouMean []string `json:"did_you_mean,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses. Unexpected errors are
// logged and hidden from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuery), errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrExternalService):
		status = http.StatusBadGateway
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	}

	body := errorResponse{Error: err.Error()}
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		body.DidYouMean = nf.DidYouMean
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", getRequestID(r), "path", r.URL.Path, "error", err)
		body.Error = "internal error"
	}
	writeJSON(w, status, body)
}

// decodeJSON reads a JSON request body into v. Malformed bodies are reported
// as domain.ErrInvalidInput.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("invalid JSON body: %v: %w", err, domain.ErrInvalidInput)
	}
	return nil
}

// quantity accepts a JSON number or a numeric string holding a whole
// number in 1..domain.MaxQuantity.
type quantity int

func (q *quantity) UnmarshalJSON(b []byte) error {
	n, err := domain.ParseQuantity(strings.Trim(strings.TrimSpace(string(b)), `"`))
	if err != nil {
		return err
	}
	*q = quantity(n)
	return nil
}

// orOne treats an absent quantity as one.
func (q *quantity) orOne() int {
	if q == nil {
		return 1
	}
	return int(*q)
}

// queryPrice reads an optional price bound from the query string.
func queryPrice(r *http.Request, key string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a finite number: %w", key, domain.ErrInvalidInput)
	}
	return &v, nil
}
