package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"
	"time"

	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

// decode reads and validates a JSON request body into dst.
func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		return domainerrors.Validation("invalid JSON body").WithCause(err)
	}
	return s.validator.Validate(dst)
}

// queryInt parses an integer query parameter, falling back to def when
// absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// queryTime parses an RFC 3339 query parameter, returning nil when absent.
func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, domainerrors.Validationf("%s must be an RFC 3339 timestamp", name)
	}
	return &t, nil
}
