package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/easygoapi/easygo/internal/common"
)

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps the service error taxonomy to HTTP statuses. Unauthorized
// and internal failures carry fixed messages so responses never leak detail;
// caller-fixable errors keep their message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    trimKind(err, common.ErrorInvalidRequest),
		})
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			StatusCode: http.StatusUnauthorized,
			Message:    "Unauthorized",
		})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			StatusCode: http.StatusNotFound,
			Message:    "Not Found",
		})
	case errors.Is(err, common.ErrorConflict):
		writeJSON(w, http.StatusConflict, errorResponse{
			StatusCode: http.StatusConflict,
			Message:    trimKind(err, common.ErrorConflict),
		})
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal Server Error",
		})
	}
}

// trimKind strips the leading sentinel text from a wrapped error so the
// response message starts with the human-readable part.
func trimKind(err, kind error) string {
	msg := err.Error()
	if rest, found := strings.CutPrefix(msg, kind.Error()+": "); found {
		return rest
	}
	return msg
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body", common.ErrorInvalidRequest)
	}
	return nil
}
