package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"logpulse/pkg/api"
	appErrors "logpulse/pkg/errors"
	"logpulse/pkg/utils"
)

// errUnprocessable marks request shape errors (bad JSON, failed struct
// validation, non-numeric path ids). They map to 422.
type errUnprocessable struct {
	msg string
}

func (e *errUnprocessable) Error() string { return e.msg }

func unprocessable(msg string) error {
	return &errUnprocessable{msg: msg}
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return unprocessable("request body is required")
		}
		return unprocessable("invalid request body: " + err.Error())
	}
	if err := utils.ValidateStruct(dst); err != nil {
		return unprocessable(err.Error())
	}
	return nil
}

// pathID parses an integer URL parameter.
func pathID(r *http.Request, param, label string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil {
		return 0, unprocessable("invalid " + label + " id")
	}
	return id, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	_ = api.Success(w, status, data)
}

// respondError writes the error body for err; internal details are logged, never returned.
func respondError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var shapeErr *errUnprocessable
	if errors.As(err, &shapeErr) {
		_ = api.Error(w, http.StatusUnprocessableEntity, shapeErr.msg)
		return
	}

	status := appErrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.Any("ctx", r.Context()),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	_ = api.Error(w, status, appErrors.Message(err))
}
