package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/pkg/logger/types"
	"github.com/clubhub-dev/clubhub/pkg/response"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// Fail writes err and logs it when it is not a known domain error.
func Fail(logger *types.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if response.Status(err) == http.StatusInternalServerError {
		logger.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	response.Error(w, err)
}

// Page reads the ?page= query parameter.
func Page(r *http.Request) (dto.PageRequest, error) {
	return dto.ParsePageRequest(r.URL.Query().Get("page"))
}

// ID reads a numeric path parameter. Anything else matches no record.
func ID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, errorz.ErrNotFound
	}
	return uint(id), nil
}

// Decode reads a JSON request body into v.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", errorz.ErrBadRequest, err)
	}
	return nil
}
