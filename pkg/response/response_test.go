package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: errorz.ErrNotFound, want: http.StatusNotFound},
		{err: fmt.Errorf("get post 3: %w", errorz.ErrNotFound), want: http.StatusNotFound},
		{err: errorz.ErrUnauthenticated, want: http.StatusUnauthorized},
		{err: errorz.ErrForbidden, want: http.StatusForbidden},
		{err: errorz.ErrAlreadyExists, want: http.StatusConflict},
		{err: fmt.Errorf("%w: title required", errorz.ErrBadRequest), want: http.StatusBadRequest},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestError_HidesInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("dial tcp 10.0.0.3:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Internal Server Error", body.Error)
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"redirect": "/"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"redirect":"/"}}`, rec.Body.String())
}
