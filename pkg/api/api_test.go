package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/absmach/perfapi/pkg/api"
	pkgerrors "github.com/absmach/perfapi/pkg/errors"
	"github.com/absmach/perfapi/pkg/profiling"
	apiutil "github.com/absmach/supermq/api/http/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createdResponse struct {
	Name string `json:"name"`
}

func (createdResponse) Code() int                  { return http.StatusCreated }
func (createdResponse) Headers() map[string]string { return map[string]string{"X-Test": "yes"} }
func (createdResponse) Empty() bool                { return false }

func TestEncodeResponse(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, api.EncodeResponse(context.Background(), rec, createdResponse{Name: "x"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "yes", rec.Header().Get("X-Test"))
	assert.Equal(t, api.ContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"x"}`, rec.Body.String())
}

func TestEncodeError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		desc   string
		err    error
		status int
	}{
		{desc: "validation", err: errors.Join(apiutil.ErrValidation, errors.New("bad")), status: http.StatusUnprocessableEntity},
		{desc: "domain validation", err: fmt.Errorf("%w: runs", pkgerrors.ErrValidation), status: http.StatusUnprocessableEntity},
		{desc: "malformed", err: pkgerrors.ErrMalformedEntity, status: http.StatusUnprocessableEntity},
		{desc: "invalid query params", err: apiutil.ErrInvalidQueryParams, status: http.StatusUnprocessableEntity},
		{desc: "not found", err: profiling.ErrTargetNotFound, status: http.StatusNotFound},
		{desc: "content type", err: errors.Join(apiutil.ErrValidation, apiutil.ErrUnsupportedContentType), status: http.StatusUnsupportedMediaType},
		{desc: "collection", err: pkgerrors.ErrSnapshotCollection, status: http.StatusInternalServerError},
		{desc: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			api.EncodeError(context.Background(), tc.err, rec)

			assert.Equal(t, tc.status, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			assert.NotContains(t, body["error"], "\n")
			assert.NotContains(t, body, "profile_id")
		})
	}
}

func TestEncodeTargetExecutionError(t *testing.T) {
	t.Parallel()

	err := &profiling.TargetExecutionError{
		ProfileID:    "p-1",
		TargetName:   "flaky",
		RunsExecuted: 0,
		Err:          errors.New("boom"),
	}
	rec := httptest.NewRecorder()
	api.EncodeError(context.Background(), err, rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "p-1", body["profile_id"])
	assert.EqualValues(t, 0, body["runs_executed"])
	assert.Contains(t, body["error"], "boom")
}

func TestLoggingErrorEncoder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		desc  string
		err   error
		level string
	}{
		{desc: "validation", err: errors.Join(apiutil.ErrValidation, errors.New("bad")), level: "level=WARN"},
		{desc: "not found", err: profiling.ErrTargetNotFound, level: "level=WARN"},
		{desc: "invalid query params", err: apiutil.ErrInvalidQueryParams, level: "level=WARN"},
		{desc: "internal", err: errors.New("boom"), level: "level=ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			called := false
			enc := api.LoggingErrorEncoder(logger, func(_ context.Context, err error, w http.ResponseWriter) {
				called = true
				assert.Equal(t, tc.err, err)
			})

			enc(context.Background(), tc.err, httptest.NewRecorder())
			assert.True(t, called)
			assert.Contains(t, logs.String(), tc.level)
		})
	}
}
