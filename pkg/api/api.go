package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	pkgerrors "github.com/absmach/perfapi/pkg/errors"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/supermq"
	apiutil "github.com/absmach/supermq/api/http/util"
	kithttp "github.com/go-kit/kit/transport/http"
)

const (
	ContentType = "application/json"
)

type errorResponse struct {
	Error        string `json:"error"`
	ProfileID    string `json:"profile_id,omitempty"`
	RunsExecuted *int   `json:"runs_executed,omitempty"`
}

func EncodeResponse(_ context.Context, w http.ResponseWriter, response any) error {
	if ar, ok := response.(supermq.Response); ok {
		for k, v := range ar.Headers() {
			w.Header().Set(k, v)
		}
		w.Header().Set("Content-Type", ContentType)
		w.WriteHeader(ar.Code())

		if ar.Empty() {
			return nil
		}
	}

	return json.NewEncoder(w).Encode(response)
}

// EncodeError writes err as {"error": "..."} with the status matching its
// category. Target failures also carry the profile id and completed runs.
func EncodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentType)

	body := errorResponse{Error: Message(err)}
	var execErr *profiling.TargetExecutionError

	switch {
	case errors.As(err, &execErr):
		body.Error = execErr.Error()
		body.ProfileID = execErr.ProfileID
		runs := execErr.RunsExecuted
		body.RunsExecuted = &runs
		w.WriteHeader(http.StatusInternalServerError)
	case errors.Is(err, apiutil.ErrUnsupportedContentType),
		errors.Is(err, pkgerrors.ErrUnsupportedContentType):
		w.WriteHeader(http.StatusUnsupportedMediaType)
	case errors.Is(err, apiutil.ErrValidation),
		errors.Is(err, apiutil.ErrInvalidQueryParams),
		errors.Is(err, pkgerrors.ErrValidation),
		errors.Is(err, pkgerrors.ErrMalformedEntity),
		errors.Is(err, pkgerrors.ErrInvalidData):
		w.WriteHeader(http.StatusUnprocessableEntity)
	case errors.Is(err, pkgerrors.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// LoggingErrorEncoder logs request errors before encoding them. Client
// errors are logged at warn level, everything else at error level.
func LoggingErrorEncoder(logger *slog.Logger, enc kithttp.ErrorEncoder) kithttp.ErrorEncoder {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		switch {
		case errors.Is(err, apiutil.ErrValidation),
			errors.Is(err, apiutil.ErrInvalidQueryParams),
			errors.Is(err, pkgerrors.ErrValidation),
			errors.Is(err, pkgerrors.ErrNotFound):
			logger.Warn("request rejected", slog.String("error", Message(err)))
		default:
			logger.Error("request failed", slog.String("error", Message(err)))
		}
		enc(ctx, err, w)
	}
}

// Message flattens joined errors into a single line.
func Message(err error) string {
	if err == nil {
		return ""
	}

	return strings.ReplaceAll(err.Error(), "\n", ": ")
}
