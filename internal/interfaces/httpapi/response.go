package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/football-club/internal/domain/attendance"
	"github.com/riskibarqy/football-club/internal/platform/resilience"
	"github.com/riskibarqy/football-club/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "football-club"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain       string `json:"domain"`
	Reason       string `json:"reason"`
	Message      string `json:"message"`
	Location     string `json:"location,omitempty"`
	LocationType string `json:"locationType,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_, _ = buf.WriteString(`{"apiVersion":"` + googleAPIVersion + `","error":{"code":500,"message":"internal server error","status":"INTERNAL"}}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = "internal server error"
	}

	items := errorItems(err, mapped, message)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  items,
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

// errorItems expands field violations into one item per field. Any other
// error yields a single item carrying the mapped reason.
func errorItems(err error, mapped mappedError, message string) []googleErrorItem {
	var validation *usecase.ValidationError
	if errors.As(err, &validation) && len(validation.Details) > 0 {
		items := make([]googleErrorItem, 0, len(validation.Details))
		for _, d := range validation.Details {
			items = append(items, googleErrorItem{
				Domain:       errorDomain,
				Reason:       mapped.Reason,
				Message:      d.Message,
				Location:     d.Field,
				LocationType: "body",
			})
		}
		return items
	}

	return []googleErrorItem{
		{
			Domain:  errorDomain,
			Reason:  mapped.Reason,
			Message: message,
		},
	}
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, attendance.ErrGoalkeeperConflict):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "goalkeeperConflict",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable),
		errors.Is(err, resilience.ErrCircuitOpen):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}

// validationErrorFromValidator converts validator/v10 failures into the same
// per-field shape the use cases return.
func validationErrorFromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &usecase.ValidationError{Message: "validation failed", Cause: err}
	}

	details := make([]usecase.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, usecase.FieldViolation{
			Field:   fieldPath(fe.Namespace()),
			Value:   fieldValue(fe.Value()),
			Message: validationMessage(fe),
		})
	}
	return &usecase.ValidationError{Message: "validation failed", Details: details, Cause: err}
}
