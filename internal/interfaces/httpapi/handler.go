package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/football-club/internal/platform/logging"
	"github.com/riskibarqy/football-club/internal/usecase"
)

const defaultListLimit = 50

type Handler struct {
	playerService      *usecase.PlayerService
	matchService       *usecase.MatchService
	attendanceService  *usecase.AttendanceService
	importService      *usecase.ImportService
	feeService         *usecase.FeeService
	leaderboardService *usecase.LeaderboardService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	matchService *usecase.MatchService,
	attendanceService *usecase.AttendanceService,
	importService *usecase.ImportService,
	feeService *usecase.FeeService,
	leaderboardService *usecase.LeaderboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		playerService:      playerService,
		matchService:       matchService,
		attendanceService:  attendanceService,
		importService:      importService,
		feeService:         feeService,
		leaderboardService: leaderboardService,
		logger:             logger,
		validator:          v,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeJSON")
	defer span.End()

	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return validationErrorFromValidator(err)
	}

	return nil
}

func queryLimit(r *http.Request, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return fallback, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
	}
	return limit, nil
}

// fieldPath drops the request struct name from a validator namespace.
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return rest
}

func fieldValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
