package handler

import (
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// Response shapes
type success struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

func respond(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}
	return c.JSON(status, success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	})
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized 201 response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusCreated, data)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(toAppError(err), &appErr) {
		if logger != nil {
			fields := []zap.Field{
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			}
			if appErr.HTTPCode >= http.StatusInternalServerError {
				logger.Error("http.response.error", fields...)
			} else {
				logger.Warn("http.response.error", fields...)
			}
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		return c.JSON(appErr.HTTPCode, errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
		})
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.JSON(http.StatusInternalServerError, errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	})
}

// toAppError maps domain and use case errors onto API errors.
// Errors it does not recognise are returned unchanged.
func toAppError(err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var mapped errors.AppError
	var verrs validator.ValidationErrors
	switch {
	case stdErrors.As(err, &verrs):
		mapped = errors.ErrInvalidPayload(nil)
	case stdErrors.Is(err, entities.ErrEntityNotFound):
		mapped = errors.ErrEntityNotFound("")
	case stdErrors.Is(err, entities.ErrEntityNameConflict):
		mapped = errors.ErrEntityNameConflict("")
	case stdErrors.Is(err, entities.ErrEntityTypeNotFound):
		mapped = errors.ErrEntityTypeNotFound("")
	case stdErrors.Is(err, entities.ErrEntityTypeExists):
		mapped = errors.ErrAlreadyExists("Entity type")
	case stdErrors.Is(err, entities.ErrEntityTypeInUse):
		mapped = errors.ErrEntityTypeInUse("")
	case stdErrors.Is(err, entities.ErrSystemEntityType):
		mapped = errors.ErrSystemEntityType("")
	case stdErrors.Is(err, entities.ErrMeetingNotFound):
		mapped = errors.ErrMeetingNotFound("")
	case stdErrors.Is(err, entities.ErrMeetingTypeNotFound):
		mapped = errors.ErrMeetingTypeNotFound("")
	case stdErrors.Is(err, entities.ErrMeetingTypeExists):
		mapped = errors.ErrAlreadyExists("Meeting type")
	case stdErrors.Is(err, entities.ErrMeetingTypeInUse):
		mapped = errors.ErrMeetingTypeInUse("")
	case stdErrors.Is(err, entities.ErrSystemMeetingType):
		mapped = errors.ErrSystemMeetingType("")
	case stdErrors.Is(err, entities.ErrActionItemNotFound):
		mapped = errors.ErrActionItemNotFound("")
	case stdErrors.Is(err, entities.ErrUnauthorized):
		mapped = errors.ErrUnauthenticated()
	case stdErrors.Is(err, entities.ErrForbidden):
		mapped = errors.ErrPermissionDenied("admin role required")
	case stdErrors.Is(err, usecaseErrors.ErrGenerationFailed):
		mapped = errors.ErrAIServiceUnavailable("generator", nil)
	case stdErrors.Is(err, usecaseErrors.ErrStorageDisabled):
		mapped = errors.ErrStorageFailed("archive", nil)
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		mapped = errors.ErrNotFound("Resource")
	case stdErrors.Is(err, usecaseErrors.ErrAlreadyExists), stdErrors.Is(err, usecaseErrors.ErrConflict):
		mapped = errors.ErrAlreadyExists("Resource")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput),
		stdErrors.Is(err, usecaseErrors.ErrEmptyName),
		stdErrors.Is(err, usecaseErrors.ErrEmptySelection),
		stdErrors.Is(err, usecaseErrors.ErrSelfMerge),
		stdErrors.Is(err, usecaseErrors.ErrEmptyTranscript),
		stdErrors.Is(err, entities.ErrInvalidActionStatus),
		stdErrors.Is(err, entities.ErrInvalidRequest):
		return errors.ErrInvalidArgument(err.Error())
	default:
		return err
	}
	mapped.Raw = err
	return mapped
}

// bindAndValidate binds the request body and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload(err)
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidPayload(err)
	}
	return nil
}

// pathUUID parses a UUID path parameter
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument(name + " must be a valid UUID")
	}
	return id, nil
}

// listOptions reads limit and offset query parameters
func listOptions(c echo.Context) (repositories.ListOptions, error) {
	opts := repositories.ListOptions{Limit: defaultPageSize}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, errors.ErrInvalidArgument("limit must be a positive integer")
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		opts.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, errors.ErrInvalidArgument("offset must be a non-negative integer")
		}
		opts.Offset = n
	}
	return opts, nil
}
