package response

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "marketplace/pkg/errors"
)

// Envelope is the uniform result shape: exactly one of Data and Error is set.
type Envelope struct {
	Data      interface{} `json:"data"`
	Error     *string     `json:"error"`
	Code      string      `json:"code,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Result folds a service return pair into an Envelope. A nil err always
// yields a success envelope, even when data is nil.
func Result(data interface{}, err error, fallback string) Envelope {
	env := Envelope{Timestamp: time.Now().UTC().Format(time.RFC3339)}
	if err != nil {
		appErr := apperrors.From(err, fallback)
		message := apperrors.Message(appErr, fallback)
		env.Error = &message
		env.Code = appErr.Code
		return env
	}
	env.Data = data
	return env
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Result(data, nil, ""))
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Result(data, nil, ""))
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, Result(nil, appErr, ""))
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, _ := httpErr.Message.(string)
		if message == "" {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, Result(nil, apperrors.New(apperrors.CodeBadRequest, message, httpErr.Code, err), ""))
	}

	return c.JSON(http.StatusInternalServerError, Result(nil, apperrors.Internal("An unexpected error occurred", err), ""))
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	for _, err := range validationErr {
		field := strings.ToLower(err.Field())
		param := err.Param()

		var message string
		switch err.Tag() {
		case "required":
			message = field + " is required"
		case "gt":
			message = field + " must be greater than " + param
		case "max":
			message = field + " must be at most " + param
		case "oneof":
			message = field + " must be one of: " + param
		default:
			message = field + " is invalid"
		}

		return c.JSON(http.StatusBadRequest, Result(nil, apperrors.Validation(message), ""))
	}

	return c.JSON(http.StatusBadRequest, Result(nil, apperrors.Validation("Invalid input data"), ""))
}
