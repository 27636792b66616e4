package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiError is an error with an HTTP status and a stable code for clients.
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// CreateNotFoundError builds a 404 for the named resource.
func CreateNotFoundError(resource string) *ApiError {
	return NewApiError(resource+" introuvable", http.StatusNotFound, "RESOURCE_NOT_FOUND")
}

func CreateUnauthorizedError() *ApiError {
	return NewApiError("accès non autorisé", http.StatusUnauthorized, "UNAUTHORIZED")
}

func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, "BAD_REQUEST")
}

// HandleError logs err and writes the matching JSON error response.
func HandleError(c *gin.Context, err error) {
	if c == nil || err == nil {
		return
	}
	errorMessage := err.Error()

	LogError(err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}, "api error")

	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		response := gin.H{"success": false, "error": apiErr.Message}
		if apiErr.ErrorCode != "" {
			response["code"] = apiErr.ErrorCode
		}
		c.JSON(apiErr.StatusCode, response)
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		c.JSON(appErr.StatusCode, gin.H{
			"success": false,
			"error":   errorMessage,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   errorMessage,
	})
}

// SuccessResponse writes the {success, data, message} envelope.
func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}


// AppError wraps a lower-level failure with a user-facing message.
type AppError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(message string, statusCode int, err error) *AppError {
	return &AppError{
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}
