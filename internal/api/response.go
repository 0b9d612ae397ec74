package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope for errors and service endpoints. Generated
// layouts are returned as bare documents.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries a machine readable error code.
type ErrorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

// Success writes a successful envelope.
func Success(c echo.Context, status int, data any, message string) error {
	if message == "" {
		message = "Success"
	}
	return c.JSON(status, Response{Success: true, Code: status, Message: message, Data: data})
}

// Error writes a failed envelope.
func Error(c echo.Context, status int, code, message, details string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	return c.JSON(status, Response{
		Success: false,
		Code:    status,
		Message: message,
		Error:   &ErrorInfo{Code: code, Details: details},
	})
}

// BadRequest writes a 400 envelope.
func BadRequest(c echo.Context, code, message, details string) error {
	return Error(c, http.StatusBadRequest, code, message, details)
}
