package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeValidation        ErrorCode = "VALIDATION_FAILED"
	ErrCodeModeration        ErrorCode = "MODERATION_REJECTED"
	ErrCodeDuplicateAccount  ErrorCode = "DUPLICATE_ACCOUNT"
	ErrCodeAccountNotFound   ErrorCode = "ACCOUNT_NOT_FOUND"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeOfferNotActionable ErrorCode = "OFFER_NOT_ACTIONABLE"
	ErrCodeStoreUnavailable  ErrorCode = "STORE_UNAVAILABLE"
)

// AppError — типизированная ошибка движка. Все ошибки восстановимые:
// вызывающая сторона показывает сообщение и повторяет операцию.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidation, ErrCodeModeration:
		return http.StatusBadRequest
	case ErrCodeDuplicateAccount, ErrCodeInvalidTransition, ErrCodeOfferNotActionable:
		return http.StatusConflict
	case ErrCodeAccountNotFound, ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки либо пустую строку для нетипизированных.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsValidation(err error) bool {
	return Is(err, ErrCodeValidation)
}

func IsNotFound(err error) bool {
	return Is(err, ErrCodeNotFound) || Is(err, ErrCodeAccountNotFound)
}

var (
	ErrJobNotFound     = New(ErrCodeNotFound, "заявка не найдена")
	ErrOfferNotFound   = New(ErrCodeNotFound, "предложение не найдено")
	ErrChatNotFound    = New(ErrCodeNotFound, "диалог не найден")
	ErrAccountNotFound = New(ErrCodeAccountNotFound, "аккаунт не найден")
	ErrUnauthorized    = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrForbidden       = New(ErrCodeForbidden, "недостаточно прав")
)
