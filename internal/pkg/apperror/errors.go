package apperror

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
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
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// CodeOf возвращает код ошибки приложения или INTERNAL_ERROR для прочих ошибок.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsConflict(err error) bool {
	return CodeOf(err) == ErrCodeConflict
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

var (
	ErrUserNotFound     = New(ErrCodeNotFound, "пользователь не найден")
	ErrCategoryNotFound = New(ErrCodeNotFound, "категория не найдена")
	ErrListingNotFound  = New(ErrCodeNotFound, "объявление не найдено")
	ErrSponsorNotFound  = New(ErrCodeNotFound, "спонсор не найден")
	ErrCampaignNotFound = New(ErrCodeNotFound, "кампания не найдена")
	ErrReportNotFound   = New(ErrCodeNotFound, "жалоба не найдена")
	ErrZipNotFound      = New(ErrCodeNotFound, "почтовый индекс не найден")

	ErrSlugTaken        = New(ErrCodeConflict, "slug уже занят")
	ErrEmailTaken       = New(ErrCodeConflict, "email уже используется")
	ErrCampaignKeyTaken = New(ErrCodeConflict, "кампания с таким ключом уже существует")
	ErrReportDismissed  = New(ErrCodeConflict, "жалоба уже отклонена")
	ErrResetCooldown    = New(ErrCodeConflict, "сброс пароля уже запрошен, попробуйте позже")

	ErrInvalidResetCode = New(ErrCodeForbidden, "неверный код сброса пароля")
	ErrUserDisabled     = New(ErrCodeForbidden, "аккаунт заблокирован")
	ErrInvalidID        = New(ErrCodeValidation, "некорректный идентификатор")
)
