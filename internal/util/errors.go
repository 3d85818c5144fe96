package util

import (
	"errors"
	"net/http"
)

var (
	ErrMissingFields        = errors.New("tableName, sessionId and newDate are required")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
	ErrSameDate             = errors.New("new date is the same as the current date")
	ErrDateNotInFuture      = errors.New("new date must be in the future")
	ErrInvalidTableName     = errors.New("invalid table name")
	ErrInvalidDays          = errors.New("invalid class days")
	ErrInvalidMaterialKind  = errors.New("invalid material kind")
	ErrInvalidFileType      = errors.New("invalid file type")
	ErrNothingToUpdate      = errors.New("nothing to update")
	ErrSessionNotFound      = errors.New("session not found")
	ErrCohortNotFound       = errors.New("cohort table not found")
	ErrCohortExists         = errors.New("cohort table already exists")
	ErrSessionExists        = errors.New("session id already exists")
	ErrShiftInProgress      = errors.New("another reschedule is in progress for this table")
	ErrMeetingProvider      = errors.New("meeting provider error")
	ErrMeetingNotConfigured = errors.New("meeting provider is not configured")
	ErrPermissionDenied     = errors.New("permission denied")
	// ErrCorruptSchedule 库里已有的课程数据无法解析，属于服务端问题
	ErrCorruptSchedule      = errors.New("stored schedule is corrupt")
)

var validationErrors = []error{
	ErrMissingFields,
	ErrInvalidDate,
	ErrSameDate,
	ErrDateNotInFuture,
	ErrInvalidTableName,
	ErrInvalidDays,
	ErrInvalidMaterialKind,
	ErrInvalidFileType,
	ErrNothingToUpdate,
}

// IsValidationError 请求参数类错误，对应 400
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// HTTPStatus 将业务错误映射为 HTTP 状态码
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrCohortNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrCohortExists), errors.Is(err, ErrSessionExists), errors.Is(err, ErrShiftInProgress):
		return http.StatusConflict
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrMeetingProvider):
		return http.StatusBadGateway
	case errors.Is(err, ErrMeetingNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
