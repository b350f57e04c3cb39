package util

import (
	"errors"
	"fmt"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrTrackingNotFound = errors.New("tracking record not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError 请求字段缺失或非法，直接返回调用方，不重试
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InvalidActionError 课时事件动作不在 {view,start,progress,complete} 之内
type InvalidActionError struct {
	Action string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid lesson event action: %q", e.Action)
}

func NewInvalidActionError(action string) error {
	return &InvalidActionError{Action: action}
}

func IsInvalidActionError(err error) bool {
	var ae *InvalidActionError
	return errors.As(err, &ae)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrLessonNotFound) ||
		errors.Is(err, ErrExerciseNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrTrackingNotFound)
}
