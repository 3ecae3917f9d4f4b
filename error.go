package stratchat

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFIG       = "config"
	EINTERNAL     = "internal"
	EINVALID      = "invalid"
	ENOTFOUND     = "not_found"
	ETIMEOUT      = "timeout"
	EUNAUTHORIZED = "unauthorized"
	EQUOTA        = "quota"
	ESAFETY       = "safety"
	EUNAVAILABLE  = "unavailable"
)

// Error represents an application-specific error. Message is safe to show
// to the end user; Err keeps the underlying cause for logs.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stratchat error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("stratchat error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error with a given code and message wrapping cause.
func WrapError(code string, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// Failure messages shown to the user when a generation call fails.
const (
	FailureTimeout      = "انتهت مهلة الطلب. الرجاء المحاولة مرة أخرى."
	FailureUnauthorized = "مفتاح API غير صالح أو غير مصرح به. يرجى مراجعة الإعدادات."
	FailureQuota        = "تم تجاوز حد الطلبات. يرجى المحاولة لاحقًا."
	FailureSafety       = "تم حظر الرد بسبب إعدادات السلامة."
	FailureNetwork      = "حدث خطأ في الاتصال بالشبكة. يرجى التحقق من اتصالك بالإنترنت والمحاولة مرة أخرى."
	FailureGeneric      = "عذرًا، حدث خطأ أثناء معالجة طلبك."
)

// FailureMessage maps a generation error to one of the fixed user-facing
// failure categories.
func FailureMessage(err error) string {
	switch ErrorCode(err) {
	case ETIMEOUT:
		return FailureTimeout
	case EUNAUTHORIZED:
		return FailureUnauthorized
	case EQUOTA:
		return FailureQuota
	case ESAFETY:
		return FailureSafety
	case EUNAVAILABLE:
		return FailureNetwork
	default:
		return FailureGeneric
	}
}
