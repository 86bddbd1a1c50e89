// Package serrors carries the three failure kinds the client distinguishes:
// transport failures, business failures reported by the portal, and
// validation failures caught before any request is sent.
package serrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindBusiness
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindBusiness:
		return "business"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// BaseError is a coded error. LocaleKey names the message in the intl bundle;
// Message is the fallback (or, for business errors, the server text verbatim).
type BaseError struct {
	Kind      Kind
	Code      string
	Message   string
	LocaleKey string
	Field     string
	Status    int
	cause     error
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{Kind: KindValidation, Code: code, Message: message, LocaleKey: localeKey}
}

func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}

func (e *BaseError) Unwrap() error {
	return e.cause
}

// Is matches on Code so sentinel errors can be compared with errors.Is.
func (e *BaseError) Is(target error) bool {
	var t *BaseError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithField returns a copy bound to a form field.
func (e *BaseError) WithField(field string) *BaseError {
	cp := *e
	cp.Field = field
	return &cp
}

func Transport(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BaseError{
		Kind:      KindTransport,
		Code:      "TRANSPORT",
		Message:   op,
		LocaleKey: "Errors.Transport",
		cause:     err,
	}
}

func Business(status int, message string) error {
	return &BaseError{
		Kind:      KindBusiness,
		Code:      "BUSINESS",
		Message:   message,
		LocaleKey: "Errors.Business",
		Status:    status,
	}
}

func Validation(field, code, message, localeKey string) error {
	return &BaseError{
		Kind:      KindValidation,
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
		Field:     field,
	}
}

func KindOf(err error) Kind {
	var be *BaseError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

func IsTransport(err error) bool  { return KindOf(err) == KindTransport }
func IsBusiness(err error) bool   { return KindOf(err) == KindBusiness }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// As extracts the BaseError from a chain.
func As(err error) (*BaseError, bool) {
	var be *BaseError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
