package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/jackc/pgx/v5"
)

// Kind is the closed set of failure categories surfaced to the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindUnauthorized
	KindPaymentRequired
	KindForbidden
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindPaymentRequired:
		return "PAYMENT_REQUIRED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindValidation:
		return "VALIDATION_FAILED"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

// DomainError standardizes application errors.
type DomainError struct {
	Kind    Kind
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Code returns the stable machine readable code for the error kind.
func (e *DomainError) Code() string {
	return e.Kind.String()
}

// HTTPStatus maps the error kind onto a response status.
func (e *DomainError) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindPaymentRequired:
		return http.StatusPaymentRequired
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// NewDomainError constructs a DomainError.
func NewDomainError(kind Kind, message string, details map[string]any) *DomainError {
	return &DomainError{Kind: kind, Message: message, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(KindValidation, message, details)
}

// FromValidation converts ozzo-validation field errors into a validation DomainError.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]any, len(fieldErrs))
		for field, fieldErr := range fieldErrs {
			details[field] = fieldErr.Error()
		}
		return NewValidationError("invalid payload", details)
	}
	return NewValidationError(err.Error(), nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return NewDomainError(KindNotFound, fmt.Sprintf("%s not found", resource), details)
}

func NewUnauthorized(message string) error {
	return NewDomainError(KindUnauthorized, message, nil)
}

func NewPaymentRequired(message string) error {
	return NewDomainError(KindPaymentRequired, message, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(KindForbidden, message, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(KindConflict, message, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewDomainError(KindNotFound, "resource not found", map[string]any{})
	}
	return &DomainError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// KindOf reports the kind of err, KindInternal for anything unclassified.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	return ToDomainError(err).Kind
}

func MapError(err error) error {
	return ToDomainError(err)
}
