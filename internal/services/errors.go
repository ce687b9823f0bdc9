package services

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrorCode classifies service failures for the transport layer
type ErrorCode int

const (
	ErrInternal ErrorCode = iota + 1000
	ErrNotFound
	ErrInvalidOperation
	ErrAlreadyExists
	ErrNotFollowing
	ErrForbidden
	ErrValidation
)

func (c ErrorCode) String() string {
	switch c {
	case ErrNotFound:
		return "not_found"
	case ErrInvalidOperation:
		return "invalid_operation"
	case ErrAlreadyExists:
		return "already_exists"
	case ErrNotFollowing:
		return "not_following"
	case ErrForbidden:
		return "forbidden"
	case ErrValidation:
		return "validation"
	default:
		return "internal"
	}
}

// ServiceError is the error type returned by every service operation
type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// New creates a ServiceError
func New(code ErrorCode, message string) error {
	return &ServiceError{Code: code, Message: message}
}

// Wrap creates a ServiceError around a lower level error
func Wrap(code ErrorCode, message string, err error) error {
	return &ServiceError{Code: code, Message: message, Err: err}
}

// GetErrorCode returns the code of err, or ErrInternal when err is not a ServiceError
func GetErrorCode(err error) ErrorCode {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrInternal
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool {
	return err != nil && GetErrorCode(err) == code
}

// ParseID converts a hex id from a request into an ObjectID
func ParseID(id, what string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, Wrap(ErrValidation, "invalid "+what+" id", err)
	}
	return oid, nil
}
