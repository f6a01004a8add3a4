package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	Unauthorized = NewApiErr(http.StatusUnauthorized, "Unauthorized. Please log in to continue.")
)

// Authentication & Authorization Errors
var (
	ErrMissingSession     = errors.New("missing session")
	ErrInvalidSession     = errors.New("invalid session")
	ErrExpiredSession     = errors.New("expired session")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotOwner           = errors.New("not the owner of this resource")
)

func Malformed(payloadName string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, payloadName+" malformed")
}

func BadRequest(message string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, message)
}

// Authentication & Authorization Error Constructors
func NewMissingSessionError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        fmt.Errorf("Unauthorized. Please log in to continue.%w", sentinelSuffix(ErrMissingSession)),
		Field:      "session",
	}
}

func NewInvalidSessionError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        fmt.Errorf("Unauthorized. Please log in to continue.%w", sentinelSuffix(ErrInvalidSession)),
		Field:      "session",
		Cause:      cause,
	}
}

func NewExpiredSessionError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        fmt.Errorf("Session expired. Please log in again.%w", sentinelSuffix(ErrExpiredSession)),
		Field:      "session",
	}
}

// NewInvalidCredentialsError does not say which half of the credentials was wrong.
func NewInvalidCredentialsError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        fmt.Errorf("Invalid credentials.%w", sentinelSuffix(ErrInvalidCredentials)),
	}
}

func NewNotOwnerError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        fmt.Errorf("%s%w", message, sentinelSuffix(ErrNotOwner)),
	}
}

func IsMissingSessionError(err error) bool {
	return errors.Is(err, ErrMissingSession)
}

func IsInvalidSessionError(err error) bool {
	return errors.Is(err, ErrInvalidSession)
}

func IsExpiredSessionError(err error) bool {
	return errors.Is(err, ErrExpiredSession)
}

func IsInvalidCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsNotOwnerError(err error) bool {
	return errors.Is(err, ErrNotOwner)
}
