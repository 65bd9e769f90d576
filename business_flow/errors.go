// Package business_flow contains the business logic flows for the
// shortening service
package business_flow

import (
	"errors"
	"fmt"

	"github.com/pabst/shortener/app/services"
)

// BusinessError represents a business logic error with a stable code
type BusinessError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation and flow outcomes callers branch on
var (
	ErrInvalidEncoding        = errors.New("url is not correctly percent-encoded")
	ErrURLTooLong             = errors.New("url exceeds the maximum length")
	ErrLocalhostForbidden     = errors.New("localhost urls cannot be shortened")
	ErrVanityInvalidCharacter = errors.New("vanity segment contains invalid characters")
	ErrVanityTooLong          = errors.New("vanity segment exceeds the maximum length")
	ErrVanityTooShort         = errors.New("vanity segment is below the minimum length")
	ErrVanityReserved         = errors.New("vanity segment collides with a route")
	ErrVanityTaken            = errors.New("vanity segment is already in use")
	ErrRateLimited            = errors.New("hourly url quota exceeded for this ip")
	ErrGenerationExhausted    = errors.New("could not generate a unique segment")
	ErrLinkNotFound           = errors.New("no link exists for this segment")
	ErrLinkExpired            = errors.New("link has expired")
)

// IsValidationError reports whether err is any of the submission
// validation failures
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidEncoding) ||
		errors.Is(err, ErrURLTooLong) ||
		errors.Is(err, ErrLocalhostForbidden) ||
		errors.Is(err, ErrVanityInvalidCharacter) ||
		errors.Is(err, ErrVanityTooLong) ||
		errors.Is(err, ErrVanityTooShort) ||
		errors.Is(err, ErrVanityReserved)
}

// IsVanityTaken reports whether err indicates the requested vanity
// segment is occupied
func IsVanityTaken(err error) bool {
	return errors.Is(err, ErrVanityTaken)
}

// IsRateLimited reports whether err indicates the submitter exceeded
// the hourly quota
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsGenerationExhausted reports whether err indicates segment
// generation gave up after repeated collisions
func IsGenerationExhausted(err error) bool {
	return errors.Is(err, ErrGenerationExhausted)
}

// IsLinkNotFound reports whether err indicates the segment resolves to
// nothing
func IsLinkNotFound(err error) bool {
	return errors.Is(err, ErrLinkNotFound)
}

// IsLinkExpired reports whether err indicates the link exists but is
// past its expiry
func IsLinkExpired(err error) bool {
	return errors.Is(err, ErrLinkExpired)
}

// IsTargetUnreachable reports whether err indicates the submitted URL
// did not answer with a usable response
func IsTargetUnreachable(err error) bool {
	return errors.Is(err, services.ErrTargetUnreachable)
}

// IsTargetTimeout reports whether err indicates the submitted URL took
// too long to answer
func IsTargetTimeout(err error) bool {
	return errors.Is(err, services.ErrTargetTimeout)
}
