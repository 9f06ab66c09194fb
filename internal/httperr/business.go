package httperr

import "errors"

// Business error codes used across use cases and the agent dispatcher.
const (
	CodeServiceNotFound     = "service_not_found"
	CodeSlotUnavailable     = "slot_unavailable"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeInvalidState        = "invalid_state"
	CodeTimeConflict        = "time_conflict"
	CodeUpstreamError       = "upstream_error"
	CodeUpstreamTimeout     = "upstream_timeout"
	CodeAuthorizationDenied = "authorization_denied"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code from a business error, or "" if err is
// not one.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
