package schedule

import "github.com/bookflow-labs/bookflow-server/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ===============================
// Validations
// ===============================

// CanCancel defines whether an appointment may be cancelled.
func CanCancel(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanComplete defines whether an appointment may be completed.
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanMarkNoShow defines whether an appointment may be marked no_show.
func CanMarkNoShow(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// ConstrainsAvailability reports whether an appointment in this status
// blocks its time range for new bookings.
func ConstrainsAvailability(current Status) bool {
	return current != StatusCancelled && current != StatusNoShow
}

func InitialStatus() Status {
	return StatusConfirmed
}
