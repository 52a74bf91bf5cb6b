package entities

// OutcomeState is the tri-state result of a submission attempt.
type OutcomeState string

const (
	OutcomePending   OutcomeState = "pending"
	OutcomeSucceeded OutcomeState = "succeeded"
	OutcomeFailed    OutcomeState = "failed"
)

// FailureReason identifies why a submission failed. Validation reasons are
// resolved client-side and never reach the network layer.
type FailureReason string

const (
	ReasonUnauthenticated        FailureReason = "unauthenticated"
	ReasonInvalidPeopleCount     FailureReason = "invalid_people_count"
	ReasonInvalidTableConfig     FailureReason = "invalid_table_config"
	ReasonInvalidReservationDate FailureReason = "invalid_reservation_date"
	ReasonInvalidVenue           FailureReason = "invalid_venue"
	ReasonNoSelectedEvent        FailureReason = "no_selected_event"
	ReasonServerRejected         FailureReason = "server_rejected"
	ReasonNetworkError           FailureReason = "network_error"
)

// ReservationOutcome is created fresh per submission attempt and drives UI
// state only; it is never persisted.
//
// ConfirmationShown stays false until the caller actually renders the
// confirmation, so "request succeeded" and "user has seen confirmation" are
// never conflated.
type ReservationOutcome struct {
	State             OutcomeState  `json:"state"`
	ConfirmationShown bool          `json:"confirmation_shown"`
	Reason            FailureReason `json:"reason,omitempty"`
	Message           string        `json:"message,omitempty"`
}

func PendingOutcome() ReservationOutcome {
	return ReservationOutcome{State: OutcomePending}
}

func SucceededOutcome() ReservationOutcome {
	return ReservationOutcome{State: OutcomeSucceeded}
}

func FailedOutcome(reason FailureReason, message string) ReservationOutcome {
	return ReservationOutcome{State: OutcomeFailed, Reason: reason, Message: message}
}

func (o *ReservationOutcome) MarkConfirmationShown() {
	if o.State == OutcomeSucceeded {
		o.ConfirmationShown = true
	}
}
