package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFinished  Status = "finished"
	StatusCanceled  Status = "canceled"
)

// Transitions are deliberately unconstrained: any authorized actor may
// set any valid status. Only the modification window gates who gets to
// change an appointment at all.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusFinished, StatusCanceled:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}
