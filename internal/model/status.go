package model

// Status is the lifecycle state of a work order.
type Status string

const (
	StatusReceived   Status = "RECEIVED"
	StatusDiagnosis  Status = "DIAGNOSIS"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReady      Status = "READY"
	StatusDelivered  Status = "DELIVERED"
	StatusCanceled   Status = "CANCELED"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusReceived,
	StatusDiagnosis,
	StatusInProgress,
	StatusReady,
	StatusDelivered,
	StatusCanceled,
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further edits are allowed in status s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}
