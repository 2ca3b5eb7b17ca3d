package workorder

import (
	"fmt"
	"strings"

	"workshop-backend/internal/model"
)

// Transitions maps each status to the statuses it may move to. Terminal
// statuses map to an empty list.
var Transitions = map[model.Status][]model.Status{
	model.StatusReceived:   {model.StatusDiagnosis, model.StatusCanceled},
	model.StatusDiagnosis:  {model.StatusInProgress, model.StatusCanceled},
	model.StatusInProgress: {model.StatusReady, model.StatusCanceled},
	model.StatusReady:      {model.StatusDelivered, model.StatusCanceled},
	model.StatusDelivered:  {},
	model.StatusCanceled:   {},
}

// technicianTargets are the only statuses a technician may set.
var technicianTargets = map[model.Status]bool{
	model.StatusDiagnosis:  true,
	model.StatusInProgress: true,
	model.StatusReady:      true,
}

// AllowedTargets returns the statuses reachable from s in one step.
func AllowedTargets(s model.Status) []model.Status {
	return Transitions[s]
}

// isValidTransition checks whether moving from -> to is in the table.
func isValidTransition(from, to model.Status) bool {
	for _, allowed := range Transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CheckTransition validates a status change for the given actor role.
func CheckTransition(from, to model.Status, role model.Role) error {
	if from == to {
		return InvalidTransition("invalid status transition: order is already %s; allowed transitions from %s: %s",
			from, from, formatStatuses(AllowedTargets(from)))
	}
	if from == model.StatusDelivered {
		return InvalidTransition("invalid status transition from %s to %s: a delivered order cannot change status; allowed transitions from %s: %s",
			from, to, from, formatStatuses(AllowedTargets(from)))
	}
	if !isValidTransition(from, to) {
		return InvalidTransition("invalid status transition from %s to %s; allowed transitions from %s: %s",
			from, to, from, formatStatuses(AllowedTargets(from)))
	}
	if role == model.RoleTechnician && !technicianTargets[to] {
		return Forbidden("role %s may not move an order to %s", role, to)
	}
	return nil
}

func formatStatuses(statuses []model.Status) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return fmt.Sprintf("[%s]", strings.Join(names, ", "))
}
