package schedule

import "time"

// Baseline status labels. The taxonomy is open: organizations append their
// own labels through configuration, so statuses stay runtime-checked
// strings rather than a closed enum.
const (
	StatusOff       = "off"
	StatusUnplanned = "unplanned"
	StatusOnline    = "online"
	StatusRemote    = "remote"
	StatusMeeting   = "meeting"
	StatusBreak     = "break"
	StatusTraining  = "training"
)

var baselineStatuses = []string{
	StatusOff,
	StatusUnplanned,
	StatusOnline,
	StatusRemote,
	StatusMeeting,
	StatusBreak,
	StatusTraining,
}

// StatusSet is the configured allow-list of status labels.
type StatusSet map[string]bool

func NewStatusSet(extra []string) StatusSet {
	set := make(StatusSet, len(baselineStatuses)+len(extra))
	for _, s := range baselineStatuses {
		set[s] = true
	}
	for _, s := range extra {
		if s != "" {
			set[s] = true
		}
	}
	return set
}

func (s StatusSet) Allowed(status string) bool {
	return s[status]
}

// NormalizeNewStatus applies the same-day rewrite: an entry created for
// today with status "off" is persisted as "unplanned" (unplanned absence vs.
// planned time off). The rewrite fires only on create, never on update.
func NormalizeNewStatus(date time.Time, status string, today time.Time) string {
	if status != StatusOff {
		return status
	}
	ty, tm, td := today.Date()
	dy, dm, dd := date.Date()
	if ty == dy && tm == dm && td == dd {
		return StatusUnplanned
	}
	return status
}
