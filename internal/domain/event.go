package domain

// ScheduleChangedEvent tells consumers that entries changed for one date.
// The payload is only a trigger to re-query, never authoritative data.
type ScheduleChangedEvent struct {
	Date string `json:"date"`
}

const ScheduleChangesExchange = "schedule.changes"
