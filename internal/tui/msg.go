package tui

import "time"

// tickMsg refreshes the load status and log.
type tickMsg time.Time

// resultMsg carries the outcome of a manual API call.
type resultMsg struct {
	op     string
	data   interface{}
	userID string
	err    error
}
