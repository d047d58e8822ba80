package ui

import (
	"time"
)

// Messages for the session loop

// pollMsg fires on the fixed refresh interval; each one triggers at
// most one external-change check.
type pollMsg time.Time

// ErrorMsg carries a failure from an asynchronous command (currently
// notification delivery) back to the footer.
type ErrorMsg struct {
	Err error
}
