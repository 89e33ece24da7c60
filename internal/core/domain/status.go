// internal/core/domain/status.go
package domain

import "time"

// ArrivingSoonWindow is how many days ahead of the estimated date an order counts as arriving soon
const ArrivingSoonWindow = 7

// DeriveStatus computes the lifecycle status from aggregate quantities and dates.
// Completion is judged on the whole order, never per item, and the result may
// move backwards when receipts are removed.
func DeriveStatus(totalOrdered, totalReceived int64, estimatedDate *time.Time, today time.Time) Status {
	switch {
	case totalOrdered > 0 && totalReceived >= totalOrdered:
		return StatusComplete
	case totalReceived > 0:
		return StatusIncomplete
	case estimatedDate == nil:
		return StatusPending
	}

	days := DaysBetween(today, *estimatedDate)
	switch {
	case days < 0:
		return StatusOverdue
	case days <= ArrivingSoonWindow:
		return StatusArrivingSoon
	default:
		return StatusPending
	}
}
