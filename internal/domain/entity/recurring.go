package entity

import (
	"time"

	"github.com/google/uuid"
)

// Frequency is the regeneration cadence of a recurring order.
type Frequency string

const (
	// FrequencyDaily regenerates every day.
	FrequencyDaily Frequency = "daily"
	// FrequencyWeekly regenerates every week.
	FrequencyWeekly Frequency = "weekly"
	// FrequencyMonthly regenerates every month.
	FrequencyMonthly Frequency = "monthly"
)

// IsValid checks if the Frequency is a valid value.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// Next returns the run instant that follows from.
func (f Frequency) Next(from time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	default:
		return from
	}
}

// RecurringOrder is a template that periodically regenerates an order-like
// item set. Its item list is decoupled from live orders.
type RecurringOrder struct {
	ID                   uuid.UUID
	CustomerID           uuid.UUID
	IsActive             bool
	Frequency            Frequency
	StartDate            time.Time
	EndDate              *time.Time
	NextRunAt            *time.Time
	DeliveryWindowHours  int
	Items                []*RecurringOrderItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// RecurringOrderItem snapshots a product inside a recurring template.
type RecurringOrderItem struct {
	ID                uuid.UUID
	RecurringOrderID  uuid.UUID
	ProductID         uuid.UUID
	ProductNameES     string
	ProductNameZhHans string
	Quantity          int
}

// ScheduleNextRun advances NextRunAt from the given instant according to the
// template's frequency, clearing it when the end date has passed.
func (r *RecurringOrder) ScheduleNextRun(now time.Time) {
	next := r.Frequency.Next(now)
	if r.EndDate != nil && next.After(*r.EndDate) {
		r.NextRunAt = nil
		r.IsActive = false

		return
	}
	r.NextRunAt = &next
}
