package entity

import "time"

// Settings is the single tenant-wide configuration row consulted by every
// evaluation. It changes only through an explicit administrative update; one
// evaluation always sees a consistent snapshot.
type Settings struct {
	MinProfit        int64     `json:"min_profit" db:"min_profit"`
	SafetyBufferRate float64   `json:"safety_buffer_rate" db:"safety_buffer_rate"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
