package entity

// CommissionRate is one row of the per-market fee table. A fallback row
// (category "*") answers lookups for categories the market does not list.
type CommissionRate struct {
	Market   string  `json:"market" db:"market"`
	Category string  `json:"category" db:"category"`
	Rate     float64 `json:"rate" db:"rate"`
	Fallback bool    `json:"fallback" db:"fallback"`
}
