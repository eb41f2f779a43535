package entity

import "profitdesk/internal/domain/value"

// Evaluation holds the derived fields of one profitability run. Items carry it
// only as a cache of the last evaluation; it is recomputed on every input or
// threshold change and is never edited independently.
type Evaluation struct {
	CommissionRate float64        `json:"commission_rate" db:"commission_rate"`
	CommissionFee  int64          `json:"commission_fee" db:"commission_fee"`
	VATFee         int64          `json:"vat_fee" db:"vat_fee"`
	TotalCost      int64          `json:"total_cost" db:"total_cost"`
	Profit         int64          `json:"profit" db:"profit"`
	MarginRate     float64        `json:"margin_rate" db:"margin_rate"`
	Decision       value.Decision `json:"decision" db:"decision"`
	Reason         string         `json:"reason" db:"reason"`
}
