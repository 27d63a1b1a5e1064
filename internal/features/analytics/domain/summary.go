package domain

import "time"

// Summary aggregates delivery outcomes for one RDC over a date range.
type Summary struct {
	RdcID     string    `json:"rdcId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	Total     int `json:"totalDeliveries"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
	InTransit int `json:"inTransit"`
	Pending   int `json:"pending"`

	// SuccessRate is delivered / (delivered + failed). Zero when no
	// delivery has reached a terminal state yet.
	SuccessRate float64 `json:"successRate"`

	// AvgDurationSeconds averages DeliveredAt - CreatedAt over delivered
	// records. Zero when nothing was delivered.
	AvgDurationSeconds float64 `json:"avgDurationSeconds"`

	// ByDriver breaks the same counters down per driver, sorted by id.
	ByDriver []DriverStats `json:"byDriver"`
}

// DriverStats is the per-driver slice of a Summary.
type DriverStats struct {
	DriverID    string  `json:"driverId"`
	Total       int     `json:"totalDeliveries"`
	Delivered   int     `json:"delivered"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"successRate"`
}
