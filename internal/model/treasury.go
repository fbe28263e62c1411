package model

import "time"

type GetTreasuryBalanceRequest struct {
	DaoID string `json:"dao_id"`
}

type GetTreasuryBalanceResponse struct {
	Balance     float64   `json:"balance"`
	Currency    string    `json:"currency"`
	VaultCount  int64     `json:"vault_count"`
	LastUpdated time.Time `json:"last_updated"`

	// Degraded marks a fallback reading produced after a storage failure.
	// Callers must render it as "metric unavailable", not as a real zero.
	Degraded bool `json:"degraded,omitempty"`
}

type GetTreasuryTransactionsRequest struct {
	DaoID string `json:"dao_id"`
	Limit int    `json:"limit"`
}

type Transaction struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type GetTreasuryTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Total        int64         `json:"total"`
	Degraded     bool          `json:"degraded,omitempty"`
}

type GetTreasuryMetricsRequest struct {
	DaoID string `json:"dao_id"`
}

type GetTreasuryMetricsResponse struct {
	CurrentBalance float64 `json:"current_balance"`
	TotalInflow    float64 `json:"total_inflow"`
	TotalOutflow   float64 `json:"total_outflow"`
	NetChange      float64 `json:"net_change"`

	// BurnRate is outflow per month over the rolling window.
	BurnRate float64 `json:"burn_rate"`

	// Runway is months until exhaustion at the current burn rate. When the
	// windowed outflow is zero it equals the configured unbounded sentinel.
	Runway float64 `json:"runway"`

	Degraded bool `json:"degraded,omitempty"`
}
