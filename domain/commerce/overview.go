package commerce

import "time"

// Totals compares the current and previous calendar month.
type Totals struct {
	RevenueCurrent     float64 `json:"revenue_current"`
	RevenuePrevious    float64 `json:"revenue_previous"`
	RevenueChangePct   float64 `json:"revenue_change_pct"`
	OrdersCurrent      int     `json:"orders_current"`
	OrdersPrevious     int     `json:"orders_previous"`
	OrdersChangePct    float64 `json:"orders_change_pct"`
	AvgTicketCurrent   float64 `json:"avg_ticket_current"`
	AvgTicketPrevious  float64 `json:"avg_ticket_previous"`
	AvgTicketChangePct float64 `json:"avg_ticket_change_pct"`
	ActiveCustomers    int     `json:"active_customers"`
	ReturningCustomers int     `json:"returning_customers"`
}

// MonthlyPoint is one entry of the trailing-window series.
type MonthlyPoint struct {
	Period       PeriodKey `json:"period"`
	Label        string    `json:"label"`
	Revenue      float64   `json:"revenue"`
	OrderCount   int       `json:"order_count"`
	NewCustomers int       `json:"new_customers"`
}

// SegmentPerformance aggregates revenue attribution per customer segment.
type SegmentPerformance struct {
	Segment       string  `json:"segment"`
	CustomerCount int     `json:"customer_count"`
	Revenue       float64 `json:"revenue"`
	AvgTicket     float64 `json:"avg_ticket"`
	RevenueShare  float64 `json:"revenue_share"`
}

// ProductRanking is one entry of the top-product list. GrowthPct is nil when
// there is no signal (zero revenue in both months is excluded entirely).
type ProductRanking struct {
	Key             string   `json:"key"`
	SKU             string   `json:"sku,omitempty"`
	ProductName     string   `json:"product_name,omitempty"`
	Quantity        float64  `json:"quantity"`
	Revenue         float64  `json:"revenue"`
	PreviousRevenue float64  `json:"previous_revenue"`
	GrowthPct       *float64 `json:"growth_pct,omitempty"`
	RevenueShare    float64  `json:"revenue_share"`
}

// Overview is the read-only KPI snapshot for one (owner, organization) pair
// over the trailing six-month window. HasOrders distinguishes "no data"
// from "all zero".
type Overview struct {
	Totals        Totals               `json:"totals"`
	MonthlySeries []MonthlyPoint       `json:"monthly_series"`
	Segments      []SegmentPerformance `json:"segments"`
	TopProducts   []ProductRanking     `json:"top_products"`
	CurrencyCode  string               `json:"currency_code"`
	HasOrders     bool                 `json:"has_orders"`
	GeneratedAt   time.Time            `json:"generated_at"`
}
