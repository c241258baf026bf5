// Package commerce computes the back-office KPI overview from raw order,
// line-item and customer snapshots. All computation is pure and
// side-effect-free; callers fetch the window and hand it in.
package commerce

import (
	"sort"
	"time"

	"tablero/domain/commerce"
	"tablero/domain/core"
)

// WindowMonths is the trailing window the overview covers, current month
// included.
const WindowMonths = 6

// FallbackSegment labels customers without a segment key and orders whose
// customer cannot be resolved.
const FallbackSegment = "Sin segmento"

// defaultCurrency applies when no order in the window carries a code.
const defaultCurrency = "USD"

// topProductsCap bounds the product ranking.
const topProductsCap = 5

// Input is one aggregation call's snapshot: collections for a single
// (owner, organization) pair restricted to the trailing window ending Now.
type Input struct {
	Now       time.Time
	Orders    []commerce.Order
	Items     []commerce.OrderLineItem
	Customers []commerce.Customer
}

// BuildOverview computes the full KPI snapshot for the input window.
func BuildOverview(in Input) commerce.Overview {
	currentKey := commerce.PeriodKeyOf(in.Now)
	previousKey := commerce.PeriodKeyOf(commerce.MonthsBack(1, in.Now))

	ov := commerce.Overview{
		CurrencyCode: currencyOf(in.Orders),
		HasOrders:    len(in.Orders) > 0,
		GeneratedAt:  in.Now,
	}
	ov.Totals = buildTotals(in, currentKey, previousKey)
	ov.MonthlySeries = buildMonthlySeries(in)
	ov.Segments = buildSegments(in)
	ov.TopProducts = buildTopProducts(in, currentKey, previousKey)
	return ov
}

func currencyOf(orders []commerce.Order) string {
	for _, o := range orders {
		if o.CurrencyCode != "" {
			return o.CurrencyCode
		}
	}
	return defaultCurrency
}

func buildTotals(in Input, currentKey, previousKey commerce.PeriodKey) commerce.Totals {
	var t commerce.Totals
	active := make(map[core.CustomerID]bool)
	currentCustomers := make(map[core.CustomerID]bool)
	previousCustomers := make(map[core.CustomerID]bool)

	for _, o := range in.Orders {
		if o.CustomerID != "" {
			active[o.CustomerID] = true
		}
		switch o.PeriodKey() {
		case currentKey:
			t.RevenueCurrent += o.TotalAmount
			t.OrdersCurrent++
			if o.CustomerID != "" {
				currentCustomers[o.CustomerID] = true
			}
		case previousKey:
			t.RevenuePrevious += o.TotalAmount
			t.OrdersPrevious++
			if o.CustomerID != "" {
				previousCustomers[o.CustomerID] = true
			}
		}
	}

	t.AvgTicketCurrent = avgTicket(t.RevenueCurrent, t.OrdersCurrent)
	t.AvgTicketPrevious = avgTicket(t.RevenuePrevious, t.OrdersPrevious)
	t.RevenueChangePct = commerce.ChangePct(t.RevenuePrevious, t.RevenueCurrent)
	t.OrdersChangePct = commerce.ChangePct(float64(t.OrdersPrevious), float64(t.OrdersCurrent))
	t.AvgTicketChangePct = commerce.ChangePct(t.AvgTicketPrevious, t.AvgTicketCurrent)

	t.ActiveCustomers = len(active)
	for id := range currentCustomers {
		if previousCustomers[id] {
			t.ReturningCustomers++
		}
	}
	return t
}

func avgTicket(revenue float64, orders int) float64 {
	if orders == 0 {
		return 0
	}
	return revenue / float64(orders)
}

// buildMonthlySeries recomputes each month from the full collections rather
// than incrementally, one point per calendar month of the window.
func buildMonthlySeries(in Input) []commerce.MonthlyPoint {
	from := commerce.MonthsBack(WindowMonths-1, in.Now)
	periods := commerce.EnumeratePeriods(from, in.Now)

	series := make([]commerce.MonthlyPoint, 0, len(periods))
	for _, period := range periods {
		point := commerce.MonthlyPoint{
			Period: period,
			Label:  period.MonthLabel(),
		}
		for _, o := range in.Orders {
			if o.PeriodKey() == period {
				point.Revenue += o.TotalAmount
				point.OrderCount++
			}
		}
		for _, c := range in.Customers {
			if commerce.PeriodKeyOf(c.CreatedAt) == period {
				point.NewCustomers++
			}
		}
		series = append(series, point)
	}
	return series
}

// buildSegments attributes each order's revenue to its customer's segment.
// Orders with no resolvable customer land in the fallback segment. Empty if
// there are no orders or no customers.
func buildSegments(in Input) []commerce.SegmentPerformance {
	if len(in.Orders) == 0 || len(in.Customers) == 0 {
		return nil
	}

	segmentOf := make(map[core.CustomerID]string, len(in.Customers))
	customerCount := make(map[string]int)
	var order []string
	seen := make(map[string]bool)
	track := func(segment string) {
		if !seen[segment] {
			seen[segment] = true
			order = append(order, segment)
		}
	}

	for _, c := range in.Customers {
		segment := c.SegmentKey
		if segment == "" {
			segment = FallbackSegment
		}
		segmentOf[c.ID] = segment
		customerCount[segment]++
		track(segment)
	}

	revenue := make(map[string]float64)
	orderCount := make(map[string]int)
	var total float64
	for _, o := range in.Orders {
		segment, ok := segmentOf[o.CustomerID]
		if !ok || o.CustomerID == "" {
			segment = FallbackSegment
			track(segment)
		}
		revenue[segment] += o.TotalAmount
		orderCount[segment]++
		total += o.TotalAmount
	}

	segments := make([]commerce.SegmentPerformance, 0, len(order))
	for _, segment := range order {
		perf := commerce.SegmentPerformance{
			Segment:       segment,
			CustomerCount: customerCount[segment],
			Revenue:       revenue[segment],
			AvgTicket:     avgTicket(revenue[segment], orderCount[segment]),
		}
		if total > 0 {
			perf.RevenueShare = perf.Revenue / total
		}
		segments = append(segments, perf)
	}
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Revenue > segments[j].Revenue })
	return segments
}

type productAccumulator struct {
	key         string
	sku         string
	productName string
	quantity    float64
	current     float64
	previous    float64
}

// buildTopProducts groups line items by SKU, falling back to product name
// and then to the parent order id, and ranks current-month revenue. Entries
// with no revenue signal in either month are dropped.
func buildTopProducts(in Input, currentKey, previousKey commerce.PeriodKey) []commerce.ProductRanking {
	periodByOrder := make(map[core.OrderID]commerce.PeriodKey, len(in.Orders))
	for _, o := range in.Orders {
		periodByOrder[o.ID] = o.PeriodKey()
	}

	acc := make(map[string]*productAccumulator)
	var order []string
	for _, li := range in.Items {
		key := li.SKU
		if key == "" {
			key = li.ProductName
		}
		if key == "" {
			key = li.OrderID.String()
		}
		a, ok := acc[key]
		if !ok {
			a = &productAccumulator{key: key, sku: li.SKU, productName: li.ProductName}
			acc[key] = a
			order = append(order, key)
		}
		switch periodByOrder[li.OrderID] {
		case currentKey:
			a.current += li.Revenue()
			a.quantity += li.Quantity
		case previousKey:
			a.previous += li.Revenue()
		}
	}

	var kept []*productAccumulator
	var currentTotal float64
	for _, key := range order {
		a := acc[key]
		if a.current > 0 {
			kept = append(kept, a)
			currentTotal += a.current
		}
	}

	rankings := make([]commerce.ProductRanking, 0, len(kept))
	for _, a := range kept {
		r := commerce.ProductRanking{
			Key:             a.key,
			SKU:             a.sku,
			ProductName:     a.productName,
			Quantity:        a.quantity,
			Revenue:         a.current,
			PreviousRevenue: a.previous,
			GrowthPct:       growthPct(a.previous, a.current),
		}
		if currentTotal > 0 {
			r.RevenueShare = a.current / currentTotal
		}
		rankings = append(rankings, r)
	}
	sort.SliceStable(rankings, func(i, j int) bool { return rankings[i].Revenue > rankings[j].Revenue })
	if len(rankings) > topProductsCap {
		rankings = rankings[:topProductsCap]
	}
	return rankings
}

// growthPct returns nil when neither month produced revenue: no signal.
func growthPct(previous, current float64) *float64 {
	var pct float64
	switch {
	case previous > 0:
		pct = commerce.ChangePct(previous, current)
	case current > 0:
		pct = 100
	default:
		return nil
	}
	return &pct
}
