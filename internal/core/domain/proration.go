// internal/core/domain/proration.go
package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Allocate splits total across weights proportionally using the largest
// remainder method. Each share is floored to places, then the units still
// unallocated go one each to the shares with the largest fractional remainder,
// earliest position first on ties. Shares sum to total rounded to places and
// are never negative for a non-negative total. A zero weight sum or a zero
// total yields all-zero shares.
func Allocate(total decimal.Decimal, weights []int64, places int32) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(weights))
	for i := range shares {
		shares[i] = decimal.Zero
	}

	var sum int64
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum == 0 || total.IsZero() {
		return shares
	}

	rounded := total.Round(places)
	if rounded.IsNegative() {
		for i, s := range Allocate(rounded.Neg(), weights, places) {
			shares[i] = s.Neg()
		}
		return shares
	}

	denominator := decimal.NewFromInt(sum)
	remainders := make([]decimal.Decimal, len(weights))
	candidates := make([]int, 0, len(weights))
	allocated := decimal.Zero
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		exact := rounded.Mul(decimal.NewFromInt(w)).Div(denominator)
		shares[i] = exact.RoundFloor(places)
		remainders[i] = exact.Sub(shares[i])
		allocated = allocated.Add(shares[i])
		candidates = append(candidates, i)
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return remainders[candidates[a]].GreaterThan(remainders[candidates[b]])
	})

	unit := decimal.New(1, -places)
	left := rounded.Sub(allocated).Div(unit).IntPart()
	for n := 0; int64(n) < left && n < len(candidates); n++ {
		i := candidates[n]
		shares[i] = shares[i].Add(unit)
	}

	return shares
}

// CostAllocation is the prorated cost of one line item
type CostAllocation struct {
	CostForeign decimal.Decimal
	CostLocal   decimal.Decimal
}

// ProrateCosts allocates totalForeign across ordered quantities and converts each
// share to local currency at exchangeRate.
func ProrateCosts(totalForeign, exchangeRate decimal.Decimal, quantities []int64) []CostAllocation {
	foreign := Allocate(totalForeign, quantities, MoneyPlaces)
	out := make([]CostAllocation, len(foreign))
	for i, f := range foreign {
		out[i] = CostAllocation{
			CostForeign: f,
			CostLocal:   f.Mul(exchangeRate).Round(MoneyPlaces),
		}
	}
	return out
}

// Prorate recomputes cost_foreign and cost_local on every line item of po from
// the header totals. It always runs over the full item set.
func Prorate(po *PurchaseOrder) {
	po.sortItems()

	quantities := make([]int64, len(po.Items))
	for i, item := range po.Items {
		quantities[i] = item.QtyOrdered
	}

	allocations := ProrateCosts(po.Header.TotalCostForeign, po.Header.ExchangeRate, quantities)
	for i, item := range po.Items {
		item.CostForeign = allocations[i].CostForeign
		item.CostLocal = allocations[i].CostLocal
	}
}
