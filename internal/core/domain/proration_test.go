package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/procure-be/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		weights []int64
		places  int32
		want    []string
	}{
		{
			name:    "proportional_split",
			total:   "1000",
			weights: []int64{10, 40},
			places:  2,
			want:    []string{"200", "800"},
		},
		{
			name:    "tied_remainder_goes_to_earliest_item",
			total:   "100",
			weights: []int64{1, 1, 1},
			places:  2,
			want:    []string{"33.34", "33.33", "33.33"},
		},
		{
			name:    "largest_remainder_takes_leftover_unit",
			total:   "10",
			weights: []int64{1, 2},
			places:  2,
			want:    []string{"3.33", "6.67"},
		},
		{
			name:    "many_small_shares_never_negative",
			total:   "0.15",
			weights: []int64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
			places:  2,
			want:    []string{"0.02", "0.02", "0.02", "0.02", "0.02", "0.01", "0.01", "0.01", "0.01", "0.01"},
		},
		{
			name:    "zero_weight_sum_gives_zeros",
			total:   "500",
			weights: []int64{0, 0},
			places:  2,
			want:    []string{"0", "0"},
		},
		{
			name:    "zero_total_gives_zeros",
			total:   "0",
			weights: []int64{3, 7},
			places:  2,
			want:    []string{"0", "0"},
		},
		{
			name:    "zero_weight_item_gets_nothing",
			total:   "10",
			weights: []int64{0, 3, 1},
			places:  2,
			want:    []string{"0", "7.5", "2.5"},
		},
		{
			name:    "empty_weights",
			total:   "10",
			weights: nil,
			places:  2,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Allocate(dec(tt.total), tt.weights, tt.places)
			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				assert.True(t, dec(w).Equal(got[i]), "share %d: want %s got %s", i, w, got[i])
			}
		})
	}
}

func TestAllocate_SumsToTotalExactly(t *testing.T) {
	weights := []int64{7, 13, 1, 29, 3, 11}
	total := dec("987.65")

	shares := domain.Allocate(total, weights, domain.MoneyPlaces)

	assert.True(t, total.Equal(sum(shares)), "sum %s != %s", sum(shares), total)
	for i, s := range shares {
		assert.False(t, s.IsNegative(), "share %d negative", i)
	}
}

func TestProrate_Scenario(t *testing.T) {
	po := domain.NewPurchaseOrder(domain.PurchaseOrderHeader{
		PONumber:         "PO-1",
		TotalCostForeign: dec("1000"),
		ExchangeRate:     dec("5"),
	})
	a, err := po.UpsertItem(nil, "SKU-A", 10)
	require.NoError(t, err)
	b, err := po.UpsertItem(nil, "SKU-B", 40)
	require.NoError(t, err)

	domain.Prorate(po)

	assert.True(t, dec("200.00").Equal(a.CostForeign))
	assert.True(t, dec("800.00").Equal(b.CostForeign))
	assert.True(t, dec("1000.00").Equal(a.CostLocal))
	assert.True(t, dec("4000.00").Equal(b.CostLocal))
}

func TestProrate_Idempotent(t *testing.T) {
	po := domain.NewPurchaseOrder(domain.PurchaseOrderHeader{
		PONumber:         "PO-2",
		TotalCostForeign: dec("1234.57"),
		ExchangeRate:     dec("4.8731"),
	})
	for _, q := range []struct {
		sku string
		qty int64
	}{{"A", 3}, {"B", 17}, {"C", 9}} {
		_, err := po.UpsertItem(nil, q.sku, q.qty)
		require.NoError(t, err)
	}

	domain.Prorate(po)
	first := make([]decimal.Decimal, len(po.Items))
	for i, item := range po.Items {
		first[i] = item.CostForeign
	}

	domain.Prorate(po)
	for i, item := range po.Items {
		assert.True(t, first[i].Equal(item.CostForeign))
	}

	costs := make([]decimal.Decimal, len(po.Items))
	for i, item := range po.Items {
		costs[i] = item.CostForeign
	}
	assert.True(t, dec("1234.57").Equal(sum(costs)))
}

func TestProrate_ProportionalToQuantity(t *testing.T) {
	po := domain.NewPurchaseOrder(domain.PurchaseOrderHeader{
		PONumber:         "PO-3",
		TotalCostForeign: dec("999.99"),
		ExchangeRate:     dec("1"),
	})
	quantities := []int64{5, 12, 33, 50}
	for i, q := range quantities {
		_, err := po.UpsertItem(nil, string(rune('A'+i)), q)
		require.NoError(t, err)
	}

	domain.Prorate(po)

	epsilon := dec("0.01").Mul(decimal.NewFromInt(int64(len(quantities))))
	for i, item := range po.Items {
		want := dec("999.99").Mul(decimal.NewFromInt(quantities[i])).Div(decimal.NewFromInt(100))
		assert.True(t, item.CostForeign.Sub(want).Abs().LessThanOrEqual(epsilon),
			"item %s: want ~%s got %s", item.SKU, want, item.CostForeign)
	}
}

func TestProrate_ResetsWhenNothingOrdered(t *testing.T) {
	po := domain.NewPurchaseOrder(domain.PurchaseOrderHeader{
		PONumber:         "PO-4",
		TotalCostForeign: dec("500"),
		ExchangeRate:     dec("2"),
	})
	item, err := po.UpsertItem(nil, "A", 0)
	require.NoError(t, err)
	item.CostForeign = dec("123")
	item.CostLocal = dec("246")

	domain.Prorate(po)

	assert.True(t, item.CostForeign.IsZero())
	assert.True(t, item.CostLocal.IsZero())
}
