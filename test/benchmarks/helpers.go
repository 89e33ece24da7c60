// test/benchmarks/helpers.go
package benchmarks

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/test/helpers"
)

// largeOrder builds a purchase order with n line items of varying quantity
func largeOrder(n int) *domain.PurchaseOrder {
	skus := make([]string, n)
	qtys := make([]int64, n)
	for i := range qtys {
		skus[i] = fmt.Sprintf("BENCH-%04d", i)
		qtys[i] = int64(10 + i%37)
	}
	return helpers.CreateTestPurchaseOrder(skus, qtys, func(h *domain.PurchaseOrderHeader) {
		h.TotalCostForeign = helpers.Dec("98765.43")
		h.ExchangeRate = helpers.Dec("4.7321")
	})
}

// fullBatch receives every ordered unit of po in one batch
func fullBatch(po *domain.PurchaseOrder, batchNo int) domain.BatchReceipt {
	volume := helpers.Dec("37.25")
	weight := helpers.Dec("812.5")
	items := make([]domain.ItemQuantity, len(po.Items))
	for i, item := range po.Items {
		items[i] = domain.ItemQuantity{LineItemID: item.ID, Qty: item.QtyOrdered}
	}
	return domain.BatchReceipt{
		BatchNo:      batchNo,
		ReceivedDate: po.Header.OrderDate.AddDate(0, 0, 14),
		TotalVolume:  &volume,
		TotalWeight:  &weight,
		Items:        items,
	}
}

// weights returns n uneven proration weights
func weights(n int) []int64 {
	w := make([]int64, n)
	for i := range w {
		w[i] = int64(1 + (i*7)%23)
	}
	return w
}

var benchTotal = decimal.RequireFromString("123456.789")
