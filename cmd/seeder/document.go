// cmd/seeder/document.go
package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// Document is the seed file layout
type Document struct {
	Products       []domain.Product       `json:"products"`
	PurchaseOrders []SeedOrder            `json:"purchase_orders"`
	Snapshots      []domain.StockSnapshot `json:"snapshots"`
	Sales          []domain.Sale          `json:"sales"`
}

// SeedOrder is a purchase order with its lines and receiving history
type SeedOrder struct {
	Header  ports.HeaderInput `json:"header"`
	Items   []SeedItem        `json:"items"`
	Batches []SeedBatch       `json:"batches"`
}

// SeedItem is one ordered SKU
type SeedItem struct {
	SKU string `json:"sku"`
	Qty int64  `json:"qty"`
}

// SeedBatch is one receiving batch keyed by SKU
type SeedBatch struct {
	BatchNo      int              `json:"batch_no"`
	BillDate     *time.Time       `json:"bill_date"`
	ReceivedDate time.Time        `json:"received_date"`
	TotalVolume  *decimal.Decimal `json:"total_volume"`
	TotalWeight  *decimal.Decimal `json:"total_weight"`
	Received     map[string]int64 `json:"received"`
}

// Validate checks that every referenced SKU has a product and every batch
// receives only SKUs on its order
func (d *Document) Validate() error {
	known := make(map[string]bool, len(d.Products))
	for i := range d.Products {
		if err := d.Products[i].Validate(); err != nil {
			return fmt.Errorf("product %d: %w", i, err)
		}
		known[d.Products[i].SKU] = true
	}

	for _, po := range d.PurchaseOrders {
		if po.Header.PONumber == "" {
			return fmt.Errorf("purchase order without po_number")
		}
		ordered := make(map[string]bool, len(po.Items))
		for _, item := range po.Items {
			if !known[item.SKU] {
				return fmt.Errorf("%s orders unknown sku %s", po.Header.PONumber, item.SKU)
			}
			ordered[item.SKU] = true
		}
		for _, b := range po.Batches {
			for sku := range b.Received {
				if !ordered[sku] {
					return fmt.Errorf("%s batch %d receives %s which is not ordered", po.Header.PONumber, b.BatchNo, sku)
				}
			}
		}
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// demoDocument is a small dataset relative to the current date, so the seeded
// orders land in every status
func demoDocument() *Document {
	now := time.Now().UTC()
	today := date(now.Year(), now.Month(), now.Day())
	daysAgo := func(n int) time.Time { return today.AddDate(0, 0, -n) }
	ptr := func(t time.Time) *time.Time { return &t }

	return &Document{
		Products: []domain.Product{
			{SKU: "MUG-WHT-350", Name: "Ceramic mug white 350ml", BaseQuantity: 40, MinLimit: 20},
			{SKU: "MUG-BLK-350", Name: "Ceramic mug black 350ml", BaseQuantity: 25, MinLimit: 20},
			{SKU: "PLT-STN-27", Name: "Stoneware plate 27cm", BaseQuantity: 0, MinLimit: 10},
			{SKU: "BWL-STN-15", Name: "Stoneware bowl 15cm", BaseQuantity: 12, MinLimit: 10},
		},
		PurchaseOrders: []SeedOrder{
			{
				Header: ports.HeaderInput{
					PONumber:              "PO-DEMO-001",
					SupplierName:          "Jingdezhen Ceramics Ltd",
					OrderType:             domain.OrderTypeImported,
					ShippingType:          domain.ShippingTypeCar,
					OrderDate:             daysAgo(40),
					EstimatedDate:         ptr(daysAgo(10)),
					ExchangeRate:          decimal.RequireFromString("5.12"),
					TotalCostForeign:      decimal.RequireFromString("3600"),
					ShippingRatePerVolume: decimal.RequireFromString("4200"),
				},
				Items: []SeedItem{{SKU: "MUG-WHT-350", Qty: 200}, {SKU: "MUG-BLK-350", Qty: 100}},
				Batches: []SeedBatch{
					{
						BatchNo: 1, ReceivedDate: daysAgo(12), BillDate: ptr(daysAgo(14)),
						TotalVolume: decPtr("1.8"), TotalWeight: decPtr("310"),
						Received: map[string]int64{"MUG-WHT-350": 200, "MUG-BLK-350": 60},
					},
				},
			},
			{
				Header: ports.HeaderInput{
					PONumber:              "PO-DEMO-002",
					SupplierName:          "Yiwu Tableware Co",
					OrderType:             domain.OrderTypeImported,
					ShippingType:          domain.ShippingTypeShip,
					OrderDate:             daysAgo(5),
					EstimatedDate:         ptr(today.AddDate(0, 0, 3)),
					ExchangeRate:          decimal.RequireFromString("5.10"),
					TotalCostForeign:      decimal.RequireFromString("1800"),
					ShippingRatePerVolume: decimal.RequireFromString("2500"),
				},
				Items: []SeedItem{{SKU: "PLT-STN-27", Qty: 120}, {SKU: "BWL-STN-15", Qty: 80}},
			},
			{
				Header: ports.HeaderInput{
					PONumber:           "PO-DEMO-003",
					SupplierName:       "Local Pottery Studio",
					OrderType:          domain.OrderTypeDomestic,
					OrderDate:          daysAgo(60),
					ExchangeRate:       decimal.NewFromInt(1),
					TotalCostForeign:   decimal.RequireFromString("2400"),
					TransportationCost: decimal.RequireFromString("150"),
				},
				Items: []SeedItem{{SKU: "BWL-STN-15", Qty: 60}},
				Batches: []SeedBatch{
					{BatchNo: 1, ReceivedDate: daysAgo(50), Received: map[string]int64{"BWL-STN-15": 60}},
				},
			},
		},
		Snapshots: []domain.StockSnapshot{
			{SKU: "MUG-WHT-350", SnapshotDate: today, Quantity: 185},
		},
		Sales: []domain.Sale{
			{OrderID: "SHP-10001", SKU: "MUG-BLK-350", Qty: 4, Platform: "shopee", SoldAt: daysAgo(3)},
			{OrderID: "SHP-10002", SKU: "BWL-STN-15", Qty: 70, Platform: "shopee", SoldAt: daysAgo(2)},
			{OrderID: "LZD-20001", SKU: "MUG-BLK-350", Qty: 2, Platform: "lazada", SoldAt: daysAgo(1)},
		},
	}
}
