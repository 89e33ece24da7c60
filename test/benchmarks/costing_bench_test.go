package benchmarks

import (
	"fmt"
	"testing"
	"time"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/test/helpers"
)

func BenchmarkAllocate(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		w := weights(n)
		b.Run(fmt.Sprintf("items_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = domain.Allocate(benchTotal, w, domain.MoneyPlaces)
			}
		})
	}
}

func BenchmarkProrateCosts(b *testing.B) {
	w := weights(250)
	rate := helpers.Dec("4.7321")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.ProrateCosts(benchTotal, rate, w)
	}
}

func BenchmarkInterpolate(b *testing.B) {
	po := largeOrder(200)
	batch := &domain.ReceiptBatch{
		TotalVolume: helpers.Dec("37.25"),
		TotalWeight: helpers.Dec("812.5"),
	}
	quantities := fullBatch(po, 1).Items

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.Interpolate(batch, quantities)
	}
}

func BenchmarkApplyBatchReceipt(b *testing.B) {
	for _, n := range []int{10, 200} {
		b.Run(fmt.Sprintf("items_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				po := largeOrder(n)
				in := fullBatch(po, 1)
				b.StartTimer()

				if _, err := po.ApplyBatchReceipt(in); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRecompute(b *testing.B) {
	po := largeOrder(500)
	if _, err := po.ApplyBatchReceipt(fullBatch(po, 1)); err != nil {
		b.Fatal(err)
	}
	today := helpers.Date(2025, time.February, 1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		po.Recompute(today)
	}
}

func BenchmarkPurchaseOrderView(b *testing.B) {
	po := largeOrder(500)
	if _, err := po.ApplyBatchReceipt(fullBatch(po, 1)); err != nil {
		b.Fatal(err)
	}
	today := helpers.Date(2025, time.February, 1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.NewPurchaseOrderView(po, today)
	}
}

func BenchmarkResolveStock(b *testing.B) {
	asOf := helpers.Date(2025, time.March, 1)
	figures := []domain.StockFigures{
		{
			Product:  domain.Product{SKU: "SNAP", BaseQuantity: 10, MinLimit: 5},
			Snapshot: &domain.StockSnapshot{SKU: "SNAP", SnapshotDate: asOf, Quantity: 42},
		},
		{
			Product:     domain.Product{SKU: "DERIVED", BaseQuantity: 10, MinLimit: 5},
			Snapshot:    &domain.StockSnapshot{SKU: "DERIVED", SnapshotDate: asOf.AddDate(0, 0, -1), Quantity: 7},
			ReceivedQty: 120,
			SoldQty:     118,
		},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.ResolveStock(figures[i%len(figures)], asOf)
	}
}
