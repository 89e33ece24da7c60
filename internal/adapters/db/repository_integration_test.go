//go:build integration
// +build integration

package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/procure-be/internal/adapters/db"
	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
	"github.com/ammerola/procure-be/test/helpers"
)

type RepositorySuite struct {
	suite.Suite
	testDB      *helpers.TestDB
	uow         *db.UnitOfWork
	orders      *db.PurchaseOrderRepository
	stock       *db.StockRepository
	imports     *db.ImportLogRepository
	attachments *db.AttachmentRepository
	ctx         context.Context
	now         time.Time
}

func (s *RepositorySuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	logger := helpers.TestLogger()
	s.uow = db.NewUnitOfWork(s.testDB.Database, logger)
	s.orders = db.NewPurchaseOrderRepository(s.testDB.Database, logger)
	s.stock = db.NewStockRepository(s.testDB.Database, logger)
	s.imports = db.NewImportLogRepository(s.testDB.Database, logger)
	s.attachments = db.NewAttachmentRepository(s.testDB.Database, logger)
	s.ctx = context.Background()
	s.now = time.Now().UTC()
}

func (s *RepositorySuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	helpers.SeedProducts(s.T(), s.testDB.PgxPool,
		helpers.CreateTestProduct(func(p *domain.Product) { p.SKU = "MUG-1" }),
		helpers.CreateTestProduct(func(p *domain.Product) { p.SKU = "MUG-2" }),
	)
}

// saveNew inserts the header and writes the whole aggregate in one transaction
func (s *RepositorySuite) saveNew(po *domain.PurchaseOrder) {
	err := s.uow.WithinTx(s.ctx, func(ctx context.Context, store ports.OrderStore) error {
		if err := store.InsertHeader(ctx, &po.Header); err != nil {
			return err
		}
		return store.Save(ctx, po, s.now)
	})
	s.Require().NoError(err)
}

func (s *RepositorySuite) TestSaveAndLoadRoundTrip() {
	po := helpers.CreateTestPurchaseOrder([]string{"MUG-1", "MUG-2"}, []int64{100, 50})
	volume := helpers.Dec("1.5")
	_, err := po.ApplyBatchReceipt(domain.BatchReceipt{
		BatchNo:      1,
		ReceivedDate: helpers.Date(2025, time.January, 12),
		TotalVolume:  &volume,
		Items:        []domain.ItemQuantity{{LineItemID: po.Items[0].ID, Qty: 60}},
	})
	s.Require().NoError(err)
	po.Recompute(helpers.Date(2025, time.January, 12))
	s.saveNew(po)

	loaded, err := s.orders.Load(s.ctx, po.Header.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), loaded.Header.Version)
	s.Equal(domain.StatusIncomplete, loaded.Header.Status)
	s.Require().Len(loaded.Items, 2)
	s.Equal("MUG-1", loaded.Items[0].SKU)
	s.True(po.Items[0].CostLocal.Equal(loaded.Items[0].CostLocal))
	s.Equal(int64(60), loaded.Items[0].ReceivedQty)
	s.True(volume.Equal(loaded.Items[0].ReceivedVolume))
	s.Require().Len(loaded.Batches, 1)
	s.Require().Len(loaded.Receipts, 1)
	s.NoError(loaded.CheckConsistency())

	id, err := s.orders.FindIDByNumber(s.ctx, po.Header.PONumber)
	s.NoError(err)
	s.Equal(po.Header.ID, id)

	headerID, err := s.orders.FindReceiptHeader(s.ctx, loaded.Receipts[0].ID)
	s.NoError(err)
	s.Equal(po.Header.ID, headerID)
}

func (s *RepositorySuite) TestSaveRejectsStaleVersion() {
	po := helpers.CreateTestPurchaseOrder([]string{"MUG-1"}, []int64{10})
	s.saveNew(po)

	stale, err := s.orders.Load(s.ctx, po.Header.ID)
	s.Require().NoError(err)

	err = s.uow.WithinTx(s.ctx, func(ctx context.Context, store ports.OrderStore) error {
		fresh, err := store.LoadForUpdate(ctx, po.Header.ID)
		if err != nil {
			return err
		}
		return store.Save(ctx, fresh, s.now)
	})
	s.Require().NoError(err)

	err = s.uow.WithinTx(s.ctx, func(ctx context.Context, store ports.OrderStore) error {
		return store.Save(ctx, stale, s.now)
	})
	var concurrent *domain.ConcurrentModificationError
	s.Require().True(errors.As(err, &concurrent))
	s.Equal(po.Header.ID, concurrent.HeaderID)
}

func (s *RepositorySuite) TestInsertHeaderRejectsDuplicateNumber() {
	first := helpers.CreateTestPurchaseOrder(nil, nil, func(h *domain.PurchaseOrderHeader) { h.PONumber = "PO-DUP" })
	s.saveNew(first)

	second := helpers.CreateTestHeader(func(h *domain.PurchaseOrderHeader) { h.PONumber = "PO-DUP" })
	err := s.uow.WithinTx(s.ctx, func(ctx context.Context, store ports.OrderStore) error {
		return store.InsertHeader(ctx, second)
	})
	s.True(domain.IsValidation(err))
	s.ErrorIs(err, domain.ErrDuplicatePONumber)
}

func (s *RepositorySuite) TestRemovedChildrenAreDeleted() {
	po := helpers.CreateTestPurchaseOrder([]string{"MUG-1", "MUG-2"}, []int64{10, 20})
	s.saveNew(po)

	err := s.uow.WithinTx(s.ctx, func(ctx context.Context, store ports.OrderStore) error {
		loaded, err := store.LoadForUpdate(ctx, po.Header.ID)
		if err != nil {
			return err
		}
		if err := loaded.RemoveItem(loaded.ItemBySKU("MUG-2").ID); err != nil {
			return err
		}
		loaded.Recompute(s.now)
		return store.Save(ctx, loaded, s.now)
	})
	s.Require().NoError(err)

	loaded, err := s.orders.Load(s.ctx, po.Header.ID)
	s.Require().NoError(err)
	s.Require().Len(loaded.Items, 1)
	s.Equal("MUG-1", loaded.Items[0].SKU)
}

func (s *RepositorySuite) TestLineItemHeaderAndUnknownSKUs() {
	po := helpers.CreateTestPurchaseOrder([]string{"MUG-1"}, []int64{10})
	s.saveNew(po)

	err := s.uow.WithinTx(s.ctx, func(ctx context.Context, store ports.OrderStore) error {
		headerID, err := store.LineItemHeader(ctx, po.Items[0].ID)
		s.NoError(err)
		s.Equal(po.Header.ID, headerID)

		_, err = store.LineItemHeader(ctx, uuid.New())
		s.ErrorIs(err, domain.ErrNotFound)

		unknown, err := store.UnknownSKUs(ctx, []string{"MUG-1", "GHOST", "GHOST"})
		s.NoError(err)
		s.Equal([]string{"GHOST"}, unknown)
		return nil
	})
	s.NoError(err)
}

func (s *RepositorySuite) TestListAndCountByStatus() {
	for i, status := range []domain.Status{domain.StatusPending, domain.StatusOverdue, domain.StatusOverdue} {
		po := helpers.CreateTestPurchaseOrder([]string{"MUG-1"}, []int64{int64(10 * (i + 1))},
			func(h *domain.PurchaseOrderHeader) {
				h.OrderDate = helpers.Date(2025, time.January, i+1)
			})
		po.Header.Status = status
		s.saveNew(po)
	}

	result, err := s.orders.List(s.ctx, ports.ListParams{
		Status: domain.StatusOverdue, SortBy: "order_date", SortOrder: "asc", Page: 1, PageSize: 10,
	})
	s.Require().NoError(err)
	s.Equal(int64(2), result.TotalCount)
	s.Require().Len(result.Items, 2)
	s.True(result.Items[0].OrderDate.Before(result.Items[1].OrderDate))
	s.Equal(int64(20), result.Items[0].TotalOrdered)

	counts, err := s.orders.CountByStatus(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), counts[domain.StatusPending])
	s.Equal(int64(2), counts[domain.StatusOverdue])

	open, err := s.orders.ListOpenHeaderIDs(s.ctx)
	s.NoError(err)
	s.Len(open, 3)
}

func (s *RepositorySuite) TestStockFigures() {
	asOf := helpers.Date(2025, time.February, 1)

	po := helpers.CreateTestPurchaseOrder([]string{"MUG-1"}, []int64{40})
	_, err := po.RecordReceipt(domain.AdhocReceipt{
		LineItemID: po.Items[0].ID, Qty: 30, ReceivedDate: helpers.Date(2025, time.January, 20),
	})
	s.Require().NoError(err)
	_, err = po.RecordReceipt(domain.AdhocReceipt{
		LineItemID: po.Items[0].ID, Qty: 10, ReceivedDate: helpers.Date(2025, time.February, 2),
	})
	s.Require().NoError(err)
	po.Recompute(asOf)
	s.saveNew(po)

	sales := []domain.Sale{
		helpers.CreateTestSale("SO-1", "MUG-1", 12),
		helpers.CreateTestSale("SO-2", "MUG-1", 4, func(sale *domain.Sale) {
			sale.SoldAt = asOf.Add(23 * time.Hour)
		}),
		helpers.CreateTestSale("SO-3", "MUG-1", 99, func(sale *domain.Sale) {
			sale.SoldAt = asOf.AddDate(0, 0, 1)
		}),
	}
	for i := range sales {
		s.Require().NoError(s.stock.UpsertSale(s.ctx, &sales[i]))
	}

	f, err := s.stock.GetFigures(s.ctx, "MUG-1", asOf)
	s.Require().NoError(err)
	s.Nil(f.Snapshot)
	s.Equal(int64(40), f.ReceivedQty, "future-dated receipts still count")
	s.Equal(int64(115), f.SoldQty, "future-dated sales still count")
	derived := domain.ResolveStock(*f, asOf)
	s.Equal(domain.SourceDerived, derived.Source)
	s.Equal(int64(10+40-115), derived.Quantity)

	snapshot := helpers.CreateTestSnapshot("MUG-1", asOf, 3)
	s.Require().NoError(s.stock.UpsertSnapshot(s.ctx, &snapshot))

	f, err = s.stock.GetFigures(s.ctx, "MUG-1", asOf)
	s.Require().NoError(err)
	s.Require().NotNil(f.Snapshot)
	level := domain.ResolveStock(*f, asOf)
	s.Equal(domain.SourceSnapshot, level.Source)
	s.Equal(domain.StockLow, level.Status)

	figures, total, err := s.stock.ListFigures(s.ctx, ports.StockReportParams{
		AsOf: asOf, Status: domain.StockLow, Page: 1, PageSize: 10,
	})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(figures, 1)
	s.Equal("MUG-1", figures[0].Product.SKU)

	counts, err := s.stock.CountByStatus(s.ctx, asOf)
	s.Require().NoError(err)
	s.Equal(int64(1), counts[domain.StockLow])
	s.Equal(int64(1), counts[domain.StockOK])

	_, err = s.stock.GetFigures(s.ctx, "GHOST", asOf)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositorySuite) TestProductsAndPruning() {
	p := helpers.CreateTestProduct(func(p *domain.Product) { p.SKU = "MUG-1"; p.Name = "Renamed" })
	s.Require().NoError(s.stock.UpsertProduct(s.ctx, p))
	s.Require().NoError(s.stock.SetMinLimit(s.ctx, "MUG-1", 25))

	found, err := s.stock.FindProduct(s.ctx, "MUG-1")
	s.Require().NoError(err)
	s.Equal("Renamed", found.Name)
	s.Equal(int64(25), found.MinLimit)

	s.ErrorIs(s.stock.SetMinLimit(s.ctx, "GHOST", 1), domain.ErrNotFound)

	known, err := s.stock.ExistingSKUs(s.ctx, []string{"MUG-1", "GHOST"})
	s.Require().NoError(err)
	s.True(known["MUG-1"])
	s.False(known["GHOST"])

	old := helpers.CreateTestSnapshot("MUG-1", helpers.Date(2024, time.January, 1), 5)
	recent := helpers.CreateTestSnapshot("MUG-1", helpers.Date(2025, time.January, 1), 5)
	s.Require().NoError(s.stock.UpsertSnapshot(s.ctx, &old))
	s.Require().NoError(s.stock.UpsertSnapshot(s.ctx, &recent))

	pruned, err := s.stock.PruneSnapshots(s.ctx, helpers.Date(2024, time.June, 1))
	s.NoError(err)
	s.Equal(int64(1), pruned)

	sale := helpers.CreateTestSale("SO-9", "MUG-1", 2)
	s.Require().NoError(s.stock.UpsertSale(s.ctx, &sale))
	s.NoError(s.stock.DeleteSale(s.ctx, "SO-9", "MUG-1"))
}

func (s *RepositorySuite) TestImportLogLifecycle() {
	l := helpers.CreateTestImportLog(domain.ImportKindSales)
	s.Require().NoError(s.imports.Create(s.ctx, l))

	started := s.now
	l.Status = domain.ImportProcessing
	l.StartedAt = &started
	l.SuccessCount = 3
	l.RecordFailure("row 4: unknown sku")
	l.Finish(s.now)
	s.Require().NoError(s.imports.Update(s.ctx, l))

	found, err := s.imports.FindByID(s.ctx, l.ID)
	s.Require().NoError(err)
	s.Equal(domain.ImportSuccess, found.Status)
	s.Equal(3, found.SuccessCount)
	s.Equal(1, found.FailedCount)
	s.Equal([]string{"row 4: unknown sku"}, found.Errors)
	s.NotNil(found.FinishedAt)

	_, err = s.imports.FindByID(s.ctx, uuid.New())
	s.ErrorIs(err, domain.ErrNotFound)

	pruned, err := s.imports.PruneBefore(s.ctx, s.now.Add(time.Hour))
	s.NoError(err)
	s.Equal(int64(1), pruned)
}

func (s *RepositorySuite) TestAttachments() {
	po := helpers.CreateTestPurchaseOrder(nil, nil)
	s.saveNew(po)

	a := &domain.Attachment{
		ID:          uuid.New(),
		HeaderID:    po.Header.ID,
		FileName:    "invoice.pdf",
		ContentType: "application/pdf",
		StorageKey:  "purchase-orders/" + po.Header.ID.String() + "/invoice.pdf",
		Size:        2048,
	}
	s.Require().NoError(s.attachments.Create(s.ctx, a))
	s.False(a.UploadedAt.IsZero())

	listed, err := s.attachments.ListByHeader(s.ctx, po.Header.ID)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal(a.StorageKey, listed[0].StorageKey)

	found, err := s.attachments.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(int64(2048), found.Size)

	s.NoError(s.attachments.Delete(s.ctx, a.ID))
	s.ErrorIs(s.attachments.Delete(s.ctx, a.ID), domain.ErrNotFound)
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositorySuite))
}
