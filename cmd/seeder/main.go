// cmd/seeder/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ammerola/procure-be/internal/adapters/db"
	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
	"github.com/ammerola/procure-be/internal/core/services"
	"github.com/ammerola/procure-be/internal/pkg/config"
	"github.com/ammerola/procure-be/internal/pkg/logger"
)

func main() {
	var (
		seedFile = flag.String("file", "", "JSON seed document (built-in demo data when empty)")
		logLevel = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun   = flag.Bool("dry-run", false, "Validate the seed document without touching the database")
		migrate  = flag.Bool("migrate", true, "Apply migrations before seeding")
		status   = flag.Bool("migration-status", false, "Print the applied migrations and exit")
		rollback = flag.Int("rollback", 0, "Roll back this many migrations and exit")
	)
	flag.Parse()

	log := logger.SetupLogger(*logLevel, "text").Logger

	doc, err := loadDocument(*seedFile)
	if err != nil {
		log.Error("failed to load seed document", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("seed document loaded",
		slog.Int("products", len(doc.Products)),
		slog.Int("purchase_orders", len(doc.PurchaseOrders)),
		slog.Int("snapshots", len(doc.Snapshots)),
		slog.Int("sales", len(doc.Sales)))

	if *dryRun {
		if err := doc.Validate(); err != nil {
			log.Error("seed document invalid", slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("dry run complete")
		return
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	migrations := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}
	if *status || *rollback > 0 {
		if err := db.WithMigrator(ctx, migrations, log, func(mg *db.Migrator) error {
			if *rollback > 0 {
				return mg.Rollback(ctx, *rollback)
			}
			st, err := mg.Status(ctx)
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(st)
		}); err != nil {
			log.Error("migration command failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}
	if *migrate {
		if err := db.RunMigrationsWithRetry(ctx, migrations, log, 3); err != nil {
			log.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     4,
		MinConnections:     1,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
	}, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	// No cache: the API's entries expire on their own TTL
	clock := services.SystemClock
	stock := services.NewStockService(db.NewStockRepository(database, log), nil, 0, clock, log)
	orders := services.NewPurchaseOrderService(
		services.NewOrderMutationOrchestrator(db.NewUnitOfWork(database, log), clock, cfg.Order.MaxCommitRetries, log),
		db.NewPurchaseOrderRepository(database, log), nil, clock, log)

	s := &seeder{stock: stock, orders: orders, logger: log}
	if err := s.run(ctx, doc); err != nil {
		log.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("seeding complete")
}

func loadDocument(path string) (*Document, error) {
	if path == "" {
		return demoDocument(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc, nil
}

// seeder pushes a Document through the application services so every
// derived figure is computed exactly as the API would
type seeder struct {
	stock  ports.StockService
	orders ports.PurchaseOrderService
	logger *slog.Logger
}

func (s *seeder) run(ctx context.Context, doc *Document) error {
	for i := range doc.Products {
		if err := s.stock.UpsertProduct(ctx, &doc.Products[i]); err != nil {
			return fmt.Errorf("product %s: %w", doc.Products[i].SKU, err)
		}
	}
	s.logger.Info("products seeded", slog.Int("count", len(doc.Products)))

	for _, po := range doc.PurchaseOrders {
		if err := s.seedOrder(ctx, po); err != nil {
			return fmt.Errorf("purchase order %s: %w", po.Header.PONumber, err)
		}
	}

	if len(doc.Snapshots) > 0 {
		res, err := s.stock.IngestSnapshots(ctx, doc.Snapshots)
		if err != nil {
			return fmt.Errorf("snapshots: %w", err)
		}
		s.logIngest("snapshots", res)
	}
	if len(doc.Sales) > 0 {
		res, err := s.stock.UpsertSales(ctx, doc.Sales)
		if err != nil {
			return fmt.Errorf("sales: %w", err)
		}
		s.logIngest("sales", res)
	}
	return nil
}

// seedOrder creates one purchase order with its items and receipt batches.
// Orders whose number already exists are left untouched so reruns are safe.
func (s *seeder) seedOrder(ctx context.Context, po SeedOrder) error {
	if _, err := s.orders.GetViewByNumber(ctx, po.Header.PONumber); err == nil {
		s.logger.Info("purchase order exists, skipping", slog.String("po_number", po.Header.PONumber))
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	view, err := s.orders.UpsertHeader(ctx, po.Header)
	if err != nil {
		return err
	}

	itemIDs := make(map[string]domain.ItemView, len(po.Items))
	for _, item := range po.Items {
		view, err = s.orders.UpsertItem(ctx, ports.ItemInput{HeaderID: view.ID, SKU: item.SKU, QtyOrdered: item.Qty})
		if err != nil {
			return fmt.Errorf("item %s: %w", item.SKU, err)
		}
	}
	for _, item := range view.Items {
		itemIDs[item.SKU] = item
	}

	for _, batch := range po.Batches {
		in := ports.BatchReceiptInput{
			HeaderID:         view.ID,
			BatchNo:          batch.BatchNo,
			BillDate:         batch.BillDate,
			ReceivedDate:     batch.ReceivedDate,
			BatchTotalVolume: batch.TotalVolume,
			BatchTotalWeight: batch.TotalWeight,
		}
		for sku, qty := range batch.Received {
			item, ok := itemIDs[sku]
			if !ok {
				return fmt.Errorf("batch %d receives %s which is not on the order", batch.BatchNo, sku)
			}
			in.Items = append(in.Items, domain.ItemQuantity{LineItemID: item.ID, Qty: qty})
		}
		if view, err = s.orders.SubmitBatchReceipt(ctx, in); err != nil {
			return fmt.Errorf("batch %d: %w", batch.BatchNo, err)
		}
	}

	s.logger.Info("purchase order seeded",
		slog.String("po_number", view.PONumber),
		slog.String("status", string(view.Status)),
		slog.String("total_cost_local", view.TotalCostLocal.StringFixed(2)),
		slog.Int64("total_received", view.TotalReceived))
	return nil
}

func (s *seeder) logIngest(feed string, res *ports.IngestResult) {
	s.logger.Info(feed+" seeded",
		slog.Int("succeeded", res.Succeeded),
		slog.Int("failed", res.Failed))
	for _, msg := range res.Errors {
		s.logger.Warn(feed+" row rejected", slog.String("error", msg))
	}
}
