//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/procure-be/internal/adapters/db"
	redis_a "github.com/ammerola/procure-be/internal/adapters/redis_adapter"
	"github.com/ammerola/procure-be/internal/adapters/storage"
	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
	"github.com/ammerola/procure-be/internal/core/services"
	"github.com/ammerola/procure-be/internal/handlers"
	"github.com/ammerola/procure-be/internal/handlers/middleware"
	"github.com/ammerola/procure-be/internal/workers"
	"github.com/ammerola/procure-be/test/helpers"
)

// inlineEnqueuer runs queued tasks straight through the worker mux so imports
// settle before the submitting request returns
type inlineEnqueuer struct {
	mu  sync.Mutex
	mux *asynq.ServeMux
}

func (e *inlineEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.mux.ProcessTask(context.WithoutCancel(ctx), task); err != nil {
		return nil, err
	}
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

type PurchaseOrderE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *PurchaseOrderE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + handlers.APIPrefix
}

func (s *PurchaseOrderE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *PurchaseOrderE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *PurchaseOrderE2ESuite) TestReceivingWorkflow() {
	for _, sku := range []string{"MUG-1", "MUG-2"} {
		resp := s.makeRequest(http.MethodPut, "/products/"+sku,
			map[string]interface{}{"name": "Mug " + sku, "base_quantity": 10, "min_limit": 5})
		s.Equal(http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	// 1. Create the header
	resp := s.makeRequest(http.MethodPost, "/purchase-orders", map[string]interface{}{
		"po_number":                "PO-E2E-001",
		"order_date":               "2025-01-01",
		"estimated_date":           "2025-01-15",
		"exchange_rate":            "5",
		"total_cost_foreign":       "1000",
		"shipping_rate_per_volume": "4000",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var view domain.PurchaseOrderView
	s.decodeResponse(resp, &view)
	s.Equal(domain.OrderTypeImported, view.OrderType)
	poURL := "/purchase-orders/" + view.ID.String()

	// 2. Add two equally sized lines; the local cost splits evenly
	for _, sku := range []string{"MUG-1", "MUG-2"} {
		resp = s.makeRequest(http.MethodPut, poURL+"/items", map[string]interface{}{"sku": sku, "qty_ordered": 100})
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		s.decodeResponse(resp, &view)
	}
	s.Require().Len(view.Items, 2)
	for _, item := range view.Items {
		s.Equal("2500.00", item.CostLocal.StringFixed(2))
	}

	// 3. Receive a partial batch; volume follows quantity
	resp = s.makeRequest(http.MethodPost, poURL+"/receipts/batches", map[string]interface{}{
		"batch_no":           1,
		"received_date":      "2025-01-12",
		"batch_total_volume": "1.5",
		"items": []map[string]interface{}{
			{"item_id": s.itemID(view, "MUG-1"), "qty": 100},
			{"item_id": s.itemID(view, "MUG-2"), "qty": 50},
		},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.decodeResponse(resp, &view)
	s.Equal(domain.StatusIncomplete, view.Status)
	s.Equal(int64(150), view.TotalReceived)
	for _, item := range view.Items {
		switch item.SKU {
		case "MUG-1":
			s.Equal("1.0000", item.ReceivedVolume.StringFixed(4))
			s.Equal("4000.00", item.FreightLocal.StringFixed(2))
		case "MUG-2":
			s.Equal("0.5000", item.ReceivedVolume.StringFixed(4))
			s.Equal(int64(50), item.RemainingQty)
		}
	}

	// 4. Derived stock picks up the receipt
	level := s.resolveStock("MUG-1", "2025-02-01")
	s.Equal(int64(110), level.Quantity)
	s.Equal(domain.SourceDerived, level.Source)

	// 5. A sales import drains it down to the minimum
	resp = s.makeRequest(http.MethodPost, "/imports/sales", map[string]interface{}{
		"source": "shopee",
		"rows": []map[string]interface{}{
			{"order_id": "SHP-1", "sku": "MUG-1", "qty": 105, "sold_at": "2025-01-20T09:00:00Z"},
			{"order_id": "SHP-2", "sku": "GHOST", "qty": 1, "sold_at": "2025-01-20T09:00:00Z"},
		},
	})
	s.Require().Equal(http.StatusAccepted, resp.StatusCode)
	var importLog domain.ImportLog
	s.decodeResponse(resp, &importLog)

	resp = s.makeRequest(http.MethodGet, "/imports/"+importLog.ID.String(), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &importLog)
	s.Equal(domain.ImportSuccess, importLog.Status)
	s.Equal(1, importLog.SuccessCount)
	s.Equal(1, importLog.FailedCount)

	level = s.resolveStock("MUG-1", "2025-02-01")
	s.Equal(int64(5), level.Quantity)
	s.Equal(domain.StockLow, level.Status)

	// 6. Deleting the receipt rolls the order back to overdue
	resp = s.makeRequest(http.MethodGet, poURL, nil)
	s.decodeResponse(resp, &view)
	s.Require().NotEmpty(view.Receipts)
	for _, r := range view.Receipts {
		resp = s.makeRequest(http.MethodDelete, "/receipts/"+r.ID.String(), nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		s.decodeResponse(resp, &view)
	}
	s.Equal(int64(0), view.TotalReceived)
	s.Equal(domain.StatusOverdue, view.Status)

	// 7. Lookup by number and dashboard counts
	resp = s.makeRequest(http.MethodGet, "/purchase-orders/by-number/PO-E2E-001", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest(http.MethodGet, "/dashboard", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var dashboard ports.DashboardSummary
	s.decodeResponse(resp, &dashboard)
	s.Equal(int64(1), dashboard.Orders[domain.StatusOverdue])
	s.Equal(int64(1), dashboard.Stock[domain.StockDepleted])
}

func (s *PurchaseOrderE2ESuite) TestRejectsItemFromAnotherOrder() {
	resp := s.makeRequest(http.MethodPut, "/products/CUP-1",
		map[string]interface{}{"name": "Cup", "base_quantity": 0, "min_limit": 0})
	resp.Body.Close()

	views := make([]domain.PurchaseOrderView, 2)
	for i := range views {
		resp = s.makeRequest(http.MethodPost, "/purchase-orders", map[string]interface{}{
			"po_number": fmt.Sprintf("PO-X-%d", i), "order_date": "2025-03-01",
		})
		s.decodeResponse(resp, &views[i])
		resp = s.makeRequest(http.MethodPut, "/purchase-orders/"+views[i].ID.String()+"/items",
			map[string]interface{}{"sku": "CUP-1", "qty_ordered": 10})
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		s.decodeResponse(resp, &views[i])
	}

	resp = s.makeRequest(http.MethodPost, "/purchase-orders/"+views[0].ID.String()+"/receipts/batches",
		map[string]interface{}{
			"batch_no": 1, "received_date": "2025-03-05",
			"items": []map[string]interface{}{{"item_id": views[1].Items[0].ID, "qty": 1}},
		})
	defer resp.Body.Close()
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *PurchaseOrderE2ESuite) TestAttachmentRoundTrip() {
	resp := s.makeRequest(http.MethodPost, "/purchase-orders",
		map[string]interface{}{"po_number": "PO-DOC-1", "order_date": "2025-03-01"})
	var view domain.PurchaseOrderView
	s.decodeResponse(resp, &view)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "invoice.pdf")
	s.Require().NoError(err)
	_, err = io.Copy(part, bytes.NewReader([]byte("%PDF-1.4 test invoice")))
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/purchase-orders/"+view.ID.String()+"/attachments", body)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err = s.client.Do(req)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var attachment domain.Attachment
	s.decodeResponse(resp, &attachment)

	resp = s.makeRequest(http.MethodGet, "/purchase-orders/"+view.ID.String()+"/attachments", nil)
	var listed []domain.Attachment
	s.decodeResponse(resp, &listed)
	s.Require().Len(listed, 1)
	s.NotEmpty(listed[0].URL)

	resp = s.makeRequest(http.MethodDelete, "/attachments/"+attachment.ID.String(), nil)
	resp.Body.Close()
	s.Equal(http.StatusNoContent, resp.StatusCode)
}

func (s *PurchaseOrderE2ESuite) TestHealthCheck() {
	resp, err := s.client.Get(s.server.URL + "/health")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var health map[string]interface{}
	s.decodeResponse(resp, &health)
	s.Equal("healthy", health["status"])

	services := health["services"].(map[string]interface{})
	s.Contains(services, "database")
	s.Contains(services, "redis")
	s.Contains(services, "storage")
}

// Helper methods

func (s *PurchaseOrderE2ESuite) startTestServer() *httptest.Server {
	ctx := context.Background()
	cfg := helpers.LoadTestConfig()
	logger := helpers.TestLogger()
	database := s.testDB.Database

	fileStorage, err := storage.NewLocalStorage(s.T().TempDir(), logger)
	s.Require().NoError(err)
	cache := redis_a.NewCache(s.testRedis.Client, time.Minute, cfg.Redis.KeyPrefix, logger)

	clock := services.SystemClock
	orderRepo := db.NewPurchaseOrderRepository(database, logger)
	stockRepo := db.NewStockRepository(database, logger)
	orderService := services.NewPurchaseOrderService(
		services.NewOrderMutationOrchestrator(db.NewUnitOfWork(database, logger), clock, 3, logger),
		orderRepo, cache, clock, logger)
	stockService := services.NewStockService(stockRepo, cache, time.Minute, clock, logger)

	enqueuer := &inlineEnqueuer{}
	importService := services.NewImportService(db.NewImportLogRepository(database, logger), stockService,
		workers.NewImportQueue(enqueuer, 0, logger), 1000, clock, logger)
	enqueuer.mux = workers.NewServeMux(
		workers.NewImportProcessor(importService, logger),
		workers.NewStatusProcessor(orderService, logger),
		workers.NewCleanupProcessor(stockService, importService, 0, 0, nil, logger),
		logger,
	)

	attachmentService := services.NewAttachmentService(db.NewAttachmentRepository(database, logger),
		orderRepo, fileStorage, 1<<20, time.Minute, logger)

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, handlers.Set{
		PurchaseOrders: handlers.NewPurchaseOrderHandler(orderService, logger),
		Stock:          handlers.NewStockHandler(stockService, clock, logger),
		Imports:        handlers.NewImportHandler(importService, logger),
		Attachments:    handlers.NewAttachmentHandler(attachmentService, 1<<20, logger),
		Dashboard: handlers.NewDashboardHandler(
			services.NewDashboardService(orderRepo, stockRepo, cache, time.Second, clock, logger), logger),
		Health: handlers.NewHealthHandler(database, s.testRedis.Client, nil, fileStorage, cfg, logger),
	})

	return httptest.NewServer(middleware.Chain(mux,
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.RateLimit(ctx, 1000, time.Minute),
		middleware.Timeout(cfg.Security.RequestTimeout),
	))
}

func (s *PurchaseOrderE2ESuite) itemID(view domain.PurchaseOrderView, sku string) string {
	for _, item := range view.Items {
		if item.SKU == sku {
			return item.ID.String()
		}
	}
	s.FailNow("item not on order", sku)
	return ""
}

func (s *PurchaseOrderE2ESuite) resolveStock(sku, asOf string) domain.StockLevel {
	resp := s.makeRequest(http.MethodGet, "/stock/"+sku+"?as_of="+asOf, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var level domain.StockLevel
	s.decodeResponse(resp, &level)
	return level
}

func (s *PurchaseOrderE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *PurchaseOrderE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func TestPurchaseOrderE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(PurchaseOrderE2ESuite))
}
