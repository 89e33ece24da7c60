// internal/handlers/routes_test.go
package handlers_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/handlers"
	"github.com/ammerola/procure-be/test/helpers"
	"github.com/ammerola/procure-be/test/mocks"
)

type routeMocks struct {
	orders      *mocks.MockPurchaseOrderService
	stock       *mocks.MockStockService
	imports     *mocks.MockImportService
	attachments *mocks.MockAttachmentService
	dashboard   *mocks.MockDashboardService
	database    *mocks.MockDatabase
}

func newRouter(t *testing.T) (*http.ServeMux, routeMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := routeMocks{
		orders:      mocks.NewMockPurchaseOrderService(ctrl),
		stock:       mocks.NewMockStockService(ctrl),
		imports:     mocks.NewMockImportService(ctrl),
		attachments: mocks.NewMockAttachmentService(ctrl),
		dashboard:   mocks.NewMockDashboardService(ctrl),
		database:    mocks.NewMockDatabase(ctrl),
	}

	logger := helpers.TestLogger()
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, handlers.Set{
		PurchaseOrders: handlers.NewPurchaseOrderHandler(m.orders, logger),
		Stock:          handlers.NewStockHandler(m.stock, nil, logger),
		Imports:        handlers.NewImportHandler(m.imports, logger),
		Attachments:    handlers.NewAttachmentHandler(m.attachments, 1<<20, logger),
		Dashboard:      handlers.NewDashboardHandler(m.dashboard, logger),
		Health:         handlers.NewHealthHandler(m.database, nil, nil, nil, helpers.LoadTestConfig(), logger),
	})
	return mux, m
}

func multipartFile(t *testing.T, name string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestRegisterRoutes(t *testing.T) {
	headerID := uuid.New()
	itemID := uuid.New()
	otherID := uuid.New()

	// Every service call answers with a conflict so a 409 can only come
	// from the handler the route was meant to reach.
	conflict := &domain.ConsistencyError{Entity: "line item", ID: itemID, ClaimedParent: headerID, ActualParent: otherID}

	tests := []struct {
		name           string
		method         string
		target         string
		body           func(t *testing.T) (io.Reader, string)
		expect         func(m routeMocks)
		expectedStatus int
	}{
		{
			name:   "health",
			method: http.MethodGet,
			target: "/health",
			expect: func(m routeMocks) {
				m.database.EXPECT().Ping(gomock.Any()).Return(nil)
				m.database.EXPECT().Health(gomock.Any()).Return(map[string]interface{}{})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "readiness",
			method: http.MethodGet,
			target: "/ready",
			expect: func(m routeMocks) {
				m.database.EXPECT().Ping(gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "liveness",
			method:         http.MethodGet,
			target:         "/live",
			expect:         func(routeMocks) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "upsert_header",
			method: http.MethodPost,
			target: "/api/v1/purchase-orders",
			body:   jsonBody(`{"po_number":"PO-1","order_date":"2025-01-01"}`),
			expect: func(m routeMocks) {
				m.orders.EXPECT().UpsertHeader(gomock.Any(), gomock.Any()).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "list_purchase_orders",
			method: http.MethodGet,
			target: "/api/v1/purchase-orders?status=overdue",
			expect: func(m routeMocks) {
				m.orders.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "get_view",
			method: http.MethodGet,
			target: "/api/v1/purchase-orders/" + headerID.String(),
			expect: func(m routeMocks) {
				m.orders.EXPECT().GetView(gomock.Any(), headerID).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "get_view_by_number",
			method: http.MethodGet,
			target: "/api/v1/purchase-orders/by-number/PO-1",
			expect: func(m routeMocks) {
				m.orders.EXPECT().GetViewByNumber(gomock.Any(), "PO-1").Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "upsert_item",
			method: http.MethodPut,
			target: "/api/v1/purchase-orders/" + headerID.String() + "/items",
			body:   jsonBody(`{"sku":"MUG-1","qty_ordered":5}`),
			expect: func(m routeMocks) {
				m.orders.EXPECT().UpsertItem(gomock.Any(), gomock.Any()).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "remove_item",
			method: http.MethodDelete,
			target: "/api/v1/purchase-orders/" + headerID.String() + "/items/" + itemID.String(),
			expect: func(m routeMocks) {
				m.orders.EXPECT().RemoveItem(gomock.Any(), headerID, itemID).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "submit_batch_receipt",
			method: http.MethodPost,
			target: "/api/v1/purchase-orders/" + headerID.String() + "/receipts/batches",
			body:   jsonBody(`{"batch_no":1,"received_date":"2025-01-05","items":[]}`),
			expect: func(m routeMocks) {
				m.orders.EXPECT().SubmitBatchReceipt(gomock.Any(), gomock.Any()).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "record_receipt",
			method: http.MethodPost,
			target: "/api/v1/purchase-orders/" + headerID.String() + "/receipts",
			body:   jsonBody(`{"item_id":"` + itemID.String() + `","qty":1,"volume":"0","weight":"0","received_date":"2025-01-05"}`),
			expect: func(m routeMocks) {
				m.orders.EXPECT().RecordReceipt(gomock.Any(), gomock.Any()).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "delete_receipt",
			method: http.MethodDelete,
			target: "/api/v1/receipts/" + otherID.String(),
			expect: func(m routeMocks) {
				m.orders.EXPECT().DeleteReceipt(gomock.Any(), otherID).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "upload_attachment",
			method: http.MethodPost,
			target: "/api/v1/purchase-orders/" + headerID.String() + "/attachments",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartFile(t, "invoice.pdf", []byte("%PDF-1.4"))
			},
			expect: func(m routeMocks) {
				m.attachments.EXPECT().
					Upload(gomock.Any(), headerID, "invoice.pdf", gomock.Any(), int64(8), gomock.Any()).
					Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "list_attachments",
			method: http.MethodGet,
			target: "/api/v1/purchase-orders/" + headerID.String() + "/attachments",
			expect: func(m routeMocks) {
				m.attachments.EXPECT().List(gomock.Any(), headerID).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "delete_attachment",
			method: http.MethodDelete,
			target: "/api/v1/attachments/" + otherID.String(),
			expect: func(m routeMocks) {
				m.attachments.EXPECT().Delete(gomock.Any(), otherID).Return(conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "resolve_stock",
			method: http.MethodGet,
			target: "/api/v1/stock/MUG-1?as_of=2025-01-10",
			expect: func(m routeMocks) {
				m.stock.EXPECT().Resolve(gomock.Any(), "MUG-1", helpers.Date(2025, 1, 10)).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "stock_report",
			method: http.MethodGet,
			target: "/api/v1/stock?status=low",
			expect: func(m routeMocks) {
				m.stock.EXPECT().Report(gomock.Any(), gomock.Any()).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "upsert_product",
			method: http.MethodPut,
			target: "/api/v1/products/MUG-1",
			body:   jsonBody(`{"name":"Mug","min_limit":5}`),
			expect: func(m routeMocks) {
				m.stock.EXPECT().UpsertProduct(gomock.Any(), gomock.Any()).Return(conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "set_min_limit",
			method: http.MethodPatch,
			target: "/api/v1/products/MUG-1/min-limit",
			body:   jsonBody(`{"min_limit":3}`),
			expect: func(m routeMocks) {
				m.stock.EXPECT().SetMinLimit(gomock.Any(), "MUG-1", int64(3)).Return(conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "import_snapshots",
			method: http.MethodPost,
			target: "/api/v1/imports/snapshots",
			body:   jsonBody(`{"source":"erp","rows":[]}`),
			expect: func(m routeMocks) {
				m.imports.EXPECT().SubmitSnapshots(gomock.Any(), "erp", gomock.Any()).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "import_sales",
			method: http.MethodPost,
			target: "/api/v1/imports/sales",
			body:   jsonBody(`{"source":"shop","rows":[]}`),
			expect: func(m routeMocks) {
				m.imports.EXPECT().SubmitSales(gomock.Any(), "shop", gomock.Any()).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "import_status",
			method: http.MethodGet,
			target: "/api/v1/imports/" + otherID.String(),
			expect: func(m routeMocks) {
				m.imports.EXPECT().Status(gomock.Any(), otherID).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "dashboard",
			method: http.MethodGet,
			target: "/api/v1/dashboard",
			expect: func(m routeMocks) {
				m.dashboard.EXPECT().Summary(gomock.Any()).Return(nil, conflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "wrong_method_is_rejected",
			method:         http.MethodDelete,
			target:         "/api/v1/dashboard",
			expect:         func(routeMocks) {},
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "unknown_path",
			method:         http.MethodGet,
			target:         "/api/v2/purchase-orders",
			expect:         func(routeMocks) {},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := newRouter(t)
			tt.expect(m)

			var body io.Reader
			var contentType string
			if tt.body != nil {
				body, contentType = tt.body(t)
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			if contentType != "" {
				req.Header.Set("Content-Type", contentType)
			}
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
		})
	}
}

func jsonBody(s string) func(t *testing.T) (io.Reader, string) {
	return func(*testing.T) (io.Reader, string) {
		return bytes.NewBufferString(s), "application/json"
	}
}
