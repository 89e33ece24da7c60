// internal/handlers/stock_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
	"github.com/ammerola/procure-be/internal/handlers"
	"github.com/ammerola/procure-be/test/helpers"
	"github.com/ammerola/procure-be/test/mocks"
)

var handlerNow = time.Date(2025, time.March, 4, 15, 30, 0, 0, time.UTC)

func TestStockHandler_Resolve(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setupMocks     func(*mocks.MockStockService)
		expectedStatus int
	}{
		{
			name:   "defaults_to_today",
			target: "/api/v1/stock/MUG-1",
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					Resolve(gomock.Any(), "MUG-1", helpers.Date(2025, time.March, 4)).
					Return(&domain.StockLevel{SKU: "MUG-1", Quantity: 7, Status: domain.StockOK, Source: domain.SourceDerived}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "explicit_as_of",
			target: "/api/v1/stock/MUG-1?as_of=2025-01-31",
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					Resolve(gomock.Any(), "MUG-1", helpers.Date(2025, time.January, 31)).
					Return(&domain.StockLevel{SKU: "MUG-1"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad_as_of",
			target:         "/api/v1/stock/MUG-1?as_of=yesterday",
			setupMocks:     func(m *mocks.MockStockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown_product",
			target: "/api/v1/stock/GHOST",
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					Resolve(gomock.Any(), "GHOST", gomock.Any()).
					Return(nil, domain.NotFound("product", "GHOST"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockStockService(ctrl)
			tt.setupMocks(mockService)
			handler := handlers.NewStockHandler(mockService, helpers.FixedClock(handlerNow), helpers.TestLogger())

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := serve("GET /api/v1/stock/{sku}", handler.Resolve, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestStockHandler_Report(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockStockService(ctrl)
	handler := handlers.NewStockHandler(mockService, helpers.FixedClock(handlerNow), helpers.TestLogger())

	mockService.EXPECT().
		Report(gomock.Any(), ports.StockReportParams{
			Search:   "mug",
			Status:   domain.StockLow,
			AsOf:     helpers.Date(2025, time.March, 4),
			Page:     1,
			PageSize: 20,
		}).
		Return(&ports.StockReport{
			Items:      []domain.StockLevel{{SKU: "MUG-1", Quantity: 2, Status: domain.StockLow}},
			TotalCount: 1,
			TotalPages: 1,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stock?search=mug&status=low&page_size=20", nil)
	w := serve("GET /api/v1/stock", handler.Report, req)

	require.Equal(t, http.StatusOK, w.Code)
	var report ports.StockReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Len(t, report.Items, 1)
	assert.Equal(t, domain.StockLow, report.Items[0].Status)
}

func TestStockHandler_UpsertProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockStockService(ctrl)
	handler := handlers.NewStockHandler(mockService, nil, helpers.TestLogger())

	mockService.EXPECT().
		UpsertProduct(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, p *domain.Product) error {
			assert.Equal(t, "MUG-1", p.SKU)
			assert.Equal(t, int64(40), p.BaseQuantity)
			return nil
		})

	body := `{"sku":"IGNORED","name":"Mug","base_quantity":40,"min_limit":5}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/MUG-1", strings.NewReader(body))
	w := serve("PUT /api/v1/products/{sku}", handler.UpsertProduct, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStockHandler_SetMinLimit(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockStockService)
		expectedStatus int
	}{
		{
			name: "updates_limit",
			body: `{"min_limit":12}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().SetMinLimit(gomock.Any(), "MUG-1", int64(12)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "negative_limit",
			body: `{"min_limit":-1}`,
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					SetMinLimit(gomock.Any(), "MUG-1", int64(-1)).
					Return(domain.Invalid("min_limit", "min_limit cannot be negative"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockStockService(ctrl)
			tt.setupMocks(mockService)
			handler := handlers.NewStockHandler(mockService, nil, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/MUG-1/min-limit", strings.NewReader(tt.body))
			w := serve("PATCH /api/v1/products/{sku}/min-limit", handler.SetMinLimit, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
