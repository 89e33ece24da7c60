// internal/handlers/routes.go
package handlers

import "net/http"

// APIPrefix is the path prefix of every versioned endpoint
const APIPrefix = "/api/v1"

// Set groups the handlers served by the API
type Set struct {
	PurchaseOrders *PurchaseOrderHandler
	Stock          *StockHandler
	Imports        *ImportHandler
	Attachments    *AttachmentHandler
	Dashboard      *DashboardHandler
	Health         *HealthHandler
}

// RegisterRoutes installs every endpoint on mux using method-specific patterns
func RegisterRoutes(mux *http.ServeMux, h Set) {
	apiV1 := APIPrefix

	// Health and readiness endpoints
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /ready", h.Health.Readiness)
	mux.HandleFunc("GET /live", h.Health.Liveness)

	// Purchase orders
	mux.HandleFunc("POST "+apiV1+"/purchase-orders", h.PurchaseOrders.UpsertHeader)
	mux.HandleFunc("GET "+apiV1+"/purchase-orders", h.PurchaseOrders.List)
	mux.HandleFunc("GET "+apiV1+"/purchase-orders/{id}", h.PurchaseOrders.GetView)
	mux.HandleFunc("GET "+apiV1+"/purchase-orders/by-number/{poNumber}", h.PurchaseOrders.GetViewByNumber)
	mux.HandleFunc("PUT "+apiV1+"/purchase-orders/{id}/items", h.PurchaseOrders.UpsertItem)
	mux.HandleFunc("DELETE "+apiV1+"/purchase-orders/{id}/items/{itemId}", h.PurchaseOrders.RemoveItem)
	mux.HandleFunc("POST "+apiV1+"/purchase-orders/{id}/receipts/batches", h.PurchaseOrders.SubmitBatchReceipt)
	mux.HandleFunc("POST "+apiV1+"/purchase-orders/{id}/receipts", h.PurchaseOrders.RecordReceipt)
	mux.HandleFunc("DELETE "+apiV1+"/receipts/{id}", h.PurchaseOrders.DeleteReceipt)

	// Attachments
	mux.HandleFunc("POST "+apiV1+"/purchase-orders/{id}/attachments", h.Attachments.Upload)
	mux.HandleFunc("GET "+apiV1+"/purchase-orders/{id}/attachments", h.Attachments.List)
	mux.HandleFunc("DELETE "+apiV1+"/attachments/{id}", h.Attachments.Delete)

	// Stock and products
	mux.HandleFunc("GET "+apiV1+"/stock/{sku}", h.Stock.Resolve)
	mux.HandleFunc("GET "+apiV1+"/stock", h.Stock.Report)
	mux.HandleFunc("PUT "+apiV1+"/products/{sku}", h.Stock.UpsertProduct)
	mux.HandleFunc("PATCH "+apiV1+"/products/{sku}/min-limit", h.Stock.SetMinLimit)

	// Imports
	mux.HandleFunc("POST "+apiV1+"/imports/snapshots", h.Imports.ImportSnapshots)
	mux.HandleFunc("POST "+apiV1+"/imports/sales", h.Imports.ImportSales)
	mux.HandleFunc("GET "+apiV1+"/imports/{id}", h.Imports.Status)

	// Dashboard
	mux.HandleFunc("GET "+apiV1+"/dashboard", h.Dashboard.GetDashboard)
}
