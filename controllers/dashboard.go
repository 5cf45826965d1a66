package controllers

import (
	"net/http"

	"fusiongear-backend/models"
	"fusiongear-backend/services"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	services.SalesSummary
	TotalCustomers int              `json:"totalCustomers"`
	RecentInvoices []models.Invoice `json:"recentInvoices"`
}

const recentInvoiceLimit = 5

func (h *Handler) GetDashboardOverview(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.now()

	invoices, err := h.Store.ListInvoicesSince(ctx, services.MonthStart(now))
	if err != nil {
		h.respondStoreError(c, err, "Invoice")
		return
	}
	pending, err := h.Store.ListPendingInvoices(ctx)
	if err != nil {
		h.respondStoreError(c, err, "Invoice")
		return
	}
	customers, err := h.Store.ListCustomers(ctx)
	if err != nil {
		h.respondStoreError(c, err, "Customer")
		return
	}

	recent := invoices
	if len(recent) > recentInvoiceLimit {
		recent = recent[:recentInvoiceLimit]
	}

	c.JSON(http.StatusOK, DashboardOverview{
		SalesSummary:   services.SummarizeSales(invoices, pending, now),
		TotalCustomers: len(customers),
		RecentInvoices: nonNil(recent),
	})
}
