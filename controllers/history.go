package controllers

import (
	"net/http"
	"strings"

	"fusiongear-backend/models"
	"fusiongear-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ServiceHistory is every invoice raised for one registration number.
type ServiceHistory struct {
	BikeNumber string                   `json:"bikeNumber"`
	Customers  []models.CustomerProfile `json:"customers"`
	Invoices   []models.Invoice         `json:"invoices"`
}

func (h *Handler) GetServiceHistory(c *gin.Context) {
	bikeNumber := strings.TrimSpace(c.Param("bikeNumber"))
	if bikeNumber == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Bike number is required")
		return
	}

	ctx := c.Request.Context()
	customers, err := h.Store.FindCustomersByBikeNumber(ctx, bikeNumber)
	if err != nil {
		h.respondStoreError(c, err, "Customer")
		return
	}
	if len(customers) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "No customer found for this bike number")
		return
	}

	ids := make([]uuid.UUID, len(customers))
	for i, cust := range customers {
		ids[i] = cust.ID
	}
	invoices, err := h.Store.ListInvoicesByCustomers(ctx, ids)
	if err != nil {
		h.respondStoreError(c, err, "Invoice")
		return
	}

	c.JSON(http.StatusOK, ServiceHistory{
		BikeNumber: strings.ToUpper(bikeNumber),
		Customers:  customers,
		Invoices:   nonNil(invoices),
	})
}
