// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"fusiongear-backend/models"
	"fusiongear-backend/printing"
	"fusiongear-backend/receipt"
	"fusiongear-backend/services"
	"fusiongear-backend/store"
	"fusiongear-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateInvoiceInput defines the expected JSON structure for creating an invoice
type CreateInvoiceInput struct {
	CustomerID uuid.UUID `json:"customerId" binding:"required"`
	Concierge  string    `json:"concierge"`
	BillInput
}

// UpdateServiceRecordInput replaces the priced bill of an existing invoice.
type UpdateServiceRecordInput struct {
	CustomerID *uuid.UUID `json:"customerId"`
	Concierge  *string    `json:"concierge"`
	BillInput
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// InvoiceView is an invoice with its customer resolved for display.
type InvoiceView struct {
	models.Invoice
	Customer *models.CustomerProfile `json:"customer,omitempty"`
}

// loadInvoice fetches the invoice named by the :id parameter together with
// its customer. The customer is nil when it has since been deleted.
func (h *Handler) loadInvoice(c *gin.Context) (models.Invoice, *models.CustomerProfile, bool) {
	ctx := c.Request.Context()
	inv, err := h.Store.GetInvoice(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Invoice")
		return models.Invoice{}, nil, false
	}
	cust, err := h.Store.GetCustomer(ctx, inv.CustomerID)
	switch {
	case err == nil:
		return inv, &cust, true
	case errors.Is(err, store.ErrNotFound):
		return inv, nil, true
	default:
		h.respondStoreError(c, err, "Customer")
		return models.Invoice{}, nil, false
	}
}

func (h *Handler) CreateInvoice(c *gin.Context) {
	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	customer, err := h.Store.GetCustomer(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
			return
		}
		h.respondStoreError(c, err, "Customer")
		return
	}

	in := input.billingInput()
	record := models.NewServiceRecord(customer.ID, strings.TrimSpace(input.Concierge), in, h.Calculator.Calculate(in), h.now().UnixNano())
	invoice, err := h.Store.CreateInvoice(ctx, record)
	if err != nil {
		h.respondStoreError(c, err, "Invoice")
		return
	}

	h.Logger.Info("invoice created",
		zap.String("invoiceId", invoice.ID),
		zap.String("customerId", customer.ID.String()),
		zap.Int64("total", invoice.ServiceRecord.Total),
	)
	c.JSON(http.StatusCreated, InvoiceView{Invoice: invoice, Customer: &customer})
}

func (h *Handler) GetInvoices(c *gin.Context) {
	invoices, err := h.Store.ListInvoices(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "Invoice")
		return
	}
	c.JSON(http.StatusOK, nonNil(invoices))
}

func (h *Handler) GetPendingInvoices(c *gin.Context) {
	invoices, err := h.Store.ListPendingInvoices(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "Invoice")
		return
	}
	c.JSON(http.StatusOK, nonNil(invoices))
}

func (h *Handler) GetInvoice(c *gin.Context) {
	inv, cust, ok := h.loadInvoice(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, InvoiceView{Invoice: inv, Customer: cust})
}

// UpdateServiceRecord recalculates and replaces the bill of an invoice. The
// invoice keeps its ID, status and creation time.
func (h *Handler) UpdateServiceRecord(c *gin.Context) {
	var input UpdateServiceRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	inv, err := h.Store.GetInvoice(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Invoice")
		return
	}

	customerID := inv.CustomerID
	if input.CustomerID != nil {
		if _, err := h.Store.GetCustomer(ctx, *input.CustomerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
				return
			}
			h.respondStoreError(c, err, "Customer")
			return
		}
		customerID = *input.CustomerID
	}
	concierge := inv.ServiceRecord.Concierge
	if input.Concierge != nil {
		concierge = strings.TrimSpace(*input.Concierge)
	}

	in := input.billingInput()
	record := models.NewServiceRecord(customerID, concierge, in, h.Calculator.Calculate(in), inv.ServiceRecord.CreatedAt)
	if err := h.Store.UpdateServiceRecord(ctx, inv.ID, record); err != nil {
		h.respondStoreError(c, err, "Invoice")
		return
	}

	inv.CustomerID = customerID
	inv.ServiceRecord = record
	c.JSON(http.StatusOK, inv)
}

// UpdateInvoiceStatus marks an invoice paid. Paid invoices never return to
// pending.
func (h *Handler) UpdateInvoiceStatus(c *gin.Context) {
	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !strings.EqualFold(input.Status, models.StatusPaid) {
		utils.RespondWithError(c, http.StatusBadRequest, "Status can only be set to paid")
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.Store.UpdateInvoiceStatus(ctx, id, models.StatusPaid); err != nil {
		if errors.Is(err, models.ErrInvalidStatusTransition) {
			utils.RespondWithError(c, http.StatusConflict, err.Error())
			return
		}
		h.respondStoreError(c, err, "Invoice")
		return
	}

	inv, err := h.Store.GetInvoice(ctx, id)
	if err != nil {
		h.respondStoreError(c, err, "Invoice")
		return
	}
	h.Logger.Info("invoice paid", zap.String("invoiceId", id))
	c.JSON(http.StatusOK, inv)
}

// GetReceipt renders the thermal receipt as plain text. width is 58mm
// (default) or 80mm.
func (h *Handler) GetReceipt(c *gin.Context) {
	width := receipt.Narrow
	if w := c.Query("width"); w != "" {
		var ok bool
		if width, ok = receipt.ParseWidth(w); !ok {
			utils.RespondWithError(c, http.StatusBadRequest, "width must be 58mm or 80mm")
			return
		}
	}

	inv, cust, ok := h.loadInvoice(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, h.Receipts.Format(width, inv, cust))
}

// GetDocument renders the printable HTML invoice. print=1 asks the browser
// to open its print dialog.
func (h *Handler) GetDocument(c *gin.Context) {
	inv, cust, ok := h.loadInvoice(c)
	if !ok {
		return
	}

	renderer := h.Documents
	if c.Query("print") == "1" {
		renderer = renderer.WithAutoPrint()
	}
	doc, err := renderer.Render(inv, cust)
	if err != nil {
		h.Logger.Error("document render failed", zap.String("invoiceId", inv.ID), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to render invoice")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc.HTML))
}

// PrintInvoice sends the invoice document to the shop printer.
func (h *Handler) PrintInvoice(c *gin.Context) {
	inv, cust, ok := h.loadInvoice(c)
	if !ok {
		return
	}

	if err := h.Documents.Print(c.Request.Context(), h.Printer, inv, cust); err != nil {
		if errors.Is(err, printing.ErrUnavailable) {
			h.Logger.Warn("print unavailable", zap.String("invoiceId", inv.ID), zap.Error(err))
			utils.RespondWithError(c, http.StatusServiceUnavailable, printing.ErrUnavailable.Error())
			return
		}
		h.Logger.Error("print failed", zap.String("invoiceId", inv.ID), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to print invoice")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Invoice sent to printer"})
}

// ShareInvoice sends the invoice summary to the customer over WhatsApp. The
// click-to-chat link is always returned so the operator can share by hand
// when messaging is not configured.
func (h *Handler) ShareInvoice(c *gin.Context) {
	inv, cust, ok := h.loadInvoice(c)
	if !ok {
		return
	}

	message := services.BuildShareMessage(h.Shop, inv, cust)
	phone := ""
	if cust != nil {
		phone = utils.WhatsAppNumber(cust.Phone)
	}
	resp := gin.H{
		"message": message,
		"url":     services.ShareURL(phone, message),
		"sent":    false,
	}
	if phone == "" || h.Messenger == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	sid, err := h.Messenger.Send(c.Request.Context(), phone, message)
	switch {
	case errors.Is(err, services.ErrMessagingDisabled):
	case err != nil:
		h.Logger.Warn("invoice share failed", zap.String("invoiceId", inv.ID), zap.Error(err))
		resp["error"] = "Failed to send WhatsApp message"
	default:
		resp["sent"] = true
		resp["sid"] = sid
	}
	c.JSON(http.StatusOK, resp)
}

func nonNil(invoices []models.Invoice) []models.Invoice {
	if invoices == nil {
		return []models.Invoice{}
	}
	return invoices
}
