package controllers

import (
	"errors"
	"net/http"
	"time"

	"fusiongear-backend/billing"
	"fusiongear-backend/document"
	"fusiongear-backend/printing"
	"fusiongear-backend/receipt"
	"fusiongear-backend/services"
	"fusiongear-backend/store"
	"fusiongear-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler carries the dependencies of the HTTP handlers.
type Handler struct {
	Store      store.Store
	Calculator *billing.Calculator
	Receipts   *receipt.Renderer
	Documents  *document.Renderer
	Printer    printing.Opener
	Messenger  services.Messenger
	Tokens     *utils.TokenIssuer
	Shop       receipt.Shop
	Logger     *zap.Logger
	Now        func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// respondStoreError maps store failures to HTTP responses. what names the
// missing record, e.g. "Customer".
func (h *Handler) respondStoreError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, what+" not found")
	case errors.Is(err, store.ErrDuplicate):
		utils.RespondWithError(c, http.StatusConflict, what+" already exists")
	default:
		h.Logger.Error("database error", zap.String("path", c.FullPath()), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
