package controllers

import (
	"net/http"

	"fusiongear-backend/billing"
	"fusiongear-backend/utils"

	"github.com/gin-gonic/gin"
)

// BillInput is the billing form. Negative manual charges are accepted and
// treated as zero; anything above ten crore rupees is rejected.
type BillInput struct {
	Services       billing.ServiceSelection `json:"serviceType"`
	LabourCharges  int64                    `json:"labourCharges" binding:"lte=100000000"`
	SparePartsCost int64                    `json:"sparePartsCost" binding:"lte=100000000"`
	Discount       int64                    `json:"discount" binding:"lte=100000000"`
	GSTEnabled     bool                     `json:"gstEnabled"`
}

func (in BillInput) billingInput() billing.Input {
	return billing.Input{
		Services:       in.Services,
		LabourCharges:  in.LabourCharges,
		SparePartsCost: in.SparePartsCost,
		Discount:       in.Discount,
		GSTEnabled:     in.GSTEnabled,
	}
}

// CalculateBill previews the totals for a billing form without saving it.
func (h *Handler) CalculateBill(c *gin.Context) {
	var input BillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, h.Calculator.Calculate(input.billingInput()))
}

// GetPrices returns the fixed service price table.
func (h *Handler) GetPrices(c *gin.Context) {
	p := h.Calculator.Prices()
	c.JSON(http.StatusOK, gin.H{
		billing.NameOilChange:      p.OilChange,
		billing.NameGeneralService: p.GeneralService,
		billing.NameEngineRepair:   p.EngineRepair,
		billing.NameSpareParts:     p.SpareParts,
	})
}
