package controllers

import (
	"net/http"
	"strings"

	"fusiongear-backend/models"
	"fusiongear-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address"`
	BikeModel  string `json:"bikeModel"`
	BikeNumber string `json:"bikeNumber" binding:"required"`
	KMReading  int64  `json:"kmReading" binding:"min=0"`
	FuelLevel  string `json:"fuelLevel"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	BikeModel  *string `json:"bikeModel"`
	BikeNumber *string `json:"bikeNumber"`
	KMReading  *int64  `json:"kmReading" binding:"omitempty,min=0"`
	FuelLevel  *string `json:"fuelLevel"`
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate phone format
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	customer := models.CustomerProfile{
		CreatedByUserID: userID,
		Name:            strings.TrimSpace(input.Name),
		Phone:           utils.CleanPhone(input.Phone),
		Address:         input.Address,
		BikeModel:       input.BikeModel,
		BikeNumber:      strings.ToUpper(strings.TrimSpace(input.BikeNumber)),
		KMReading:       input.KMReading,
		FuelLevel:       input.FuelLevel,
	}
	if err := h.Store.CreateCustomer(c.Request.Context(), &customer); err != nil {
		h.respondStoreError(c, err, "Customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) GetCustomers(c *gin.Context) {
	customers, err := h.Store.ListCustomers(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "Customer")
		return
	}
	if customers == nil {
		customers = []models.CustomerProfile{}
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	customer, err := h.Store.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.respondStoreError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	customer, err := h.Store.GetCustomer(ctx, id)
	if err != nil {
		h.respondStoreError(c, err, "Customer")
		return
	}

	// Update fields if provided
	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = utils.CleanPhone(*input.Phone)
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.BikeModel != nil {
		customer.BikeModel = *input.BikeModel
	}
	if input.BikeNumber != nil {
		customer.BikeNumber = strings.ToUpper(strings.TrimSpace(*input.BikeNumber))
	}
	if input.KMReading != nil {
		customer.KMReading = *input.KMReading
	}
	if input.FuelLevel != nil {
		customer.FuelLevel = *input.FuelLevel
	}

	if err := h.Store.UpdateCustomer(ctx, &customer); err != nil {
		h.respondStoreError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.respondStoreError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
