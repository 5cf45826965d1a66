package controllers

import (
	"errors"
	"net/http"
	"strings"

	"fusiongear-backend/models"
	"fusiongear-backend/store"
	"fusiongear-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userJSON(u models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"phone": u.Phone,
		"role":  u.Role,
	}
}

func (h *Handler) issueToken(c *gin.Context, u models.User) (string, bool) {
	token, err := h.Tokens.GenerateToken(u.ID.String(), u.Role)
	if err != nil {
		h.Logger.Error("token generation failed", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return "", false
	}
	c.SetCookie("token", token, int(h.Tokens.Expiry().Seconds()), "/", "", true, true)
	return token, true
}

func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	user := models.User{
		Email:    strings.TrimSpace(input.Email),
		Phone:    utils.CleanPhone(input.Phone),
		Name:     input.Name,
		Password: input.Password, // Will be hashed in BeforeCreate hook
	}
	if err := h.Store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.RespondWithError(c, http.StatusConflict, "Email already registered")
			return
		}
		h.respondStoreError(c, err, "User")
		return
	}

	token, ok := h.issueToken(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    userJSON(user),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx := c.Request.Context()
	user, err := h.Store.FindUserByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.respondStoreError(c, err, "User")
		return
	}
	if !user.IsActive || !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, ok := h.issueToken(c, user)
	if !ok {
		return
	}

	// Update last login
	if err := h.Store.TouchLastLogin(ctx, user.ID, h.now()); err != nil {
		h.Logger.Warn("failed to record login", zap.String("userId", user.ID.String()), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userJSON(user),
	})
}

func (h *Handler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.Store.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}
