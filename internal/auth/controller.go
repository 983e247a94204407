package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"flyviet/internal/shared/utils/response"
)

type Controller interface {
	Login(c *gin.Context)
	ChangePassword(c *gin.Context)
	GetMe(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.FormatValidationError(err))
		return
	}

	result, err := ctrl.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.RespondJSON(c, "error", http.StatusUnauthorized, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Login failed", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Login successful", result, nil)
}

func (ctrl *controller) ChangePassword(c *gin.Context) {
	adminID := c.GetString("admin_id")
	if adminID == "" {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.FormatValidationError(err))
		return
	}

	if err := ctrl.service.ChangePassword(c.Request.Context(), adminID, &req); err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			statusCode = http.StatusUnauthorized
		case errors.Is(err, ErrAdminNotFound):
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Password changed successfully", nil, nil)
}

func (ctrl *controller) GetMe(c *gin.Context) {
	response.RespondJSON(c, "success", http.StatusOK, "Authenticated", gin.H{
		"admin_id": c.GetString("admin_id"),
		"email":    c.GetString("admin_email"),
		"role":     c.GetString("admin_role"),
	}, nil)
}
