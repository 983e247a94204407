package promotions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flyviet/internal/shared/utils/response"
)

type Controller interface {
	ValidatePromotion(c *gin.Context)
	CreatePromotion(c *gin.Context)
	UpdatePromotion(c *gin.Context)
	DeletePromotion(c *gin.Context)
	GetPromotion(c *gin.Context)
	GetAllPromotions(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ValidatePromotion(c *gin.Context) {
	var req ValidateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.FormatValidationError(err))
		return
	}

	result, err := ctrl.service.Validate(c.Request.Context(), req.Code, req.Total)
	if err != nil {
		// Invalid codes are a recoverable client condition, not a server error
		switch {
		case errors.Is(err, ErrPromotionNotFound),
			errors.Is(err, ErrPromotionInvalid),
			errors.Is(err, ErrPromotionExpired),
			errors.Is(err, ErrPromotionDepleted):
			response.RespondJSON(c, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Promotion validation failed", nil, err.Error())
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Promotion code is valid", result, nil)
}

func (ctrl *controller) CreatePromotion(c *gin.Context) {
	var req CreatePromotionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.FormatValidationError(err))
		return
	}

	promotion, err := ctrl.service.CreatePromotion(req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrDuplicateCode) {
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Promotion created successfully", promotion, nil)
}

func (ctrl *controller) UpdatePromotion(c *gin.Context) {
	promoID, err := uuid.Parse(c.Param("promoId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid promotion ID", nil, err.Error())
		return
	}

	var req UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.FormatValidationError(err))
		return
	}

	promotion, err := ctrl.service.UpdatePromotion(promoID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrPromotionNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Promotion updated successfully", promotion, nil)
}

func (ctrl *controller) DeletePromotion(c *gin.Context) {
	promoID, err := uuid.Parse(c.Param("promoId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid promotion ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeletePromotion(promoID); err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrPromotionNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Promotion deleted successfully", nil, nil)
}

func (ctrl *controller) GetPromotion(c *gin.Context) {
	promoID, err := uuid.Parse(c.Param("promoId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid promotion ID", nil, err.Error())
		return
	}

	promotion, err := ctrl.service.GetPromotion(promoID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrPromotionNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Promotion retrieved successfully", promotion, nil)
}

func (ctrl *controller) GetAllPromotions(c *gin.Context) {
	var query PromotionListQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	promotions, err := ctrl.service.GetAllPromotions(query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Promotions retrieved successfully", promotions, nil)
}
