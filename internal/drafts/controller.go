package drafts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"flyviet/internal/promotions"
	"flyviet/internal/shared/utils/response"
)

type Controller interface {
	StartDraft(c *gin.Context)
	GetDraft(c *gin.Context)
	SelectFlight(c *gin.Context)
	ResetSelection(c *gin.Context)
	SetCustomer(c *gin.Context)
	SetServices(c *gin.Context)
	ApplyPromo(c *gin.Context)
	ClearDraft(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func draftToken(c *gin.Context) string {
	token, _ := c.Get("draft_token")
	if s, ok := token.(string); ok {
		return s
	}
	return ""
}

func respondDraftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDraftNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrVersionConflict):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrWrongStage),
		errors.Is(err, ErrPassengerMismatch),
		errors.Is(err, ErrInvalidPhone):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case errors.Is(err, promotions.ErrPromotionNotFound),
		errors.Is(err, promotions.ErrPromotionInvalid),
		errors.Is(err, promotions.ErrPromotionExpired),
		errors.Is(err, promotions.ErrPromotionDepleted):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	}
}

func (ctrl *controller) StartDraft(c *gin.Context) {
	var req StartDraftRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.FormatValidationError(err))
		return
	}

	draft, err := ctrl.service.StartDraft(c.Request.Context(), req)
	if err != nil {
		respondDraftError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking draft created", draft, nil)
}

func (ctrl *controller) GetDraft(c *gin.Context) {
	draft, err := ctrl.service.GetDraft(c.Request.Context(), draftToken(c))
	if err != nil {
		respondDraftError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking draft retrieved", draft, nil)
}

func (ctrl *controller) SelectFlight(c *gin.Context) {
	var req SelectFlightRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.FormatValidationError(err))
		return
	}

	draft, err := ctrl.service.SelectFlight(c.Request.Context(), draftToken(c), req)
	if err != nil {
		respondDraftError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Flight selected", draft, nil)
}

func (ctrl *controller) ResetSelection(c *gin.Context) {
	draft, err := ctrl.service.ResetSelection(c.Request.Context(), draftToken(c))
	if err != nil {
		respondDraftError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Selection reset", draft, nil)
}

func (ctrl *controller) SetCustomer(c *gin.Context) {
	var req SetCustomerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.FormatValidationError(err))
		return
	}

	draft, err := ctrl.service.SetCustomer(c.Request.Context(), draftToken(c), req)
	if err != nil {
		respondDraftError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Customer information saved", draft, nil)
}

func (ctrl *controller) SetServices(c *gin.Context) {
	var req SetServicesRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.FormatValidationError(err))
		return
	}

	draft, err := ctrl.service.SetServices(c.Request.Context(), draftToken(c), req)
	if err != nil {
		respondDraftError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Services updated", draft, nil)
}

func (ctrl *controller) ApplyPromo(c *gin.Context) {
	var req ApplyPromoRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.FormatValidationError(err))
		return
	}

	draft, err := ctrl.service.ApplyPromo(c.Request.Context(), draftToken(c), req)
	if err != nil {
		respondDraftError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Promotion applied", draft, nil)
}

func (ctrl *controller) ClearDraft(c *gin.Context) {
	if err := ctrl.service.ClearDraft(c.Request.Context(), draftToken(c)); err != nil {
		respondDraftError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking draft cleared", nil, nil)
}
