package statistics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flyviet/internal/shared/utils/response"
)

type Controller interface {
	GetOverview(c *gin.Context)
	GetRevenueByDate(c *gin.Context)
	GetBookingsByDate(c *gin.Context)
	GetBookingsByPaymentStatus(c *gin.Context)
	GetPopularRoutes(c *gin.Context)
	ComparePeriods(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetOverview(c *gin.Context) {
	overview, err := ctrl.service.GetOverview(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Statistics overview retrieved", overview, nil)
}

func (ctrl *controller) GetRevenueByDate(c *gin.Context) {
	var query DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "from and to dates are required", nil, err.Error())
		return
	}

	points, err := ctrl.service.GetRevenueByDate(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Revenue series retrieved", points, nil)
}

func (ctrl *controller) GetBookingsByDate(c *gin.Context) {
	var query DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "from and to dates are required", nil, err.Error())
		return
	}

	points, err := ctrl.service.GetBookingsByDate(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Booking series retrieved", points, nil)
}

func (ctrl *controller) GetBookingsByPaymentStatus(c *gin.Context) {
	counts, err := ctrl.service.GetBookingsByPaymentStatus(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Payment status breakdown retrieved", counts, nil)
}

func (ctrl *controller) GetPopularRoutes(c *gin.Context) {
	var query RouteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	routes, err := ctrl.service.GetPopularRoutes(c.Request.Context(), query.Limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Popular routes retrieved", routes, nil)
}

func (ctrl *controller) ComparePeriods(c *gin.Context) {
	var query DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "from and to dates are required", nil, err.Error())
		return
	}

	comparison, err := ctrl.service.ComparePeriods(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Period comparison retrieved", comparison, nil)
}
