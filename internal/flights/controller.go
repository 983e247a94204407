package flights

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flyviet/internal/shared/utils/response"
)

type Controller interface {
	SearchFlights(c *gin.Context)
	GetFlight(c *gin.Context)
	CreateFlight(c *gin.Context)
	UpdateFlight(c *gin.Context)
	DeleteFlight(c *gin.Context)
	GetAllFlights(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) SearchFlights(c *gin.Context) {
	var query SearchQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid search parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.SearchFlights(c.Request.Context(), query)
	if err != nil {
		// The two empty cases are not errors to the caller; each gets its
		// own message so clients can render them differently.
		switch {
		case errors.Is(err, ErrNoFlights):
			response.RespondJSON(c, "success", http.StatusOK, err.Error(),
				SearchResult{Flights: []FlightResponse{}}, nil)
		case errors.Is(err, ErrAllFiltered):
			response.RespondJSON(c, "success", http.StatusOK, err.Error(),
				SearchResult{Flights: []FlightResponse{}}, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Flight search failed", nil, err.Error())
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Flights retrieved successfully", result, nil)
}

func (ctrl *controller) GetFlight(c *gin.Context) {
	flightID := c.Param("flightId")

	flight, err := ctrl.service.GetFlightByID(c.Request.Context(), flightID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrFlightNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Flight retrieved successfully", flight, nil)
}

func (ctrl *controller) CreateFlight(c *gin.Context) {
	var req CreateFlightRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.FormatValidationError(err))
		return
	}

	flight, err := ctrl.service.CreateFlight(req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrDuplicateFlight) {
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Flight created successfully", flight, nil)
}

func (ctrl *controller) UpdateFlight(c *gin.Context) {
	flightID, err := uuid.Parse(c.Param("flightId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	var req UpdateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.FormatValidationError(err))
		return
	}

	flight, err := ctrl.service.UpdateFlight(flightID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrFlightNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Flight updated successfully", flight, nil)
}

func (ctrl *controller) DeleteFlight(c *gin.Context) {
	flightID, err := uuid.Parse(c.Param("flightId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteFlight(flightID); err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrFlightNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Flight deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllFlights(c *gin.Context) {
	var query FlightListQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	flights, err := ctrl.service.GetAllFlights(query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Flights retrieved successfully", flights, nil)
}
