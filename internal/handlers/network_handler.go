package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/metro"
	"github.com/smarttransit/metro-ticketing/internal/models"
	"github.com/smarttransit/metro-ticketing/internal/services"
	"github.com/smarttransit/metro-ticketing/pkg/validator"
)

// NetworkHandler serves the network layout, distances and fares
type NetworkHandler struct {
	ticketing *services.TicketingService
	validator *validator.SerialValidator
	logger    *logrus.Logger
}

// NewNetworkHandler creates a new network handler
func NewNetworkHandler(ticketing *services.TicketingService, v *validator.SerialValidator, logger *logrus.Logger) *NetworkHandler {
	return &NetworkHandler{
		ticketing: ticketing,
		validator: v,
		logger:    logger,
	}
}

// ListLines handles GET /api/v1/lines
func (h *NetworkHandler) ListLines(c *gin.Context) {
	lines := h.ticketing.Network().Lines()

	response := make([]models.LineResponse, 0, len(lines))
	for _, line := range lines {
		stations := make([]models.StationResponse, 0, line.Len())
		for _, s := range line.Stations() {
			stations = append(stations, stationResponse(s))
		}
		response = append(response, models.LineResponse{
			Color:    line.Color().String(),
			Name:     line.Color().DisplayName(),
			Stations: stations,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"city":  h.ticketing.Network().City(),
		"lines": response,
	})
}

// GetStation handles GET /api/v1/lines/:color/stations/:name
func (h *NetworkHandler) GetStation(c *gin.Context) {
	color, err := metro.ParseLineColor(c.Param("color"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	name, err := h.validator.ValidateStation(c.Param("name"))
	if err != nil {
		validationError(c, err.Error())
		return
	}

	station, err := h.ticketing.Network().Station(color, name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stationResponse(station))
}

// Distance handles GET /api/v1/distance?from=&to=
func (h *NetworkHandler) Distance(c *gin.Context) {
	from, to, ok := h.stationPair(c)
	if !ok {
		return
	}

	response, err := h.ticketing.Distance(from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// OneWayFare handles GET /api/v1/fares/one-way?from=&to=
func (h *NetworkHandler) OneWayFare(c *gin.Context) {
	from, to, ok := h.stationPair(c)
	if !ok {
		return
	}

	quote, err := h.ticketing.Quote(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *NetworkHandler) stationPair(c *gin.Context) (string, string, bool) {
	from, err := h.validator.ValidateStation(c.Query("from"))
	if err != nil {
		validationError(c, "from: "+err.Error())
		return "", "", false
	}
	to, err := h.validator.ValidateStation(c.Query("to"))
	if err != nil {
		validationError(c, "to: "+err.Error())
		return "", "", false
	}
	return from, to, true
}

func stationResponse(s *metro.Station) models.StationResponse {
	resp := models.StationResponse{
		Name:                    s.Name(),
		Line:                    s.Line().Color().String(),
		LineName:                s.Line().Color().DisplayName(),
		Position:                s.Position(),
		TravelTimeToNextSeconds: int64(s.TravelTimeToNext().Seconds()),
		Transfers:               []models.TransferRef{},
	}
	if prev := s.Previous(); prev != nil {
		name := prev.Name()
		resp.Previous = &name
	}
	if next := s.Next(); next != nil {
		name := next.Name()
		resp.Next = &name
	}
	for _, t := range s.Transfers() {
		resp.Transfers = append(resp.Transfers, models.TransferRef{
			Line:    t.Line().Color().String(),
			Station: t.Name(),
		})
	}
	return resp
}
