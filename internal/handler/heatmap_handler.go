package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"heatshield/internal/auth"
	"heatshield/internal/errors"
	"heatshield/internal/model"
	"heatshield/internal/service"
)

// HeatmapHandler handles location reports and the heatmap listing.
type HeatmapHandler struct {
	heatmapService service.HeatmapService
}

// NewHeatmapHandler creates a new heatmap handler.
func NewHeatmapHandler(heatmapService service.HeatmapService) *HeatmapHandler {
	return &HeatmapHandler{heatmapService: heatmapService}
}

// SaveLocationRequest represents a location report.
type SaveLocationRequest struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Temperature *float64 `json:"temperature"`
}

var boundsParams = []string{"lat_min", "lat_max", "lon_min", "lon_max"}

// SampleResponse is one heatmap point.
type SampleResponse struct {
	ID          uint         `json:"id"`
	UserID      model.UserID `json:"user_id"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	Temperature *float64     `json:"temperature"`
	Timestamp   *string      `json:"timestamp"`
}

// SaveLocation godoc
// @Summary Report the caller's location and temperature
// @Tags heatmap
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveLocationRequest true "Location sample"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /heatmap/location [post]
func (h *HeatmapHandler) SaveLocation(c echo.Context) error {
	userID, err := auth.UserIDFrom(c)
	if err != nil {
		return fail(err)
	}

	var req SaveLocationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}

	_, err = h.heatmapService.SaveLocation(c.Request().Context(), userID, service.Sample{
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Temperature: req.Temperature,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, MessageResponse{Message: "Location saved successfully"})
}

// ListHeatmapData godoc
// @Summary List heatmap samples
// @Description Without parameters every sample is returned.
// @Tags heatmap
// @Produce json
// @Param lat_min query number false "Southern edge"
// @Param lat_max query number false "Northern edge"
// @Param lon_min query number false "Western edge"
// @Param lon_max query number false "Eastern edge"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} SampleResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /heatmap/heatmap-data [get]
func (h *HeatmapHandler) ListHeatmapData(c echo.Context) error {
	var (
		q      model.HeatmapQuery
		bounds model.BoundingBox
	)
	err := echo.QueryParamsBinder(c).
		Float64("lat_min", &bounds.LatMin).
		Float64("lat_max", &bounds.LatMax).
		Float64("lon_min", &bounds.LonMin).
		Float64("lon_max", &bounds.LonMax).
		Int("limit", &q.Limit).
		Int("offset", &q.Offset).
		BindError()
	if err != nil {
		return fail(errors.ErrInvalidQuery)
	}

	params := c.QueryParams()
	set := 0
	for _, name := range boundsParams {
		if params.Has(name) {
			set++
		}
	}
	switch set {
	case 0:
	case len(boundsParams):
		q.Bounds = &bounds
	default:
		return fail(errors.Validation("lat_min, lat_max, lon_min and lon_max must be given together"))
	}

	samples, err := h.heatmapService.ListHeatmapData(c.Request().Context(), q)
	if err != nil {
		return fail(err)
	}

	resp := make([]SampleResponse, 0, len(samples))
	for i := range samples {
		s := &samples[i]
		resp = append(resp, SampleResponse{
			ID:          s.ID,
			UserID:      s.UserID,
			Latitude:    s.Latitude,
			Longitude:   s.Longitude,
			Temperature: s.Temperature,
			Timestamp:   isoTime(&s.Timestamp),
		})
	}
	return c.JSON(http.StatusOK, resp)
}
