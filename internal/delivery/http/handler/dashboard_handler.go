package handler

import (
	"net/http"

	"air-quality-dashboard/internal/dashboard"
	"air-quality-dashboard/internal/registry"
	"air-quality-dashboard/internal/telemetry"
	"air-quality-dashboard/internal/view"
	"air-quality-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	controller *dashboard.Controller
	registry   *registry.Registry
	generator  *telemetry.Generator
	history    int
}

func NewDashboardHandler(controller *dashboard.Controller, reg *registry.Registry, gen *telemetry.Generator, historyDays int) *DashboardHandler {
	return &DashboardHandler{
		controller: controller,
		registry:   reg,
		generator:  gen,
		history:    historyDays,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	board := router.Group("/dashboard")
	{
		board.GET("", h.GetDashboard)
		board.POST("/select", h.SelectDevice)
	}

	series := router.Group("/telemetry")
	{
		series.GET("/history", h.GetAggregateHistory)
		series.GET("/daily-average", h.GetDailyAverages)
	}
}

// SnapshotResponse is the one-shot dashboard state for a fresh page load.
type SnapshotResponse struct {
	Cards      []view.DeviceCard  `json:"cards"`
	SelectedID string             `json:"selected_id,omitempty"`
	Realtime   view.RealtimePanel `json:"realtime"`
	History    telemetry.Series   `json:"history"`
	DailyAvg   telemetry.Series   `json:"daily_avg"`
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	selected := h.controller.Selected()

	devices := h.registry.Devices()
	cards := make([]view.DeviceCard, 0, len(devices))
	for i := range devices {
		device := &devices[i]
		cards = append(cards, view.DeviceCard{
			ID:       device.ID,
			Name:     device.Name,
			Status:   device.Status,
			Battery:  device.Battery,
			ImageURL: device.ImageURL,
			Active:   device.ID == selected,
		})
	}

	panel, err := dashboard.PanelFor(h.registry, h.generator, selected)
	if err != nil {
		// Selection of a device that later vanished from the registry;
		// fall back to the empty-selection prompt.
		panel, _ = dashboard.PanelFor(h.registry, h.generator, "")
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard snapshot retrieved successfully", SnapshotResponse{
		Cards:      cards,
		SelectedID: selected,
		Realtime:   panel,
		History:    h.generator.AggregateHistory(h.history),
		DailyAvg:   h.generator.DailyAverages(),
	})
}

// SelectRequest identifies the device to activate.
type SelectRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}

// SelectResponse reports whether the selection actually transitioned.
type SelectResponse struct {
	SelectedID string `json:"selected_id"`
	Changed    bool   `json:"changed"`
}

func (h *DashboardHandler) SelectDevice(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.registry.Find(req.DeviceID); err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	changed := h.controller.Select(req.DeviceID)
	utils.SuccessResponse(c, http.StatusOK, "Device selected", SelectResponse{
		SelectedID: req.DeviceID,
		Changed:    changed,
	})
}

func (h *DashboardHandler) GetAggregateHistory(c *gin.Context) {
	query, err := bindHistoryQuery(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Aggregate history retrieved successfully", h.generator.AggregateHistory(query.Days))
}

func (h *DashboardHandler) GetDailyAverages(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Daily averages retrieved successfully", h.generator.DailyAverages())
}
