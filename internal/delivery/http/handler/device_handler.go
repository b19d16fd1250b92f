package handler

import (
	"errors"
	"net/http"

	"air-quality-dashboard/internal/dashboard"
	"air-quality-dashboard/internal/registry"
	"air-quality-dashboard/internal/telemetry"
	"air-quality-dashboard/internal/view"
	appErrors "air-quality-dashboard/pkg/errors"
	"air-quality-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	registry  *registry.Registry
	generator *telemetry.Generator
}

func NewDeviceHandler(reg *registry.Registry, gen *telemetry.Generator) *DeviceHandler {
	return &DeviceHandler{registry: reg, generator: gen}
}

func (h *DeviceHandler) RegisterRoutes(router *gin.RouterGroup) {
	devices := router.Group("/devices")
	{
		devices.GET("", h.ListDevices)
		devices.GET("/:id", h.GetDevice)
		devices.GET("/:id/realtime", h.GetRealtime)
		devices.GET("/:id/history", h.GetHistory)
		devices.GET("/:id/vehicles", h.GetVehicles)
	}

	// The detail page resolves its device with a first-entry fallback, so
	// both the bare and the parameterised route are served.
	router.GET("/detail", h.GetDetail)
	router.GET("/detail/:id", h.GetDetail)
}

func (h *DeviceHandler) ListDevices(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Devices retrieved successfully", h.registry.Devices())
}

func (h *DeviceHandler) GetDevice(c *gin.Context) {
	device, err := h.registry.Find(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device retrieved successfully", device)
}

func (h *DeviceHandler) GetRealtime(c *gin.Context) {
	panel, err := dashboard.PanelFor(h.registry, h.generator, c.Param("id"))
	if err != nil {
		if errors.Is(err, appErrors.ErrDeviceNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Realtime reading retrieved successfully", panel)
}

func (h *DeviceHandler) GetHistory(c *gin.Context) {
	device, err := h.registry.Find(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	query, err := bindHistoryQuery(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	series := h.generator.DeviceHistory(device.ID, query.Days)
	utils.SuccessResponse(c, http.StatusOK, "Historical series retrieved successfully", series)
}

func (h *DeviceHandler) GetVehicles(c *gin.Context) {
	device, err := h.registry.Find(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle list retrieved successfully", dashboard.VehicleListFor(device))
}

// DetailResponse bundles everything the detail page needs in one call.
type DetailResponse struct {
	Device   *registry.Device  `json:"device"`
	Fields   view.DeviceDetail `json:"fields"`
	Vehicles view.VehicleList  `json:"vehicles"`
	History  telemetry.Series  `json:"history"`
}

// GetDetail resolves the requested device with the first-entry fallback:
// a missing or unknown ID never produces an empty page.
func (h *DeviceHandler) GetDetail(c *gin.Context) {
	device := h.registry.Resolve(c.Param("id"))
	if device == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "No device data available")
		return
	}

	query, err := bindHistoryQuery(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device detail retrieved successfully", DetailResponse{
		Device:   device,
		Fields:   dashboard.DetailFields(device),
		Vehicles: dashboard.VehicleListFor(device),
		History:  h.generator.DeviceHistory(device.ID, query.Days),
	})
}
