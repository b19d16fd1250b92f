package dashboard

import (
	"fmt"
	"sync"
	"time"

	"air-quality-dashboard/internal/logger"
	"air-quality-dashboard/internal/registry"
	"air-quality-dashboard/internal/telemetry"
	"air-quality-dashboard/internal/view"

	"go.uber.org/zap"
)

// DetailController drives the per-device detail page. It is bound at
// construction to a single device resolved from the requested ID; an
// absent or unknown ID falls back to the first registry entry, never to an
// empty page.
type DetailController struct {
	registry *registry.Registry
	gen      *telemetry.Generator
	slots    view.Slots
	charts   view.ChartFactory
	mapView  view.MapWidget

	device      *registry.Device
	historyDays int

	mu        sync.Mutex
	chart     view.Chart
	scheduler *Scheduler
}

func NewDetailController(reg *registry.Registry, gen *telemetry.Generator, slots view.Slots, charts view.ChartFactory, mapView view.MapWidget, deviceID string) *DetailController {
	return &DetailController{
		registry:    reg,
		gen:         gen,
		slots:       slots,
		charts:      charts,
		mapView:     mapView,
		device:      reg.Resolve(deviceID),
		historyDays: telemetry.DefaultHistoryDays,
	}
}

// Device returns the device this page is bound to.
func (d *DetailController) Device() *registry.Device {
	return d.device
}

// Init renders the whole detail page: header fields, realtime panel,
// vehicle list, historical chart and the single-marker map.
func (d *DetailController) Init() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.device == nil {
		d.displaySlotError(view.SlotErrorMessage, "No device data available")
		return
	}

	d.renderDetails()
	d.renderRealtime()
	d.renderVehicleList()
	d.renderHistoryChart()
	d.renderMap()
}

// Tick refreshes the realtime panel for the bound device. Unlike the
// dashboard there is no selection gate; the page always has its device.
func (d *DetailController) Tick() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.device == nil {
		return
	}
	d.renderRealtime()
}

// Start begins the periodic realtime refresh.
func (d *DetailController) Start(interval time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.scheduler != nil {
		return
	}
	d.scheduler = NewScheduler(interval, d.Tick)
	d.scheduler.Start()
}

// Close cancels the refresh scheduler and destroys the chart instance.
func (d *DetailController) Close() {
	d.mu.Lock()
	scheduler := d.scheduler
	d.scheduler = nil
	d.mu.Unlock()

	if scheduler != nil {
		scheduler.Stop()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.chart != nil {
		d.chart.Destroy()
		d.chart = nil
	}
}

func (d *DetailController) renderDetails() {
	sink, ok := d.slots.Lookup(view.SlotDeviceInfo)
	if !ok {
		logger.Error("Render slot not found, cannot render device details",
			zap.String("slot", view.SlotDeviceInfo),
		)
		return
	}

	sink.Display(DetailFields(d.device))
}

func (d *DetailController) renderRealtime() {
	sink, ok := d.slots.Lookup(view.SlotRealtime)
	if !ok {
		logger.Error("Render slot not found, cannot update realtime display",
			zap.String("slot", view.SlotRealtime),
		)
		return
	}

	renderRealtimePanel(sink, d.registry, d.gen, d.device.ID)
}

func (d *DetailController) renderVehicleList() {
	sink, ok := d.slots.Lookup(view.SlotVehicleList)
	if !ok {
		logger.Error("Render slot not found, cannot render vehicle list",
			zap.String("slot", view.SlotVehicleList),
		)
		return
	}

	sink.Display(VehicleListFor(d.device))
}

func (d *DetailController) renderHistoryChart() {
	if !d.charts.Available() {
		d.displaySlotError(view.SlotDetailChart, "Error: Unable to load chart")
		return
	}

	if _, ok := d.slots.Lookup(view.SlotDetailChart); !ok {
		logger.Error("Canvas slot not found, cannot render historical chart",
			zap.String("slot", view.SlotDetailChart),
		)
		return
	}

	if d.chart != nil {
		d.chart.Destroy()
		d.chart = nil
	}

	series := d.gen.DeviceHistory(d.device.ID, d.historyDays)
	label := fmt.Sprintf("CO2 (PPM) - %s", d.device.Name)

	chart, err := d.charts.New(view.SlotDetailChart, view.ChartLine, label, series)
	if err != nil {
		logger.Error("Failed to create historical chart",
			zap.String("slot", view.SlotDetailChart),
			zap.Error(err),
		)
		d.displaySlotError(view.SlotDetailChart, "Error: Unable to load chart")
		return
	}
	d.chart = chart
}

func (d *DetailController) renderMap() {
	if !d.mapView.Available() {
		d.displaySlotError(view.SlotDetailMap, "Error: Unable to load map")
		return
	}

	if !d.device.HasValidCoordinates() {
		logger.Warn("Invalid coordinates for device, skipping detail map",
			zap.String("device_id", d.device.ID),
		)
		return
	}

	d.mapView.AddMarker(view.Marker{
		DeviceID: d.device.ID,
		Lat:      d.device.Lat,
		Lon:      d.device.Lon,
		Popup:    markerPopup(d.device),
		Offline:  d.device.IsOffline(),
	})
	d.mapView.FlyTo(d.device.Lat, d.device.Lon, 15)
	d.mapView.OpenPopup(d.device.ID)
}

func (d *DetailController) displaySlotError(slot, message string) {
	sink, ok := d.slots.Lookup(slot)
	if !ok {
		logger.Error("Render slot not found",
			zap.String("slot", slot),
		)
		return
	}
	sink.DisplayError(message)
}

// DetailFields builds the header payload for a device, substituting "N/A"
// for anything missing so no slot is left empty.
func DetailFields(device *registry.Device) view.DeviceDetail {
	detail := view.DeviceDetail{
		Name:     "N/A",
		ID:       "N/A",
		Status:   "N/A",
		Battery:  "N/A",
		Location: "N/A",
		ImageURL: view.PlaceholderImage,
	}
	if device == nil {
		return detail
	}

	if device.Name != "" {
		detail.Name = device.Name
	}
	if device.ID != "" {
		detail.ID = device.ID
	}
	if device.Status != "" {
		detail.Status = string(device.Status)
	}
	detail.Battery = fmt.Sprintf("%d", device.Battery)
	if device.HasValidCoordinates() {
		detail.Location = fmt.Sprintf("Lat: %v, Lon: %v", device.Lat, device.Lon)
	}
	if device.ImageURL != "" {
		detail.ImageURL = device.ImageURL
	}

	return detail
}

// VehicleListFor builds the vehicle panel payload: an offline message for
// offline devices, a "nothing detected" message for an empty list, and the
// vehicles themselves otherwise. An empty list is a distinct state from
// offline, not an error.
func VehicleListFor(device *registry.Device) view.VehicleList {
	if device.IsOffline() {
		return view.VehicleList{Message: "Device is offline. No vehicle data available"}
	}
	if len(device.Vehicles) == 0 {
		return view.VehicleList{Message: "No high emission vehicles detected"}
	}
	return view.VehicleList{Vehicles: device.Vehicles}
}
