package dashboard

import (
	"sync"
	"time"

	"air-quality-dashboard/internal/logger"
	"air-quality-dashboard/internal/registry"
	"air-quality-dashboard/internal/telemetry"
	"air-quality-dashboard/internal/view"

	"go.uber.org/zap"
)

// DefaultRefreshInterval matches the observed 5 second dashboard refresh.
const DefaultRefreshInterval = 5 * time.Second

// Controller owns the dashboard view state: the current selection, the two
// chart instances, and the marker set. It is the single writer of all of
// them; every renderer runs under its lock so render cycles never
// interleave. Construct it at view-ready, Close it at teardown.
type Controller struct {
	registry *registry.Registry
	gen      *telemetry.Generator
	slots    view.Slots
	charts   view.ChartFactory
	mapView  view.MapWidget

	historyDays int

	mu            sync.Mutex
	selected      string
	markers       map[string]struct{}
	historyChart  view.Chart
	dailyAvgChart view.Chart
	scheduler     *Scheduler
}

// Option configures a Controller.
type Option func(*Controller)

// WithHistoryDays overrides the aggregate history window.
func WithHistoryDays(days int) Option {
	return func(c *Controller) {
		if days >= 0 {
			c.historyDays = days
		}
	}
}

func NewController(reg *registry.Registry, gen *telemetry.Generator, slots view.Slots, charts view.ChartFactory, mapView view.MapWidget, opts ...Option) *Controller {
	c := &Controller{
		registry:    reg,
		gen:         gen,
		slots:       slots,
		charts:      charts,
		mapView:     mapView,
		historyDays: telemetry.DefaultHistoryDays,
		markers:     make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Init performs the one-time view-ready render: device list, the empty
// selection prompt, both charts and the map markers.
func (c *Controller) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.renderDeviceList()
	c.renderRealtime(c.selected)
	c.renderHistoryChart()
	c.renderDailyAverageChart()
	c.reconcileMarkers()
}

// Selected returns the currently selected device ID, empty when nothing is
// selected.
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Select makes deviceID the active device. Selecting the already-active
// device is a no-op and triggers no re-render. On an actual transition the
// card list, the realtime panel and the map viewport are updated, in that
// order. Returns whether a transition happened.
func (c *Controller) Select(deviceID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == deviceID {
		return false
	}
	c.selected = deviceID

	c.renderDeviceList()
	c.renderRealtime(deviceID)

	device, err := c.registry.Find(deviceID)
	if err != nil {
		return true
	}
	if c.mapView.Available() && device.HasValidCoordinates() {
		c.mapView.FlyTo(device.Lat, device.Lon, 14)
		if _, ok := c.markers[device.ID]; ok {
			c.mapView.OpenPopup(device.ID)
		}
	}

	return true
}

// Tick is one refresh cycle: the realtime panel is refreshed only when a
// selection exists, the daily-average chart unconditionally.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected != "" {
		c.renderRealtime(c.selected)
	}
	c.renderDailyAverageChart()
}

// Start begins the periodic refresh. Stop it with Close.
func (c *Controller) Start(interval time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scheduler != nil {
		return
	}
	c.scheduler = NewScheduler(interval, c.Tick)
	c.scheduler.Start()
}

// Close cancels the refresh scheduler and destroys the chart instances.
func (c *Controller) Close() {
	c.mu.Lock()
	scheduler := c.scheduler
	c.scheduler = nil
	c.mu.Unlock()

	if scheduler != nil {
		scheduler.Stop()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.historyChart != nil {
		c.historyChart.Destroy()
		c.historyChart = nil
	}
	if c.dailyAvgChart != nil {
		c.dailyAvgChart.Destroy()
		c.dailyAvgChart = nil
	}
}

// MarkerCount returns the number of markers currently on the map.
func (c *Controller) MarkerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.markers)
}

// reconcileMarkers diffs the marker set against the registry: markers whose
// device is gone are removed, existing ones are updated in place, missing
// ones are created. Devices without valid coordinates are skipped with a
// warning and never crash the render.
func (c *Controller) reconcileMarkers() {
	if !c.mapView.Available() {
		c.displaySlotError(view.SlotMap, "Error: Unable to load map")
		return
	}

	current := make(map[string]struct{}, c.registry.Len())
	for _, device := range c.registry.Devices() {
		current[device.ID] = struct{}{}
	}
	for id := range c.markers {
		if _, ok := current[id]; !ok {
			c.mapView.RemoveMarker(id)
			delete(c.markers, id)
		}
	}

	devices := c.registry.Devices()
	for i := range devices {
		device := &devices[i]
		if !device.HasValidCoordinates() {
			logger.Warn("Invalid coordinates for device, skipping marker",
				zap.String("device_id", device.ID),
			)
			continue
		}

		marker := view.Marker{
			DeviceID: device.ID,
			Lat:      device.Lat,
			Lon:      device.Lon,
			Popup:    markerPopup(device),
			Offline:  device.IsOffline(),
		}

		if _, ok := c.markers[device.ID]; ok {
			c.mapView.UpdateMarker(marker)
		} else {
			c.mapView.AddMarker(marker)
			c.markers[device.ID] = struct{}{}
		}
	}
}
