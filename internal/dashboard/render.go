package dashboard

import (
	"fmt"

	"air-quality-dashboard/internal/logger"
	"air-quality-dashboard/internal/registry"
	"air-quality-dashboard/internal/telemetry"
	"air-quality-dashboard/internal/view"

	"go.uber.org/zap"
)

const selectPrompt = "Select a device from the overview to see its real-time data."

// renderDeviceList redraws the device card list with the active highlight.
func (c *Controller) renderDeviceList() {
	sink, ok := c.slots.Lookup(view.SlotDeviceList)
	if !ok {
		logger.Error("Render slot not found, cannot render device list",
			zap.String("slot", view.SlotDeviceList),
		)
		return
	}

	devices := c.registry.Devices()
	cards := make([]view.DeviceCard, 0, len(devices))
	for i := range devices {
		device := &devices[i]
		cards = append(cards, view.DeviceCard{
			ID:       device.ID,
			Name:     device.Name,
			Status:   device.Status,
			Battery:  device.Battery,
			ImageURL: device.ImageURL,
			Active:   device.ID == c.selected,
		})
	}

	sink.Display(cards)
}

// renderRealtime writes the live reading panel for deviceID. An empty ID
// shows the selection prompt, an unknown ID an error placeholder, and an
// Offline device a fixed offline message without ever touching the
// generator.
func (c *Controller) renderRealtime(deviceID string) {
	sink, ok := c.slots.Lookup(view.SlotRealtime)
	if !ok {
		logger.Error("Render slot not found, cannot update realtime display",
			zap.String("slot", view.SlotRealtime),
		)
		return
	}

	renderRealtimePanel(sink, c.registry, c.gen, deviceID)
}

func (c *Controller) renderHistoryChart() {
	c.historyChart = c.renderChart(
		c.historyChart,
		view.SlotHistoryChart,
		view.ChartLine,
		"Overall Average Daily CO2 (PPM)",
		c.gen.AggregateHistory(c.historyDays),
	)
}

func (c *Controller) renderDailyAverageChart() {
	c.dailyAvgChart = c.renderChart(
		c.dailyAvgChart,
		view.SlotDailyAvgChart,
		view.ChartBar,
		"Current Average CO2 (PPM)",
		c.gen.DailyAverages(),
	)
}

// renderChart replaces one chart instance: the previous instance is
// destroyed before the new one is created so repeated refreshes cannot
// leak widgets. Returns the new instance, or nil when rendering failed.
func (c *Controller) renderChart(previous view.Chart, slot string, kind view.ChartKind, label string, series telemetry.Series) view.Chart {
	if !c.charts.Available() {
		c.displaySlotError(slot, "Error: Unable to load chart")
		return previous
	}

	if _, ok := c.slots.Lookup(slot); !ok {
		logger.Error("Canvas slot not found, cannot render chart",
			zap.String("slot", slot),
		)
		return previous
	}

	if previous != nil {
		previous.Destroy()
	}

	chart, err := c.charts.New(slot, kind, label, series)
	if err != nil {
		logger.Error("Failed to create chart",
			zap.String("slot", slot),
			zap.Error(err),
		)
		c.displaySlotError(slot, "Error: Unable to load chart")
		return nil
	}

	return chart
}

// displaySlotError writes a textual error into a slot when the visual
// widget cannot be drawn. A missing slot is only logged.
func (c *Controller) displaySlotError(slot, message string) {
	sink, ok := c.slots.Lookup(slot)
	if !ok {
		logger.Error("Render slot not found",
			zap.String("slot", slot),
		)
		return
	}
	sink.DisplayError(message)
}

func markerPopup(device *registry.Device) string {
	return fmt.Sprintf("<b>%s</b><br>ID: %s<br>Status: %s<br>Battery: %d%%",
		device.Name, device.ID, device.Status, device.Battery)
}
