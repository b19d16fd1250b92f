// Package view defines the contract between the dashboard core and the
// widget layer that actually draws things. The core never talks to a
// concrete chart or map library; it writes typed payloads into named slots
// and drives charts and markers through the small interfaces below.
package view

import "air-quality-dashboard/internal/telemetry"

// Named render slots the surrounding page must provide.
const (
	SlotDeviceList    = "device-list"
	SlotRealtime      = "realtime-display"
	SlotVehicleList   = "vehicle-list"
	SlotDeviceInfo    = "device-info"
	SlotErrorMessage  = "error-message"
	SlotHistoryChart  = "co2Chart"
	SlotDailyAvgChart = "dailyAvgChart"
	SlotDetailChart   = "historicalCo2Chart"
	SlotMap           = "map"
	SlotDetailMap     = "detail-map"
)

// Sink receives rendered content for one slot.
type Sink interface {
	// Display replaces the slot content with a typed payload.
	Display(payload any)
	// DisplayError replaces the slot content with an error message.
	DisplayError(message string)
}

// Slots resolves slot names to sinks. A false return means the slot is
// absent from the page; renderers log and skip, they never fail.
type Slots interface {
	Lookup(name string) (Sink, bool)
}

type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

// Chart is one live chart instance. It must be destroyed before a
// replacement is drawn into the same slot.
type Chart interface {
	Destroy()
}

// ChartFactory builds chart widgets into canvas slots.
type ChartFactory interface {
	// Available reports whether the charting capability is loaded at all.
	Available() bool
	New(slot string, kind ChartKind, label string, series telemetry.Series) (Chart, error)
}

// Marker carries everything a map marker needs to be drawn or updated.
type Marker struct {
	DeviceID string  `json:"device_id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Popup    string  `json:"popup"`
	Offline  bool    `json:"offline"`
}

// MapWidget is the black-box mapping collaborator. The core owns the
// reconciliation policy (remove gone, update existing, create new); the
// widget only executes primitive marker operations.
type MapWidget interface {
	Available() bool
	AddMarker(m Marker)
	UpdateMarker(m Marker)
	RemoveMarker(deviceID string)
	FlyTo(lat, lon float64, zoom int)
	OpenPopup(deviceID string)
}
