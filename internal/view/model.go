package view

import "air-quality-dashboard/internal/registry"

// PlaceholderImage is shown when a device has no image reference.
const PlaceholderImage = "./images/placeholder.jpg"

type AlertLevel string

const (
	AlertNone     AlertLevel = ""
	AlertElevated AlertLevel = "elevated"
	AlertHigh     AlertLevel = "high"
)

// ClassifyReading maps a PPM value to its alert level: above 1200 needs
// attention, above 800 is elevated.
func ClassifyReading(ppm int) AlertLevel {
	switch {
	case ppm > 1200:
		return AlertHigh
	case ppm > 800:
		return AlertElevated
	default:
		return AlertNone
	}
}

// DeviceCard is one entry of the device overview list.
type DeviceCard struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Status   registry.DeviceStatus `json:"status"`
	Battery  int                   `json:"battery"`
	ImageURL string                `json:"image_url"`
	Active   bool                  `json:"active"`
}

// RealtimePanel is the realtime display payload. Exactly one of Prompt,
// Offline or a reading is meaningful: Prompt is set when nothing is
// selected, Offline is set for offline devices, otherwise ValuePPM and
// Alert describe the live reading.
type RealtimePanel struct {
	DeviceID   string     `json:"device_id,omitempty"`
	DeviceName string     `json:"device_name,omitempty"`
	Prompt     string     `json:"prompt,omitempty"`
	Offline    bool       `json:"offline,omitempty"`
	ValuePPM   int        `json:"value_ppm,omitempty"`
	Alert      AlertLevel `json:"alert,omitempty"`
}

// VehicleList is the detail-page vehicle panel payload. Message is set when
// there is nothing to list (offline device, or no vehicles detected).
type VehicleList struct {
	Message  string             `json:"message,omitempty"`
	Vehicles []registry.Vehicle `json:"vehicles,omitempty"`
}

// DeviceDetail is the detail-page header payload. Missing fields are
// rendered as "N/A" so the page never shows empty slots.
type DeviceDetail struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Status   string `json:"status"`
	Battery  string `json:"battery"`
	Location string `json:"location"`
	ImageURL string `json:"image_url"`
}
