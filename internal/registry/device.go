package registry

import "math"

type DeviceStatus string

const (
	StatusOnline  DeviceStatus = "Online"
	StatusOffline DeviceStatus = "Offline"
)

// Vehicle is a high-emission vehicle detected near a monitoring device.
type Vehicle struct {
	Type            string `json:"type"`
	RegNumber       string `json:"reg_number"`
	CO2Contribution int    `json:"co2_contribution"`
}

// Device is one air-quality monitoring station. Records are immutable for
// the lifetime of the process; there are no add/remove operations.
type Device struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Lat      float64      `json:"lat"`
	Lon      float64      `json:"lon"`
	Status   DeviceStatus `json:"status"`
	Battery  int          `json:"battery"`
	ImageURL string       `json:"image_url"`
	Vehicles []Vehicle    `json:"vehicles,omitempty"`
}

// IsOffline reports whether the device produces no live telemetry.
func (d *Device) IsOffline() bool {
	return d.Status == StatusOffline
}

// HasValidCoordinates reports whether the device can be placed on a map.
// Both coordinates must be present and finite; a zero coordinate is treated
// as absent.
func (d *Device) HasValidCoordinates() bool {
	if d.Lat == 0 || d.Lon == 0 {
		return false
	}
	if math.IsNaN(d.Lat) || math.IsInf(d.Lat, 0) {
		return false
	}
	if math.IsNaN(d.Lon) || math.IsInf(d.Lon, 0) {
		return false
	}
	return true
}
