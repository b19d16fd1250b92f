package registry

import (
	"fmt"

	appErrors "air-quality-dashboard/pkg/errors"
)

// Registry is the static, ordered set of known devices for the session.
// It is populated once at startup and never mutated afterwards, so reads
// need no synchronization.
type Registry struct {
	devices []Device
	byID    map[string]*Device
}

// New builds a registry from the given devices, preserving order.
func New(devices []Device) *Registry {
	r := &Registry{
		devices: devices,
		byID:    make(map[string]*Device, len(devices)),
	}
	for i := range r.devices {
		r.byID[r.devices[i].ID] = &r.devices[i]
	}
	return r
}

// Default returns the registry seeded with the fixed set of Kathmandu
// valley monitoring stations.
func Default() *Registry {
	return New([]Device{
		{
			ID: "dev001", Name: "Kathmandu-Koteshwor",
			Lat: 27.6713, Lon: 85.3563,
			Status: StatusOnline, Battery: 85,
			ImageURL: "Koteshwar_(towards_airport).jpg",
			Vehicles: []Vehicle{
				{Type: "Truck", RegNumber: "BAG 1234", CO2Contribution: 150},
				{Type: "Bus", RegNumber: "BAG 5678", CO2Contribution: 120},
			},
		},
		{
			ID: "dev002", Name: "Kathmandu-Thamel",
			Lat: 27.7161, Lon: 85.3138,
			Status: StatusOnline, Battery: 92,
			ImageURL: "thamel-kathmandu.jpg",
			Vehicles: []Vehicle{
				{Type: "Car", RegNumber: "BAG 9012", CO2Contribution: 80},
			},
		},
		{
			ID: "dev003", Name: "Lalitpur-Ringroad",
			Lat: 27.6543, Lon: 85.3153,
			Status: StatusOffline, Battery: 20,
			ImageURL: "Ringroad.jpg",
			Vehicles: []Vehicle{},
		},
		{
			ID: "dev004", Name: "Kathmandu-Maitighar",
			Lat: 27.6970, Lon: 85.3182,
			Status: StatusOnline, Battery: 80,
			ImageURL: "Maitighar.jpg",
			Vehicles: []Vehicle{
				{Type: "Motorcycle", RegNumber: "BAG 3456", CO2Contribution: 50},
				{Type: "Van", RegNumber: "BAG 7890", CO2Contribution: 100},
			},
		},
	})
}

// Devices returns the devices in registry order. Callers must not mutate
// the returned slice.
func (r *Registry) Devices() []Device {
	return r.devices
}

// Find looks up a device by ID.
func (r *Registry) Find(id string) (*Device, error) {
	device, ok := r.byID[id]
	if !ok {
		return nil, appErrors.NewAppError(
			appErrors.CodeDeviceNotFound,
			fmt.Sprintf("Device %s not found", id),
			appErrors.ErrDeviceNotFound,
		)
	}
	return device, nil
}

// First returns the first registry entry. The detail view falls back to it
// when no device ID parameter is supplied or the supplied one is unknown.
func (r *Registry) First() *Device {
	if len(r.devices) == 0 {
		return nil
	}
	return &r.devices[0]
}

// Resolve returns the device for id, falling back to the first registry
// entry when id is empty or unknown. It never returns an empty result for
// a non-empty registry.
func (r *Registry) Resolve(id string) *Device {
	if id != "" {
		if device, err := r.Find(id); err == nil {
			return device
		}
	}
	return r.First()
}

// Len returns the number of registered devices.
func (r *Registry) Len() int {
	return len(r.devices)
}
