package dashboard

import (
	"fmt"

	"air-quality-dashboard/internal/registry"
	"air-quality-dashboard/internal/telemetry"
	"air-quality-dashboard/internal/view"
)

// PanelFor builds the realtime panel payload for deviceID. An empty ID
// yields the selection prompt; an unknown ID yields ErrDeviceNotFound; an
// Offline device yields the fixed offline payload and the generator is
// never consulted.
func PanelFor(reg *registry.Registry, gen *telemetry.Generator, deviceID string) (view.RealtimePanel, error) {
	if deviceID == "" {
		return view.RealtimePanel{Prompt: selectPrompt}, nil
	}

	device, err := reg.Find(deviceID)
	if err != nil {
		return view.RealtimePanel{}, err
	}

	if device.IsOffline() {
		return view.RealtimePanel{
			DeviceID:   device.ID,
			DeviceName: device.Name,
			Offline:    true,
		}, nil
	}

	value := gen.CurrentReading(device.ID)
	return view.RealtimePanel{
		DeviceID:   device.ID,
		DeviceName: device.Name,
		ValuePPM:   value,
		Alert:      view.ClassifyReading(value),
	}, nil
}

// renderRealtimePanel writes one realtime panel payload into sink. Shared
// between the dashboard and detail controllers.
func renderRealtimePanel(sink view.Sink, reg *registry.Registry, gen *telemetry.Generator, deviceID string) {
	panel, err := PanelFor(reg, gen, deviceID)
	if err != nil {
		sink.DisplayError(fmt.Sprintf("Error: Device with ID %q not found", deviceID))
		return
	}
	sink.Display(panel)
}
