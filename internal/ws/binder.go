package ws

import (
	"air-quality-dashboard/internal/telemetry"
	"air-quality-dashboard/internal/view"
)

// Binder implements the view contracts (slots, chart factory, map widget)
// by broadcasting render frames through the hub. The browser side owns the
// actual chart.js/leaflet widgets; the server only streams instructions.
type Binder struct {
	hub *Hub
}

func NewBinder(hub *Hub) *Binder {
	return &Binder{hub: hub}
}

// Lookup always resolves: slot existence is a browser-side concern for the
// websocket binding, so frames are emitted unconditionally.
func (b *Binder) Lookup(name string) (view.Sink, bool) {
	return slotSink{hub: b.hub, slot: name}, true
}

type slotSink struct {
	hub  *Hub
	slot string
}

func (s slotSink) Display(payload any) {
	s.hub.Broadcast(Frame{Type: "slot", Slot: s.slot, Payload: payload})
}

func (s slotSink) DisplayError(message string) {
	s.hub.Broadcast(Frame{Type: "slot_error", Slot: s.slot, Message: message})
}

// ChartPayload is the create-frame body for chart widgets.
type ChartPayload struct {
	Kind   view.ChartKind   `json:"kind"`
	Label  string           `json:"label"`
	Series telemetry.Series `json:"series"`
}

func (b *Binder) Available() bool {
	return true
}

func (b *Binder) New(slot string, kind view.ChartKind, label string, series telemetry.Series) (view.Chart, error) {
	b.hub.Broadcast(Frame{
		Type: "chart",
		Op:   "create",
		Slot: slot,
		Payload: ChartPayload{
			Kind:   kind,
			Label:  label,
			Series: series,
		},
	})
	return &chartHandle{hub: b.hub, slot: slot}, nil
}

type chartHandle struct {
	hub  *Hub
	slot string
}

func (c *chartHandle) Destroy() {
	c.hub.Broadcast(Frame{Type: "chart", Op: "destroy", Slot: c.slot})
}

// Position is the fly-to frame body.
type Position struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom int     `json:"zoom"`
}

func (b *Binder) AddMarker(m view.Marker) {
	b.hub.Broadcast(Frame{Type: "map", Op: "add_marker", Payload: m})
}

func (b *Binder) UpdateMarker(m view.Marker) {
	b.hub.Broadcast(Frame{Type: "map", Op: "update_marker", Payload: m})
}

func (b *Binder) RemoveMarker(deviceID string) {
	b.hub.Broadcast(Frame{Type: "map", Op: "remove_marker", Payload: deviceID})
}

func (b *Binder) FlyTo(lat, lon float64, zoom int) {
	b.hub.Broadcast(Frame{Type: "map", Op: "fly_to", Payload: Position{Lat: lat, Lon: lon, Zoom: zoom}})
}

func (b *Binder) OpenPopup(deviceID string) {
	b.hub.Broadcast(Frame{Type: "map", Op: "open_popup", Payload: deviceID})
}
