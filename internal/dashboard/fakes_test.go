package dashboard

import (
	"errors"
	"sync"

	"air-quality-dashboard/internal/telemetry"
	"air-quality-dashboard/internal/view"
)

// fakeSink records everything displayed into one slot.
type fakeSink struct {
	displays []any
	errors   []string
}

func (s *fakeSink) Display(payload any)         { s.displays = append(s.displays, payload) }
func (s *fakeSink) DisplayError(message string) { s.errors = append(s.errors, message) }

func (s *fakeSink) lastDisplay() any {
	if len(s.displays) == 0 {
		return nil
	}
	return s.displays[len(s.displays)-1]
}

// fakeSlots resolves only the slots it was built with, like a page that is
// missing some elements.
type fakeSlots struct {
	sinks map[string]*fakeSink
}

func newFakeSlots(names ...string) *fakeSlots {
	slots := &fakeSlots{sinks: make(map[string]*fakeSink)}
	for _, name := range names {
		slots.sinks[name] = &fakeSink{}
	}
	return slots
}

func allSlots() *fakeSlots {
	return newFakeSlots(
		view.SlotDeviceList,
		view.SlotRealtime,
		view.SlotVehicleList,
		view.SlotDeviceInfo,
		view.SlotErrorMessage,
		view.SlotHistoryChart,
		view.SlotDailyAvgChart,
		view.SlotDetailChart,
		view.SlotMap,
		view.SlotDetailMap,
	)
}

func (f *fakeSlots) Lookup(name string) (view.Sink, bool) {
	sink, ok := f.sinks[name]
	return sink, ok
}

type fakeChart struct {
	slot      string
	destroyed bool
}

func (c *fakeChart) Destroy() { c.destroyed = true }

// fakeCharts records every chart created, so tests can assert the
// destroy-before-recreate contract. Guarded by a mutex because the
// scheduler tests create charts from the ticking goroutine.
type fakeCharts struct {
	mu        sync.Mutex
	available bool
	fail      bool
	created   []*fakeChart
}

func (f *fakeCharts) Available() bool { return f.available }

func (f *fakeCharts) New(slot string, kind view.ChartKind, label string, series telemetry.Series) (view.Chart, error) {
	if f.fail {
		return nil, errors.New("widget construction failed")
	}
	chart := &fakeChart{slot: slot}
	f.mu.Lock()
	f.created = append(f.created, chart)
	f.mu.Unlock()
	return chart, nil
}

func (f *fakeCharts) forSlot(slot string) []*fakeChart {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*fakeChart
	for _, chart := range f.created {
		if chart.slot == slot {
			out = append(out, chart)
		}
	}
	return out
}

func (f *fakeCharts) all() []*fakeChart {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*fakeChart(nil), f.created...)
}

type flight struct {
	lat, lon float64
	zoom     int
}

// fakeMap records marker operations for reconciliation assertions.
type fakeMap struct {
	available bool
	markers   map[string]view.Marker
	added     []string
	updated   []string
	removed   []string
	flights   []flight
	popups    []string
}

func newFakeMap() *fakeMap {
	return &fakeMap{available: true, markers: make(map[string]view.Marker)}
}

func (f *fakeMap) Available() bool { return f.available }

func (f *fakeMap) AddMarker(m view.Marker) {
	f.markers[m.DeviceID] = m
	f.added = append(f.added, m.DeviceID)
}

func (f *fakeMap) UpdateMarker(m view.Marker) {
	f.markers[m.DeviceID] = m
	f.updated = append(f.updated, m.DeviceID)
}

func (f *fakeMap) RemoveMarker(deviceID string) {
	delete(f.markers, deviceID)
	f.removed = append(f.removed, deviceID)
}

func (f *fakeMap) FlyTo(lat, lon float64, zoom int) {
	f.flights = append(f.flights, flight{lat: lat, lon: lon, zoom: zoom})
}

func (f *fakeMap) OpenPopup(deviceID string) {
	f.popups = append(f.popups, deviceID)
}
