package dashboard

import (
	"testing"

	"air-quality-dashboard/internal/registry"
	"air-quality-dashboard/internal/telemetry"
	"air-quality-dashboard/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(slots *fakeSlots, charts *fakeCharts, mapView *fakeMap) (*Controller, *registry.Registry) {
	reg := registry.Default()
	gen := telemetry.NewGenerator(reg)
	return NewController(reg, gen, slots, charts, mapView), reg
}

func TestInitRendersEverything(t *testing.T) {
	slots := allSlots()
	charts := &fakeCharts{available: true}
	mapView := newFakeMap()
	c, reg := newTestController(slots, charts, mapView)

	c.Init()

	// Device cards, one per registry entry, none active.
	cards, ok := slots.sinks[view.SlotDeviceList].lastDisplay().([]view.DeviceCard)
	require.True(t, ok)
	require.Len(t, cards, reg.Len())
	for _, card := range cards {
		assert.False(t, card.Active)
	}

	// Empty selection prompt.
	panel, ok := slots.sinks[view.SlotRealtime].lastDisplay().(view.RealtimePanel)
	require.True(t, ok)
	assert.NotEmpty(t, panel.Prompt)

	// Both charts, one instance each.
	assert.Len(t, charts.forSlot(view.SlotHistoryChart), 1)
	assert.Len(t, charts.forSlot(view.SlotDailyAvgChart), 1)

	// Every device has valid coordinates, so every device gets a marker.
	assert.Equal(t, reg.Len(), c.MarkerCount())
	assert.Len(t, mapView.added, reg.Len())
}

func TestSelectTransitionsAndRerenders(t *testing.T) {
	slots := allSlots()
	charts := &fakeCharts{available: true}
	mapView := newFakeMap()
	c, _ := newTestController(slots, charts, mapView)
	c.Init()

	changed := c.Select("dev001")
	assert.True(t, changed)
	assert.Equal(t, "dev001", c.Selected())

	cards := slots.sinks[view.SlotDeviceList].lastDisplay().([]view.DeviceCard)
	for _, card := range cards {
		assert.Equal(t, card.ID == "dev001", card.Active)
	}

	panel := slots.sinks[view.SlotRealtime].lastDisplay().(view.RealtimePanel)
	assert.Equal(t, "dev001", panel.DeviceID)
	assert.GreaterOrEqual(t, panel.ValuePPM, 300)

	require.Len(t, mapView.flights, 1)
	assert.Equal(t, 14, mapView.flights[0].zoom)
	assert.Equal(t, []string{"dev001"}, mapView.popups)
}

func TestSelectSameDeviceIsNoOp(t *testing.T) {
	slots := allSlots()
	charts := &fakeCharts{available: true}
	mapView := newFakeMap()
	c, _ := newTestController(slots, charts, mapView)
	c.Init()

	require.True(t, c.Select("dev002"))

	listRenders := len(slots.sinks[view.SlotDeviceList].displays)
	panelRenders := len(slots.sinks[view.SlotRealtime].displays)
	popups := len(mapView.popups)

	// Second select of the same device must not re-render anything, and in
	// particular must not re-open the popup.
	assert.False(t, c.Select("dev002"))
	assert.Len(t, slots.sinks[view.SlotDeviceList].displays, listRenders)
	assert.Len(t, slots.sinks[view.SlotRealtime].displays, panelRenders)
	assert.Len(t, mapView.popups, popups)
}

func TestSelectOfflineDeviceSkipsGenerator(t *testing.T) {
	slots := allSlots()
	charts := &fakeCharts{available: true}
	mapView := newFakeMap()
	c, _ := newTestController(slots, charts, mapView)
	c.Init()

	require.True(t, c.Select("dev003"))

	panel := slots.sinks[view.SlotRealtime].lastDisplay().(view.RealtimePanel)
	assert.True(t, panel.Offline)
	assert.Zero(t, panel.ValuePPM)
	assert.Equal(t, "Lalitpur-Ringroad", panel.DeviceName)
}

func TestSelectUnknownDeviceShowsErrorPlaceholder(t *testing.T) {
	slots := allSlots()
	charts := &fakeCharts{available: true}
	mapView := newFakeMap()
	c, _ := newTestController(slots, charts, mapView)
	c.Init()

	flights := len(mapView.flights)
	require.True(t, c.Select("dev999"))

	errs := slots.sinks[view.SlotRealtime].errors
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[len(errs)-1], "dev999")

	// No registry hit, no map movement.
	assert.Len(t, mapView.flights, flights)
}

func TestTickWithoutSelectionLeavesRealtimeAlone(t *testing.T) {
	slots := allSlots()
	charts := &fakeCharts{available: true}
	mapView := newFakeMap()
	c, _ := newTestController(slots, charts, mapView)

	c.Tick()
	c.Tick()

	// Realtime panel untouched.
	assert.Empty(t, slots.sinks[view.SlotRealtime].displays)

	// Daily-average chart rebuilt on each tick, previous instance
	// destroyed.
	dailyCharts := charts.forSlot(view.SlotDailyAvgChart)
	require.Len(t, dailyCharts, 2)
	assert.True(t, dailyCharts[0].destroyed)
	assert.False(t, dailyCharts[1].destroyed)
}

func TestTickWithSelectionRefreshesRealtime(t *testing.T) {
	slots := allSlots()
	charts := &fakeCharts{available: true}
	mapView := newFakeMap()
	c, _ := newTestController(slots, charts, mapView)

	require.True(t, c.Select("dev004"))
	panelRenders := len(slots.sinks[view.SlotRealtime].displays)

	c.Tick()
	assert.Len(t, slots.sinks[view.SlotRealtime].displays, panelRenders+1)
}

func TestMarkerReconciliationSkipsInvalidCoordinates(t *testing.T) {
	reg := registry.New([]registry.Device{
		{ID: "a", Name: "Alpha", Lat: 27.7, Lon: 85.3, Status: registry.StatusOnline},
		{ID: "b", Name: "Beta", Status: registry.StatusOnline}, // no coordinates
		{ID: "c", Name: "Gamma", Lat: 27.6, Lon: 85.4, Status: registry.StatusOffline},
	})
	gen := telemetry.NewGenerator(reg)
	slots := allSlots()
	charts := &fakeCharts{available: true}
	mapView := newFakeMap()
	c := NewController(reg, gen, slots, charts, mapView)

	c.Init()

	assert.Equal(t, 2, c.MarkerCount())
	assert.Len(t, mapView.markers, 2)
	assert.NotContains(t, mapView.markers, "b")

	// Offline devices still get a marker, flagged offline.
	assert.True(t, mapView.markers["c"].Offline)
}

func TestMarkerReconciliationUpdatesInPlace(t *testing.T) {
	slots := allSlots()
	charts := &fakeCharts{available: true}
	mapView := newFakeMap()
	c, reg := newTestController(slots, charts, mapView)

	c.Init()
	c.Init()

	// Second pass updates existing markers instead of re-adding them.
	assert.Len(t, mapView.added, reg.Len())
	assert.Len(t, mapView.updated, reg.Len())
	assert.Empty(t, mapView.removed)
	assert.Equal(t, reg.Len(), c.MarkerCount())
}

func TestChartCapabilityMissing(t *testing.T) {
	slots := allSlots()
	charts := &fakeCharts{available: false}
	mapView := newFakeMap()
	c, _ := newTestController(slots, charts, mapView)

	c.Init()

	assert.Empty(t, charts.created)
	assert.Contains(t, slots.sinks[view.SlotHistoryChart].errors, "Error: Unable to load chart")
	assert.Contains(t, slots.sinks[view.SlotDailyAvgChart].errors, "Error: Unable to load chart")
}

func TestMapCapabilityMissing(t *testing.T) {
	slots := allSlots()
	charts := &fakeCharts{available: true}
	mapView := newFakeMap()
	mapView.available = false
	c, _ := newTestController(slots, charts, mapView)

	c.Init()

	assert.Zero(t, c.MarkerCount())
	assert.Contains(t, slots.sinks[view.SlotMap].errors, "Error: Unable to load map")
}

func TestMissingSlotsAreTolerated(t *testing.T) {
	// A page with no realtime display and no device list: renders are
	// skipped, nothing panics, the map still works.
	slots := newFakeSlots(view.SlotMap, view.SlotHistoryChart, view.SlotDailyAvgChart)
	charts := &fakeCharts{available: true}
	mapView := newFakeMap()
	c, reg := newTestController(slots, charts, mapView)

	c.Init()
	require.True(t, c.Select("dev001"))

	assert.Equal(t, reg.Len(), c.MarkerCount())
	require.Len(t, mapView.popups, 1)
}

func TestCloseDestroysCharts(t *testing.T) {
	slots := allSlots()
	charts := &fakeCharts{available: true}
	mapView := newFakeMap()
	c, _ := newTestController(slots, charts, mapView)

	c.Init()
	c.Close()

	for _, chart := range charts.created {
		assert.True(t, chart.destroyed)
	}
}

func TestChartCreationFailureShowsError(t *testing.T) {
	slots := allSlots()
	charts := &fakeCharts{available: true, fail: true}
	mapView := newFakeMap()
	c, _ := newTestController(slots, charts, mapView)

	c.Init()

	assert.Contains(t, slots.sinks[view.SlotHistoryChart].errors, "Error: Unable to load chart")
}
