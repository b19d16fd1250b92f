package telemetry

import (
	"math"
	"math/rand"
	"time"

	"air-quality-dashboard/internal/registry"
)

// DefaultHistoryDays is the window used when no explicit day count is given.
const DefaultHistoryDays = 7

// Realtime reading bounds in PPM.
const (
	readingFloor   = 300
	readingCeiling = 2000
)

// Series is a labelled sequence of PPM values, oldest first, shaped the way
// chart widgets consume it.
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Per-device baselines for the realtime reading. Unknown IDs fall back to
// defaultBase.
var realtimeBase = map[string]float64{
	"dev001": 800,
	"dev002": 550,
	"dev003": 450,
	"dev004": 750,
}

// Per-device baselines for the per-device historical series.
var historyBase = map[string]float64{
	"dev001": 800,
	"dev002": 550,
	"dev003": 450,
	"dev004": 750,
}

const defaultBase = 400

// Generator produces synthetic CO2 telemetry. Readings are recomputed on
// every call and never cached; callers must treat values as within-range,
// not reproducible.
type Generator struct {
	registry *registry.Registry
}

func NewGenerator(reg *registry.Registry) *Generator {
	return &Generator{registry: reg}
}

// CurrentReading returns the instantaneous PPM value for a device:
// its baseline plus a uniform jitter of ±100, clamped to [300, 2000].
func (g *Generator) CurrentReading(deviceID string) int {
	base, ok := realtimeBase[deviceID]
	if !ok {
		base = defaultBase
	}

	value := int(math.Round(base + (rand.Float64()*200 - 100)))
	return clamp(value, readingFloor, readingCeiling)
}

// AggregateHistory returns the cross-device daily history: a bounded random
// walk starting at 500, each step jittered by ±50 and clamped to
// [350, 1500]. The loop runs from days ago down to and including today, so
// the series has days+1 points for input days.
func (g *Generator) AggregateHistory(days int) Series {
	series := Series{
		Labels: make([]string, 0, days+1),
		Values: make([]int, 0, days+1),
	}

	now := time.Now()
	current := 500.0
	for i := days; i >= 0; i-- {
		series.Labels = append(series.Labels, now.AddDate(0, 0, -i).Format("Jan 2"))

		current = float64(clamp(int(math.Round(current+(rand.Float64()*100-50))), 350, 1500))
		series.Values = append(series.Values, int(current))
	}

	return series
}

// DeviceHistory returns the per-device daily history: each point is the
// device baseline jittered by ±50 and clamped to [300, 1500], independent
// of its neighbours. The loop runs from days-1 ago down to today, so the
// series has exactly days points. This intentionally differs from
// AggregateHistory's inclusive bound.
func (g *Generator) DeviceHistory(deviceID string, days int) Series {
	series := Series{
		Labels: make([]string, 0, days),
		Values: make([]int, 0, days),
	}

	base, ok := historyBase[deviceID]
	if !ok {
		base = 450
	}

	now := time.Now()
	for i := days - 1; i >= 0; i-- {
		series.Labels = append(series.Labels, now.AddDate(0, 0, -i).Format("Jan 2"))

		value := int(math.Round(base + (rand.Float64()*100 - 50)))
		series.Values = append(series.Values, clamp(value, 300, 1500))
	}

	return series
}

// DailyAverages returns one synthetic average per registry device, in
// registry order, labelled by device name. Values are the per-device
// average baseline jittered by ±50 with no clamping. Note that an Offline
// device still gets a (lower) average here even though the realtime path
// refuses to produce readings for it; both behaviours are kept as observed.
func (g *Generator) DailyAverages() Series {
	devices := g.registry.Devices()
	series := Series{
		Labels: make([]string, 0, len(devices)),
		Values: make([]int, 0, len(devices)),
	}

	for i := range devices {
		device := &devices[i]
		series.Labels = append(series.Labels, device.Name)
		series.Values = append(series.Values, int(math.Round(averageBase(device)+(rand.Float64()*100-50))))
	}

	return series
}

func averageBase(device *registry.Device) float64 {
	switch device.ID {
	case "dev001":
		return 900
	case "dev002":
		return 600
	case "dev003":
		if device.IsOffline() {
			return 380
		}
		return 400
	case "dev004":
		return 850
	default:
		return 500
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
