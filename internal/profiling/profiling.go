package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU timing for the simulation update path.
// Frames are delimited by ResetFrame; totals accumulate until the next reset.

// Sample is the accumulated cost of one tracked operation within a frame.
type Sample struct {
	Name  string
	Total time.Duration
	Calls int
}

var (
	mu    sync.Mutex
	frame = make(map[string]*Sample)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("weather.Rain.Update")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s, ok := frame[name]
		if !ok {
			s = &Sample{Name: name}
			frame[name] = s
		}
		s.Total += d
		s.Calls++
		mu.Unlock()
	}
}

// ResetFrame clears the current frame's totals.
func ResetFrame() {
	mu.Lock()
	clear(frame)
	mu.Unlock()
}

// Snapshot returns the current frame's samples, most expensive first.
func Snapshot() []Sample {
	mu.Lock()
	out := make([]Sample, 0, len(frame))
	for _, s := range frame {
		out = append(out, *s)
	}
	mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total == out[j].Total {
			return out[i].Name < out[j].Name
		}
		return out[i].Total > out[j].Total
	})
	return out
}

// TopN formats the n most expensive samples of the current frame.
// Example: "weather.Rain.Update:4.2ms, weather.Clock.Update:0.1ms"
func TopN(n int) string {
	samples := Snapshot()
	if n > len(samples) {
		n = len(samples)
	}
	parts := make([]string, 0, n)
	for _, s := range samples[:n] {
		ms := float64(s.Total.Microseconds()) / 1000.0
		parts = append(parts, s.Name+":"+strconv.FormatFloat(ms, 'f', 1, 64)+"ms")
	}
	return strings.Join(parts, ", ")
}
