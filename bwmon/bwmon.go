// Package bwmon monitors data transfer speed for a streamed request. The host
// feeds it the size of every received chunk, independently of parsing, and
// reads back current/average/windowed speeds and an estimated remaining time.
package bwmon

import "time"

// Speeds below this are indistinguishable from a stalled transfer, and
// dividing by them produces nonsense estimates.
const minMeasurableSpeed = 0.1 // bytes per second

type Settings struct {
	// HistInterval is the minimal amount of time between two history records,
	// capping history memory independent of chunk frequency.
	HistInterval time.Duration
	// HistMaxSize is the maximal number of history records. Once exceeded, the
	// oldest record is dropped. Zero means unlimited.
	HistMaxSize int
}

func DefaultSettings() Settings {
	return Settings{
		HistInterval: 500 * time.Millisecond,
		HistMaxSize:  100,
	}
}

type record struct {
	at       time.Time
	received int64
}

// Monitor accumulates (time, bytes) samples of a single transfer. It is not
// safe for concurrent use, matching the one-goroutine-per-session model of
// the streamer it usually accompanies.
type Monitor struct {
	settings  Settings
	total     int64
	received  int64
	started   time.Time
	last      time.Time
	currSpeed float64
	avgSpeed  float64
	history   []record
	now       func() time.Time
}

// New creates a monitor for a transfer of total bytes. Zero total means the
// size isn't known in advance; remaining time is then unavailable.
func New(total int64, settings Settings) *Monitor {
	return &Monitor{
		settings: settings,
		total:    total,
		now:      time.Now,
	}
}

// Record updates all statistics with the size of a received chunk.
// Non-positive sizes are ignored.
func (m *Monitor) Record(size int) {
	if size <= 0 {
		return
	}

	now := m.now()
	if m.started.IsZero() {
		m.started = now
	}

	m.received += int64(size)

	if !m.last.IsZero() {
		if sinceLast := now.Sub(m.last); sinceLast > 0 {
			m.currSpeed = float64(size) / sinceLast.Seconds()
		}
	}

	if elapsed := now.Sub(m.started); elapsed > 0 {
		m.avgSpeed = float64(m.received) / elapsed.Seconds()
	}

	m.last = now

	if len(m.history) == 0 || now.Sub(m.history[len(m.history)-1].at) >= m.settings.HistInterval {
		m.history = append(m.history, record{at: now, received: m.received})
	}

	if m.settings.HistMaxSize > 0 && len(m.history) > m.settings.HistMaxSize {
		m.history = m.history[1:]
	}
}

// AvgSpeed calculates the average speed in bytes/sec between the most recent
// history record and the record lookBackSteps entries before it, falling back
// to the oldest available one. More stable than the instantaneous speed and
// more responsive than the lifetime average. Reports false until at least two
// history records exist.
func (m *Monitor) AvgSpeed(lookBackSteps int) (speed float64, ok bool) {
	if len(m.history) < 2 {
		return 0, false
	}

	start := m.history[len(m.history)-1]
	end := m.history[0]
	if len(m.history) > lookBackSteps {
		end = m.history[len(m.history)-1-lookBackSteps]
	}

	elapsed := start.at.Sub(end.at)
	if elapsed <= 0 {
		return 0, false
	}

	return float64(start.received-end.received) / elapsed.Seconds(), true
}

// RemainingTime estimates the time needed to complete the transfer, based on
// the last known instantaneous speed.
func (m *Monitor) RemainingTime() (remaining time.Duration, ok bool) {
	return m.RemainingTimeAt(m.currSpeed)
}

// RemainingTimeAt estimates the completion time at the given speed, commonly
// one obtained from AvgSpeed. Reports false if the total size is unknown or
// the speed is too low to measure.
func (m *Monitor) RemainingTimeAt(speed float64) (remaining time.Duration, ok bool) {
	if m.total == 0 || speed <= minMeasurableSpeed {
		return 0, false
	}

	seconds := float64(m.total-m.received) / speed
	return time.Duration(seconds * float64(time.Second)), true
}

// Total returns the declared size of the transfer, zero if unknown.
func (m *Monitor) Total() int64 {
	return m.total
}

// Received returns the number of bytes recorded so far.
func (m *Monitor) Received() int64 {
	return m.received
}

// Elapsed returns the time passed since the first recorded chunk.
func (m *Monitor) Elapsed() time.Duration {
	if m.started.IsZero() {
		return 0
	}

	return m.last.Sub(m.started)
}

// CurrentSpeed returns the instantaneous speed in bytes/sec, computed from
// the two most recent chunks.
func (m *Monitor) CurrentSpeed() float64 {
	return m.currSpeed
}

// AverageSpeed returns the lifetime average speed in bytes/sec.
func (m *Monitor) AverageSpeed() float64 {
	return m.avgSpeed
}
