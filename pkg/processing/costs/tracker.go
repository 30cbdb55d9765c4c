package costs

import (
	"sync"
	"time"
)

// Tracker accumulates in-memory usage totals across requests. Nothing is
// persisted; the tracker exists so the process can log periodic rollups
// and expose a snapshot without a storage backend.
type Tracker struct {
	mu       sync.Mutex
	since    time.Time
	requests int64
	perModel map[string]*modelTotals
}

type modelTotals struct {
	Requests  int64
	TokensIn  int64
	TokensOut int64
	CostUSD   float64
}

// Summary is a point-in-time snapshot of accumulated usage.
type Summary struct {
	// Since is when the current accumulation window started.
	Since time.Time

	// Requests is the total request count in the window.
	Requests int64

	// TokensIn and TokensOut are summed across all models.
	TokensIn  int64
	TokensOut int64

	// CostUSD is the summed estimated cost.
	CostUSD float64

	// Models is the number of distinct models seen.
	Models int
}

// NewTracker creates an empty tracker with the window starting now.
func NewTracker() *Tracker {
	return &Tracker{
		since:    time.Now(),
		perModel: make(map[string]*modelTotals),
	}
}

// Record adds one completed request to the running totals.
func (t *Tracker) Record(model string, tokensIn, tokensOut int, costUSD float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.requests++

	totals, ok := t.perModel[model]
	if !ok {
		totals = &modelTotals{}
		t.perModel[model] = totals
	}
	totals.Requests++
	totals.TokensIn += int64(tokensIn)
	totals.TokensOut += int64(tokensOut)
	totals.CostUSD += costUSD
}

// Snapshot returns the current totals without resetting them.
func (t *Tracker) Snapshot() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{
		Since:    t.since,
		Requests: t.requests,
		Models:   len(t.perModel),
	}
	for _, totals := range t.perModel {
		s.TokensIn += totals.TokensIn
		s.TokensOut += totals.TokensOut
		s.CostUSD += totals.CostUSD
	}
	return s
}

// Rollup returns the current totals and starts a fresh window. Intended
// for a periodic job that logs the summary.
func (t *Tracker) Rollup() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{
		Since:    t.since,
		Requests: t.requests,
		Models:   len(t.perModel),
	}
	for _, totals := range t.perModel {
		s.TokensIn += totals.TokensIn
		s.TokensOut += totals.TokensOut
		s.CostUSD += totals.CostUSD
	}

	t.since = time.Now()
	t.requests = 0
	t.perModel = make(map[string]*modelTotals)

	return s
}
