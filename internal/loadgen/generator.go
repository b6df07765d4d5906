// Package loadgen drives a fixed-rate stream of order requests.
//
// A Generator owns at most one session at a time. Ticks are time-driven:
// each tick dispatches one order asynchronously without waiting for earlier
// ones, so requests may overlap when the backend is slower than the tick
// interval. Failed requests are logged one by one and never stop the
// session. Stopping cancels future ticks only; requests already in flight
// still report their outcome.
package loadgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wesleyorama2/comparedemo/internal/backend"
	dhttp "github.com/wesleyorama2/comparedemo/internal/http"
	"github.com/wesleyorama2/comparedemo/internal/logbuf"
	"github.com/wesleyorama2/comparedemo/internal/metrics"
)

// Placeholder identifiers used when the order form is empty.
const (
	FallbackUserID    = "loadTestUser"
	FallbackProductID = "loadTestProd"
)

// StatusInactive is the status line shown while idle.
const StatusInactive = "Load generation inactive."

// statusEvery is how often a successful request refreshes the status line.
const statusEvery = 50

// ErrAlreadyRunning is returned by Start while a session is active.
var ErrAlreadyRunning = errors.New("load generation is already active")

// OrderSubmitter sends one order request.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, payload backend.OrderPayload) (interface{}, error)
}

// OrderForm holds the order inputs the load payload is built from.
type OrderForm struct {
	UserID    string
	ProductID string
}

// Payload returns the quantity-1 order for the form, substituting the
// placeholder identifiers for empty fields.
func (f OrderForm) Payload() backend.OrderPayload {
	p := backend.OrderPayload{UserID: f.UserID, ProductID: f.ProductID, Quantity: 1}
	if p.UserID == "" {
		p.UserID = FallbackUserID
	}
	if p.ProductID == "" {
		p.ProductID = FallbackProductID
	}
	return p
}

// Session is a snapshot of the generator state.
type Session struct {
	Active      bool   `json:"active"`
	Tier        string `json:"tier,omitempty"`
	Description string `json:"description"`
	SentCount   int64  `json:"sent"`
	Status      string `json:"status"`
}

// Options configures a Generator.
type Options struct {
	// Orders receives the generated requests. Required.
	Orders OrderSubmitter
	// Notifier is told about start and stop. Optional.
	Notifier Notifier
	// Log receives the load log entries. Defaults to a new buffer.
	Log *logbuf.Buffer
	// Clock drives ticks. Defaults to RealClock.
	Clock Clock
	// Form is the initial order form.
	Form OrderForm
	// Recorder collects latencies. Optional.
	Recorder *metrics.Recorder
	// Logger receives diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
	// Context is the parent of every order request. Defaults to Background.
	Context context.Context
}

// Generator is the load generator. All methods are safe for concurrent use.
type Generator struct {
	orders   OrderSubmitter
	notifier Notifier
	log      *logbuf.Buffer
	clock    Clock
	recorder *metrics.Recorder
	logger   *slog.Logger
	ctx      context.Context

	// transition serializes Start, Stop and status refreshes so that the
	// log, status line and notifications of one transition never interleave
	// with another's.
	transition sync.Mutex

	mu          sync.Mutex
	active      bool
	ticker      Ticker
	done        chan struct{}
	generation  uint64
	tier        Tier
	description string
	sent        int64
	form        OrderForm
	status      string
	statusHooks []func(string)

	inflight sync.WaitGroup
}

// New creates an idle Generator.
func New(opts Options) *Generator {
	g := &Generator{
		orders:   opts.Orders,
		notifier: opts.Notifier,
		log:      opts.Log,
		clock:    opts.Clock,
		recorder: opts.Recorder,
		logger:   opts.Logger,
		ctx:      opts.Context,
		form:     opts.Form,
		status:   StatusInactive,
	}
	if g.log == nil {
		g.log = logbuf.New(logbuf.DefaultCapacity)
	}
	if g.clock == nil {
		g.clock = RealClock()
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.ctx == nil {
		g.ctx = context.Background()
	}
	return g
}

// Log returns the load log.
func (g *Generator) Log() *logbuf.Buffer {
	return g.log
}

// OnStatus registers fn to receive every status line change. Hooks run
// while the triggering transition is in progress and must not call Start or
// Stop synchronously.
func (g *Generator) OnStatus(fn func(string)) {
	g.mu.Lock()
	g.statusHooks = append(g.statusHooks, fn)
	g.mu.Unlock()
}

// SetOrderForm replaces the form used by the next Start.
func (g *Generator) SetOrderForm(form OrderForm) {
	g.mu.Lock()
	g.form = form
	g.mu.Unlock()
}

// Start begins a session at the given tier. While another session is active
// it logs a warning and returns ErrAlreadyRunning without touching it.
func (g *Generator) Start(tier Tier) error {
	g.transition.Lock()
	defer g.transition.Unlock()

	g.mu.Lock()
	if g.active {
		g.mu.Unlock()
		g.logger.Warn("load generation is already active; stop the current load first")
		g.log.Warnf("Load is already running. Stop it first.")
		return ErrAlreadyRunning
	}

	g.active = true
	g.generation++
	g.tier = tier
	g.description = tier.Description
	g.sent = 0

	gen := g.generation
	payload := g.form.Payload()
	ticker := g.clock.NewTicker(tier.Interval)
	done := make(chan struct{})
	g.ticker = ticker
	g.done = done
	if g.recorder != nil {
		g.recorder.Reset()
	}
	g.mu.Unlock()

	g.log.Clear()
	g.setStatus(fmt.Sprintf("Generating %s...", tier.Description))
	g.log.Infof("Starting %s (interval: %dms). Notifying script...", tier.Description, tier.Interval.Milliseconds())
	g.logger.Info("starting load generation", "tier", tier.Key, "interval", tier.Interval,
		"user_id", payload.UserID, "product_id", payload.ProductID)

	if g.notifier != nil {
		g.notifier.Notify(ActionStart, tier.Key)
	}

	go g.run(ticker, done, gen, payload)
	return nil
}

// Stop ends the active session and reports whether there was one.
func (g *Generator) Stop() bool {
	g.transition.Lock()
	defer g.transition.Unlock()

	g.mu.Lock()
	if !g.active {
		g.mu.Unlock()
		return false
	}

	g.active = false
	ticker := g.ticker
	g.ticker = nil
	close(g.done)
	g.done = nil
	stopped := g.description
	g.description = ""
	g.mu.Unlock()

	ticker.Stop()

	g.setStatus(StatusInactive)
	g.log.Infof("Load Stopped (%s). Notifying script...", stopped)
	g.logger.Info("stopped load generation", "description", stopped)

	if g.notifier != nil {
		g.notifier.Notify(ActionStop, "")
	}
	return true
}

// Active reports whether a session is running.
func (g *Generator) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Snapshot returns the current session state.
func (g *Generator) Snapshot() Session {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Session{
		Active:      g.active,
		Description: g.description,
		SentCount:   g.sent,
		Status:      g.status,
	}
	if g.active {
		s.Tier = g.tier.Key
	}
	return s
}

// Status returns the current status line.
func (g *Generator) Status() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Wait blocks until every dispatched order request has completed.
func (g *Generator) Wait() {
	g.inflight.Wait()
}

func (g *Generator) run(ticker Ticker, done <-chan struct{}, gen uint64, payload backend.OrderPayload) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C():
			if !g.tick(gen, payload) {
				return
			}
		}
	}
}

// tick dispatches one request if session gen is still the active one.
func (g *Generator) tick(gen uint64, payload backend.OrderPayload) bool {
	g.mu.Lock()
	if !g.active || g.generation != gen {
		g.mu.Unlock()
		return false
	}
	g.sent++
	n := g.sent
	description := g.description
	g.inflight.Add(1)
	g.mu.Unlock()

	if g.recorder != nil {
		g.recorder.RecordSent()
	}
	go g.dispatch(n, gen, description, payload)
	return true
}

func (g *Generator) dispatch(n int64, gen uint64, description string, payload backend.OrderPayload) {
	defer g.inflight.Done()

	start := time.Now()
	_, err := g.orders.SubmitOrder(g.ctx, payload)
	latency := time.Since(start)

	// Completions from a session that has since been restarted belong to
	// neither the old summary nor the new one.
	g.mu.Lock()
	if g.recorder != nil && g.generation == gen {
		g.recorder.RecordResult(latency, err == nil)
	}
	g.mu.Unlock()

	if err != nil {
		msg := fmt.Sprintf("Req %d: Error %s - %s", n, dhttp.StatusOf(err), dhttp.CompactJSON(dhttp.DataOf(err)))
		g.logger.Warn("load request failed", "request", n, "error", err)
		g.log.Append(logbuf.SeverityError, msg)
		return
	}

	if n%statusEvery != 0 {
		return
	}
	g.logger.Info(fmt.Sprintf("Sent %d load requests for %s.", n, description))

	// A late completion from a finished session must not overwrite the
	// idle status or a newer session's line.
	g.transition.Lock()
	defer g.transition.Unlock()

	g.mu.Lock()
	current := g.active && g.generation == gen
	g.mu.Unlock()
	if current {
		g.setStatus(fmt.Sprintf("Generating %s... (%d sent)", description, n))
	}
}

func (g *Generator) setStatus(status string) {
	g.mu.Lock()
	g.status = status
	hooks := make([]func(string), len(g.statusHooks))
	copy(hooks, g.statusHooks)
	g.mu.Unlock()

	for _, fn := range hooks {
		fn(status)
	}
}
