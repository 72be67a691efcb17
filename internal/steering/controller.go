package steering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Helm/internal/fuzzy"
	"github.com/MikeSquared-Agency/Helm/internal/hermes"
	"github.com/MikeSquared-Agency/Helm/internal/racingline"
)

// ErrOutOfRange is returned when a reading lies outside its variable range.
var ErrOutOfRange = errors.New("input out of range")

// AnonymousVehicle identifies readings that carry no vehicle id.
const AnonymousVehicle = "anonymous"

type Reading struct {
	VehicleID string  `json:"vehicle_id,omitempty"`
	Position  float64 `json:"position"`
	Velocity  float64 `json:"velocity"`
}

// Decision is one inference with the fuzzified inputs and the per-term
// activation of the output.
type Decision struct {
	ID            uuid.UUID      `json:"id"`
	VehicleID     string         `json:"vehicle_id"`
	Position      float64        `json:"position"`
	Velocity      float64        `json:"velocity"`
	Steering      float64        `json:"steering"`
	PositionTerms fuzzy.FuzzySet `json:"position_terms"`
	VelocityTerms fuzzy.FuzzySet `json:"velocity_terms"`
	SteeringTerms fuzzy.FuzzySet `json:"steering_terms"`
	Firings       []fuzzy.Firing `json:"firings"`
	Latency       time.Duration  `json:"-"`
	LatencyUs     int64          `json:"latency_us"`
	DecidedAt     time.Time      `json:"decided_at"`
}

// Stats are cumulative since the controller was created.
type Stats struct {
	Decisions    int64   `json:"decisions"`
	Rejected     int64   `json:"rejected"`
	MeanSteering float64 `json:"mean_steering"`
	MeanAbs      float64 `json:"mean_abs_steering"`
	AvgUs        float64 `json:"avg_latency_us"`
}

// Controller serialises access to one engine and reports every decision.
type Controller struct {
	hermes   hermes.Client
	logger   *slog.Logger
	interval time.Duration

	mu     sync.Mutex
	engine *fuzzy.Engine

	statsMu  sync.Mutex
	count    int64
	rejected int64
	sumSteer float64
	sumAbs   float64
	sumUs    float64

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New wraps engine, which must declare the racing line variables. h may be
// nil, in which case nothing is published.
func New(engine *fuzzy.Engine, h hermes.Client, statsInterval time.Duration, logger *slog.Logger) (*Controller, error) {
	for _, name := range []string{racingline.Position, racingline.Velocity} {
		if _, ok := engine.InputVariable(name); !ok {
			return nil, fmt.Errorf("engine %q has no input %s", engine.Name(), name)
		}
	}
	if _, ok := engine.OutputVariable(racingline.Steering); !ok {
		return nil, fmt.Errorf("engine %q has no output %s", engine.Name(), racingline.Steering)
	}
	return &Controller{
		engine:   engine,
		hermes:   h,
		logger:   logger,
		interval: statsInterval,
		stopCh:   make(chan struct{}),
	}, nil
}

// Decide validates r, runs one inference and returns the steering decision.
func (c *Controller) Decide(ctx context.Context, r Reading) (*Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.VehicleID == "" {
		r.VehicleID = AnonymousVehicle
	}
	if err := c.validate(r); err != nil {
		c.reject(r, err)
		return nil, err
	}

	start := time.Now()
	d, err := c.process(r)
	if err != nil {
		decisionsTotal.WithLabelValues(resultError).Inc()
		c.logger.Error("inference failed", "vehicle_id", r.VehicleID, "error", err)
		return nil, err
	}
	d.Latency = time.Since(start)
	d.LatencyUs = d.Latency.Microseconds()
	d.ID = uuid.New()
	d.DecidedAt = time.Now().UTC()

	decisionsTotal.WithLabelValues(resultOK).Inc()
	processSeconds.Observe(d.Latency.Seconds())
	lastSteering.Set(d.Steering)
	c.record(d)

	c.logger.Debug("steering decided",
		"vehicle_id", d.VehicleID,
		"position", d.Position,
		"velocity", d.Velocity,
		"steering", d.Steering,
		"fired", len(d.Firings),
	)
	c.publish(hermes.SubjectDecided(d.VehicleID), hermes.SteeringDecidedEvent{
		DecisionID: d.ID.String(),
		VehicleID:  d.VehicleID,
		Position:   d.Position,
		Velocity:   d.Velocity,
		Steering:   d.Steering,
		Terms:      termMap(d.SteeringTerms),
		LatencyUs:  d.LatencyUs,
		Timestamp:  d.DecidedAt,
	})
	return d, nil
}

func (c *Controller) validate(r Reading) error {
	values := map[string]float64{racingline.Position: r.Position, racingline.Velocity: r.Velocity}
	for _, name := range []string{racingline.Position, racingline.Velocity} {
		v, _ := c.engine.InputVariable(name)
		rng := v.Range()
		x := values[name]
		if math.IsNaN(x) || x < rng.Min || x > rng.Max {
			return fmt.Errorf("%w: %s=%v not in [%v, %v]", ErrOutOfRange, name, x, rng.Min, rng.Max)
		}
	}
	return nil
}

func (c *Controller) process(r Reading) (*Decision, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.engine.SetInput(racingline.Position, r.Position); err != nil {
		return nil, err
	}
	if err := c.engine.SetInput(racingline.Velocity, r.Velocity); err != nil {
		return nil, err
	}
	if err := c.engine.Process(); err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}
	steering, err := c.engine.Output(racingline.Steering)
	if err != nil {
		return nil, err
	}
	pos, _ := c.engine.Fuzzify(racingline.Position, r.Position)
	vel, _ := c.engine.Fuzzify(racingline.Velocity, r.Velocity)
	agg, _ := c.engine.AggregatedDegrees(racingline.Steering)

	return &Decision{
		VehicleID:     r.VehicleID,
		Position:      r.Position,
		Velocity:      r.Velocity,
		Steering:      steering,
		PositionTerms: pos,
		VelocityTerms: vel,
		SteeringTerms: agg,
		Firings:       c.engine.Firings(),
	}, nil
}

func (c *Controller) reject(r Reading, err error) {
	decisionsTotal.WithLabelValues(resultRejected).Inc()
	c.statsMu.Lock()
	c.rejected++
	c.statsMu.Unlock()

	c.logger.Warn("reading rejected", "vehicle_id", r.VehicleID, "error", err)
	c.publish(hermes.SubjectRejected(r.VehicleID), hermes.SteeringRejectedEvent{
		VehicleID: r.VehicleID,
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
	})
}

func (c *Controller) record(d *Decision) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	c.count++
	c.sumSteer += d.Steering
	c.sumAbs += math.Abs(d.Steering)
	c.sumUs += float64(d.LatencyUs)
}

func (c *Controller) publish(subject string, v interface{}) {
	if c.hermes == nil {
		return
	}
	if err := c.hermes.Publish(subject, v); err != nil {
		c.logger.Warn("failed to publish", "subject", subject, "error", err)
	}
}

// Stats returns the cumulative decision statistics.
func (c *Controller) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	s := Stats{Decisions: c.count, Rejected: c.rejected}
	if c.count > 0 {
		n := float64(c.count)
		s.MeanSteering = c.sumSteer / n
		s.MeanAbs = c.sumAbs / n
		s.AvgUs = c.sumUs / n
	}
	return s
}

// Fuzzify returns the degrees of value in any variable of the engine.
func (c *Controller) Fuzzify(variable string, value float64) (fuzzy.FuzzySet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Fuzzify(variable, value)
}

// FLL renders the engine in the FuzzyLite Language.
func (c *Controller) FLL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.FLL()
}

// Start subscribes to vehicle readings and runs the stats loop until Stop
// is called or ctx is done.
func (c *Controller) Start(ctx context.Context) error {
	if c.hermes != nil {
		if err := c.hermes.Subscribe(hermes.SubjectReadings, func(subject string, data []byte) {
			c.handleReading(ctx, subject, data)
		}); err != nil {
			return fmt.Errorf("subscribe readings: %w", err)
		}
		c.publish(hermes.SubjectEngineReady, c.readyEvent())
	}
	if c.interval > 0 {
		c.wg.Add(1)
		go c.statsLoop(ctx)
	}
	return nil
}

func (c *Controller) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
	c.wg.Wait()
}

func (c *Controller) handleReading(ctx context.Context, subject string, data []byte) {
	var evt hermes.ReadingEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		c.logger.Warn("bad reading payload", "subject", subject, "error", err)
		return
	}
	r := Reading{VehicleID: hermes.VehicleFromSubject(subject), Position: evt.Position, Velocity: evt.Velocity}
	// Failures are already logged and published by Decide.
	_, _ = c.Decide(ctx, r)
}

func (c *Controller) readyEvent() hermes.EngineReadyEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	evt := hermes.EngineReadyEvent{Engine: c.engine.Name(), Timestamp: time.Now().UTC()}
	for _, blk := range c.engine.RuleBlocks() {
		evt.Rules += len(blk.Rules())
	}
	if out, ok := c.engine.OutputVariable(racingline.Steering); ok {
		evt.Defuzzifier = out.Defuzzifier().Name()
		evt.Resolution = out.Defuzzifier().Resolution()
	}
	return evt
}

func (c *Controller) statsLoop(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.publishStats()
		}
	}
}

func (c *Controller) publishStats() {
	s := c.Stats()
	c.logger.Info("steering stats", "decisions", s.Decisions, "rejected", s.Rejected, "avg_us", s.AvgUs)
	c.publish(hermes.SubjectSteerStats, hermes.StatsEvent{
		Decisions:    s.Decisions,
		Rejected:     s.Rejected,
		MeanSteering: s.MeanSteering,
		MeanAbs:      s.MeanAbs,
		AvgUs:        s.AvgUs,
		Timestamp:    time.Now().UTC(),
	})
}

func termMap(set fuzzy.FuzzySet) map[string]float64 {
	m := make(map[string]float64, len(set))
	for _, d := range set {
		m[d.Term] = d.Value
	}
	return m
}
