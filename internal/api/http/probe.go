package http

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pinger is anything the probe can check for reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeResult is the outcome of the most recent backend check.
type ProbeResult struct {
	Status    string    `json:"status"`
	CheckedAt time.Time `json:"checked_at,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// BackendProbe checks the projects backend on a cron schedule and remembers the result.
type BackendProbe struct {
	target  Pinger
	timeout time.Duration
	logger  *zap.Logger

	mu   sync.RWMutex
	last ProbeResult
	cron *cron.Cron
}

func NewBackendProbe(target Pinger, timeout time.Duration, logger *zap.Logger) *BackendProbe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackendProbe{
		target:  target,
		timeout: timeout,
		logger:  logger,
		last:    ProbeResult{Status: "unknown"},
	}
}

// Start runs one check immediately, then on every tick of schedule.
func (p *BackendProbe) Start(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { p.Check(context.Background()) }); err != nil {
		return err
	}

	p.mu.Lock()
	p.cron = c
	p.mu.Unlock()

	p.Check(context.Background())
	c.Start()
	p.logger.Info("backend probe started", zap.String("schedule", schedule))
	return nil
}

// Stop halts the schedule and waits for a running check to finish.
func (p *BackendProbe) Stop() {
	p.mu.RLock()
	c := p.cron
	p.mu.RUnlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// Check pings the backend once and records the result.
func (p *BackendProbe) Check(ctx context.Context) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res := ProbeResult{Status: "up", CheckedAt: time.Now().UTC()}
	if err := p.target.Ping(ctx); err != nil {
		res.Status = "down"
		res.Error = err.Error()
		p.logger.Warn("backend probe failed", zap.Error(err))
	}

	p.mu.Lock()
	p.last = res
	p.mu.Unlock()
	return res
}

// Last returns the most recent result.
func (p *BackendProbe) Last() ProbeResult {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}
