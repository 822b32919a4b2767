package monitoring

import (
	"context"
	"log/slog"
	"time"
)

const (
	HEALTHCHECK_TIMER   = 15
	HEALTHCHECK_TIMEOUT = 5 * time.Second
)

type HealthChecker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

type Status struct {
	Name    string        `json:"name"`
	Healthy bool          `json:"healthy"`
	Error   string        `json:"error,omitempty"`
	Latency time.Duration `json:"latency"`
}

func Check(ctx context.Context, checker HealthChecker) Status {
	ctx, cancel := context.WithTimeout(ctx, HEALTHCHECK_TIMEOUT)
	defer cancel()

	start := time.Now()
	err := checker.HealthCheck(ctx)
	status := Status{
		Name:    checker.Name(),
		Healthy: err == nil,
		Latency: time.Since(start),
	}
	if err != nil {
		status.Error = err.Error()
		slog.Warn("[HealthCheck] Backend is unhealthy",
			slog.String("backend", status.Name),
			slog.String("error", status.Error))
	}
	return status
}

func CheckAll(ctx context.Context, checkers ...HealthChecker) []Status {
	statuses := make([]Status, 0, len(checkers))
	for _, checker := range checkers {
		statuses = append(statuses, Check(ctx, checker))
	}
	return statuses
}

// Monitor checks every backend right away and then on every tick until ctx
// is done, handing each round to report.
func Monitor(ctx context.Context, interval time.Duration, report func([]Status), checkers ...HealthChecker) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	report(CheckAll(ctx, checkers...))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report(CheckAll(ctx, checkers...))
		}
	}
}
