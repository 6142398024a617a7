package grpc

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/pribylovaa/trending-curator/pkg/log"
)

// ServicePrefix — префикс имени health-сервиса источника.
const ServicePrefix = "source."

// Checker опрашивает доступность источников.
type Checker interface {
	CheckAvailability(ctx context.Context) map[string]bool
}

// StatusSetter — часть health.Server, которую использует репортёр.
type StatusSetter interface {
	SetServingStatus(service string, status healthpb.HealthCheckResponse_ServingStatus)
}

// AvailabilityObserver получает результат проверки каждого источника (метрики).
type AvailabilityObserver interface {
	SetAvailability(sourceID string, ok bool)
}

// HealthReporter периодически проверяет источники и публикует их статусы.
type HealthReporter struct {
	checker  Checker
	status   StatusSetter
	observer AvailabilityObserver
	interval time.Duration
}

// NewHealthReporter создаёт репортёр; observer может быть nil.
func NewHealthReporter(checker Checker, status StatusSetter, observer AvailabilityObserver, interval time.Duration) *HealthReporter {
	return &HealthReporter{
		checker:  checker,
		status:   status,
		observer: observer,
		interval: interval,
	}
}

// Run делает первую проверку сразу, затем по тикеру; останавливается по ctx.
func (r *HealthReporter) Run(ctx context.Context) error {
	const op = "grpc.HealthReporter.Run"

	if r.interval <= 0 {
		return errors.New(op + ": interval must be > 0")
	}

	lg := log.From(ctx)
	lg.Info("health_reporter_start", slog.String("op", op), slog.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.CheckOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			lg.Info("health_reporter_stop", slog.String("op", op))
			return nil
		case <-ticker.C:
			r.CheckOnce(ctx)
		}
	}
}

// CheckOnce — один проход: проверка всех источников и публикация статусов.
// Возвращает число доступных источников.
func (r *HealthReporter) CheckOnce(ctx context.Context) int {
	const op = "grpc.HealthReporter.CheckOnce"

	avail := r.checker.CheckAvailability(ctx)

	ids := make([]string, 0, len(avail))
	for id := range avail {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var up int
	for _, id := range ids {
		ok := avail[id]

		st := healthpb.HealthCheckResponse_NOT_SERVING
		if ok {
			st = healthpb.HealthCheckResponse_SERVING
			up++
		}

		r.status.SetServingStatus(ServicePrefix+id, st)
		if r.observer != nil {
			r.observer.SetAvailability(id, ok)
		}
	}

	log.From(ctx).Debug("health_checked",
		slog.String("op", op),
		slog.Int("sources", len(ids)),
		slog.Int("available", up),
	)

	return up
}
