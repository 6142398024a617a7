// registry — каталог источников: владеет экземплярами, раздаёт загрузку
// параллельно и собирает результат, изолируя сбои отдельных источников.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/pribylovaa/trending-curator/internal/source"
	"github.com/pribylovaa/trending-curator/pkg/log"
)

var (
	// ErrSourceNotFound — источник с таким id не зарегистрирован.
	ErrSourceNotFound = errors.New("source not found")
	// ErrSourceDisabled — источник зарегистрирован, но выключен.
	ErrSourceDisabled = errors.New("source disabled")
	// ErrDuplicateSource — попытка зарегистрировать второй источник с тем же id.
	ErrDuplicateSource = errors.New("duplicate source id")
)

// FetchObserver получает итог каждой загрузки источника (метрики).
type FetchObserver interface {
	ObserveFetch(sourceID string, took time.Duration, articles int, err error)
}

type entry struct {
	src     source.Source
	enabled atomic.Bool
}

// Registry — набор источников, зафиксированный при старте.
// Изменяемое состояние — только флаги enabled.
type Registry struct {
	order    []string
	entries  map[string]*entry
	observer FetchObserver
}

// Option настраивает Registry.
type Option func(*Registry)

// WithObserver подключает наблюдателя загрузок.
func WithObserver(o FetchObserver) Option {
	return func(r *Registry) { r.observer = o }
}

// New регистрирует источники в переданном порядке; все включены.
func New(sources []source.Source, opts ...Option) (*Registry, error) {
	const op = "registry.New"

	r := &Registry{entries: make(map[string]*entry, len(sources))}
	for _, o := range opts {
		o(r)
	}

	for _, s := range sources {
		if s == nil {
			continue
		}

		id := s.ID()
		if _, dup := r.entries[id]; dup {
			return nil, fmt.Errorf("%s: %w: %s", op, ErrDuplicateSource, id)
		}

		e := &entry{src: s}
		e.enabled.Store(true)
		r.entries[id] = e
		r.order = append(r.order, id)
	}

	return r, nil
}

// Source возвращает источник по id.
func (r *Registry) Source(id string) (source.Source, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, id)
	}

	return e.src, nil
}

// Sources возвращает все источники в порядке регистрации.
func (r *Registry) Sources() []source.Source {
	out := make([]source.Source, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].src)
	}

	return out
}

// EnabledSources возвращает включённые источники в порядке регистрации.
func (r *Registry) EnabledSources() []source.Source {
	out := make([]source.Source, 0, len(r.order))
	for _, id := range r.order {
		if e := r.entries[id]; e.enabled.Load() {
			out = append(out, e.src)
		}
	}

	return out
}

// IsEnabled сообщает состояние флага; неизвестный id — false.
func (r *Registry) IsEnabled(id string) bool {
	e, ok := r.entries[id]
	return ok && e.enabled.Load()
}

// EnableSource включает источник. Кэши других источников не затрагиваются.
func (r *Registry) EnableSource(id string) error {
	return r.setEnabled(id, true)
}

// DisableSource выключает источник.
func (r *Registry) DisableSource(id string) error {
	return r.setEnabled(id, false)
}

func (r *Registry) setEnabled(id string, v bool) error {
	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, id)
	}

	e.enabled.Store(v)
	return nil
}

// Descriptors возвращает публичные описания источников в порядке регистрации.
func (r *Registry) Descriptors() []models.SourceDescriptor {
	out := make([]models.SourceDescriptor, 0, len(r.order))
	for _, id := range r.order {
		e := r.entries[id]
		out = append(out, models.SourceDescriptor{
			ID:        id,
			Name:      e.src.Name(),
			Kind:      e.src.Kind(),
			Enabled:   e.enabled.Load(),
			RateLimit: e.src.RateLimitInfo(),
		})
	}

	return out
}

// FetchAllArticles параллельно опрашивает включённые источники.
// Упавший источник логируется и ничего не вносит; сам вызов не падает.
// Результаты склеиваются в порядке регистрации и дедуплицируются по URL
// (побеждает первое вхождение).
func (r *Registry) FetchAllArticles(ctx context.Context) []models.Article {
	const op = "registry.FetchAllArticles"

	lg := log.From(ctx)
	enabled := r.EnabledSources()
	perSource := make([][]models.Article, len(enabled))

	var g errgroup.Group
	for i, s := range enabled {
		g.Go(func() error {
			items, err := r.fetch(ctx, s)
			if err != nil {
				lg.Warn("source_fetch_failed",
					slog.String("op", op),
					slog.String("source", s.ID()),
					slog.String("err", err.Error()),
				)
				return nil
			}

			perSource[i] = items
			return nil
		})
	}
	_ = g.Wait()

	var all []models.Article
	for _, items := range perSource {
		all = append(all, items...)
	}

	return source.DedupeByURL(all)
}

// FetchArticlesFromSource загружает один источник напрямую.
func (r *Registry) FetchArticlesFromSource(ctx context.Context, id string) ([]models.Article, error) {
	const op = "registry.FetchArticlesFromSource"

	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrSourceNotFound, id)
	}

	if !e.enabled.Load() {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrSourceDisabled, id)
	}

	items, err := r.fetch(ctx, e.src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return source.DedupeByURL(items), nil
}

// CheckSourceAvailability параллельно пробует все зарегистрированные источники.
func (r *Registry) CheckSourceAvailability(ctx context.Context) map[string]bool {
	var (
		mu  sync.Mutex
		out = make(map[string]bool, len(r.order))
		g   errgroup.Group
	)

	for _, id := range r.order {
		s := r.entries[id].src
		g.Go(func() error {
			ok := source.Probe(ctx, s)

			mu.Lock()
			out[id] = ok
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// fetch вызывает источник, превращая панику в FetchError, и сообщает итог наблюдателю.
func (r *Registry) fetch(ctx context.Context, s source.Source) (items []models.Article, err error) {
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			items, err = nil, source.NewFetchError(s.ID(), fmt.Errorf("panic: %v", rec))
		}

		if r.observer != nil {
			r.observer.ObserveFetch(s.ID(), time.Since(start), len(items), err)
		}
	}()

	return s.FetchArticles(log.With(ctx, slog.String("source", s.ID())))
}
