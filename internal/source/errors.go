package source

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch — источник не смог отдать ни одной статьи.
	ErrFetch = errors.New("source fetch failed")
	// ErrMissingCredentials — у живого источника нет токена на момент вызова.
	ErrMissingCredentials = errors.New("missing credentials")
	// ErrAllQueriesFailed — упали все внутренние запросы многозапросного источника.
	ErrAllQueriesFailed = errors.New("all upstream queries failed")
)

// FetchError — ошибка загрузки конкретного источника.
// errors.Is(err, ErrFetch) истинно для любой FetchError.
type FetchError struct {
	SourceID string
	Err      error
}

// NewFetchError оборачивает причину в FetchError.
func NewFetchError(sourceID string, err error) *FetchError {
	return &FetchError{SourceID: sourceID, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("source %s: %s", e.SourceID, ErrFetch)
	}

	return fmt.Sprintf("source %s: %s: %v", e.SourceID, ErrFetch, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is делает FetchError сопоставимой с ErrFetch.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }
