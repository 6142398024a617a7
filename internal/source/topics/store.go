package topics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSchemaMissing — таблица topics ещё не создана (миграции не применены).
var ErrSchemaMissing = errors.New("topics schema missing")

// Topic — тема, отправленная пользователем (строка таблицы topics).
type Topic struct {
	ID        string
	Title     string
	URL       string
	Body      string
	Author    string
	Tags      []string
	Votes     int
	Comments  int
	CreatedAt time.Time
}

// Store — доступ к темам только на чтение.
type Store interface {
	RecentTopics(ctx context.Context, since time.Time, limit int) ([]Topic, error)
}

// PostgresStore реализует Store на pgxpool.
type PostgresStore struct {
	db *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore создаёт пул соединений и проверяет его пингом.
func NewPostgresStore(ctx context.Context, dbURL string) (*PostgresStore, error) {
	const op = "topics.NewPostgresStore"

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PostgresStore{db: db}, nil
}

// Close закрывает пул соединений.
func (s *PostgresStore) Close() {
	s.db.Close()
}

// RecentTopics возвращает темы со ссылкой, созданные не раньше since.
// Сортировка: created_at DESC, id DESC.
func (s *PostgresStore) RecentTopics(ctx context.Context, since time.Time, limit int) ([]Topic, error) {
	const op = "topics.RecentTopics"

	if limit <= 0 {
		limit = 1
	}

	rows, err := s.db.Query(ctx, `
		SELECT id::text, title, url, body, author, tags, votes, comments_count, created_at
		FROM topics
		WHERE url <> '' AND created_at >= $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, since.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, classify(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Topic, error) {
		var t Topic
		err := row.Scan(&t.ID, &t.Title, &t.URL, &t.Body, &t.Author, &t.Tags, &t.Votes, &t.Comments, &t.CreatedAt)
		t.CreatedAt = t.CreatedAt.UTC()
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: collect: %w", op, classify(err))
	}

	return out, nil
}

// classify выделяет отсутствие таблицы; pgx может вернуть её как из Query, так и из чтения строк.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return fmt.Errorf("%w: %s", ErrSchemaMissing, pgErr.Message)
	}

	return err
}
