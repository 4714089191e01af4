// internal/repository/postgres/db.go
package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	xerrors "fieldserve-backend/internal/pkg/errors"
)

// pingGrace is how long a previous successful ping keeps the pool trusted
// without re-checking.
const pingGrace = 30 * time.Second

// Store owns the pgx pool together with a last-known-good timestamp.
// Acquire returns the pool when it was seen healthy recently and re-pings
// otherwise, so a dropped connection is retried on the next request rather
// than by an internal retry loop.
type Store struct {
	pool *pgxpool.Pool

	mu       sync.Mutex
	lastGood time.Time
}

// Connect establishes the primary data store connection. Dial and health
// check are bounded; the pool handles per-query timeouts via ctx.
func Connect(ctx context.Context, url string) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrConfig, fmt.Sprintf("invalid database url: %v", err))
	}
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, xerrors.Wrap(xerrors.ErrUnavailable, fmt.Sprintf("failed to ping database: %v", err))
	}

	return &Store{pool: pool, lastGood: time.Now()}, nil
}

// NewStore wraps an existing pool (used by tests and callers that manage
// the pool themselves).
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, lastGood: time.Now()}
}

// Acquire returns the live pool, re-verifying the connection when the last
// successful check is older than the grace window.
func (s *Store) Acquire(ctx context.Context) (*pgxpool.Pool, error) {
	s.mu.Lock()
	fresh := time.Since(s.lastGood) < pingGrace
	s.mu.Unlock()

	if fresh {
		return s.pool, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.pool.Ping(pingCtx); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrUnavailable, fmt.Sprintf("database unreachable: %v", err))
	}

	s.mu.Lock()
	s.lastGood = time.Now()
	s.mu.Unlock()
	return s.pool, nil
}

// Pool exposes the raw pool for repositories.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}
