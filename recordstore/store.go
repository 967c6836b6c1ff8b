// Package recordstore persists frame recordings in PostgreSQL.
package recordstore

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/plus3/bitshadow/config"
	"github.com/plus3/bitshadow/shadow"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store wraps a pgx connection pool.
type Store struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

func Open(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &Store{Pool: pool, log: log}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

// Migrate applies all pending migrations.
func (s *Store) Migrate(ctx context.Context) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(s.Pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Save writes records under session in one transaction. Frames already
// stored for the session are replaced.
func (s *Store) Save(ctx context.Context, session string, records []shadow.FrameRecord) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		world, items := rec.World, rec.Items
		if world == nil {
			world = map[string]any{}
		}
		if items == nil {
			items = []map[string]any{}
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO frame_records (session, frame, world, items)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (session, frame) DO UPDATE SET world = EXCLUDED.world, items = EXCLUDED.items`,
			session, rec.Frame, world, items,
		); err != nil {
			return fmt.Errorf("save frame %d: %w", rec.Frame, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("save commit: %w", err)
	}
	s.log.Debug("recording saved", zap.String("session", session), zap.Int("frames", len(records)))
	return nil
}

// Load returns the frames of session ordered by frame index.
func (s *Store) Load(ctx context.Context, session string) ([]shadow.FrameRecord, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT frame, world, items FROM frame_records WHERE session = $1 ORDER BY frame`,
		session,
	)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", session, err)
	}
	defer rows.Close()

	var out []shadow.FrameRecord
	for rows.Next() {
		var rec shadow.FrameRecord
		if err := rows.Scan(&rec.Frame, &rec.World, &rec.Items); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Sessions lists stored session names.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.Pool.Query(ctx, `SELECT DISTINCT session FROM frame_records ORDER BY session`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Delete removes every frame of session.
func (s *Store) Delete(ctx context.Context, session string) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM frame_records WHERE session = $1`, session)
	return err
}
