package pg

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Npcprogramming/Taro2.0/internal/ports/persistence"
)

// DB пул sqlx, который app открывает при старте и закрывает при shutdown
type DB struct {
	db *sqlx.DB
}

var _ persistence.Persistence = (*DB)(nil)

func NewDB(db *sqlx.DB) *DB {
	return &DB{db: db}
}

func (d *DB) Get(ctx context.Context, dest any, query string, args ...any) error {
	return d.db.GetContext(ctx, dest, query, args...)
}

func (d *DB) Select(ctx context.Context, dest any, query string, args ...any) error {
	return d.db.SelectContext(ctx, dest, query, args...)
}

func (d *DB) Exec(ctx context.Context, query string, args ...any) error {
	_, err := d.db.ExecContext(ctx, query, args...)
	return err
}

func (d *DB) ExecWithResult(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close закрывает пул; вызывается только владельцем соединения
func (d *DB) Close() error {
	return d.db.Close()
}
