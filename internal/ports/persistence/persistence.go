package persistence

import "context"

// Persistence доступ к БД для репозиториев. Каждый вызов - отдельный statement, без транзакций.
type Persistence interface {
	// Get сканирует одну строку; нет строки - sql.ErrNoRows
	Get(ctx context.Context, dest any, query string, args ...any) error
	Select(ctx context.Context, dest any, query string, args ...any) error
	Exec(ctx context.Context, query string, args ...any) error
	// ExecWithResult возвращает число затронутых строк, на нём держатся условные UPDATE
	ExecWithResult(ctx context.Context, query string, args ...any) (int64, error)
	Ping(ctx context.Context) error
}
