package pgtest

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/storage/pg"
)

// TestDatabase postgres в контейнере с применёнными миграциями
type TestDatabase struct {
	Container *postgres.PostgresContainer
	DB        *pg.DB
	URL       string
}

// SetupTestDatabase поднимает контейнер, прогоняет миграции и регистрирует очистку.
// В режиме -short тест пропускается.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()

	labels := map[string]string{
		"test":      "tarot-bot-repository",
		"test-name": t.Name(),
		"timestamp": time.Now().Format("20060102-150405"),
		"cleanup":   "auto",
	}

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("tarot_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(labels),
	)
	require.NoError(t, err)

	testDB := &TestDatabase{Container: container}
	t.Cleanup(func() {
		testDB.cleanup(t)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := &pg.Config{DSN: connStr}
	connConfig, err := cfg.ConnConfig()
	require.NoError(t, err)

	require.NoError(t, pg.RunMigrations(connConfig, slog.New(slog.DiscardHandler)))

	db, err := pg.Connect(connConfig)
	require.NoError(t, err)

	testDB.DB = pg.NewDB(db)
	testDB.URL = connStr
	return testDB
}

func (td *TestDatabase) cleanup(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Logf("panic during container cleanup (recovered): %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if td.DB != nil {
		_ = td.DB.Close()
	}
	if td.Container != nil {
		if err := td.Container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate test container: %v", err)
		}
	}
}
