package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	server "github.com/Npcprogramming/Taro2.0/internal/adapters/primary/http"
	healthcheckController "github.com/Npcprogramming/Taro2.0/internal/adapters/primary/http/controllers/healthcheck"
	metricsController "github.com/Npcprogramming/Taro2.0/internal/adapters/primary/http/controllers/metrics"
	telegramController "github.com/Npcprogramming/Taro2.0/internal/adapters/primary/http/controllers/telegram"
	advisorAdapter "github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/advisor"
	alerterAdapter "github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/kafka"
	"github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/storage/files"
	"github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/storage/inmemory"
	"github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/storage/s3"
	tgAdapter "github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/telegram"
	"github.com/Npcprogramming/Taro2.0/internal/catalog"
	"github.com/Npcprogramming/Taro2.0/internal/pkg/metrics"
	"github.com/Npcprogramming/Taro2.0/internal/ports/cache"
	"github.com/Npcprogramming/Taro2.0/internal/ports/repository"
	"github.com/Npcprogramming/Taro2.0/internal/ports/service"
	"github.com/Npcprogramming/Taro2.0/internal/ports/storage"
	historyRepo "github.com/Npcprogramming/Taro2.0/internal/repository/history"
	profileRepo "github.com/Npcprogramming/Taro2.0/internal/repository/profile"
	subscriptionRepo "github.com/Npcprogramming/Taro2.0/internal/repository/subscription"
	alerterService "github.com/Npcprogramming/Taro2.0/internal/services/alerter"
	jobScheduler "github.com/Npcprogramming/Taro2.0/internal/services/jobs"
	"github.com/Npcprogramming/Taro2.0/internal/services/session"
	telegramService "github.com/Npcprogramming/Taro2.0/internal/services/telegram"
	tarotUsecase "github.com/Npcprogramming/Taro2.0/internal/usecases/tarot"
)

const metricsNamespace = "tarot_bot"

type Dependencies struct {
	DB              *sqlx.DB
	HTTPServer      *http.Server
	TelegramService *telegramService.Service
	TelegramClient  *tgAdapter.Client
	TelegramPoller  *tgAdapter.Poller
	KafkaProducer   *kafkaAdapter.Producer
	Cache           cache.Cache
	JobScheduler    *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	location, err := a.Cfg.Tarot.Location()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry, metricsNamespace)

	db, err := a.initPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	repos := a.initRepositories(db)
	external := a.initExternalServices()

	cards, err := catalog.LoadFile(a.Cfg.Tarot.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	a.Log.Info("catalog loaded", "cards", cards.Len())

	tgClient := tgAdapter.NewClient(a.Cfg.Telegram.BotToken, a.Log)
	if err := a.registerBotCommands(ctx, tgClient); err != nil {
		a.Log.Warn("failed to register bot commands", "error", err)
	}

	alerter := a.initAlerter(tgClient)

	tarot := tarotUsecase.New(
		repos.Profile,
		repos.Subscription,
		repos.History,
		session.NewStore(external.Cache, a.Cfg.Tarot.SessionTTL, a.Log),
		tgClient,
		external.Advisor,   // может быть nil
		external.Publisher, // может быть nil
		files.NewImageStore(a.Cfg.Tarot.ImagesDir, external.S3, a.Log),
		files.NewProofStore(a.Cfg.Tarot.ProofsDir, external.S3, a.Log),
		cards,
		m,
		tarotUsecase.Config{
			AdminIDs:       a.Cfg.Tarot.AdminIDs,
			Location:       location,
			PremiumPrice:   a.Cfg.Tarot.PremiumPrice,
			PaymentDetails: a.Cfg.Tarot.PaymentDetails,
			Contact:        a.Cfg.Tarot.Contact,
			PushPause:      a.Cfg.Tarot.PushPause,
		},
		a.Log,
	)
	if len(a.Cfg.Tarot.AdminIDs) == 0 {
		a.Log.Warn("no admin ids configured, payment proofs and feedback will not be delivered")
	}

	tgService := telegramService.New(tarot, m, a.Log)

	httpServer := a.initHTTP(db, external.Redis, tgService, registry)
	poller, err := a.initTelegramMode(ctx, tgService, tgClient)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram mode: %w", err)
	}

	scheduler, err := a.initJobScheduler(alerter, tarot)
	if err != nil {
		return nil, fmt.Errorf("failed to init job scheduler: %w", err)
	}

	return &Dependencies{
		DB:              db,
		HTTPServer:      httpServer,
		TelegramService: tgService,
		TelegramClient:  tgClient,
		TelegramPoller:  poller,
		KafkaProducer:   external.KafkaProducer,
		Cache:           external.Cache,
		JobScheduler:    scheduler,
	}, nil
}

// repositories содержит инициализированные репозитории
type repositories struct {
	Profile      repository.IProfileRepo
	Subscription repository.ISubscriptionRepo
	History      repository.IHistoryRepo
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(db *sqlx.DB) *repositories {
	persistenceLayer := pg.NewDB(db)
	return &repositories{
		Profile:      profileRepo.New(persistenceLayer, a.Log),
		Subscription: subscriptionRepo.New(persistenceLayer, a.Log),
		History:      historyRepo.New(persistenceLayer, a.Log),
	}
}

// externalServices внешние сервисы, все опциональные
type externalServices struct {
	Advisor       service.IAdvisor
	Publisher     service.IDrawPublisher
	KafkaProducer *kafkaAdapter.Producer
	S3            storage.IS3Client
	Cache         cache.Cache
	Redis         redisPinger
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

// initExternalServices инициализирует внешние сервисы (AI, Kafka, S3, Redis)
func (a *App) initExternalServices() *externalServices {
	services := &externalServices{}

	// AI - без ключа премиум получает текст о недоступности
	if a.Cfg.Advisor.Enabled() {
		services.Advisor = advisorAdapter.NewClient(a.Cfg.Advisor, a.Log)
		a.Log.Info("advisor enabled", "model", a.Cfg.Advisor.Model)
	} else {
		a.Log.Warn("advisor API key is missing, premium explanations are disabled")
	}

	if a.Cfg.Kafka.Enabled {
		producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka producer, draw events disabled", "error", err)
		} else {
			services.KafkaProducer = producer
			services.Publisher = producer
		}
	}

	if a.Cfg.S3.Enabled {
		minioClient, err := a.Cfg.S3.NewClient()
		if err != nil {
			a.Log.Warn("failed to init s3, using local files only", "error", err)
		} else {
			services.S3 = s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
			a.Log.Info("s3 connected successfully", "bucket", a.Cfg.S3.Bucket)
		}
	}

	if a.Cfg.Redis.Enabled {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis, sessions are kept in memory", "error", err)
		} else {
			client := redisAdapter.NewClient(redisClient, a.Cfg.Redis.KeyPrefix)
			services.Cache = client
			services.Redis = client
			a.Log.Info("redis connected successfully")
		}
	}
	if services.Cache == nil {
		services.Cache = inmemory.New()
	}

	return services
}

// initAlerter алерты шлёт основной бот или отдельный, если задан ALERTER_BOT_TOKEN
func (a *App) initAlerter(tgClient *tgAdapter.Client) service.IAlerterService {
	if !a.Cfg.Alerter.Enabled() {
		return nil
	}

	client := tgClient
	if a.Cfg.Alerter.BotToken != "" {
		client = tgAdapter.NewClient(a.Cfg.Alerter.BotToken, a.Log)
	}

	return alerterService.New(alerterAdapter.NewClient(a.Cfg.Alerter, client, a.Log), a.Name)
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	db *sqlx.DB,
	redis redisPinger,
	tgService *telegramService.Service,
	registry *prometheus.Registry,
) *http.Server {
	checks := map[string]healthcheckController.Check{
		"postgres": db.PingContext,
	}
	if redis != nil {
		checks["redis"] = redis.Ping
	}

	controllers := []server.Controller{
		healthcheckController.New(checks, a.Log),
		metricsController.New(registry),
	}

	if a.Cfg.Telegram.IsWebhookEnabled() {
		controllers = append(controllers,
			telegramController.New(tgService, a.Cfg.Telegram.WebhookSecret, a.Log))
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initTelegramMode инициализирует режим работы Telegram (webhook или polling)
func (a *App) initTelegramMode(
	ctx context.Context,
	tgService *telegramService.Service,
	tgClient *tgAdapter.Client,
) (*tgAdapter.Poller, error) {
	a.Log.Info("telegram configuration",
		"use_webhook", a.Cfg.Telegram.IsWebhookEnabled(),
		"webhook_url", a.Cfg.Telegram.WebhookURL,
	)

	if a.Cfg.Telegram.IsWebhookEnabled() {
		if a.Cfg.Telegram.WebhookURL == "" {
			return nil, fmt.Errorf("webhook_url is required when use_webhook is true")
		}
		if a.Cfg.Telegram.WebhookSecret == "" {
			a.Log.Warn("webhook secret is empty, requests are not authenticated")
		}

		webhookURL := fmt.Sprintf("%s/webhook/", a.Cfg.Telegram.WebhookURL)
		if err := tgClient.SetWebhook(ctx, webhookURL, a.Cfg.Telegram.WebhookSecret); err != nil {
			return nil, fmt.Errorf("failed to set webhook: %w", err)
		}
		return nil, nil // webhook режим, poller не нужен
	}

	a.Log.Warn("polling mode enabled")
	return tgAdapter.NewPoller(tgClient, a.Cfg.Telegram, tgService.HandleUpdate, a.Log), nil
}

// initJobScheduler регистрирует рассылку карты дня и уведомления об окончании премиума
func (a *App) initJobScheduler(
	alerter service.IAlerterService,
	broadcaster service.IBroadcaster,
) (*jobScheduler.Scheduler, error) {
	location, err := a.Cfg.Tarot.Location()
	if err != nil {
		return nil, err
	}
	hour, minute, err := a.Cfg.Tarot.PushTime()
	if err != nil {
		return nil, err
	}

	scheduler := jobScheduler.NewScheduler(a.Log, alerter)

	scheduler.Register(jobScheduler.NewDailyCardPush(broadcaster, location, hour, minute, a.Log))
	a.Log.Info("daily card push job registered", "at", a.Cfg.Tarot.PushAt, "time_zone", location.String())

	scheduler.Register(jobScheduler.NewExpiryNotifier(broadcaster, location))
	a.Log.Info("subscription expiry notifier job registered")

	return scheduler, nil
}

// registerBotCommands регистрирует команды бота в Telegram
func (a *App) registerBotCommands(ctx context.Context, client *tgAdapter.Client) error {
	commands := []tgAdapter.BotCommand{
		{Command: "start", Description: "Начать работу с ботом"},
		{Command: "help", Description: "Показать справку"},
		{Command: "history", Description: "История карт"},
		{Command: "premium", Description: "Премиум-доступ"},
		{Command: "subscribe", Description: "Подписаться на карту дня"},
		{Command: "feedback", Description: "Оставить отзыв"},
		{Command: "cancel", Description: "Отменить регистрацию"},
	}

	return client.SetMyCommands(ctx, commands)
}

// initPostgres подключается к PostgreSQL и запускает миграции
func (a *App) initPostgres() (*sqlx.DB, error) {
	connConfig, err := a.Cfg.Postgres.ConnConfig()
	if err != nil {
		return nil, err
	}

	if err := pg.RunMigrations(connConfig, a.Log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := pg.Connect(connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")
	return db, nil
}
