package tarot

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/catalog"
	"github.com/Npcprogramming/Taro2.0/internal/pkg/metrics"
	"github.com/Npcprogramming/Taro2.0/internal/ports/cache"
	"github.com/Npcprogramming/Taro2.0/internal/ports/repository"
	"github.com/Npcprogramming/Taro2.0/internal/ports/service"
	"github.com/Npcprogramming/Taro2.0/internal/ports/storage"
	"github.com/Npcprogramming/Taro2.0/internal/ports/telegram"
)

// DefaultPushPause пауза между сообщениями рассылки, чтобы не упереться в лимиты Telegram
const DefaultPushPause = 50 * time.Millisecond

// Config настройки бизнес-логики
type Config struct {
	AdminIDs       []int64
	Location       *time.Location
	PremiumPrice   string
	PaymentDetails string
	Contact        string
	PushPause      time.Duration
}

var (
	_ service.IBotService  = (*Service)(nil)
	_ service.IBroadcaster = (*Service)(nil)
)

// Service бизнес-логика таро-бота
type Service struct {
	ProfileRepo      repository.IProfileRepo
	SubscriptionRepo repository.ISubscriptionRepo
	HistoryRepo      repository.IHistoryRepo
	Sessions         cache.ISessionStore
	TelegramClient   telegram.IClient
	Advisor          service.IAdvisor       // nil - AI-советы выключены
	Publisher        service.IDrawPublisher // nil - события не публикуются
	Images           storage.IImageStore
	Proofs           storage.IProofStore
	Catalog          *catalog.Catalog
	Metrics          *metrics.Metrics
	Cfg              Config
	Log              *slog.Logger

	// Now и IntN подменяются в тестах
	Now  func() time.Time
	IntN func(n int) int

	locks *userLocks
}

// New создаёт сервис бизнес-логики таро-бота
func New(
	profileRepo repository.IProfileRepo,
	subscriptionRepo repository.ISubscriptionRepo,
	historyRepo repository.IHistoryRepo,
	sessions cache.ISessionStore,
	telegramClient telegram.IClient,
	advisor service.IAdvisor,
	publisher service.IDrawPublisher,
	images storage.IImageStore,
	proofs storage.IProofStore,
	cards *catalog.Catalog,
	m *metrics.Metrics,
	cfg Config,
	log *slog.Logger,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.PushPause < 0 {
		cfg.PushPause = 0
	}

	return &Service{
		ProfileRepo:      profileRepo,
		SubscriptionRepo: subscriptionRepo,
		HistoryRepo:      historyRepo,
		Sessions:         sessions,
		TelegramClient:   telegramClient,
		Advisor:          advisor,
		Publisher:        publisher,
		Images:           images,
		Proofs:           proofs,
		Catalog:          cards,
		Metrics:          m,
		Cfg:              cfg,
		Log:              log,
		Now:              time.Now,
		IntN:             rand.IntN,
		locks:            newUserLocks(),
	}
}

// now текущее время в часовом поясе бота
func (s *Service) now() time.Time {
	return s.Now().In(s.Cfg.Location)
}

func (s *Service) isAdmin(userID int64) bool {
	return slices.Contains(s.Cfg.AdminIDs, userID)
}

// mainAdmin первый админ из списка получает отзывы и чеки
func (s *Service) mainAdmin() (int64, bool) {
	if len(s.Cfg.AdminIDs) == 0 {
		return 0, false
	}
	return s.Cfg.AdminIDs[0], true
}
