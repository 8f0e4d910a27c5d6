package app

import (
	"fmt"
	"time"
	_ "time/tzdata" // Europe/Moscow в минимальных образах

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	server "github.com/Npcprogramming/Taro2.0/internal/adapters/primary/http"
	advisorAdapter "github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/advisor"
	alerterAdapter "github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/kafka"
	"github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/storage/s3"
	"github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/telegram"
	"github.com/Npcprogramming/Taro2.0/internal/pkg/logger"
)

type Config struct {
	Postgres *pg.Config             `envconfig:"POSTGRES"`
	Log      *logger.Config         `envconfig:"LOG"`
	Server   *server.Config         `envconfig:"APISERVER"`
	Telegram *telegram.Config       `envconfig:"TELEGRAM"`
	Advisor  *advisorAdapter.Config `envconfig:"ADVISOR"`
	Redis    *redisAdapter.Config   `envconfig:"REDIS"`
	S3       *s3Adapter.Config      `envconfig:"S3"`
	Kafka    *kafkaAdapter.Config   `envconfig:"KAFKA"`
	Alerter  *alerterAdapter.Config `envconfig:"ALERTER"`
	Tarot    *TarotConfig           `envconfig:"TAROT"`
}

// TarotConfig настройки самого бота
type TarotConfig struct {
	AdminIDs       []int64       `envconfig:"ADMIN_IDS"` // "111,222", первый получает чеки и отзывы
	ImagesDir      string        `envconfig:"IMAGES_DIR" default:"images"`
	ProofsDir      string        `envconfig:"PROOFS_DIR" default:"proofs"`
	CatalogFile    string        `envconfig:"CATALOG_FILE"` // пусто - встроенный каталог
	TimeZone       string        `envconfig:"TIME_ZONE" default:"Europe/Moscow"`
	PushAt         string        `envconfig:"PUSH_AT" default:"12:00"`
	PushPause      time.Duration `envconfig:"PUSH_PAUSE" default:"50ms"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"48h"`
	PremiumPrice   string        `envconfig:"PREMIUM_PRICE" default:"299 ₽"`
	PaymentDetails string        `envconfig:"PAYMENT_DETAILS"`
	Contact        string        `envconfig:"CONTACT"`
}

// Location часовой пояс, в котором считается "сегодня"
func (c *TarotConfig) Location() (*time.Location, error) {
	location, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}
	return location, nil
}

// PushTime час и минута ежедневной рассылки
func (c *TarotConfig) PushTime() (hour, minute int, err error) {
	t, err := time.Parse("15:04", c.PushAt)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid push time %q: %w", c.PushAt, err)
	}
	return t.Hour(), t.Minute(), nil
}

func (c *TarotConfig) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, _, err := c.PushTime(); err != nil {
		return err
	}
	for _, id := range c.AdminIDs {
		if id <= 0 {
			return fmt.Errorf("invalid admin id: %d", id)
		}
	}
	return nil
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Tarot.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tarot config: %w", err)
	}

	return cfg, nil
}
