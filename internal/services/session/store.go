package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/ports/cache"
)

const (
	keyPrefix  = "session:"
	DefaultTTL = 48 * time.Hour
)

// Store сессии диалога поверх cache.Cache (Redis или память)
type Store struct {
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

func NewStore(c cache.Cache, ttl time.Duration, log *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: c, ttl: ttl, log: log}
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

// Get пустая сессия, если в кэше ничего нет
func (s *Store) Get(ctx context.Context, userID int64) (*domain.Session, error) {
	raw, err := s.cache.Get(ctx, key(userID))
	if errors.Is(err, cache.ErrCacheMiss) {
		return &domain.Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		// битую сессию не тащим дальше, начинаем с чистой
		s.log.Warn("failed to decode session, resetting", "user_id", userID, "error", err)
		return &domain.Session{}, nil
	}
	return &sess, nil
}

func (s *Store) Save(ctx context.Context, userID int64, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.cache.Set(ctx, key(userID), string(raw), s.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
