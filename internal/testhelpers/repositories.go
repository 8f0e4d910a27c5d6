package testhelpers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/ports/repository"
)

// ProfileRepo профили в памяти с той же семантикой RecordDraw, что и в Postgres
type ProfileRepo struct {
	mu       sync.Mutex
	profiles map[int64]domain.Profile
	Err      error
}

var _ repository.IProfileRepo = (*ProfileRepo)(nil)

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: make(map[int64]domain.Profile)}
}

func (r *ProfileRepo) Save(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	stored, ok := r.profiles[profile.UserID]
	if !ok {
		r.profiles[profile.UserID] = *profile
		return nil
	}
	stored.Nickname = profile.Nickname
	stored.BirthDate = profile.BirthDate
	stored.ZodiacSign = profile.ZodiacSign
	stored.UpdatedAt = profile.UpdatedAt
	r.profiles[profile.UserID] = stored
	return nil
}

func (r *ProfileRepo) GetByUserID(_ context.Context, userID int64) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user_id=%d", domain.ErrProfileNotFound, userID)
	}
	return &profile, nil
}

func (r *ProfileRepo) RecordDraw(_ context.Context, profile *domain.Profile) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return false, r.Err
	}
	if profile.LastCardDate == nil {
		return false, fmt.Errorf("last card date is required")
	}
	stored, ok := r.profiles[profile.UserID]
	if !ok {
		return false, nil
	}
	if stored.LastCardDate != nil && domain.SameDate(*stored.LastCardDate, *profile.LastCardDate) {
		return false, nil
	}

	stored.TotalCards = profile.TotalCards
	stored.StraightCards = profile.StraightCards
	stored.ReversedCards = profile.ReversedCards
	stored.ConsecutiveDays = profile.ConsecutiveDays
	stored.LastCardDate = profile.LastCardDate
	stored.UpdatedAt = profile.UpdatedAt
	r.profiles[profile.UserID] = stored
	return true, nil
}

// Put кладёт профиль как есть, для подготовки теста
func (r *ProfileRepo) Put(profile *domain.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = *profile
}

// SubscriptionRepo подписки в памяти
type SubscriptionRepo struct {
	mu   sync.Mutex
	subs map[int64]*time.Time
	nick func(userID int64) *domain.Profile
	Err  error
}

var _ repository.ISubscriptionRepo = (*SubscriptionRepo)(nil)

// NewSubscriptionRepo profiles нужен для ника и знака в ListSubscribers, может быть nil
func NewSubscriptionRepo(profiles *ProfileRepo) *SubscriptionRepo {
	repo := &SubscriptionRepo{subs: make(map[int64]*time.Time)}
	if profiles != nil {
		repo.nick = func(userID int64) *domain.Profile {
			profile, err := profiles.GetByUserID(context.Background(), userID)
			if err != nil {
				return nil
			}
			return profile
		}
	}
	return repo
}

func (r *SubscriptionRepo) Get(_ context.Context, userID int64) (*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	expiresAt, ok := r.subs[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user_id=%d", domain.ErrSubscriptionNotFound, userID)
	}
	return &domain.Subscription{UserID: userID, ExpiresAt: expiresAt}, nil
}

func (r *SubscriptionRepo) Upsert(_ context.Context, userID int64, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	date := domain.DateOf(expiresAt)
	r.subs[userID] = &date
	return nil
}

func (r *SubscriptionRepo) CreateIfAbsent(_ context.Context, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return false, r.Err
	}
	if _, ok := r.subs[userID]; ok {
		return false, nil
	}
	r.subs[userID] = nil
	return true, nil
}

func (r *SubscriptionRepo) ListActiveUserIDs(_ context.Context, today time.Time) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	var ids []int64
	for userID, expiresAt := range r.subs {
		if expiresAt != nil && domain.DaysBetween(today, *expiresAt) >= 0 {
			ids = append(ids, userID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *SubscriptionRepo) ListSubscribers(_ context.Context) ([]domain.Subscriber, error) {
	r.mu.Lock()
	if r.Err != nil {
		r.mu.Unlock()
		return nil, r.Err
	}
	var subscribers []domain.Subscriber
	for userID, expiresAt := range r.subs {
		if expiresAt != nil {
			subscribers = append(subscribers, domain.Subscriber{UserID: userID, ExpiresAt: expiresAt})
		}
	}
	r.mu.Unlock()

	for i := range subscribers {
		if r.nick == nil {
			break
		}
		if profile := r.nick(subscribers[i].UserID); profile != nil {
			nickname := profile.Nickname
			subscribers[i].Nickname = &nickname
			subscribers[i].ZodiacSign = profile.ZodiacSign
		}
	}

	sort.Slice(subscribers, func(i, j int) bool {
		a, b := subscribers[i], subscribers[j]
		if !a.ExpiresAt.Equal(*b.ExpiresAt) {
			return a.ExpiresAt.After(*b.ExpiresAt)
		}
		return a.UserID < b.UserID
	})
	return subscribers, nil
}

func (r *SubscriptionRepo) ListExpiredOn(_ context.Context, date time.Time) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	var ids []int64
	for userID, expiresAt := range r.subs {
		if expiresAt != nil && domain.SameDate(*expiresAt, date) {
			ids = append(ids, userID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// HistoryRepo журнал в памяти
type HistoryRepo struct {
	mu        sync.Mutex
	entries   []domain.HistoryEntry
	AppendErr error
	ListErr   error
	// BeforeAppend вызывается до записи, без блокировки репозитория
	BeforeAppend func()
}

var _ repository.IHistoryRepo = (*HistoryRepo)(nil)

func NewHistoryRepo() *HistoryRepo {
	return &HistoryRepo{}
}

func (r *HistoryRepo) Append(_ context.Context, entry *domain.HistoryEntry) error {
	if r.BeforeAppend != nil {
		r.BeforeAppend()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.AppendErr != nil {
		return r.AppendErr
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *HistoryRepo) ListRecent(_ context.Context, userID int64, limit int) ([]domain.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ListErr != nil {
		return nil, r.ListErr
	}
	if limit <= 0 {
		limit = domain.HistoryLimit
	}
	var out []domain.HistoryEntry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].UserID == userID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

// Count записей пользователя
func (r *HistoryRepo) Count(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.entries {
		if e.UserID == userID {
			n++
		}
	}
	return n
}
