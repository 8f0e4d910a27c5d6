package domain

import "time"

// SubscriptionDays срок премиума, выдаваемого админом
const SubscriptionDays = 30

// Subscription премиум-подписка; запись без даты означает только желание получать карты
type Subscription struct {
	UserID    int64      `json:"user_id" db:"user_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`
}

// IsActive подписка активна, пока дата окончания не раньше сегодняшней
func (s *Subscription) IsActive(today time.Time) bool {
	if s == nil || s.ExpiresAt == nil {
		return false
	}
	return DaysBetween(DateOf(today), *s.ExpiresAt) >= 0
}

// GrantExpiry дата окончания подписки, выданной сегодня
func GrantExpiry(today time.Time) time.Time {
	return DateOf(today).AddDate(0, 0, SubscriptionDays)
}

// Subscriber строка админ-панели
type Subscriber struct {
	UserID     int64      `db:"user_id"`
	Nickname   *string    `db:"nickname"`
	ZodiacSign *string    `db:"zodiac_sign"`
	ExpiresAt  *time.Time `db:"expires_at"`
}
