package domain

import "time"

// DefaultNickname обращение, когда не известно ни ника, ни имени
const DefaultNickname = "друг"

// Profile профиль пользователя со статистикой карт дня
type Profile struct {
	UserID          int64      `json:"user_id" db:"user_id"`
	Nickname        string     `json:"nickname" db:"nickname"`
	BirthDate       *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	ZodiacSign      *string    `json:"zodiac_sign,omitempty" db:"zodiac_sign"`
	TotalCards      int        `json:"total_cards" db:"total_cards"`
	StraightCards   int        `json:"straight_cards" db:"straight_cards"`
	ReversedCards   int        `json:"reversed_cards" db:"reversed_cards"`
	ConsecutiveDays int        `json:"consecutive_days" db:"consecutive_days"`
	LastCardDate    *time.Time `json:"last_card_date,omitempty" db:"last_card_date"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// NewProfile профиль после онбординга: знак выводится из даты рождения, статистика нулевая
func NewProfile(userID int64, nickname string, birthDate time.Time, now time.Time) *Profile {
	birth := DateOf(birthDate)
	sign := ZodiacSign(birth.Day(), birth.Month())
	return &Profile{
		UserID:     userID,
		Nickname:   nickname,
		BirthDate:  &birth,
		ZodiacSign: &sign,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewGuestProfile временный профиль для тянущего карту без онбординга, в БД не пишется
func NewGuestProfile(userID int64, displayName string) *Profile {
	if displayName == "" {
		displayName = DefaultNickname
	}
	return &Profile{
		UserID:   userID,
		Nickname: displayName,
	}
}

// Zodiac знак зодиака или UnknownZodiac
func (p *Profile) Zodiac() string {
	if p.ZodiacSign == nil || *p.ZodiacSign == "" {
		return UnknownZodiac
	}
	return *p.ZodiacSign
}

// DrewOn тянул ли пользователь карту в этот день
func (p *Profile) DrewOn(today time.Time) bool {
	return p.LastCardDate != nil && SameDate(*p.LastCardDate, today)
}

// RegisterDraw учитывает карту дня: счётчики, серию и дату последней карты
func (p *Profile) RegisterDraw(orientation Orientation, today time.Time) {
	p.ConsecutiveDays = NextStreak(p.ConsecutiveDays, p.LastCardDate, today)

	p.TotalCards++
	if orientation.IsReversed() {
		p.ReversedCards++
	} else {
		p.StraightCards++
	}

	day := DateOf(today)
	p.LastCardDate = &day
}

// NextStreak серия растёт только если прошлая карта была ровно вчера, иначе начинается заново
func NextStreak(current int, lastCardDate *time.Time, today time.Time) int {
	if lastCardDate == nil {
		return 1
	}
	if DaysBetween(*lastCardDate, today) == 1 {
		return current + 1
	}
	return 1
}
