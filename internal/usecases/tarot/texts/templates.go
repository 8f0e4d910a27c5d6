package texts

import (
	"fmt"
	"strings"
	"time"
)

// Онбординг
const (
	StartGreeting      = "Здравствуйте! Давайте настроим ваш профиль."
	AskNickname        = "Введите ваш желаемый никнейм:"
	AskBirthDate       = "Введите вашу дату рождения в формате ДД.ММ.ГГГГ:"
	InvalidBirthDate   = "Неверный формат. Попробуйте ДД.ММ.ГГГГ."
	ProfileSaveFailed  = "Не удалось сохранить профиль. Попробуйте ещё раз позже."
	Cancelled          = "Отменено."
	profileSaved       = "Профиль сохранён!\nНик: %s\nДата: %s\nЗнак: %s"
	welcomeBack        = "С возвращением, %s!"
	NicknameIsRequired = "Никнейм не может быть пустым. " + AskNickname
)

// Меню и статичные тексты
const (
	MainMenu     = "Главное меню:"
	SettingsMenu = "⚙️ Настройки:"
	News         = "📰 Последние новости Таро:\n\n" +
		"- Новая статья о значении карт.\n" +
		"- Советы по раскладам.\n" +
		"- И многое другое!"
	Help = "📖 Доступные команды:\n" +
		"/start – Начать\n" +
		"/help – Помощь\n" +
		"/history – История карт\n" +
		"/subscribe – Подписка\n" +
		"/feedback – Отзыв\n" +
		"/premium – Оформить премиум\n" +
		"/cancel – Отменить настройку профиля\n" +
		"🧭 Используйте кнопки меню для удобства."
	UnknownCommand = "Неизвестная команда. Используйте меню."
	UnknownText    = "🤖 Я не понял команду. Используйте меню."
	GenericError   = "Произошла ошибка. Попробуйте позже."
)

// Карта дня
const (
	AlreadyDrawn    = "Вы уже получали карту на сегодня. Возвращайтесь завтра!"
	advisorFallback = "⚠️ Не удалось получить совет от AI.\n\n💡 Совет по карте: %s"
	dailyCardHeader = "🃏 %s, ваша карта дня: %s (%s)\n\n"
	premiumCaption  = dailyCardHeader +
		"🤖 *AI-совет:*\n%s\n\n" +
		"✨ Получено по премиум-доступу"
	freeCaption = dailyCardHeader +
		"💬 *Значение:*\n%s\n\n" +
		"💡 *Совет:*\n%s\n\n" +
		"🔒 Получите персональный AI-совет, оформив премиум-подписку."
)

// История и личный кабинет
const (
	HistoryHeader  = "📜 Ваша история карт:\n\n"
	HistoryEmpty   = "У вас пока нет истории карт."
	HistoryError   = "Произошла ошибка при получении истории."
	historyLine    = "%s | %s (%s) | %s\n"
	NoProfile      = "Вы ещё не настроили свой профиль. Используйте команду /start."
	NoSubscription = "🔒 Без подписки"
	accountProfile = "👤 *Ваш профиль:*\n" +
		"Никнейм: %s\n" +
		"Дата рождения: %s\n" +
		"Знак зодиака: %s\n" +
		"ID: %d\n\n" +
		"📊 *Статистика:*\n" +
		"Получено карт: %d\n" +
		"Прямых карт: %d\n" +
		"Перевёрнутых карт: %d\n" +
		"Дней подряд: %d\n\n" +
		"💼 *Подписка:* %s"
	activeSubscription = "✅ Премиум до %s"
)

// Подписка и премиум
const (
	Subscribed            = "✅ Вы подписались на ежедневные уведомления."
	SubscribedNeedPremium = "\n\nЕжедневная карта приходит автоматически при активном премиум-доступе: /premium"
	SubscribeError        = "Ошибка при подписке."
	premiumInfo           = "💎 *Премиум-доступ к AI-советам*\n\n" +
		"Получите эксклюзивные советы от искусственного интеллекта 🧠\n\n" +
		"💳 *Цена*: %s\n" +
		"Перевод на карту: `%s`\n\n" +
		"После оплаты отправьте чек 📸. Админ активирует доступ вручную.\n" +
		"_Для связи: %s_"
	SubscriptionExpired = "⌛ Ваш премиум-доступ закончился. Чтобы снова получать персональные AI-советы, продлите подписку: /premium"
)

// Отзывы и чеки
const (
	FeedbackPrompt      = "✉️ Пожалуйста, отправьте отзыв командой:\n/feedback [текст]"
	FeedbackEmpty       = "Введите текст после команды /feedback"
	FeedbackThanks      = "Спасибо за отзыв!"
	feedbackForward     = "Отзыв от %s (%d):\n%s"
	ProofNoPhoto        = "⚠️ Пожалуйста, отправьте скриншот чека как фото."
	ProofDownloadFailed = "⚠️ Не удалось получить фото. Попробуйте отправить ещё раз."
	ProofSent           = "✅ Чек отправлен. Ждите подтверждения."
	proofCaption        = "🧾 Чек от @%s (ID: %d)\n👉 /activate %d"
)

// Админ
const (
	NotEnoughRights     = "⛔ Недостаточно прав."
	ActivateUsage       = "Используйте: /activate <user_id>"
	ActivateError       = "❌ Ошибка при активации."
	activated           = "✅ Премиум активирован до %s"
	activatedNotify     = "🎉 Ваша премиум-подписка активирована до %s"
	AccessDenied        = "⛔ У вас нет доступа."
	NoSubscribers       = "Нет активных подписчиков."
	SubscribersHeader   = "📋 Подписчики:\n\n"
	subscriberLine      = "👤 %s | ID: %d\n♈ Знак: %s | до: %s\n\n"
	NotSpecified        = "—"
)

// Поиск карты
const (
	BrowserPlaceholder = "Пока не выбрана карта."
	BrowserChooseSuit  = "Выберите масть:"
	BrowserBackToSuits = "⬅ Назад к мастям"
	cardNotFound       = "Информация о карте «%s» не найдена."
	cardDetails        = "🃏 %s\n\n%s\n\n💡 Совет: %s"
	browserChooseCard  = "Вы выбрали масть: %s. Теперь выберите карту:"
)

func FormatProfileSaved(nickname string, birthDate time.Time, sign string) string {
	return fmt.Sprintf(profileSaved, nickname, birthDate.Format("02.01.2006"), sign)
}

func FormatWelcomeBack(nickname string) string {
	return fmt.Sprintf(welcomeBack, nickname)
}

// FormatAdvisorFallback текст вместо AI-совета, когда генерация не удалась
func FormatAdvisorFallback(advice string) string {
	return fmt.Sprintf(advisorFallback, advice)
}

func FormatPremiumCaption(nickname, card, orientation, aiText string) string {
	return fmt.Sprintf(premiumCaption, nickname, card, orientation, aiText)
}

func FormatFreeCaption(nickname, card, orientation, description, advice string) string {
	return fmt.Sprintf(freeCaption, nickname, card, orientation, description, advice)
}

// HistoryItem строка истории в уже готовом для показа виде
type HistoryItem struct {
	DrawnAt     time.Time
	Card        string
	Orientation string
	Advice      string
}

func FormatHistory(items []HistoryItem) string {
	var message strings.Builder
	message.WriteString(HistoryHeader)
	for _, item := range items {
		message.WriteString(fmt.Sprintf(historyLine,
			item.DrawnAt.Format("2006-01-02 15:04:05"),
			item.Card,
			item.Orientation,
			item.Advice))
	}
	return message.String()
}

// AccountInfo данные для личного кабинета
type AccountInfo struct {
	UserID          int64
	Nickname        string
	BirthDate       *time.Time
	ZodiacSign      string
	TotalCards      int
	StraightCards   int
	ReversedCards   int
	ConsecutiveDays int
	PremiumUntil    *time.Time
}

func FormatAccount(info AccountInfo) string {
	birthDate := NotSpecified
	if info.BirthDate != nil {
		birthDate = info.BirthDate.Format("02.01.2006")
	}

	status := NoSubscription
	if info.PremiumUntil != nil {
		status = fmt.Sprintf(activeSubscription, info.PremiumUntil.Format("02.01.2006"))
	}

	return fmt.Sprintf(accountProfile,
		info.Nickname,
		birthDate,
		info.ZodiacSign,
		info.UserID,
		info.TotalCards,
		info.StraightCards,
		info.ReversedCards,
		info.ConsecutiveDays,
		status)
}

func FormatPremiumInfo(price, details, contact string) string {
	return fmt.Sprintf(premiumInfo, price, details, contact)
}

func FormatFeedback(from string, userID int64, text string) string {
	return fmt.Sprintf(feedbackForward, from, userID, text)
}

func FormatProofCaption(username string, userID int64) string {
	if username == "" {
		username = "user"
	}
	return fmt.Sprintf(proofCaption, username, userID, userID)
}

func FormatActivated(expiresAt time.Time) string {
	return fmt.Sprintf(activated, expiresAt.Format("02.01.2006"))
}

func FormatActivatedNotify(expiresAt time.Time) string {
	return fmt.Sprintf(activatedNotify, expiresAt.Format("02.01.2006"))
}

// SubscriberRow строка админ-панели
type SubscriberRow struct {
	UserID     int64
	Nickname   string
	ZodiacSign string
	ExpiresAt  time.Time
}

func FormatSubscribers(rows []SubscriberRow) string {
	var message strings.Builder
	message.WriteString(SubscribersHeader)
	for _, row := range rows {
		message.WriteString(fmt.Sprintf(subscriberLine,
			orDash(row.Nickname),
			row.UserID,
			orDash(row.ZodiacSign),
			row.ExpiresAt.Format("02.01.2006")))
	}
	return message.String()
}

func FormatCardNotFound(name string) string {
	return fmt.Sprintf(cardNotFound, name)
}

func FormatCardDetails(name, description, advice string) string {
	return fmt.Sprintf(cardDetails, name, description, advice)
}

func FormatChooseCard(suitTitle string) string {
	return fmt.Sprintf(browserChooseCard, suitTitle)
}

func orDash(s string) string {
	if s == "" {
		return NotSpecified
	}
	return s
}
