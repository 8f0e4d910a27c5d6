package domain

import "strings"

// Кнопки reply-клавиатур
const (
	ButtonDailyCard       = "🃏 Карта дня"
	ButtonHistory         = "📜 История"
	ButtonNews            = "📰 Новости"
	ButtonSettings        = "⚙️ Настройки"
	ButtonCardSearch      = "🔍 Поиск карты"
	ButtonPremium         = "💎 Премиум-доступ"
	ButtonPersonalAccount = "👤 Личный кабинет"
	ButtonSubscribe       = "🔔 Подписаться"
	ButtonHelp            = "❓ Помощь"
	ButtonFeedback        = "✉️ Отзыв"
	ButtonBack            = "⬅️ Назад"
)

// CommandKind закрытый набор входящих команд бота
type CommandKind int

const (
	CommandUnknown CommandKind = iota
	CommandStart
	CommandHelp
	CommandHistory
	CommandSubscribe
	CommandFeedback
	CommandPremium
	CommandActivate
	CommandAdminPanel
	CommandCancel
	CommandDailyCard
	CommandNews
	CommandSettings
	CommandMainMenu
	CommandRequestFeedback
	CommandPersonalAccount
	CommandCardSearch
	CommandText // свободный текст (ник, дата рождения и т.п.)
)

var slashCommands = map[string]CommandKind{
	"start":      CommandStart,
	"help":       CommandHelp,
	"history":    CommandHistory,
	"subscribe":  CommandSubscribe,
	"feedback":   CommandFeedback,
	"premium":    CommandPremium,
	"activate":   CommandActivate,
	"adminpanel": CommandAdminPanel,
	"cancel":     CommandCancel,
}

var buttonCommands = map[string]CommandKind{
	ButtonDailyCard:       CommandDailyCard,
	ButtonHistory:         CommandHistory,
	ButtonNews:            CommandNews,
	ButtonSettings:        CommandSettings,
	ButtonCardSearch:      CommandCardSearch,
	ButtonPremium:         CommandPremium,
	ButtonPersonalAccount: CommandPersonalAccount,
	ButtonSubscribe:       CommandSubscribe,
	ButtonHelp:            CommandHelp,
	ButtonFeedback:        CommandRequestFeedback,
	ButtonBack:            CommandMainMenu,
}

// Command разобранное текстовое сообщение
type Command struct {
	Kind  CommandKind
	Slash bool   // пришло как /команда
	Name  string // имя /команды без слэша и @bot
	Args  string // всё после имени команды
	Text  string // исходный текст
}

// IsCommand начинается ли текст со слэша
func IsCommand(text string) bool {
	return len(text) > 0 && text[0] == '/'
}

// ParseCommand разбирает текст один раз на границе транспорта
func ParseCommand(text string) Command {
	if !IsCommand(text) {
		if kind, ok := buttonCommands[text]; ok {
			return Command{Kind: kind, Text: text}
		}
		return Command{Kind: CommandText, Text: text}
	}

	name, args, _ := strings.Cut(strings.TrimPrefix(text, "/"), " ")
	if idx := strings.Index(name, "@"); idx != -1 {
		name = name[:idx]
	}
	name = strings.ToLower(name)

	cmd := Command{
		Kind:  CommandUnknown,
		Slash: true,
		Name:  name,
		Args:  strings.TrimSpace(args),
		Text:  text,
	}
	if kind, ok := slashCommands[name]; ok {
		cmd.Kind = kind
	}
	return cmd
}

// IsButton пришла ли команда нажатием кнопки меню
func (c Command) IsButton() bool {
	return !c.Slash && c.Kind != CommandText
}
