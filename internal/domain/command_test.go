package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want Command
	}{
		{
			name: "start",
			text: "/start",
			want: Command{Kind: CommandStart, Slash: true, Name: "start", Text: "/start"},
		},
		{
			name: "addressed to bot",
			text: "/history@tarot_bot",
			want: Command{Kind: CommandHistory, Slash: true, Name: "history", Text: "/history@tarot_bot"},
		},
		{
			name: "with args",
			text: "/activate  12345 ",
			want: Command{Kind: CommandActivate, Slash: true, Name: "activate", Args: "12345", Text: "/activate  12345 "},
		},
		{
			name: "feedback keeps full text",
			text: "/feedback очень нравится бот",
			want: Command{Kind: CommandFeedback, Slash: true, Name: "feedback", Args: "очень нравится бот", Text: "/feedback очень нравится бот"},
		},
		{
			name: "unknown slash command",
			text: "/foo bar",
			want: Command{Kind: CommandUnknown, Slash: true, Name: "foo", Args: "bar", Text: "/foo bar"},
		},
		{
			name: "menu button",
			text: ButtonDailyCard,
			want: Command{Kind: CommandDailyCard, Text: ButtonDailyCard},
		},
		{
			name: "back button",
			text: ButtonBack,
			want: Command{Kind: CommandMainMenu, Text: ButtonBack},
		},
		{
			name: "free text",
			text: "Alex",
			want: Command{Kind: CommandText, Text: "Alex"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCommand(tt.text))
		})
	}
}

func TestParseCommand_ButtonsAreExactMatch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CommandText, ParseCommand("🃏 карта дня").Kind)
	assert.Equal(t, CommandText, ParseCommand(ButtonHistory+" ").Kind)
	assert.True(t, ParseCommand(ButtonHistory).IsButton())
	assert.False(t, ParseCommand("/history").IsButton())
}

func TestParseCallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Callback{Kind: CallbackBack}, ParseCallback(CallbackBackToken))
	assert.Equal(t, Callback{Kind: CallbackCategory, Category: SuitCups}, ParseCallback(CategoryCallbackData(SuitCups)))
	assert.Equal(t, Callback{Kind: CallbackItem, Item: "Туз Кубков"}, ParseCallback(ItemCallbackData("Туз Кубков")))
	assert.Equal(t, Callback{Kind: CallbackItem, Item: "a=b"}, ParseCallback("item=a=b"))
	assert.Equal(t, Callback{Kind: CallbackUnknown}, ParseCallback("suit_Cups"))
	assert.Equal(t, Callback{Kind: CallbackUnknown}, ParseCallback(""))
}
