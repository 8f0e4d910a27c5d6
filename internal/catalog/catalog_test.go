package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

func TestDefault_FullDeck(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 78, c.Len())
	require.Len(t, c.Categories(), 5)

	counts := map[domain.Suit]int{}
	for _, category := range c.Categories() {
		counts[category.Suit] = len(category.Cards)
		assert.NotEmpty(t, category.Title)
		assert.NotEmpty(t, category.Name)

		for _, name := range category.Cards {
			card, ok := c.Card(name)
			require.True(t, ok, name)
			assert.Equal(t, category.Suit, card.Suit)
			assert.NotEmpty(t, card.Description, name)
			assert.NotEmpty(t, card.ReversedDescription, name)
			assert.NotEmpty(t, card.Advice, name)
			assert.NotEmpty(t, card.ImageFile, name)
			// лимит callback_data в Telegram
			assert.LessOrEqual(t, len(domain.ItemCallbackData(name)), 64, name)
		}
	}

	assert.Equal(t, 22, counts[domain.SuitMajor])
	for _, suit := range []domain.Suit{domain.SuitPentacles, domain.SuitWands, domain.SuitCups, domain.SuitSwords} {
		assert.Equal(t, 14, counts[suit], suit)
	}
}

func TestCatalog_Lookups(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)

	card, ok := c.Card("Туз Кубков")
	require.True(t, ok)
	assert.Equal(t, domain.SuitCups, card.Suit)
	assert.Equal(t, card.ReversedDescription, card.DescriptionFor(domain.OrientationReversed))
	assert.Equal(t, card.Description, card.DescriptionFor(domain.OrientationUpright))

	_, ok = c.Card("туз кубков")
	assert.False(t, ok, "lookup is exact")

	assert.Empty(t, c.Advice("Нет такой карты"))
	assert.Equal(t, card.Advice, c.Advice("Туз Кубков"))

	category, ok := c.Category(domain.SuitMajor)
	require.True(t, ok)
	assert.Equal(t, "Шут", category.Cards[0])

	_, ok = c.Category("Runes")
	assert.False(t, ok)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"categories":[]}`))
	assert.ErrorIs(t, err, domain.ErrEmptyCatalog)

	_, err = Parse([]byte(`not json`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"categories":[
		{"suit":"Cups","cards":[{"name":"A"}]},
		{"suit":"Swords","cards":[{"name":"A"}]}
	]}`))
	assert.ErrorContains(t, err, "duplicate card")
}

func TestParse_CallbackDataLimit(t *testing.T) {
	t.Parallel()

	// "item=" + 59 байт ровно влезают в 64
	fits := strings.Repeat("a", domain.MaxCallbackDataLen-len(domain.ItemCallbackData("")))
	_, err := Parse([]byte(`{"categories":[{"suit":"Cups","cards":[{"name":"` + fits + `"}]}]}`))
	require.NoError(t, err)

	// кириллица по два байта: 30 букв уже 65 байт
	long := strings.Repeat("ж", 30)
	_, err = Parse([]byte(`{"categories":[{"suit":"Cups","cards":[{"name":"` + long + `"}]}]}`))
	assert.ErrorContains(t, err, "too long for a button")

	suit := strings.Repeat("S", domain.MaxCallbackDataLen)
	_, err = Parse([]byte(`{"categories":[{"suit":"` + suit + `","cards":[{"name":"A"}]}]}`))
	assert.ErrorContains(t, err, "too long for a button")
}

func TestDefault_FitsCallbackData(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)
	for _, name := range c.Names() {
		assert.LessOrEqual(t, len(domain.ItemCallbackData(name)), domain.MaxCallbackDataLen, name)
	}
}

func TestParse_SuitComesFromCategory(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(`{"categories":[{"suit":"Cups","title":"К","name":"Кубки","cards":[{"name":"A","suit":"Swords"}]}]}`))
	require.NoError(t, err)

	card, ok := c.Card("A")
	require.True(t, ok)
	assert.Equal(t, domain.SuitCups, card.Suit)
	assert.Equal(t, card, c.At(0))
}
