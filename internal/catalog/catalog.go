package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

//go:embed cards.json
var defaultCards []byte

// Category масть и её карты в порядке показа
type Category struct {
	Suit  domain.Suit `json:"suit"`
	Title string      `json:"title"` // подпись кнопки
	Name  string      `json:"name"`
	Cards []string    `json:"-"`
}

type categoryFile struct {
	Category
	Cards []domain.Card `json:"cards"`
}

type catalogFile struct {
	Categories []categoryFile `json:"categories"`
}

// Catalog справочник карт, только для чтения
type Catalog struct {
	cards      map[string]*domain.Card
	names      []string
	categories []Category
	bySuit     map[domain.Suit]int
}

// Default каталог, встроенный в бинарник
func Default() (*Catalog, error) {
	return Parse(defaultCards)
}

// LoadFile каталог из JSON файла (пустой путь - встроенный)
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse разбирает и проверяет каталог
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	c := &Catalog{
		cards:  make(map[string]*domain.Card),
		bySuit: make(map[domain.Suit]int),
	}

	for _, cf := range file.Categories {
		if _, dup := c.bySuit[cf.Suit]; dup {
			return nil, fmt.Errorf("duplicate category %q", cf.Suit)
		}
		if len(domain.CategoryCallbackData(cf.Suit)) > domain.MaxCallbackDataLen {
			return nil, fmt.Errorf("category %q is too long for a button", cf.Suit)
		}

		category := cf.Category
		category.Cards = make([]string, 0, len(cf.Cards))
		for i := range cf.Cards {
			card := cf.Cards[i]
			if card.Name == "" {
				return nil, fmt.Errorf("card without name in category %q", cf.Suit)
			}
			// иначе Telegram отклонит всю клавиатуру масти
			if len(domain.ItemCallbackData(card.Name)) > domain.MaxCallbackDataLen {
				return nil, fmt.Errorf("card %q is too long for a button", card.Name)
			}
			if _, dup := c.cards[card.Name]; dup {
				return nil, fmt.Errorf("duplicate card %q", card.Name)
			}
			card.Suit = cf.Suit
			c.cards[card.Name] = &card
			c.names = append(c.names, card.Name)
			category.Cards = append(category.Cards, card.Name)
		}

		c.bySuit[cf.Suit] = len(c.categories)
		c.categories = append(c.categories, category)
	}

	if len(c.names) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	return c, nil
}

// Card поиск карты по точному имени
func (c *Catalog) Card(name string) (*domain.Card, bool) {
	card, ok := c.cards[name]
	return card, ok
}

// Advice совет по карте или пустая строка, если карты нет
func (c *Catalog) Advice(name string) string {
	if card, ok := c.cards[name]; ok {
		return card.Advice
	}
	return ""
}

// Names имена всех карт в порядке каталога
func (c *Catalog) Names() []string {
	return c.names
}

func (c *Catalog) Len() int {
	return len(c.names)
}

// At карта по индексу в порядке Names
func (c *Catalog) At(i int) *domain.Card {
	return c.cards[c.names[i]]
}

func (c *Catalog) Categories() []Category {
	return c.categories
}

func (c *Catalog) Category(suit domain.Suit) (Category, bool) {
	idx, ok := c.bySuit[suit]
	if !ok {
		return Category{}, false
	}
	return c.categories[idx], true
}
