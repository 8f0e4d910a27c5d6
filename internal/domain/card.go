package domain

// Orientation положение выпавшей карты
type Orientation int

const (
	OrientationUpright Orientation = iota
	OrientationReversed
)

func OrientationFromReversed(reversed bool) Orientation {
	if reversed {
		return OrientationReversed
	}
	return OrientationUpright
}

func (o Orientation) IsReversed() bool {
	return o == OrientationReversed
}

// Label подпись положения для пользователя
func (o Orientation) Label() string {
	if o.IsReversed() {
		return "Перевёрнутая"
	}
	return "Прямая"
}

func (o Orientation) String() string {
	if o.IsReversed() {
		return "reversed"
	}
	return "upright"
}

// Suit масть (категория каталога)
type Suit string

const (
	SuitMajor     Suit = "Major"
	SuitPentacles Suit = "Pentacles"
	SuitWands     Suit = "Wands"
	SuitCups      Suit = "Cups"
	SuitSwords    Suit = "Swords"
)

// Card карта каталога, неизменна всё время жизни процесса
type Card struct {
	Name                string `json:"name"`
	Suit                Suit   `json:"suit"`
	Description         string `json:"description"`
	ReversedDescription string `json:"reversed_description"`
	Advice              string `json:"advice"`
	ImageFile           string `json:"image_file"`
}

// DescriptionFor текст значения для выпавшего положения
func (c *Card) DescriptionFor(o Orientation) string {
	if o.IsReversed() && c.ReversedDescription != "" {
		return c.ReversedDescription
	}
	return c.Description
}

// AdviceRequest запрос к генератору AI-совета
type AdviceRequest struct {
	CardName    string
	Description string
	ZodiacSign  string
	Orientation Orientation
}
