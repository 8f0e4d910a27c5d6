package domain

import "time"

const (
	ZodiacCapricorn   = "Козерог"
	ZodiacAquarius    = "Водолей"
	ZodiacPisces      = "Рыбы"
	ZodiacAries       = "Овен"
	ZodiacTaurus      = "Телец"
	ZodiacGemini      = "Близнецы"
	ZodiacCancer      = "Рак"
	ZodiacLeo         = "Лев"
	ZodiacVirgo       = "Дева"
	ZodiacLibra       = "Весы"
	ZodiacScorpio     = "Скорпион"
	ZodiacSagittarius = "Стрелец"
)

// UnknownZodiac подставляется в подсказку AI, если знак не известен
const UnknownZodiac = "неизвестен"

type zodiacCutoff struct {
	cutoff int // month*100 + day, включительно
	sign   string
}

// отсортировано по cutoff, последняя запись замыкает год
var zodiacTable = []zodiacCutoff{
	{120, ZodiacCapricorn},
	{219, ZodiacAquarius},
	{321, ZodiacPisces},
	{420, ZodiacAries},
	{521, ZodiacTaurus},
	{621, ZodiacGemini},
	{723, ZodiacCancer},
	{823, ZodiacLeo},
	{923, ZodiacVirgo},
	{1023, ZodiacLibra},
	{1122, ZodiacScorpio},
	{1222, ZodiacSagittarius},
	{1231, ZodiacCapricorn},
}

// ZodiacSign знак зодиака по дню и месяцу рождения
func ZodiacSign(day int, month time.Month) string {
	key := int(month)*100 + day
	for _, entry := range zodiacTable {
		if key <= entry.cutoff {
			return entry.sign
		}
	}
	return zodiacTable[len(zodiacTable)-1].sign
}

// ZodiacSigns все двенадцать знаков
func ZodiacSigns() []string {
	return []string{
		ZodiacAries, ZodiacTaurus, ZodiacGemini, ZodiacCancer,
		ZodiacLeo, ZodiacVirgo, ZodiacLibra, ZodiacScorpio,
		ZodiacSagittarius, ZodiacCapricorn, ZodiacAquarius, ZodiacPisces,
	}
}
