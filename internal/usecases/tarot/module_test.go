package tarot

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/storage/inmemory"
	"github.com/Npcprogramming/Taro2.0/internal/catalog"
	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/services/session"
	"github.com/Npcprogramming/Taro2.0/internal/testhelpers"
)

const testCatalog = `{"categories":[
	{"suit":"Cups","title":"🍷 Кубки 🍷","name":"Кубки","cards":[
		{"name":"Туз Кубков","description":"Новые чувства","reversed_description":"Пустота","advice":"Откройтесь","image_file":"cups_01.jpg"},
		{"name":"Двойка Кубков","description":"Союз","reversed_description":"Разлад","advice":"Договоритесь","image_file":"cups_02.jpg"},
		{"name":"Тройка Кубков","description":"Праздник","reversed_description":"Излишества","advice":"Отдохните","image_file":"cups_03.jpg"},
		{"name":"Четвёрка Кубков","description":"Апатия","reversed_description":"Пробуждение","advice":"Оглянитесь","image_file":"cups_04.jpg"}
	]},
	{"suit":"Major","title":"👑 Старшие Арканы 👑","name":"Старшие Арканы","cards":[
		{"name":"Шут","description":"Начало пути","reversed_description":"Безрассудство","advice":"Рискните","image_file":"major_00.jpg"}
	]}
]}`

const (
	adminID int64 = 1
	userID  int64 = 7
)

var msk = time.FixedZone("MSK", 3*60*60)

type testEnv struct {
	svc      *Service
	tg       *testhelpers.FakeTelegram
	profiles *testhelpers.ProfileRepo
	subs     *testhelpers.SubscriptionRepo
	history  *testhelpers.HistoryRepo
	advisor  *testhelpers.MockAdvisor
	proofs   *testhelpers.Proofs
	sessions *session.Store

	mu       sync.Mutex
	now      time.Time
	cardIdx  int
	reversed bool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cards, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)

	log := slog.New(slog.DiscardHandler)
	env := &testEnv{
		tg:       testhelpers.NewFakeTelegram(),
		profiles: testhelpers.NewProfileRepo(),
		history:  testhelpers.NewHistoryRepo(),
		advisor:  &testhelpers.MockAdvisor{},
		proofs:   testhelpers.NewProofs(),
		sessions: session.NewStore(inmemory.New(), 0, log),
		now:      time.Date(2025, time.May, 10, 9, 0, 0, 0, msk),
	}
	env.subs = testhelpers.NewSubscriptionRepo(env.profiles)

	env.svc = New(
		env.profiles,
		env.subs,
		env.history,
		env.sessions,
		env.tg,
		env.advisor,
		nil,
		testhelpers.Images{"cups_01.jpg": []byte("cups-01")},
		env.proofs,
		cards,
		nil,
		Config{
			AdminIDs:       []int64{adminID, 2},
			Location:       msk,
			PremiumPrice:   "299 ₽",
			PaymentDetails: "0000 1111 2222 3333",
			Contact:        "@tarot_support",
		},
		log,
	)
	env.svc.Now = env.clock
	env.svc.IntN = env.intN

	return env
}

func (e *testEnv) clock() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

func (e *testEnv) advance(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = e.now.Add(d)
}

// intN первый вызов выбирает карту, второй (n == 2) положение
func (e *testEnv) intN(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n == 2 {
		if e.reversed {
			return 1
		}
		return 0
	}
	return e.cardIdx % n
}

func (e *testEnv) pick(cardIdx int, reversed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cardIdx = cardIdx
	e.reversed = reversed
}

func (e *testEnv) addProfile(id int64, nickname string) {
	profile := domain.NewProfile(id, nickname, time.Date(1990, time.July, 15, 0, 0, 0, 0, time.UTC), e.clock())
	e.profiles.Put(profile)
}

func (e *testEnv) grantPremium(t *testing.T, id int64, days int) {
	t.Helper()
	require.NoError(t, e.subs.Upsert(context.Background(), id, domain.DateOf(e.clock()).AddDate(0, 0, days)))
}

func (e *testEnv) profile(t *testing.T, id int64) *domain.Profile {
	t.Helper()
	profile, err := e.profiles.GetByUserID(context.Background(), id)
	require.NoError(t, err)
	return profile
}

func sender(id int64) domain.Sender {
	return domain.Sender{UserID: id, ChatID: id, Username: "alex", FirstName: "Алексей"}
}

func command(text string) domain.Command {
	return domain.ParseCommand(text)
}
