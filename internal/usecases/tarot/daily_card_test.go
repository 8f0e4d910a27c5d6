package tarot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/storage/inmemory"
	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/services/session"
	"github.com/Npcprogramming/Taro2.0/internal/testhelpers"
	"github.com/Npcprogramming/Taro2.0/internal/usecases/tarot/texts"
)

func TestHandleDailyCard_FreeUser(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	env.pick(0, false)
	ctx := context.Background()

	require.NoError(t, env.svc.HandleCommand(ctx, sender(userID), command(domain.ButtonDailyCard)))

	messages := env.tg.MessagesTo(userID)
	require.Len(t, messages, 2)
	assert.True(t, messages[0].IsPhoto(), "image goes first")
	assert.Equal(t, []byte("cups-01"), messages[0].Photo)
	assert.Empty(t, messages[0].Text)

	caption := messages[1].Text
	assert.Equal(t, domain.ParseModeMarkdown, messages[1].Opts.ParseMode)
	assert.Contains(t, caption, "🃏 Alex, ваша карта дня: Туз Кубков (Прямая)")
	assert.Contains(t, caption, "Новые чувства")
	assert.Contains(t, caption, "Откройтесь")
	assert.Contains(t, caption, "🔒 Получите персональный AI-совет")
	env.advisor.AssertNotCalled(t, "Advise", mock.Anything, mock.Anything)

	profile := env.profile(t, userID)
	assert.Equal(t, 1, profile.TotalCards)
	assert.Equal(t, 1, profile.StraightCards)
	assert.Equal(t, 0, profile.ReversedCards)
	assert.Equal(t, 1, profile.ConsecutiveDays)
	require.NotNil(t, profile.LastCardDate)
	assert.Equal(t, domain.DateOf(env.clock()), *profile.LastCardDate)

	assert.Equal(t, 1, env.history.Count(userID))
}

func TestHandleDailyCard_ReversedUsesReversedDescription(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	env.pick(0, true)

	require.NoError(t, env.svc.HandleDailyCard(context.Background(), sender(userID)))

	caption := env.tg.LastTo(userID).Text
	assert.Contains(t, caption, "(Перевёрнутая)")
	assert.Contains(t, caption, "Пустота")
	assert.NotContains(t, caption, "Новые чувства")

	profile := env.profile(t, userID)
	assert.Equal(t, 1, profile.ReversedCards)
	assert.Equal(t, 0, profile.StraightCards)
}

func TestHandleDailyCard_SecondDrawSameDayRefused(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	ctx := context.Background()

	require.NoError(t, env.svc.HandleDailyCard(ctx, sender(userID)))
	env.advance(14 * time.Hour) // 23:00 того же дня

	err := env.svc.HandleDailyCard(ctx, sender(userID))
	assert.ErrorIs(t, err, domain.ErrAlreadyDrawn)
	assert.True(t, domain.IsBusinessError(err))
	assert.Equal(t, texts.AlreadyDrawn, env.tg.LastTo(userID).Text)

	// кэш сессии потерян, но отметка в профиле всё равно не даст вытянуть вторую
	env.svc.Sessions = session.NewStore(inmemory.New(), 0, env.svc.Log)
	_, err = env.svc.DrawDailyCard(ctx, userID, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyDrawn)

	assert.Equal(t, 1, env.profile(t, userID).TotalCards)
	assert.Equal(t, 1, env.history.Count(userID))
}

func TestDrawDailyCard_Streak(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		env.pick(day, day%2 == 0)
		result, err := env.svc.DrawDailyCard(ctx, userID, "")
		require.NoError(t, err)
		assert.Equal(t, day, result.Profile.ConsecutiveDays)
		env.advance(24 * time.Hour)
	}

	profile := env.profile(t, userID)
	assert.Equal(t, 3, profile.TotalCards)
	assert.Equal(t, profile.TotalCards, profile.StraightCards+profile.ReversedCards)
	assert.Equal(t, 3, profile.ConsecutiveDays)

	// пропуск дня сбрасывает серию
	env.advance(24 * time.Hour)
	result, err := env.svc.DrawDailyCard(ctx, userID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Profile.ConsecutiveDays)
	assert.Equal(t, 4, env.profile(t, userID).TotalCards)
}

func TestHandleDailyCard_Premium(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	env.grantPremium(t, userID, 10)
	env.pick(0, true)

	env.advisor.On("Advise", mock.Anything, domain.AdviceRequest{
		CardName:    "Туз Кубков",
		Description: "Пустота",
		ZodiacSign:  domain.ZodiacCancer,
		Orientation: domain.OrientationReversed,
	}).Return("Сегодня доверьтесь интуиции.", nil).Once()

	require.NoError(t, env.svc.HandleDailyCard(context.Background(), sender(userID)))

	caption := env.tg.LastTo(userID).Text
	assert.Contains(t, caption, "🤖 *AI-совет:*\nСегодня доверьтесь интуиции.")
	assert.Contains(t, caption, "✨ Получено по премиум-доступу")
	assert.NotContains(t, caption, "🔒")
	env.advisor.AssertExpectations(t)
}

func TestDrawDailyCard_PremiumAdvisorFailureDegrades(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	env.grantPremium(t, userID, 0) // истекает сегодня, ещё активна
	env.pick(0, false)

	env.advisor.On("Advise", mock.Anything, mock.Anything).Return("", errors.New("deadline exceeded")).Once()

	result, err := env.svc.DrawDailyCard(context.Background(), userID, "")
	require.NoError(t, err)
	assert.True(t, result.Premium)
	assert.True(t, result.Degraded)
	assert.Equal(t, "⚠️ Не удалось получить совет от AI.\n\n💡 Совет по карте: Откройтесь", result.AIText)
	assert.Contains(t, result.Caption(), result.AIText)
	assert.Equal(t, 1, env.profile(t, userID).TotalCards)
}

func TestDrawDailyCard_ExpiredSubscriptionIsFree(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	env.grantPremium(t, userID, -1)

	result, err := env.svc.DrawDailyCard(context.Background(), userID, "")
	require.NoError(t, err)
	assert.False(t, result.Premium)
	assert.Empty(t, result.AIText)
	env.advisor.AssertNotCalled(t, "Advise", mock.Anything, mock.Anything)
}

func TestDrawDailyCard_GuestWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.svc.DrawDailyCard(ctx, userID, "Алексей")
	require.NoError(t, err)
	assert.Equal(t, "Алексей", result.Profile.Nickname)
	assert.Equal(t, 1, result.Profile.TotalCards)
	assert.Equal(t, 1, env.history.Count(userID))

	_, err = env.profiles.GetByUserID(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound, "guest draw does not create a profile")

	// без сессии повтор ловится по истории
	env.svc.Sessions = session.NewStore(inmemory.New(), 0, env.svc.Log)
	_, err = env.svc.DrawDailyCard(ctx, userID, "Алексей")
	assert.ErrorIs(t, err, domain.ErrAlreadyDrawn)

	env.advance(24 * time.Hour)
	_, err = env.svc.DrawDailyCard(ctx, userID, "Алексей")
	assert.NoError(t, err)
}

func TestHandleDailyCard_MissingImageSendsCaptionOnly(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	env.pick(1, false)

	require.NoError(t, env.svc.HandleDailyCard(context.Background(), sender(userID)))

	messages := env.tg.MessagesTo(userID)
	require.Len(t, messages, 1)
	assert.False(t, messages[0].IsPhoto())
	assert.Contains(t, messages[0].Text, "Двойка Кубков")
}

func TestHandleDailyCard_MarkdownRejectedFallsBackToPlain(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex_*")
	env.pick(1, false)
	env.tg.RejectMarkdown = true

	require.NoError(t, env.svc.HandleDailyCard(context.Background(), sender(userID)))

	last := env.tg.LastTo(userID)
	assert.Contains(t, last.Text, "Alex_*")
	assert.Empty(t, last.Opts.ParseMode)
}

func TestDrawDailyCard_HistoryFailureKeepsStats(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	env.history.AppendErr = errors.New("disk full")

	_, err := env.svc.DrawDailyCard(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, env.profile(t, userID).TotalCards)
}

func TestDrawDailyCard_ProfileLoadError(t *testing.T) {
	env := newTestEnv(t)
	env.profiles.Err = errors.New("connection refused")

	err := env.svc.HandleDailyCard(context.Background(), sender(userID))
	require.Error(t, err)
	assert.True(t, domain.IsBusinessError(err))
	assert.Equal(t, texts.GenericError, env.tg.LastTo(userID).Text)
	assert.Zero(t, env.history.Count(userID))
}

func TestDrawDailyCard_ConcurrentDrawsRecordOnce(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	ctx := context.Background()

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		refused   int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.DrawDailyCard(ctx, userID, "")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrAlreadyDrawn):
				refused++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, refused)
	assert.Equal(t, 1, env.profile(t, userID).TotalCards)
	assert.Equal(t, 1, env.history.Count(userID))
	assert.Zero(t, env.svc.locks.size())
}

func TestDrawDailyCard_PublishesEvent(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	env.pick(4, false)

	publisher := &testhelpers.MockPublisher{}
	publisher.On("PublishDraw", mock.Anything, mock.MatchedBy(func(e *domain.DrawEvent) bool {
		return e.UserID == userID && e.Card == "Шут" && e.Orientation == "upright" && e.Streak == 1 && !e.Premium
	})).Return(errors.New("broker down")).Once()
	env.svc.Publisher = publisher

	_, err := env.svc.DrawDailyCard(context.Background(), userID, "")
	require.NoError(t, err, "publishing is best effort")
	publisher.AssertExpectations(t)
}

func TestSendDailyCards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const (
		fresh   int64 = 10
		drawn   int64 = 11
		blocked int64 = 12
		expired int64 = 13
		optIn   int64 = 14
	)
	for _, id := range []int64{fresh, drawn, blocked, expired, optIn} {
		env.addProfile(id, "user")
	}
	env.grantPremium(t, fresh, 5)
	env.grantPremium(t, drawn, 5)
	env.grantPremium(t, blocked, 5)
	env.grantPremium(t, expired, -1)
	_, err := env.subs.CreateIfAbsent(ctx, optIn)
	require.NoError(t, err)

	env.advisor.On("Advise", mock.Anything, mock.Anything).Return("Совет дня.", nil)

	_, err = env.svc.DrawDailyCard(ctx, drawn, "")
	require.NoError(t, err)
	env.tg.Reset()
	env.tg.Blocked[blocked] = true

	require.NoError(t, env.svc.SendDailyCards(ctx))

	freshMessages := env.tg.MessagesTo(fresh)
	require.Len(t, freshMessages, 2)
	assert.Contains(t, freshMessages[1].Text, "Совет дня.")
	assert.Equal(t, 1, env.profile(t, fresh).TotalCards)

	assert.Empty(t, env.tg.MessagesTo(drawn), "already drawn today is skipped silently")
	assert.Equal(t, 1, env.profile(t, drawn).TotalCards)

	assert.Empty(t, env.tg.MessagesTo(blocked))
	assert.Equal(t, 1, env.profile(t, blocked).TotalCards, "draw is recorded even if delivery fails")

	assert.Empty(t, env.tg.MessagesTo(expired))
	assert.Empty(t, env.tg.MessagesTo(optIn))
	assert.Zero(t, env.profile(t, expired).TotalCards)
}

func TestSendDailyCards_ListError(t *testing.T) {
	env := newTestEnv(t)
	env.subs.Err = errors.New("db down")

	assert.Error(t, env.svc.SendDailyCards(context.Background()))
}

func TestSendDailyCards_StopsOnCancel(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	env.grantPremium(t, userID, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, env.svc.SendDailyCards(ctx), context.Canceled)
	assert.Empty(t, env.tg.Sent)
}

func TestDrawDailyCard_WaitsForUserHandlers(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	env.history.BeforeAppend = func() {
		once.Do(func() {
			close(entered)
			<-release
		})
	}

	// рассылка застряла посреди записи карты
	drawDone := make(chan error, 1)
	go func() {
		_, err := env.svc.DrawDailyCard(ctx, userID, "")
		drawDone <- err
	}()
	<-entered

	searchDone := make(chan error, 1)
	go func() {
		searchDone <- env.svc.HandleCommand(ctx, sender(userID), command(domain.ButtonCardSearch))
	}()

	assert.Never(t, func() bool { return len(searchDone) > 0 }, 50*time.Millisecond, 5*time.Millisecond,
		"card search must wait for the draw of the same user")

	close(release)
	require.NoError(t, <-drawDone)
	require.NoError(t, <-searchDone)

	messages := env.tg.MessagesTo(userID)
	require.NotEmpty(t, messages)
	placeholder := messages[0]
	assert.Equal(t, texts.BrowserPlaceholder, placeholder.Text)

	state, err := env.sessions.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, placeholder.ID, state.DisplayMessageID)
	assert.True(t, state.DrewOn(env.clock()))
	assert.Zero(t, env.svc.locks.size())
}

func TestDrawDailyCard_KeepsSessionChangesMadeDuringDraw(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(userID, "Alex")
	ctx := context.Background()

	// другой экземпляр бота с общим Redis успел записать сессию, пока шла карта
	env.history.BeforeAppend = func() {
		require.NoError(t, env.sessions.Save(ctx, userID, &domain.Session{DisplayMessageID: 42}))
	}

	_, err := env.svc.DrawDailyCard(ctx, userID, "")
	require.NoError(t, err)

	state, err := env.sessions.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), state.DisplayMessageID)
	assert.True(t, state.DrewOn(env.clock()))
}
