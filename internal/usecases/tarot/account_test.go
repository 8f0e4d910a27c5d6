package tarot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/usecases/tarot/texts"
)

func TestHandleHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.HandleCommand(ctx, sender(userID), command("/history")))
	assert.Equal(t, texts.HistoryEmpty, env.tg.LastTo(userID).Text)

	env.addProfile(userID, "Alex")
	env.pick(0, false)
	_, err := env.svc.DrawDailyCard(ctx, userID, "")
	require.NoError(t, err)

	env.advance(24 * time.Hour)
	env.pick(4, true)
	_, err = env.svc.DrawDailyCard(ctx, userID, "")
	require.NoError(t, err)

	// запись о карте, которой больше нет в каталоге
	require.NoError(t, env.history.Append(ctx, domain.NewDailyCardEntry(userID, "Туз Рун", domain.OrientationUpright, env.clock().Add(time.Hour))))

	require.NoError(t, env.svc.HandleCommand(ctx, sender(userID), command(domain.ButtonHistory)))
	assert.Equal(t,
		"📜 Ваша история карт:\n\n"+
			"2025-05-11 10:00:00 | Туз Рун (Прямая) | \n"+
			"2025-05-11 09:00:00 | Шут (Перевёрнутая) | Рискните\n"+
			"2025-05-10 09:00:00 | Туз Кубков (Прямая) | Откройтесь\n",
		env.tg.LastTo(userID).Text)

	env.history.ListErr = errors.New("db down")
	require.Error(t, env.svc.HandleHistory(ctx, sender(userID)))
	assert.Equal(t, texts.HistoryError, env.tg.LastTo(userID).Text)
}

func TestHandlePersonalAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.HandleCommand(ctx, sender(userID), command(domain.ButtonPersonalAccount)))
	assert.Equal(t, texts.NoProfile, env.tg.LastTo(userID).Text)

	env.addProfile(userID, "Alex")
	_, err := env.svc.DrawDailyCard(ctx, userID, "")
	require.NoError(t, err)

	require.NoError(t, env.svc.HandlePersonalAccount(ctx, sender(userID)))
	account := env.tg.LastTo(userID)
	assert.Equal(t, domain.ParseModeMarkdown, account.Opts.ParseMode)
	assert.Contains(t, account.Text, "Никнейм: Alex")
	assert.Contains(t, account.Text, "Дата рождения: 15.07.1990")
	assert.Contains(t, account.Text, "Знак зодиака: Рак")
	assert.Contains(t, account.Text, "ID: 7")
	assert.Contains(t, account.Text, "Получено карт: 1")
	assert.Contains(t, account.Text, "Дней подряд: 1")
	assert.Contains(t, account.Text, texts.NoSubscription)

	env.grantPremium(t, userID, 30)
	require.NoError(t, env.svc.HandlePersonalAccount(ctx, sender(userID)))
	assert.Contains(t, env.tg.LastTo(userID).Text, "✅ Премиум до 09.06.2025")
}

func TestHandleFeedback(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.HandleCommand(ctx, sender(userID), command("/feedback")))
	assert.Equal(t, texts.FeedbackEmpty, env.tg.LastTo(userID).Text)
	assert.Empty(t, env.tg.MessagesTo(adminID))

	require.NoError(t, env.svc.HandleCommand(ctx, sender(userID), command("/feedback Классный бот")))
	assert.Equal(t, "Отзыв от alex (7):\nКлассный бот", env.tg.LastTo(adminID).Text)
	assert.Equal(t, texts.FeedbackThanks, env.tg.LastTo(userID).Text)
	assert.Empty(t, env.tg.MessagesTo(2), "only the first admin gets feedback")
}

func TestHandlePhoto(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.tg.Files["file-1"] = []byte("receipt")

	err := env.svc.HandlePhoto(ctx, sender(userID), domain.PhotoUpload{})
	require.Error(t, err)
	assert.Equal(t, texts.ProofNoPhoto, env.tg.LastTo(userID).Text)

	require.NoError(t, env.svc.HandlePhoto(ctx, sender(userID), domain.PhotoUpload{FileID: "file-1", MessageID: 5}))
	assert.Equal(t, []byte("receipt"), env.proofs.Saved[userID])

	forwarded := env.tg.LastTo(adminID)
	assert.True(t, forwarded.IsPhoto())
	assert.Equal(t, []byte("receipt"), forwarded.Photo)
	assert.Equal(t, "🧾 Чек от @alex (ID: 7)\n👉 /activate 7", forwarded.Text)
	assert.Equal(t, texts.ProofSent, env.tg.LastTo(userID).Text)
}

func TestHandlePhoto_DownloadAndStoreFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.svc.HandlePhoto(ctx, sender(userID), domain.PhotoUpload{FileID: "missing"})
	require.Error(t, err)
	assert.Equal(t, texts.ProofDownloadFailed, env.tg.LastTo(userID).Text)
	assert.Empty(t, env.tg.MessagesTo(adminID))

	// локальное сохранение не удалось, но админ всё равно получает чек
	env.tg.Files["file-2"] = []byte("receipt")
	env.proofs.Err = errors.New("read-only fs")
	require.NoError(t, env.svc.HandlePhoto(ctx, sender(userID), domain.PhotoUpload{FileID: "file-2"}))
	assert.True(t, env.tg.LastTo(adminID).IsPhoto())
}
