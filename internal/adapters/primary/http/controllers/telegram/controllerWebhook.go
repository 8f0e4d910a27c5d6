package telegram

import (
	"context"
	"crypto/subtle"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	telegramAdapter "github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/telegram"
	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

const (
	secretHeader = "X-Telegram-Bot-Api-Secret-Token"
	maxBodySize  = 1 << 20
)

// UpdateHandler обработчик разобранного обновления
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update *domain.Update) error
}

type Controller struct {
	handler UpdateHandler
	secret  string
	log     *slog.Logger
}

func New(handler UpdateHandler, secret string, log *slog.Logger) *Controller {
	return &Controller{
		handler: handler,
		secret:  secret,
		log:     log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/webhook/", c.handleWebhook)
}

func (c *Controller) handleWebhook(ctx *gin.Context) {
	if c.secret != "" {
		token := ctx.GetHeader(secretHeader)
		if subtle.ConstantTimeCompare([]byte(token), []byte(c.secret)) != 1 {
			c.log.Warn("webhook with invalid secret token", "remote_addr", ctx.Request.RemoteAddr)
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret token"})
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxBodySize))
	if err != nil {
		c.log.Error("failed to read webhook body", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	update, err := telegramAdapter.DecodeUpdate(body)
	if err != nil {
		c.log.Error("failed to decode webhook update", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	c.log.Debug("received webhook update", "update_id", update.UpdateID)

	// Telegram повторяет апдейт при не-200, а пользователю уже могли ответить
	if err := c.handler.HandleUpdate(ctx.Request.Context(), update); err != nil {
		c.log.Error("failed to handle update",
			"error", err,
			"update_id", update.UpdateID,
		)
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
