package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

type recordedRequest struct {
	Path        string
	ContentType string
	JSON        map[string]interface{}
	Form        map[string]string
	File        []byte
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	replies  map[string]string
}

func newTestClient(t *testing.T, replies map[string]string) (*Client, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{replies: replies}
	srv := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(srv.Close)

	client := &Client{
		httpClient:  srv.Client(),
		baseURL:     srv.URL + "/botTOKEN",
		fileBaseURL: srv.URL + "/file/botTOKEN",
		token:       "TOKEN",
		log:         slog.New(slog.DiscardHandler),
	}
	return client, api
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{Path: r.URL.Path, ContentType: r.Header.Get("Content-Type")}

	switch {
	case strings.HasPrefix(rec.ContentType, "application/json"):
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &rec.JSON)
	case strings.HasPrefix(rec.ContentType, "multipart/form-data"):
		_ = r.ParseMultipartForm(1 << 20)
		rec.Form = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			rec.Form[k] = v[0]
		}
		if fh, ok := r.MultipartForm.File["photo"]; ok {
			file, _ := fh[0].Open()
			rec.File, _ = io.ReadAll(file)
			_ = file.Close()
		}
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()

	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	if reply, ok := f.replies[method]; ok {
		_, _ = io.WriteString(w, reply)
		return
	}
	if strings.HasPrefix(r.URL.Path, "/file/") {
		_, _ = io.WriteString(w, "file-bytes")
		return
	}
	_, _ = io.WriteString(w, `{"ok":true,"result":true}`)
}

func (f *fakeAPI) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func TestClient_SendMessage_WithInlineKeyboard(t *testing.T) {
	t.Parallel()

	client, api := newTestClient(t, map[string]string{
		"sendMessage": `{"ok":true,"result":{"message_id":77}}`,
	})

	id, err := client.SendMessage(context.Background(), 10, "Выберите масть:", &domain.MessageOptions{
		ParseMode: domain.ParseModeMarkdown,
		Inline: &domain.InlineKeyboard{Rows: [][]domain.InlineButton{
			{{Text: "Кубки", CallbackData: "category=Cups"}},
		}},
		Reply: &domain.ReplyKeyboard{Rows: [][]string{{"ignored"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), id)

	req := api.last()
	assert.Equal(t, "/botTOKEN/sendMessage", req.Path)
	assert.Equal(t, float64(10), req.JSON["chat_id"])
	assert.Equal(t, "Markdown", req.JSON["parse_mode"])

	markup := req.JSON["reply_markup"].(map[string]interface{})
	rows := markup["inline_keyboard"].([]interface{})
	button := rows[0].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "category=Cups", button["callback_data"])
	assert.NotContains(t, markup, "keyboard")
}

func TestClient_SendMessage_ReplyKeyboardAndNoOptions(t *testing.T) {
	t.Parallel()

	client, api := newTestClient(t, map[string]string{
		"sendMessage": `{"ok":true,"result":{"message_id":1}}`,
	})
	ctx := context.Background()

	_, err := client.SendMessage(ctx, 10, "Главное меню:", &domain.MessageOptions{
		Reply: &domain.ReplyKeyboard{Rows: [][]string{{"a", "b"}}, Resize: true},
	})
	require.NoError(t, err)
	markup := api.last().JSON["reply_markup"].(map[string]interface{})
	assert.Equal(t, true, markup["resize_keyboard"])
	assert.Len(t, markup["keyboard"].([]interface{})[0], 2)

	_, err = client.SendMessage(ctx, 10, "plain", nil)
	require.NoError(t, err)
	assert.NotContains(t, api.last().JSON, "reply_markup")
	assert.NotContains(t, api.last().JSON, "parse_mode")

	_, err = client.SendMessage(ctx, 10, "bye", &domain.MessageOptions{RemoveKeyboard: true})
	require.NoError(t, err)
	markup = api.last().JSON["reply_markup"].(map[string]interface{})
	assert.Equal(t, true, markup["remove_keyboard"])
}

func TestClient_APIErrors(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, map[string]string{
		"sendMessage":     `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`,
		"editMessageText": `{"ok":false,"error_code":400,"description":"Bad Request: message is not modified"}`,
	})
	ctx := context.Background()

	_, err := client.SendMessage(ctx, 1, "hi", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRecipientUnavailable)

	err = client.EditMessageText(ctx, 1, 2, "x", nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Code)
	assert.NotErrorIs(t, err, domain.ErrRecipientUnavailable)
}

func TestClient_SendPhoto_Multipart(t *testing.T) {
	t.Parallel()

	client, api := newTestClient(t, map[string]string{
		"sendPhoto": `{"ok":true,"result":{"message_id":5,"photo":[]}}`,
	})

	id, err := client.SendPhoto(context.Background(), 10, []byte("jpeg"), "major_00.jpg", "🃏 Шут", &domain.MessageOptions{
		ParseMode: domain.ParseModeMarkdown,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	req := api.last()
	assert.Equal(t, "10", req.Form["chat_id"])
	assert.Equal(t, "🃏 Шут", req.Form["caption"])
	assert.Equal(t, "Markdown", req.Form["parse_mode"])
	assert.NotContains(t, req.Form, "reply_markup")
	assert.Equal(t, []byte("jpeg"), req.File)
}

func TestClient_DownloadFile(t *testing.T) {
	t.Parallel()

	client, api := newTestClient(t, map[string]string{
		"getFile": `{"ok":true,"result":{"file_id":"abc","file_path":"photos/file_1.jpg"}}`,
	})

	data, err := client.DownloadFile(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("file-bytes"), data)
	assert.Equal(t, "/file/botTOKEN/photos/file_1.jpg", api.last().Path)
}

func TestDecodeUpdate(t *testing.T) {
	t.Parallel()

	update, err := DecodeUpdate([]byte(`{"update_id":9,"callback_query":{"id":"q","from":{"id":1,"is_bot":false,"first_name":"A"},"data":"back"}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(9), update.UpdateID)
	require.NotNil(t, update.CallbackQuery)
	assert.Equal(t, "back", *update.CallbackQuery.Data)

	_, err = DecodeUpdate([]byte(`{`))
	assert.Error(t, err)
}

func TestConfig_IsWebhookEnabled(t *testing.T) {
	for value, want := range map[string]bool{
		"":      false,
		"false": false,
		"yes":   false,
		"true":  true,
		"True":  true,
		" 1 ":   true,
	} {
		cfg := Config{UseWebhook: value}
		assert.Equal(t, want, cfg.IsWebhookEnabled(), "value %q", value)
	}
}
