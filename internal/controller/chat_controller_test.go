package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chimera-chat-be/internal/dto"
	"chimera-chat-be/internal/pkg/serverutils"
	"chimera-chat-be/internal/pkg/token"
	"chimera-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatService struct {
	sendRes    *dto.SendChatResponse
	sendErr    error
	historyRes []*dto.ChatTurnResponse
	historyErr error

	lastSubject string
	lastReq     *dto.SendChatRequest
}

func (s *fakeChatService) SendChat(ctx context.Context, subject string, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	s.lastSubject = subject
	s.lastReq = req
	return s.sendRes, s.sendErr
}

func (s *fakeChatService) GetHistory(ctx context.Context, subject string) ([]*dto.ChatTurnResponse, error) {
	s.lastSubject = subject
	return s.historyRes, s.historyErr
}

type chatTestLogger struct{}

func (l *chatTestLogger) Debug(module, message string, details map[string]interface{}) {}
func (l *chatTestLogger) Info(module, message string, details map[string]interface{})  {}
func (l *chatTestLogger) Warn(module, message string, details map[string]interface{})  {}
func (l *chatTestLogger) Error(module, message string, details map[string]interface{}) {}
func (l *chatTestLogger) Sync() error                                                  { return nil }

func newChatApp(svc service.IChatService, tokens *token.Service) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")
	NewChatController(svc, nil, &chatTestLogger{}, serverutils.NewJwtMiddleware(tokens), 10).RegisterRoutes(api)
	return app
}

func multipartRequest(t *testing.T, fields map[string]string, fileName string, fileBytes []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileBytes)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/chat", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func authorize(t *testing.T, req *http.Request, tokens *token.Service, subject string) {
	t.Helper()
	raw, err := tokens.Issue(subject)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+raw)
}

func TestSendChatEndpoint(t *testing.T) {
	tokens := token.NewService("test-secret", 30*time.Minute)

	t.Run("text only", func(t *testing.T) {
		svc := &fakeChatService{
			sendRes: &dto.SendChatResponse{Response: "hello back"},
		}
		app := newChatApp(svc, tokens)

		req := multipartRequest(t, map[string]string{"question": "hello"}, "", nil)
		authorize(t, req, tokens, "alice@example.com")

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		assert.Equal(t, "alice@example.com", svc.lastSubject)
		assert.Equal(t, "hello", svc.lastReq.Question)
		assert.Empty(t, svc.lastReq.FileBytes)

		raw, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "hello back", body["response"])
		assert.Nil(t, body["image_id"])
		assert.Nil(t, body["annotated_image"])
	})

	t.Run("with file", func(t *testing.T) {
		imageId := uuid.New()
		svc := &fakeChatService{
			sendRes: &dto.SendChatResponse{Response: "a photo", ImageId: &imageId},
		}
		app := newChatApp(svc, tokens)

		req := multipartRequest(t, map[string]string{"question": "what is this"}, "dish.png", []byte("png-bytes"))
		authorize(t, req, tokens, "alice@example.com")

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		assert.Equal(t, []byte("png-bytes"), svc.lastReq.FileBytes)
		assert.Equal(t, ".png", svc.lastReq.FileExtension)
	})

	t.Run("empty question value is accepted", func(t *testing.T) {
		svc := &fakeChatService{sendRes: &dto.SendChatResponse{Response: "ok"}}
		app := newChatApp(svc, tokens)

		req := multipartRequest(t, map[string]string{"question": ""}, "dish.jpg", []byte("jpg"))
		authorize(t, req, tokens, "alice@example.com")

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "", svc.lastReq.Question)
	})

	t.Run("missing question field yields 400", func(t *testing.T) {
		svc := &fakeChatService{sendRes: &dto.SendChatResponse{Response: "ok"}}
		app := newChatApp(svc, tokens)

		req := multipartRequest(t, map[string]string{"other": "x"}, "", nil)
		authorize(t, req, tokens, "alice@example.com")

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	})

	t.Run("media failure yields 500", func(t *testing.T) {
		svc := &fakeChatService{sendErr: service.ErrMediaProcessing}
		app := newChatApp(svc, tokens)

		req := multipartRequest(t, map[string]string{"question": "hi"}, "broken.png", []byte("x"))
		authorize(t, req, tokens, "alice@example.com")

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	})

	t.Run("missing token yields 401", func(t *testing.T) {
		app := newChatApp(&fakeChatService{}, tokens)

		req := multipartRequest(t, map[string]string{"question": "hi"}, "", nil)

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})
}

func TestGetHistoryEndpoint(t *testing.T) {
	tokens := token.NewService("test-secret", 30*time.Minute)

	t.Run("returns turns in order", func(t *testing.T) {
		userId := uuid.New()
		svc := &fakeChatService{
			historyRes: []*dto.ChatTurnResponse{
				{Id: uuid.New(), UserId: userId, Role: "user", Content: "hi", CreatedAt: time.Now()},
				{Id: uuid.New(), UserId: userId, Role: "ai", Content: "hello", CreatedAt: time.Now()},
			},
		}
		app := newChatApp(svc, tokens)

		req := httptest.NewRequest(fiber.MethodGet, "/api/chats", nil)
		authorize(t, req, tokens, "alice@example.com")

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		raw, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		var body []map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &body))
		require.Len(t, body, 2)
		assert.Equal(t, "user", body[0]["role"])
		assert.Equal(t, "ai", body[1]["role"])
	})

	t.Run("empty history is an empty array", func(t *testing.T) {
		app := newChatApp(&fakeChatService{}, tokens)

		req := httptest.NewRequest(fiber.MethodGet, "/api/chats", nil)
		authorize(t, req, tokens, "alice@example.com")

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		raw, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(bytes.TrimSpace(raw)))
	})
}
