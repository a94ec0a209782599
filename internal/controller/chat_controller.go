package controller

import (
	"errors"
	"io"
	"path/filepath"

	"chimera-chat-be/internal/dto"
	"chimera-chat-be/internal/pkg/logger"
	"chimera-chat-be/internal/pkg/ratelimit"
	"chimera-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	service       service.IChatService
	limiter       *ratelimit.FixedWindowLimiter
	logger        logger.ILogger
	jwtMiddleware fiber.Handler
	maxUploadMB   int
}

func NewChatController(
	service service.IChatService,
	limiter *ratelimit.FixedWindowLimiter,
	sysLogger logger.ILogger,
	jwtMiddleware fiber.Handler,
	maxUploadMB int,
) IChatController {
	return &chatController{
		service:       service,
		limiter:       limiter,
		logger:        sysLogger,
		jwtMiddleware: jwtMiddleware,
		maxUploadMB:   maxUploadMB,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.jwtMiddleware, c.SendChat)
	r.Get("/chats", c.jwtMiddleware, c.GetHistory)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	subject, _ := ctx.Locals("subject").(string)

	allowed, err := c.limiter.Allow(ctx.Context(), "chat:"+subject)
	if err != nil {
		c.logger.Warn("chat", "rate limiter unavailable, allowing request", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if !allowed {
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message": "Too many requests",
		})
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Expected multipart form data",
		})
	}

	// The question field must be present even when its value is empty.
	questionValues, ok := form.Value["question"]
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Field 'question' is required",
		})
	}
	req := &dto.SendChatRequest{}
	if len(questionValues) > 0 {
		req.Question = questionValues[0]
	}

	if files := form.File["file"]; len(files) > 0 {
		fileHeader := files[0]
		if fileHeader.Size > int64(c.maxUploadMB)*1024*1024 {
			return ctx.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"message": "Uploaded file is too large",
			})
		}

		file, err := fileHeader.Open()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Failed to read uploaded file",
			})
		}
		raw, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Failed to read uploaded file",
			})
		}

		req.FileBytes = raw
		req.FileExtension = filepath.Ext(fileHeader.Filename)
	}

	res, err := c.service.SendChat(ctx.Context(), subject, req)
	if err != nil {
		if errors.Is(err, service.ErrMediaProcessing) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to process uploaded image",
			})
		}
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
			})
		}
		c.logger.Error("chat", "interaction failed", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	return ctx.JSON(res)
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	subject, _ := ctx.Locals("subject").(string)

	history, err := c.service.GetHistory(ctx.Context(), subject)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	if history == nil {
		history = []*dto.ChatTurnResponse{}
	}
	return ctx.JSON(history)
}
