package controller

import (
	"errors"

	"chimera-chat-be/internal/dto"
	"chimera-chat-be/internal/pkg/ratelimit"
	"chimera-chat-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Signup(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service       service.IAuthService
	validate      *validator.Validate
	limiter       *ratelimit.FixedWindowLimiter
	jwtMiddleware fiber.Handler
}

func NewAuthController(service service.IAuthService, limiter *ratelimit.FixedWindowLimiter, jwtMiddleware fiber.Handler) IAuthController {
	return &authController{
		service:       service,
		validate:      validator.New(),
		limiter:       limiter,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/signup", c.Signup)
	h.Post("/login", c.Login)
	h.Get("/me", c.jwtMiddleware, c.Me)
}

func (c *authController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	if err := c.service.Signup(ctx.Context(), &req); err != nil {
		if errors.Is(err, service.ErrEmailRegistered) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Email already registered",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	return ctx.JSON(fiber.Map{
		"message": "User created successfully",
	})
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	// Keyed by client IP: password guessing is throttled before the
	// credential check ever runs.
	allowed, _ := c.limiter.Allow(ctx.Context(), "login:"+ctx.IP())
	if !allowed {
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message": "Too many requests",
		})
	}

	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Incorrect email or password",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	return ctx.JSON(res)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	subject, _ := ctx.Locals("subject").(string)

	res, err := c.service.GetMe(ctx.Context(), subject)
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

	return ctx.JSON(res)
}
