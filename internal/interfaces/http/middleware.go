package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	pkgjwt "github.com/orderdesk/orderdesk-api/pkg/jwt"
)

// Locals key for the caller's Principal in Fiber.
const localPrincipal = "principal"

// AuthMiddleware validates the Bearer token and loads the caller's profile
// fresh on every request, so revoked or rejected members lose access
// immediately regardless of token lifetime.
func AuthMiddleware(jwtSecret string, profiles repository.UserProfileRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		userID, _, _, err := pkgjwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		profile, err := profiles.GetByUserID(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "load profile"})
		}
		if profile == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "unknown account"})
		}
		c.Locals(localPrincipal, policy.PrincipalFromProfile(profile))
		return c.Next()
	}
}

// GetPrincipal returns the caller view set by AuthMiddleware.
func GetPrincipal(c *fiber.Ctx) policy.Principal {
	v := c.Locals(localPrincipal)
	if v == nil {
		return policy.Principal{}
	}
	p, _ := v.(policy.Principal)
	return p
}

// AccessLogMiddleware records every request in the audit table. The write
// happens on its own goroutine after the response; it never delays or fails
// the request it describes.
func AccessLogMiddleware(logs repository.AccessLogRepository, log zerolog.Logger) fiber.Handler {
	auditLog := log.With().Str("component", "access_log").Logger()
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		entry := &entity.AccessLog{
			ID:         uuid.NewString(),
			RequestID:  c.GetRespHeader(fiber.HeaderXRequestID),
			Method:     c.Method(),
			Path:       c.Path(),
			StatusCode: status,
			IPAddress:  c.IP(),
			UserAgent:  c.Get(fiber.HeaderUserAgent),
			DurationMS: time.Since(start).Milliseconds(),
			CreatedAt:  start,
		}
		if v := c.Locals(localPrincipal); v != nil {
			if p, ok := v.(policy.Principal); ok {
				userID := p.UserID
				entry.UserID = &userID
				entry.CompanyID = p.CompanyID
			}
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if insertErr := logs.Insert(ctx, entry); insertErr != nil {
				auditLog.Error().Err(insertErr).Str("path", entry.Path).Msg("write access log")
			}
		}()

		return err
	}
}
