package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/infrastructure/cache"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
)

type UserRepository interface {
	FindActiveBySub(sub string) (*entity.User, error)
}

// TokenParser validates the request token.
type TokenParser func(c echo.Context) (*utils.TokenData, error)

type AuthMiddlewareConfig struct {
	UserRepo UserRepository

	// Cache is optional.
	Cache cache.UserCache

	// ParseToken defaults to utils.ParseTokenDataCtx.
	ParseToken TokenParser
}

// NewAuthMiddleware creates the handler with dependencies injected
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	parse := cfg.ParseToken
	if parse == nil {
		parse = utils.ParseTokenDataCtx
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := parse(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, err := resolveUser(c, cfg, tokenData.Sub)
			if err != nil {
				log.Errorf("failed to resolve user %s: %v", tokenData.Sub, err)
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if user == nil {
				// valid token, but the subject has no active staff row
				return c.JSON(http.StatusUnauthorized, apierror.UserNotFoundError)
			}

			if !user.Active {
				return c.JSON(http.StatusForbidden, apierror.MissingAccessError)
			}

			c.Set(utils.ContextUserKey, user)
			c.Set(utils.ContextTokenKey, tokenData)
			return next(c)
		}
	}
}

func resolveUser(c echo.Context, cfg *AuthMiddlewareConfig, sub string) (*entity.User, error) {
	ctx := c.Request().Context()
	if cfg.Cache != nil {
		user, err := cfg.Cache.Get(ctx, sub)
		if err != nil {
			log.Warnf("user cache read failed: %v", err)
		} else if user != nil {
			return user, nil
		}
	}

	user, err := cfg.UserRepo.FindActiveBySub(sub)
	if err != nil || user == nil {
		return nil, err
	}

	if cfg.Cache != nil {
		if err := cfg.Cache.Set(ctx, sub, user); err != nil {
			log.Warnf("user cache write failed: %v", err)
		}
	}
	return user, nil
}
