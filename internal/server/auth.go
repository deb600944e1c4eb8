package server

import (
	"strings"

	"github.com/kataras/iris/v12"

	"github.com/IgnacioLauriano/vive-salud/internal/auth"
	"github.com/IgnacioLauriano/vive-salud/internal/config"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/user"
)

// AuthRequired validates the bearer token and stores the request-scoped
// identity in the context values. Downstream handlers read user_id from
// there; nothing identity-related lives in globals.
func AuthRequired(cfg *config.JWTConfig, cache *auth.TokenCache) iris.Handler {
	return func(ctx iris.Context) {
		token := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"ok": false, "error": "missing token"})
			return
		}

		var claims *auth.Claims
		if cache != nil {
			if cached, hit, err := cache.Get(ctx.Request().Context(), token); err == nil && hit {
				claims = cached
			}
		}
		if claims == nil {
			parsed, err := auth.ParseToken(cfg, token)
			if err != nil {
				ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"ok": false, "error": "invalid token"})
				return
			}
			claims = parsed
			if cache != nil {
				_ = cache.Set(ctx.Request().Context(), token, claims)
			}
		}

		ctx.Values().Set("user_id", claims.UserID)
		ctx.Values().Set("email", claims.Email)
		ctx.Values().Set("role", claims.Role)
		ctx.Next()
	}
}

// AdminRequired gates back-office routes on the role claim. Runs after
// AuthRequired.
func AdminRequired() iris.Handler {
	return func(ctx iris.Context) {
		if ctx.Values().GetStringDefault("role", "") != user.RoleAdmin {
			ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"ok": false, "error": "admin only"})
			return
		}
		ctx.Next()
	}
}

func currentUserID(ctx iris.Context) int64 {
	return ctx.Values().GetInt64Default("user_id", 0)
}
