package middleware

import (
	"context"

	"github.com/escrowpool/backend/internal/model"
	"github.com/escrowpool/backend/pkg/errorx"
	"github.com/escrowpool/backend/pkg/jwt"
	"github.com/escrowpool/backend/pkg/router"
	"github.com/escrowpool/backend/pkg/xcontext"
)

// ParseAccessToken resolves the bearer token into a request user id. A
// missing or invalid token is not an error here, the request simply stays
// anonymous.
func ParseAccessToken(engine *jwt.Engine[model.AccessToken]) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := xcontext.AuthToken(ctx)
		if token == "" {
			return ctx, nil
		}

		accessToken, err := engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return ctx, nil
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

// Authenticate rejects requests which did not resolve to a user.
func Authenticate(ctx context.Context) (context.Context, error) {
	if xcontext.RequestUserID(ctx) == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	return ctx, nil
}
