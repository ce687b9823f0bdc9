package middleware

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// UserResolver maps a Firebase account to a local user id
type UserResolver interface {
	ResolveFirebaseUser(ctx context.Context, firebaseUID, name, email string) (string, error)
}

// FirebaseAuthMiddleware verifies Firebase ID tokens and stores the linked
// local user id in the context, provisioning the user on first sight.
func FirebaseAuthMiddleware(verifier TokenVerifier, users UserResolver, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			token, err := verifier.VerifyIDToken(ctx, idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			name, _ := token.Claims["name"].(string)
			email, _ := token.Claims["email"].(string)
			userID, err := users.ResolveFirebaseUser(ctx, token.UID, name, email)
			if err != nil {
				log.Error("failed to resolve firebase user", zap.String("firebase_uid", token.UID), zap.Error(err))
				return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
			}

			c.Set("firebaseUID", token.UID)
			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}
