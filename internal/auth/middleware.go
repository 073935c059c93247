package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "heatshield/internal/errors"
	"heatshield/internal/model"
)

const identityContextKey = "identity"

// Middleware verifies the bearer token and stores the decoded Identity on
// the echo context.
func Middleware(jwtService *JWTService, revoked RevocationStore) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			identity, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			if revoked != nil && revoked.IsRevoked(c.Request().Context(), identity.TokenID) {
				return nil, errors.New("token revoked")
			}
			return identity, nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidToken)
			return echo.NewHTTPError(http.StatusUnauthorized, httpErr.ToErrorResponse())
		},
	})
}

// IdentityFrom returns the caller stored by Middleware.
func IdentityFrom(c echo.Context) (*Identity, error) {
	identity, ok := c.Get(identityContextKey).(*Identity)
	if !ok || identity == nil {
		return nil, apperrors.ErrInvalidToken
	}
	return identity, nil
}

// UserIDFrom returns the caller's id stored by Middleware.
func UserIDFrom(c echo.Context) (model.UserID, error) {
	identity, err := IdentityFrom(c)
	if err != nil {
		return 0, err
	}
	return identity.UserID, nil
}

// WithIdentity stores identity the way Middleware does. Used by tests and
// by callers that authenticate through other means.
func WithIdentity(c echo.Context, identity *Identity) {
	c.Set(identityContextKey, identity)
}
