package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/session"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

const sessionContextKey = "session"

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens. A token names a
// session; the session itself lives in the session repository.
type TokenService struct {
	secret []byte
	issuer string
}

func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// Issue implements commands.TokenIssuer.
func (t *TokenService) Issue(s *session.Session) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: s.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID().String(),
			Subject:   s.UserID().String(),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt()),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt()),
		},
	})
	return tok.SignedString(t.secret)
}

// SessionID verifies raw and returns the session it names.
func (t *TokenService) SessionID(raw string, now time.Time) (kernel.UUID, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(tok *jwt.Token) (any, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", tok.Method.Alg())
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	id, err := kernel.UUIDFromString(c.ID)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return id, nil
}

// Authenticate accepts a request only if its bearer token names a stored,
// unexpired session. Logging out deletes the session and so revokes the token.
func Authenticate(tokens *TokenService, sessions func() ports.SessionRepository, clock kernel.Clock) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, raw, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				return writeError(c, fmt.Errorf("%w: missing bearer token", ErrUnauthorized))
			}

			now := clock.Now()
			id, err := tokens.SessionID(strings.TrimSpace(raw), now)
			if err != nil {
				return writeError(c, err)
			}

			s, err := sessions().Get(c.Request().Context(), id)
			if errors.Is(err, errs.ErrObjectNotFound) {
				return writeError(c, fmt.Errorf("%w: session has ended", ErrUnauthorized))
			}
			if err != nil {
				return writeError(c, err)
			}
			if s.IsExpired(now) {
				return writeError(c, fmt.Errorf("%w: session has expired", ErrUnauthorized))
			}

			c.Set(sessionContextKey, s)
			return next(c)
		}
	}
}

// RequireRole rejects authenticated sessions of any other role.
func RequireRole(role session.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := currentSession(c)
			if !ok {
				return writeError(c, ErrUnauthorized)
			}
			if s.Role() != role {
				return writeError(c, fmt.Errorf("%w: %s only", ErrForbidden, role))
			}
			return next(c)
		}
	}
}

func currentSession(c echo.Context) (*session.Session, bool) {
	s, ok := c.Get(sessionContextKey).(*session.Session)
	return s, ok
}
