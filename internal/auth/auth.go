package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gdg-garage/diet-forms/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "session_token"

const DefaultTokenDuration = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid session token")

// AuthHandler issues and checks the signed tokens that tie a browser to a
// form session.
type AuthHandler struct {
	secret        []byte
	TokenDuration time.Duration
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	duration := cfg.SessionTTL
	if duration <= 0 {
		duration = DefaultTokenDuration
	}
	return &AuthHandler{
		secret:        []byte(cfg.SessionSecret),
		TokenDuration: duration,
	}
}

func (h *AuthHandler) GenerateToken(sessionID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"session_id": sessionID.String(),
		"iat":        now.Unix(),
		"exp":        now.Add(h.TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}

// Authorize validates a token and returns the session it belongs to together
// with its expiry.
func (h *AuthHandler) Authorize(tokenString string) (uuid.UUID, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return h.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, time.Time{}, ErrInvalidToken
	}
	raw, ok := claims["session_id"].(string)
	if !ok {
		return uuid.Nil, time.Time{}, fmt.Errorf("%w: missing session_id", ErrInvalidToken)
	}
	sessionID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("%w: missing exp", ErrInvalidToken)
	}
	return sessionID, exp.Time, nil
}

// Cookie wraps a token in the session cookie.
func (h *AuthHandler) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(h.TokenDuration),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	}
}
