package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/zerr"
)

// AuthStatus describes the stored token. Claims are decoded without verification.
type AuthStatus struct {
	Subject   string
	ExpiresAt time.Time
	Expired   bool
}

// Login stores token for subsequent requests.
func (a *App) Login(_ context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrTokenMissing
	}
	status, err := a.inspect(token)
	if err != nil {
		return err
	}
	if err := a.tokens.SetToken(token); err != nil {
		return err
	}
	if status.Expired {
		a.logger.Warn("stored token is already expired")
	}
	a.logger.Info(fmt.Sprintf("logged in as %s", status.Subject))
	return nil
}

// Logout removes the stored token.
func (a *App) Logout(_ context.Context) error {
	if err := a.tokens.ClearToken(); err != nil {
		return err
	}
	a.logger.Info("logged out")
	return nil
}

// Status decodes the stored token and prints who it belongs to and when it expires.
func (a *App) Status(_ context.Context) (AuthStatus, error) {
	token, ok := a.tokens.Token()
	if !ok {
		return AuthStatus{}, domain.ErrTokenMissing
	}
	status, err := a.inspect(token)
	if err != nil {
		return AuthStatus{}, err
	}

	_, _ = fmt.Fprintf(a.stdout, "Logged in as %s\n", status.Subject)
	switch {
	case status.ExpiresAt.IsZero():
		_, _ = fmt.Fprintln(a.stdout, "Token has no expiry")
	case status.Expired:
		_, _ = fmt.Fprintf(a.stdout, "Token expired at %s\n", status.ExpiresAt.Format(time.RFC3339))
	default:
		_, _ = fmt.Fprintf(a.stdout, "Token expires at %s (in %s)\n",
			status.ExpiresAt.Format(time.RFC3339), status.ExpiresAt.Sub(a.now()).Truncate(time.Minute))
	}
	return status, nil
}

func (a *App) inspect(token string) (AuthStatus, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return AuthStatus{}, zerr.Wrap(err, domain.ErrTokenMalformed.Error())
	}

	status := AuthStatus{Subject: subject(claims)}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		status.ExpiresAt = exp.UTC()
		status.Expired = !a.now().Before(exp.Time)
	}
	return status, nil
}

// subject prefers the registered claim and falls back to the fields the
// backend puts in its tokens.
func subject(claims jwt.MapClaims) string {
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	for _, key := range []string{"email", "id", "_id", "userId"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return "unknown user"
}
