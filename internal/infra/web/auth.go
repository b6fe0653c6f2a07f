package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"legal-docgen/internal/infra/logging"
)

type ctxKey string

const ctxUserID ctxKey = "auth_user_id"

// AuthManager validates HS256 bearer tokens and resolves the caller identity.
// In dev mode requests without a token are mapped to a fixed local user so the
// API can be exercised without an identity provider.
type AuthManager struct {
	secret []byte
	dev    bool
}

func NewAuthManager(secret string, dev bool) *AuthManager {
	return &AuthManager{secret: []byte(secret), dev: dev}
}

type userClaims struct {
	jwt.RegisteredClaims
}

// Mint issues a token for the given user. Used by local tooling and tests;
// production tokens come from the identity provider sharing the secret.
func (a *AuthManager) Mint(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := userClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *AuthManager) parse(tok string) (string, error) {
	claims := &userClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// Middleware authenticates the request and stores the user id in the context.
func (a *AuthManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := r.Header.Get("Authorization")
		if hdr == "" {
			if a.dev {
				uid := r.Header.Get("X-User-ID")
				if uid == "" {
					uid = "dev-user"
				}
				next.ServeHTTP(w, r.WithContext(withUser(r.Context(), uid)))
				return
			}
			writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		parts := strings.SplitN(hdr, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeJSONError(w, http.StatusUnauthorized, "malformed authorization header")
			return
		}
		uid, err := a.parse(strings.TrimSpace(parts[1]))
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), uid)))
	})
}

func withUser(ctx context.Context, uid string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, uid)
	return logging.WithUserID(ctx, uid)
}

func userID(r *http.Request) string {
	if v := r.Context().Value(ctxUserID); v != nil {
		return v.(string)
	}
	return ""
}
