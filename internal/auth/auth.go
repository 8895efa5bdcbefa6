// Package auth verifies bearer tokens issued by the external auth provider and carries the
// authenticated owner through request contexts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// SecurityScheme is the name operations list in huma.Operation.Security to require a token.
	SecurityScheme = "bearer"

	// CookieName holds the access token for browser requests.
	CookieName = "access_token"
)

var (
	ErrMissingToken = errors.New("auth: missing bearer token")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims are the token claims the provider issues. Subject is the owner's UUID.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret   []byte
	audience string
}

func NewVerifier(secret, audience string) *Verifier {
	return &Verifier{secret: []byte(secret), audience: audience}
}

// Verify checks an HS256 token and returns the owner it was issued for.
func (v *Verifier) Verify(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	owner, err := uuid.FromString(claims.Subject)
	if err != nil || owner == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return owner, nil
}

// Issue signs a token for owner. The provider normally does this; it is used by tooling and tests.
func (v *Verifier) Issue(owner uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   owner.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// OwnerFromRequest authenticates a browser request by bearer header, falling back to the cookie.
func (v *Verifier) OwnerFromRequest(req *http.Request) (uuid.UUID, error) {
	token := BearerToken(req.Header.Get("Authorization"))
	if token == "" {
		if cookie, err := req.Cookie(CookieName); err == nil {
			token = cookie.Value
		}
	}
	return v.Verify(token)
}

type ownerKey struct{}

func ContextWithOwner(ctx context.Context, owner uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

func HumaContextWithOwner(ctx huma.Context, owner uuid.UUID) huma.Context {
	return huma.WithValue(ctx, ownerKey{}, owner)
}

func OwnerFromContext(ctx context.Context) (uuid.UUID, bool) {
	owner, ok := ctx.Value(ownerKey{}).(uuid.UUID)
	return owner, ok && owner != uuid.Nil
}

// RequireOwner returns the authenticated owner or a 401 error for the handler to return.
func RequireOwner(ctx context.Context) (uuid.UUID, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return uuid.Nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}
	return owner, nil
}

// NewHumaMiddleware rejects requests to operations that declare the bearer scheme unless
// they carry a valid token, and stores the owner in the context otherwise.
func NewHumaMiddleware(api huma.API, verifier *Verifier) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresBearer(ctx.Operation()) {
			next(ctx)
			return
		}

		owner, err := verifier.Verify(BearerToken(ctx.Header("Authorization")))
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or missing bearer token")
			return
		}

		next(HumaContextWithOwner(ctx, owner))
	}
}

func requiresBearer(op *huma.Operation) bool {
	if op == nil {
		return false
	}
	for _, requirement := range op.Security {
		if _, ok := requirement[SecurityScheme]; ok {
			return true
		}
	}
	return false
}

// Security is the requirement list for operations that need an authenticated owner.
func Security() []map[string][]string {
	return []map[string][]string{{SecurityScheme: {}}}
}
