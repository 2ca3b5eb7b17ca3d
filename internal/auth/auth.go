package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"

	"workshop-backend/internal/model"
	"workshop-backend/internal/store"
	"workshop-backend/internal/workorder"
)

// ErrUnauthorized is wrapped by every error caused by the caller's credentials.
var ErrUnauthorized = errors.New("unauthorized")

// IdentityProvider turns a bearer token into the acting user.
type IdentityProvider interface {
	Resolve(ctx context.Context, token string) (workorder.Actor, error)
}

// UserLookup loads users by id.
type UserLookup interface {
	FindUser(ctx context.Context, userID uint) (*model.User, error)
}

// Config holds the signing secret and lifetimes used by the provider.
type Config struct {
	Secret   []byte
	TokenTTL time.Duration
	CacheTTL time.Duration
}

// Claims is the payload of an access token.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTProvider verifies HS256 tokens and checks that the user is still active.
type JWTProvider struct {
	cfg   Config
	users UserLookup
	cache *cache.Cache
	now   func() time.Time
}

// NewJWTProvider creates a provider. User records are cached for CacheTTL;
// a zero CacheTTL disables caching.
func NewJWTProvider(cfg Config, users UserLookup) *JWTProvider {
	p := &JWTProvider{cfg: cfg, users: users, now: time.Now}
	if cfg.CacheTTL > 0 {
		p.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return p
}

// IssueToken signs a token for user that expires after TokenTTL.
func (p *JWTProvider) IssueToken(user *model.User) (string, time.Time, error) {
	now := p.now()
	expiresAt := now.Add(p.cfg.TokenTTL)
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Resolve validates token and returns the actor it identifies. The role is
// taken from the stored user, not from the token.
func (p *JWTProvider) Resolve(ctx context.Context, token string) (workorder.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return p.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired(), jwt.WithTimeFunc(p.now))
	if err != nil {
		return workorder.Actor{}, fmt.Errorf("%w: invalid token: %v", ErrUnauthorized, err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return workorder.Actor{}, fmt.Errorf("%w: invalid token subject %q", ErrUnauthorized, claims.Subject)
	}

	user, err := p.lookup(ctx, uint(id))
	if err != nil {
		return workorder.Actor{}, err
	}
	if !user.Active {
		return workorder.Actor{}, fmt.Errorf("%w: user %d is inactive", ErrUnauthorized, user.ID)
	}
	return workorder.Actor{ID: user.ID, Role: user.Role}, nil
}

func (p *JWTProvider) lookup(ctx context.Context, id uint) (*model.User, error) {
	key := strconv.FormatUint(uint64(id), 10)
	if p.cache != nil {
		if cached, found := p.cache.Get(key); found {
			return cached.(*model.User), nil
		}
	}

	user, err := p.users.FindUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d no longer exists", ErrUnauthorized, id)
		}
		return nil, err
	}

	if p.cache != nil {
		p.cache.SetDefault(key, user)
	}
	return user, nil
}
