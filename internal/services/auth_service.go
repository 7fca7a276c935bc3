package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ruralpay/cashcard/internal/audit"
	"github.com/ruralpay/cashcard/internal/models"
	"github.com/ruralpay/cashcard/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown user, a wrong password
// and an unusable token alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword returns the bcrypt hash of password at cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// AuthService resolves request credentials to an identity.
type AuthService struct {
	credentials repository.CredentialStore
	tokens      *TokenService
	// dummyHash is compared against when the username is unknown, at the
	// same cost as stored passwords.
	dummyHash []byte
}

// NewAuthService expects stored passwords to be hashed at bcryptCost.
func NewAuthService(credentials repository.CredentialStore, tokens *TokenService, bcryptCost int) *AuthService {
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("cashcard-dummy-password"), bcryptCost)
	if err != nil {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("cashcard-dummy-password"), bcrypt.DefaultCost)
	}
	return &AuthService{
		credentials: credentials,
		tokens:      tokens,
		dummyHash:   dummyHash,
	}
}

// AuthenticateBasic checks a username/password pair.
func (s *AuthService) AuthenticateBasic(ctx context.Context, username, password string) (models.Identity, error) {
	cred, err := s.credentials.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return models.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("load credential: %w", err)
	}

	if !verifyPassword(password, cred.PasswordHash) {
		return models.Identity{}, ErrInvalidCredentials
	}
	return cred.Identity(), nil
}

// AuthenticateBearer checks a token issued by IssueToken.
func (s *AuthService) AuthenticateBearer(ctx context.Context, token string) (models.Identity, error) {
	if s.tokens == nil {
		return models.Identity{}, ErrInvalidCredentials
	}
	return s.tokens.Parse(ctx, token)
}

// SeedCredentials hashes and stores users. A username that already exists
// is left as it is, so seeding can run on every start.
func SeedCredentials(ctx context.Context, store repository.CredentialWriter, cost int, users ...SeedUser) error {
	for _, u := range users {
		hash, err := HashPassword(u.Password, cost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		err = store.Create(ctx, models.Credential{Username: u.Username, PasswordHash: hash, Roles: u.Roles})
		if err != nil && !errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	return nil
}

// SeedUser is a plaintext login waiting to be hashed
type SeedUser struct {
	Username string
	Password string
	Roles    []string
}

// IssuedToken is the response body of the token endpoint
type IssuedToken struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService issues and checks HS256 bearer tokens. Revoked token ids are
// kept in Redis until the token would have expired anyway; without Redis
// tokens cannot be revoked.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	redis  *redis.Client
	audit  audit.Logger
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration, redisClient *redis.Client, auditLogger audit.Logger) *TokenService {
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		redis:  redisClient,
		audit:  auditLogger,
		now:    time.Now,
	}
}

// Issue signs a token for id.
func (s *TokenService) Issue(id models.Identity) (*IssuedToken, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Roles: id.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	s.audit.LogOperation(audit.EventTokenIssued, id.Username, "bearer token issued")
	return &IssuedToken{Token: signed, TokenType: "Bearer", ExpiresAt: expiresAt.UTC()}, nil
}

// Parse validates tokenString and returns the identity it carries.
func (s *TokenService) Parse(ctx context.Context, tokenString string) (models.Identity, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return models.Identity{}, err
	}

	revoked, err := s.isRevoked(ctx, claims.ID)
	if err != nil {
		return models.Identity{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return models.Identity{}, ErrInvalidCredentials
	}
	return models.Identity{Username: claims.Subject, Roles: claims.Roles}, nil
}

// Revoke blacklists tokenString until its expiry.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return err
	}
	if s.redis == nil {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, blacklistKey(claims.ID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	s.audit.LogOperation(audit.EventTokenRevoked, claims.Subject, "bearer token revoked")
	return nil
}

func (s *TokenService) parseClaims(tokenString string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

func (s *TokenService) isRevoked(ctx context.Context, jti string) (bool, error) {
	if s.redis == nil {
		return false, nil
	}
	n, err := s.redis.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func blacklistKey(jti string) string {
	return fmt.Sprintf("blacklist:%s", jti)
}
