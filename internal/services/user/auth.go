package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"warehouse-system/internal/utils"
)

// Identity is the caller resolved from a token. Email is what gets recorded
// as the actor of an adjustment.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

type LoginResult struct {
	User      SafeUser  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type TokenResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// maxTrackedLogins bounds the per-email limiter table.
const maxTrackedLogins = 10000

// loginLimiter throttles login attempts per email address.
type loginLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*rate.Limiter
	every      rate.Limit
	burst      int
	maxTracked int
}

func newLoginLimiter(perMinute int) *loginLimiter {
	return &loginLimiter{
		limiters:   make(map[string]*rate.Limiter),
		every:      rate.Every(time.Minute / time.Duration(perMinute)),
		burst:      perMinute,
		maxTracked: maxTrackedLogins,
	}
}

func (l *loginLimiter) allow(email string) bool {
	key := emailKey(email)

	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= l.maxTracked {
			l.prune()
		}
		lim = rate.NewLimiter(l.every, l.burst)
		l.limiters[key] = lim
	}
	return lim.Allow()
}

// prune drops limiters that have refilled; a fresh one behaves the same.
func (l *loginLimiter) prune() {
	for key, lim := range l.limiters {
		if lim.Tokens() >= float64(l.burst) {
			delete(l.limiters, key)
		}
	}
}

type AuthService struct {
	dir     *Directory
	tokens  *utils.TokenIssuer
	limiter *loginLimiter
	logger  *zap.Logger
	now     func() time.Time
}

// NewAuthService allows loginsPerMinute login attempts per minute for each
// email address, with bursts of the same size. Per-client throttling is left
// to the HTTP rate limiter.
func NewAuthService(dir *Directory, tokens *utils.TokenIssuer, loginsPerMinute int, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loginsPerMinute <= 0 {
		loginsPerMinute = 30
	}
	return &AuthService{
		dir:     dir,
		tokens:  tokens,
		limiter: newLoginLimiter(loginsPerMinute),
		logger:  logger,
		now:     time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if !s.limiter.allow(email) {
		s.logger.Warn("login throttled", zap.String("email", email))
		return LoginResult{}, ErrRateLimited
	}

	u, err := s.dir.VerifyPassword(email, password)
	if err != nil {
		s.logger.Info("login rejected", zap.String("email", email))
		return LoginResult{}, err
	}

	token, exp, err := s.tokens.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		return LoginResult{}, fmt.Errorf("login %s: %w", u.Email, err)
	}

	if updated, err := s.dir.RecordLogin(u.ID, s.now()); err == nil {
		u = updated
	}
	s.logger.Info("user logged in", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))

	return LoginResult{User: u, Token: token, ExpiresAt: exp}, nil
}

// Authenticate resolves a bearer token into an Identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidToken) {
			return Identity{}, ErrInvalidToken
		}
		return Identity{}, err
	}
	if claims.UserID == "" || claims.Email == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, Email: claims.Email, Role: Role(claims.Role)}, nil
}

func (s *AuthService) Refresh(ctx context.Context, id Identity) (TokenResult, error) {
	token, exp, err := s.tokens.Generate(id.UserID, id.Email, string(id.Role))
	if err != nil {
		return TokenResult{}, fmt.Errorf("refresh %s: %w", id.Email, err)
	}
	return TokenResult{Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (SafeUser, error) {
	return s.dir.FindByID(userID)
}
