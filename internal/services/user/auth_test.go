package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"warehouse-system/internal/utils"
)

func newAuth(t *testing.T, loginsPerMinute int) (*AuthService, *Directory) {
	t.Helper()
	dir := NewDirectory(bcrypt.MinCost)
	require.NoError(t, SeedDemoUsers(dir))
	return NewAuthService(dir, utils.NewTokenIssuer("test-secret", time.Hour), loginsPerMinute, nil), dir
}

func TestLogin(t *testing.T) {
	auth, _ := newAuth(t, 30)
	ctx := context.Background()

	res, err := auth.Login(ctx, "Manager@Warehouse.com", "manager123")
	require.NoError(t, err)
	assert.Equal(t, "2", res.User.ID)
	assert.Equal(t, RoleManager, res.User.Role)
	assert.NotNil(t, res.User.LastLogin)
	assert.NotEmpty(t, res.Token)

	id, err := auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "2", Email: "manager@warehouse.com", Role: RoleManager}, id)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth, _ := newAuth(t, 30)
	ctx := context.Background()

	_, err := auth.Login(ctx, "admin@warehouse.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "nobody@warehouse.com", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_RateLimited(t *testing.T) {
	auth, _ := newAuth(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := auth.Login(ctx, "demo@warehouse.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := auth.Login(ctx, "demo@warehouse.com", "demo")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestLogin_RateLimitIsPerEmail(t *testing.T) {
	auth, _ := newAuth(t, 3)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		_, _ = auth.Login(ctx, "attacker@evil.com", "guess")
	}
	_, err := auth.Login(ctx, "attacker@evil.com", "guess")
	assert.ErrorIs(t, err, ErrRateLimited)

	res, err := auth.Login(ctx, "operator@warehouse.com", "operator123")
	require.NoError(t, err)
	assert.Equal(t, RoleOperator, res.User.Role)

	// Case and surrounding spaces do not open a fresh budget.
	_, err = auth.Login(ctx, " Attacker@Evil.com ", "guess")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestLoginLimiter_PrunesRefilledEntries(t *testing.T) {
	l := newLoginLimiter(1)
	l.maxTracked = 2

	require.True(t, l.allow("spent@warehouse.com"))
	l.limiters["idle@warehouse.com"] = rate.NewLimiter(l.every, l.burst)

	require.True(t, l.allow("new@warehouse.com"))
	assert.Len(t, l.limiters, 2)
	assert.NotContains(t, l.limiters, "idle@warehouse.com")
	assert.False(t, l.allow("spent@warehouse.com"), "spent budget survives pruning")
}

func TestAuthenticate_Rejects(t *testing.T) {
	auth, _ := newAuth(t, 30)
	ctx := context.Background()

	_, err := auth.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, _, err := utils.NewTokenIssuer("other", time.Hour).Generate("1", "admin@warehouse.com", "admin")
	require.NoError(t, err)
	_, err = auth.Authenticate(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshAndMe(t *testing.T) {
	auth, _ := newAuth(t, 30)
	ctx := context.Background()
	id := Identity{UserID: "3", Email: "operator@warehouse.com", Role: RoleOperator}

	tok, err := auth.Refresh(ctx, id)
	require.NoError(t, err)
	again, err := auth.Authenticate(ctx, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	me, err := auth.Me(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Warehouse Operator", me.Name)

	_, err = auth.Me(ctx, "99")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDirectory_RejectsDuplicates(t *testing.T) {
	_, dir := newAuth(t, 30)

	_, err := dir.Add(User{ID: "9", Email: "ADMIN@warehouse.com"}, "x")
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.Equal(t, 4, dir.Len())
}

func TestActorFromContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", ActorFromContext(ctx))

	ctx = WithIdentity(ctx, Identity{UserID: "1", Email: "admin@warehouse.com", Role: RoleAdmin})
	assert.Equal(t, "admin@warehouse.com", ActorFromContext(ctx))

	id, ok := IdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, id.Role)
}
