package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/common"
	"github.com/dmitrijs2005/promptbook/internal/server/auth"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager())

	u, err := s.SignUp(ctx, "  Ana@PC.gov ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ana@pc.gov", u.Email)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, []byte("secret1"), u.PasswordHash)

	_, err = s.SignUp(ctx, "ana@pc.gov", "another1")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	for _, tc := range []struct{ email, password string }{
		{"no-at-sign", "secret1"},
		{"@pc.gov", "secret1"},
		{"ana@", "secret1"},
		{"bia@pc.gov", "short"},
	} {
		_, err := s.SignUp(ctx, tc.email, tc.password)
		require.ErrorIs(t, err, common.ErrorInvalidArgument, tc.email)
	}
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager())

	u, err := s.SignUp(ctx, "ana@pc.gov", "secret1")
	require.NoError(t, err)

	sess, err := s.SignIn(ctx, "ANA@pc.gov", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.User.ID)
	assert.Nil(t, sess.User.PasswordHash)
	assert.NotEmpty(t, sess.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)

	claims, err := auth.ParseToken(sess.AccessToken, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "ana@pc.gov", claims.Email)

	_, err = s.SignIn(ctx, "ana@pc.gov", "wrong-pw")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.SignIn(ctx, "nobody@pc.gov", "secret1")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestSignIn_RepositoryFailures(t *testing.T) {
	ctx := context.Background()

	m := newBrokenManager()
	m.usersErr = errDB
	_, err := newUserService(t, m).SignIn(ctx, "ana@pc.gov", "secret1")
	require.ErrorIs(t, err, common.ErrorInternal)

	m = newBrokenManager()
	s := newUserService(t, m)
	_, err = s.SignUp(ctx, "ana@pc.gov", "secret1")
	require.NoError(t, err)
	m.tokensErr = errDB
	_, err = s.SignIn(ctx, "ana@pc.gov", "secret1")
	require.ErrorIs(t, err, common.ErrorInternal)
}

func TestRefreshToken_Rotates(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewInMemoryRepositoryManager()
	s := newUserService(t, m)

	_, err := s.SignUp(ctx, "ana@pc.gov", "secret1")
	require.NoError(t, err)
	first, err := s.SignIn(ctx, "ana@pc.gov", "secret1")
	require.NoError(t, err)

	second, err := s.RefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, first.User.ID, second.User.ID)

	_, err = s.RefreshToken(ctx, first.RefreshToken)
	require.ErrorIs(t, err, common.ErrorUnauthorized, "old token is single use")

	_, err = s.RefreshToken(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshToken_Expired(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewInMemoryRepositoryManager()
	s := newUserService(t, m)

	u, err := s.SignUp(ctx, "ana@pc.gov", "secret1")
	require.NoError(t, err)
	require.NoError(t, m.RefreshTokens(nil).Create(ctx, u.ID, "old", -time.Minute))

	_, err = s.RefreshToken(ctx, "old")
	require.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestRefreshToken_Failures(t *testing.T) {
	ctx := context.Background()

	m := newBrokenManager()
	m.tokensErr = errDB
	_, err := newUserService(t, m).RefreshToken(ctx, "t")
	require.ErrorIs(t, err, errDB)

	m = newBrokenManager()
	require.NoError(t, m.RefreshTokens(nil).Create(ctx, "ghost", "t", time.Hour))
	_, err = newUserService(t, m).RefreshToken(ctx, "t")
	require.ErrorIs(t, err, common.ErrorUnauthorized, "owner no longer exists")
}

func TestSignOut(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager())

	_, err := s.SignUp(ctx, "ana@pc.gov", "secret1")
	require.NoError(t, err)
	sess, err := s.SignIn(ctx, "ana@pc.gov", "secret1")
	require.NoError(t, err)

	require.NoError(t, s.SignOut(ctx, sess.RefreshToken))
	require.NoError(t, s.SignOut(ctx, sess.RefreshToken))
	require.NoError(t, s.SignOut(ctx, ""))

	_, err = s.RefreshToken(ctx, sess.RefreshToken)
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	m := newBrokenManager()
	m.tokensErr = errDB
	require.ErrorIs(t, newUserService(t, m).SignOut(ctx, "t"), errDB)
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager())

	u, err := s.SignUp(ctx, "ana@pc.gov", "secret1")
	require.NoError(t, err)

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@pc.gov", got.Email)

	_, err = s.GetUser(ctx, "missing")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	m := newBrokenManager()
	m.usersErr = errDB
	_, err = newUserService(t, m).GetUser(ctx, u.ID)
	require.ErrorIs(t, err, errDB)
}

func TestPurgeExpiredTokens(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewInMemoryRepositoryManager()
	s := newUserService(t, m)

	require.NoError(t, m.RefreshTokens(nil).Create(ctx, "u", "a", -time.Minute))
	require.NoError(t, m.RefreshTokens(nil).Create(ctx, "u", "b", time.Hour))

	n, err := s.PurgeExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
