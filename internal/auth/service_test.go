package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cinebook/internal/shared/apperrors"
	"cinebook/internal/shared/config"
	"cinebook/internal/users"
)

type fakeUserRepo struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*users.User),
		byID:    make(map[string]*users.User),
	}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *users.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	user, ok := f.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, role users.Role) *users.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &users.User{
		ID:       uuid.New(),
		Name:     "Asha Rao",
		Email:    email,
		Password: string(hashed),
		Gender:   users.GenderFemale,
		Role:     role,
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func TestRegister_Success(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewService(repo, testConfig())

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Name:     "Rohan Mehta",
		Email:    "rohan.mehta@example.com",
		Password: "qwerty",
		Gender:   "M",
	})

	require.NoError(t, err)
	assert.Equal(t, "rohan.mehta@example.com", resp.User.Email)
	assert.Equal(t, string(users.RoleUser), resp.User.Role, "role defaults to USER")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), resp.ExpiresIn)

	// Password is stored hashed, never verbatim.
	stored := repo.byEmail["rohan.mehta@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "qwerty", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("qwerty")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "asha.rao@example.com", "qwerty", users.RoleUser)

	service := NewService(repo, testConfig())

	_, err := service.Register(context.Background(), &RegisterRequest{
		Name:     "Asha Rao",
		Email:    "asha.rao@example.com",
		Password: "different",
	})

	require.Error(t, err)
	assert.Equal(t, "ALREADY_EXISTS", apperrors.CodeOf(err))
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "asha.rao@example.com", "qwerty", users.RoleAdmin)

	service := NewService(repo, testConfig())

	t.Run("success", func(t *testing.T) {
		resp, err := service.Login(context.Background(), &LoginRequest{
			Email:    "asha.rao@example.com",
			Password: "qwerty",
		})

		require.NoError(t, err)
		assert.Equal(t, string(users.RoleAdmin), resp.User.Role)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(context.Background(), &LoginRequest{
			Email:    "asha.rao@example.com",
			Password: "wrong",
		})

		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", apperrors.CodeOf(err))
		assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	})

	t.Run("unknown email is indistinguishable", func(t *testing.T) {
		_, err := service.Login(context.Background(), &LoginRequest{
			Email:    "nobody@example.com",
			Password: "qwerty",
		})

		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", apperrors.CodeOf(err))
	})
}

func TestLogin_TokenClaims(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "asha.rao@example.com", "qwerty", users.RoleUser)

	cfg := testConfig()
	service := NewService(repo, cfg)

	resp, err := service.Login(context.Background(), &LoginRequest{
		Email:    "asha.rao@example.com",
		Password: "qwerty",
	})
	require.NoError(t, err)

	parse := func(tokenString string) *JWTClaims {
		token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWT.Secret), nil
		})
		require.NoError(t, err)
		claims, ok := token.Claims.(*JWTClaims)
		require.True(t, ok)
		return claims
	}

	access := parse(resp.AccessToken)
	assert.Equal(t, "access", access.Type)
	assert.Equal(t, user.ID.String(), access.UserID)
	assert.Equal(t, string(users.RoleUser), access.Role)

	refresh := parse(resp.RefreshToken)
	assert.Equal(t, "refresh", refresh.Type)
	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
}

func TestRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "asha.rao@example.com", "qwerty", users.RoleUser)

	service := NewService(repo, testConfig())

	resp, err := service.Login(context.Background(), &LoginRequest{
		Email:    "asha.rao@example.com",
		Password: "qwerty",
	})
	require.NoError(t, err)

	t.Run("refresh token yields a new pair", func(t *testing.T) {
		tokens, err := service.RefreshToken(context.Background(), &RefreshTokenRequest{
			RefreshToken: resp.RefreshToken,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		_, err := service.RefreshToken(context.Background(), &RefreshTokenRequest{
			RefreshToken: resp.AccessToken,
		})

		require.Error(t, err)
		assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := service.RefreshToken(context.Background(), &RefreshTokenRequest{
			RefreshToken: "not-a-token",
		})

		require.Error(t, err)
		assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("same old and new password", func(t *testing.T) {
		repo := newFakeUserRepo()
		user := seedUser(t, repo, "asha.rao@example.com", "qwerty", users.RoleUser)
		service := NewService(repo, testConfig())

		err := service.ChangePassword(context.Background(), user.ID.String(), &ChangePasswordRequest{
			CurrentPassword: "qwerty",
			NewPassword:     "qwerty",
		})

		require.Error(t, err)
		assert.Equal(t, "SAME_PASSWORD", apperrors.CodeOf(err))
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("wrong current password", func(t *testing.T) {
		repo := newFakeUserRepo()
		user := seedUser(t, repo, "asha.rao@example.com", "qwerty", users.RoleUser)
		service := NewService(repo, testConfig())

		err := service.ChangePassword(context.Background(), user.ID.String(), &ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "brand-new",
		})

		require.Error(t, err)
		assert.Equal(t, "INCORRECT_PASSWORD", apperrors.CodeOf(err))
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("success rotates the hash", func(t *testing.T) {
		repo := newFakeUserRepo()
		user := seedUser(t, repo, "asha.rao@example.com", "qwerty", users.RoleUser)
		service := NewService(repo, testConfig())

		err := service.ChangePassword(context.Background(), user.ID.String(), &ChangePasswordRequest{
			CurrentPassword: "qwerty",
			NewPassword:     "brand-new",
		})

		require.NoError(t, err)
		stored := repo.byID[user.ID.String()]
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("brand-new")))
	})
}
