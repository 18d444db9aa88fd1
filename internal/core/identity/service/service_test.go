package identityapp

import (
	"context"
	"fmt"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbadapter "socialite/internal/adapters/database"
	"socialite/internal/config"
	identityEntity "socialite/internal/core/identity"
)

var testKey = []byte("unit-test-secret")

func setupDB(t *testing.T) {
	t.Helper()
	config.Logger = zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.Must(uuid.NewV4()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&identityEntity.Identity{}))
	config.DB = db
}

func newService() *IdentityService {
	return NewIdentityService(dbadapter.NewIdentityRepositoryDatabase(), testKey)
}

func TestRegisterHashesPassword(t *testing.T) {
	setupDB(t)
	svc := newService()

	dto, err := svc.Register(context.Background(), "a@test.com", "Ann", "Archer", "password123")
	require.NoError(t, err)
	assert.Equal(t, "a@test.com", dto.Email)

	var stored identityEntity.Identity
	require.NoError(t, config.DB.Where("id = ?", dto.ID).First(&stored).Error)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupDB(t)
	svc := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@test.com", "Ann", "Archer", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@test.com", "Other", "Person", "password456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

// racingIdentityRepo simulates losing a concurrent register: the email
// lookup sees nothing, then the insert hits the unique email index.
type racingIdentityRepo struct {
	*dbadapter.IdentityRepositoryDatabase
}

func (r *racingIdentityRepo) FindByEmail(ctx context.Context, email string) (*identityEntity.Identity, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *racingIdentityRepo) Create(ctx context.Context, account *identityEntity.Identity) (*identityEntity.Identity, error) {
	return nil, gorm.ErrDuplicatedKey
}

func TestRegisterLostRaceReportsEmailTaken(t *testing.T) {
	setupDB(t)
	svc := NewIdentityService(&racingIdentityRepo{dbadapter.NewIdentityRepositoryDatabase()}, testKey)

	_, err := svc.Register(context.Background(), "a@test.com", "Ann", "Archer", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginIssuesSubjectBoundToken(t *testing.T) {
	setupDB(t)
	svc := newService()
	ctx := context.Background()

	dto, err := svc.Register(ctx, "a@test.com", "Ann", "Archer", "password123")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "a@test.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(res.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return testKey, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, dto.ID, claims.Subject)
	assert.Equal(t, res.ExpiresAt, claims.ExpiresAt)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	setupDB(t)
	svc := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@test.com", "Ann", "Archer", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@test.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@test.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	setupDB(t)
	svc := newService()
	ctx := context.Background()

	dto, err := svc.Register(ctx, "a@test.com", "Ann", "Archer", "password123")
	require.NoError(t, err)

	me, err := svc.Me(ctx, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", me.FirstName)

	_, err = svc.Me(ctx, uuid.Must(uuid.NewV4()).String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
