package identityapp

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"socialite/internal/config"
	identityEntity "socialite/internal/core/identity"
	identityPort "socialite/internal/ports/identity"

	"go.uber.org/zap"
)

const tokenTTL = 24 * time.Hour

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type IdentityService struct {
	IdentityRepository identityPort.IdentityRepository
	jwtKey             []byte
}

func NewIdentityService(repo identityPort.IdentityRepository, jwtKey []byte) *IdentityService {
	return &IdentityService{
		IdentityRepository: repo,
		jwtKey:             jwtKey,
	}
}

func (s *IdentityService) Register(ctx context.Context, email, firstName, lastName, password string) (*identityPort.IdentityDTO, error) {
	existing, err := s.IdentityRepository.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &identityEntity.Identity{
		ID:        uuid.Must(uuid.NewV4()),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  string(hashed),
	}

	created, err := s.IdentityRepository.Create(ctx, account)
	if err != nil {
		// A concurrent register with the same email slipped past the lookup;
		// the unique index on email catches it here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return toDTO(created), nil
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (*identityPort.LoginResponse, error) {
	account, err := s.IdentityRepository.FindByEmail(ctx, email)
	if err != nil {
		config.Logger.Info("Login attempt for unknown email", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(tokenTTL)
	token, err := s.generateJWT(account, expiresAt)
	if err != nil {
		config.Logger.Error("Error generating JWT:", zap.Error(err))
		return nil, errors.New("could not generate token")
	}

	return &identityPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *IdentityService) Me(ctx context.Context, id string) (*identityPort.IdentityDTO, error) {
	account, err := s.IdentityRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(account), nil
}

func (s *IdentityService) generateJWT(account *identityEntity.Identity, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   account.ID.String(),
		Issuer:    "socialite",
		ExpiresAt: expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

func toDTO(account *identityEntity.Identity) *identityPort.IdentityDTO {
	return &identityPort.IdentityDTO{
		ID:        account.ID.String(),
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}
}
