package profileapp

import (
	"context"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"socialite/internal/config"
	profileEntity "socialite/internal/core/profile"
	identityPort "socialite/internal/ports/identity"
	profilePort "socialite/internal/ports/profile"
	"socialite/internal/ports/storage"

	"go.uber.org/zap"
)

// Business-rule violations surface their message verbatim as the response
// detail, so they are worded for the client.
var (
	ErrSelfFollow       = errors.New("You cannot follow yourself.")
	ErrAlreadyFollowing = errors.New("You are already following this user.")
	ErrProfileExists    = errors.New("You already have a profile.")
	ErrNoProfile        = errors.New("You must create a profile first.")
	ErrInvalidGender    = errors.New("gender must be Male or Female")
	ErrBioTooLong       = errors.New("bio must be at most 255 characters")
	ErrPhoneTooLong     = errors.New("phone_number must be at most 18 characters")
	ErrNotOwner         = errors.New("you do not own this profile")
)

type CreateProfileInput struct {
	Gender         string
	Bio            *string
	PhoneNumber    *string
	OwnerFirstName string
	OwnerLastName  string
}

type UpdateProfileInput struct {
	Gender      *string
	Bio         *string
	PhoneNumber *string
}

type ProfileService struct {
	ProfileRepository  profilePort.ProfileRepository
	IdentityRepository identityPort.IdentityRepository
	Store              storage.ImageStore
}

func NewProfileService(
	profileRepo profilePort.ProfileRepository,
	identityRepo identityPort.IdentityRepository,
	store storage.ImageStore,
) *ProfileService {
	return &ProfileService{
		ProfileRepository:  profileRepo,
		IdentityRepository: identityRepo,
		Store:              store,
	}
}

func (s *ProfileService) Create(ctx context.Context, ownerID string, in CreateProfileInput) (*profilePort.ProfileDetailDTO, error) {
	if err := validateFields(in.Gender, in.Bio, in.PhoneNumber); err != nil {
		return nil, err
	}

	// One profile per identity; guarded here, not by a schema constraint.
	exists, err := s.ProfileRepository.ExistsForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrProfileExists
	}

	if in.OwnerFirstName != "" || in.OwnerLastName != "" {
		if err := s.IdentityRepository.UpdateName(ctx, ownerID, in.OwnerFirstName, in.OwnerLastName); err != nil {
			return nil, err
		}
	}

	p := &profileEntity.Profile{
		ID:          uuid.Must(uuid.NewV4()),
		OwnerID:     uuid.FromStringOrNil(ownerID),
		Gender:      in.Gender,
		Bio:         in.Bio,
		PhoneNumber: in.PhoneNumber,
	}

	if _, err := s.ProfileRepository.Create(ctx, p); err != nil {
		return nil, err
	}

	// Reload so the owner names land in the response.
	created, err := s.ProfileRepository.FindByID(ctx, p.ID.String())
	if err != nil {
		return nil, err
	}
	return s.toDetailDTO(ctx, created)
}

func (s *ProfileService) List(ctx context.Context, firstName, lastName string) ([]*profilePort.ProfileDTO, error) {
	profiles, err := s.ProfileRepository.List(ctx, firstName, lastName)
	if err != nil {
		return nil, err
	}

	dtos := make([]*profilePort.ProfileDTO, 0, len(profiles))
	for _, p := range profiles {
		dtos = append(dtos, toDTO(p))
	}
	return dtos, nil
}

func (s *ProfileService) Get(ctx context.Context, id string) (*profilePort.ProfileDetailDTO, error) {
	p, err := s.ProfileRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDetailDTO(ctx, p)
}

func (s *ProfileService) Update(ctx context.Context, actorID, id string, in UpdateProfileInput) (*profilePort.ProfileDetailDTO, error) {
	p, err := s.ownedProfile(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Bio != nil {
		p.Bio = in.Bio
	}
	if in.PhoneNumber != nil {
		p.PhoneNumber = in.PhoneNumber
	}
	if err := validateFields(p.Gender, p.Bio, p.PhoneNumber); err != nil {
		return nil, err
	}

	if err := s.ProfileRepository.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.toDetailDTO(ctx, p)
}

func (s *ProfileService) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.ownedProfile(ctx, actorID, id); err != nil {
		return err
	}
	return s.ProfileRepository.Delete(ctx, id)
}

func (s *ProfileService) UploadImage(ctx context.Context, actorID, id, filename string, r io.Reader) (*profilePort.ProfileDetailDTO, error) {
	p, err := s.ownedProfile(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	stored, err := s.Store.Save(filename, r)
	if err != nil {
		return nil, err
	}

	old := p.Image
	p.Image = &stored
	if err := s.ProfileRepository.Update(ctx, p); err != nil {
		s.Store.Remove(stored)
		return nil, err
	}

	if old != nil {
		if err := s.Store.Remove(*old); err != nil {
			config.Logger.Warn("⚠️ Could not remove replaced profile image:", zap.String("image", *old), zap.Error(err))
		}
	}
	return s.toDetailDTO(ctx, p)
}

// Follow inserts the directed actor→target edge. The edge set is a set: a
// second identical follow is rejected, not recorded twice.
func (s *ProfileService) Follow(ctx context.Context, actorID, targetProfileID string) error {
	actor, err := s.actorProfile(ctx, actorID)
	if err != nil {
		return err
	}

	target, err := s.ProfileRepository.FindByID(ctx, targetProfileID)
	if err != nil {
		return err
	}

	if actor.ID == target.ID {
		return ErrSelfFollow
	}

	following, err := s.ProfileRepository.HasEdge(ctx, actor.ID.String(), target.ID.String())
	if err != nil {
		return err
	}
	if following {
		return ErrAlreadyFollowing
	}

	edge := &profileEntity.FollowEdge{
		ID:         uuid.Must(uuid.NewV4()),
		FollowerID: actor.ID,
		FolloweeID: target.ID,
	}
	if err := s.ProfileRepository.AddEdge(ctx, edge); err != nil {
		// A concurrent follow from the same actor won the race; the unique
		// index on the pair keeps the edge set well defined.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Unfollow is idempotent: removing a missing edge is "nothing to do", not
// an error. The returned flag tells the two outcomes apart.
func (s *ProfileService) Unfollow(ctx context.Context, actorID, targetProfileID string) (bool, error) {
	actor, err := s.actorProfile(ctx, actorID)
	if err != nil {
		return false, err
	}

	target, err := s.ProfileRepository.FindByID(ctx, targetProfileID)
	if err != nil {
		return false, err
	}

	return s.ProfileRepository.RemoveEdge(ctx, actor.ID.String(), target.ID.String())
}

func (s *ProfileService) ownedProfile(ctx context.Context, actorID, id string) (*profileEntity.Profile, error) {
	p, err := s.ProfileRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID.String() != actorID {
		return nil, ErrNotOwner
	}
	return p, nil
}

func (s *ProfileService) actorProfile(ctx context.Context, actorID string) (*profileEntity.Profile, error) {
	p, err := s.ProfileRepository.FindByOwnerID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoProfile
		}
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) toDetailDTO(ctx context.Context, p *profileEntity.Profile) (*profilePort.ProfileDetailDTO, error) {
	followers, err := s.ProfileRepository.CountFollowers(ctx, p.ID.String())
	if err != nil {
		return nil, err
	}
	following, err := s.ProfileRepository.CountFollowing(ctx, p.ID.String())
	if err != nil {
		return nil, err
	}

	return &profilePort.ProfileDetailDTO{
		ProfileDTO:     *toDTO(p),
		Image:          p.Image,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

func toDTO(p *profileEntity.Profile) *profilePort.ProfileDTO {
	return &profilePort.ProfileDTO{
		ID:          p.ID.String(),
		FirstName:   p.Owner.FirstName,
		LastName:    p.Owner.LastName,
		Gender:      p.Gender,
		Bio:         p.Bio,
		PhoneNumber: p.PhoneNumber,
	}
}

// Limits are in characters, matching the varchar column widths.
func validateFields(gender string, bio, phone *string) error {
	if !profileEntity.ValidGender(gender) {
		return ErrInvalidGender
	}
	if bio != nil && utf8.RuneCountInString(*bio) > 255 {
		return ErrBioTooLong
	}
	if phone != nil && utf8.RuneCountInString(*phone) > 18 {
		return ErrPhoneTooLong
	}
	return nil
}
