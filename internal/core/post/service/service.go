package postapp

import (
	"bytes"
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"socialite/internal/config"
	postEntity "socialite/internal/core/post"
	"socialite/internal/core/scheduledpost"
	commentPort "socialite/internal/ports/comment"
	postPort "socialite/internal/ports/post"
	profilePort "socialite/internal/ports/profile"
	schedulerPort "socialite/internal/ports/scheduler"
	"socialite/internal/ports/storage"

	"go.uber.org/zap"
)

var (
	ErrTextRequired   = errors.New("text is required")
	ErrTextTooLong    = errors.New("text must be at most 255 characters")
	ErrHashtagTooLong = errors.New("hashtag must be at most 125 characters")
	ErrNotOwner       = errors.New("you do not own this post")
)

type CreatePostInput struct {
	Text          string
	Hashtag       *string
	ScheduledTime string
	Image         []byte
	ImageName     string
}

type UpdatePostInput struct {
	Text    *string
	Hashtag *string
}

// CreatePostResult carries exactly one of the two outcomes: Post for a
// synchronous 201 creation, Scheduled for a deferred 202 acceptance.
type CreatePostResult struct {
	Post      *postPort.PostDTO
	Scheduled *postPort.ScheduledPostDTO
}

type PostService struct {
	PostRepository    postPort.PostRepository
	ProfileRepository profilePort.ProfileRepository
	Scheduler         schedulerPort.PostScheduler
	Store             storage.ImageStore
	Location          *time.Location
}

func NewPostService(
	postRepo postPort.PostRepository,
	profileRepo profilePort.ProfileRepository,
	sched schedulerPort.PostScheduler,
	store storage.ImageStore,
	loc *time.Location,
) *PostService {
	return &PostService{
		PostRepository:    postRepo,
		ProfileRepository: profileRepo,
		Scheduler:         sched,
		Store:             store,
		Location:          loc,
	}
}

// Create persists the post now unless scheduled_time is strictly in the
// future. A past scheduled_time collapses to immediate creation.
func (s *PostService) Create(ctx context.Context, ownerID string, in CreatePostInput) (*CreatePostResult, error) {
	if err := validatePost(in.Text, in.Hashtag); err != nil {
		return nil, err
	}

	if in.ScheduledTime != "" {
		runAt, err := scheduledpost.ParseScheduledTime(in.ScheduledTime, s.Location)
		if err != nil {
			return nil, err
		}

		if runAt.After(time.Now()) {
			return s.scheduleLater(ctx, ownerID, in, runAt)
		}
	}

	dto, err := s.createNow(ctx, ownerID, in)
	if err != nil {
		return nil, err
	}
	return &CreatePostResult{Post: dto}, nil
}

func (s *PostService) scheduleLater(ctx context.Context, ownerID string, in CreatePostInput, runAt time.Time) (*CreatePostResult, error) {
	hashtag := ""
	if in.Hashtag != nil {
		hashtag = *in.Hashtag
	}

	// The image crosses the queue boundary as base64 text; the submitting
	// request keeps no handle on it after this.
	payload := scheduledpost.NewPayload(ownerID, in.Text, hashtag, in.ImageName, in.Image)
	if err := s.Scheduler.Schedule(ctx, runAt, payload); err != nil {
		return nil, err
	}

	config.Logger.Info("✅ Post scheduled",
		zap.String("ownerID", ownerID),
		zap.Time("runAt", runAt),
	)

	return &CreatePostResult{
		Scheduled: &postPort.ScheduledPostDTO{
			Detail:       "Post accepted and will be created at the scheduled time.",
			ScheduledFor: runAt.Format(time.RFC3339),
		},
	}, nil
}

func (s *PostService) createNow(ctx context.Context, ownerID string, in CreatePostInput) (*postPort.PostDTO, error) {
	p := &postEntity.Post{
		ID:      uuid.Must(uuid.NewV4()),
		OwnerID: uuid.FromStringOrNil(ownerID),
		Text:    in.Text,
		Hashtag: in.Hashtag,
	}

	if len(in.Image) > 0 {
		stored, err := s.Store.Save(in.ImageName, bytes.NewReader(in.Image))
		if err != nil {
			return nil, err
		}
		p.Image = &stored
	}

	if _, err := s.PostRepository.Create(ctx, p); err != nil {
		if p.Image != nil {
			s.Store.Remove(*p.Image)
		}
		return nil, err
	}
	return toDTO(p), nil
}

// List assembles the personalized feed, unless an author or hashtag filter
// is present — then it is a global search across all posts instead.
func (s *PostService) List(ctx context.Context, viewerID, authorID, hashtag string) ([]*postPort.PostDTO, error) {
	var posts []*postEntity.Post
	var err error

	if authorID != "" || hashtag != "" {
		posts, err = s.PostRepository.ListFiltered(ctx, authorID, hashtag)
	} else {
		viewerProfileID := ""
		viewer, perr := s.ProfileRepository.FindByOwnerID(ctx, viewerID)
		if perr == nil {
			viewerProfileID = viewer.ID.String()
		} else if !errors.Is(perr, gorm.ErrRecordNotFound) {
			return nil, perr
		}
		posts, err = s.PostRepository.ListFeed(ctx, viewerID, viewerProfileID)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, toDTO(p))
	}
	return dtos, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

func (s *PostService) Update(ctx context.Context, actorID, id string, in UpdatePostInput) (*postPort.PostDTO, error) {
	p, err := s.ownedPost(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	if in.Text != nil {
		p.Text = *in.Text
	}
	if in.Hashtag != nil {
		p.Hashtag = in.Hashtag
	}
	if err := validatePost(p.Text, p.Hashtag); err != nil {
		return nil, err
	}

	if err := s.PostRepository.Update(ctx, p); err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

func (s *PostService) Delete(ctx context.Context, actorID, id string) error {
	p, err := s.ownedPost(ctx, actorID, id)
	if err != nil {
		return err
	}

	if err := s.PostRepository.Delete(ctx, id); err != nil {
		return err
	}

	if p.Image != nil {
		if err := s.Store.Remove(*p.Image); err != nil {
			config.Logger.Warn("⚠️ Could not remove deleted post image:", zap.String("image", *p.Image), zap.Error(err))
		}
	}
	return nil
}

func (s *PostService) ownedPost(ctx context.Context, actorID, id string) (*postEntity.Post, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID.String() != actorID {
		return nil, ErrNotOwner
	}
	return p, nil
}

func toDTO(p *postEntity.Post) *postPort.PostDTO {
	dto := &postPort.PostDTO{
		ID:            p.ID.String(),
		OwnerID:       p.OwnerID.String(),
		OwnerName:     p.Owner.FullName(),
		Text:          p.Text,
		Hashtag:       p.Hashtag,
		Image:         p.Image,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		CommentsCount: p.CommentsCount,
		LikesCount:    p.LikesCount,
	}

	for _, c := range p.Comments {
		dto.Comments = append(dto.Comments, &commentPort.CommentDTO{
			ID:        c.ID.String(),
			PostID:    c.PostID.String(),
			OwnerName: c.Owner.FullName(),
			Text:      c.Text,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		})
	}
	return dto
}

// Limits are in characters, matching the varchar column widths.
func validatePost(text string, hashtag *string) error {
	if text == "" {
		return ErrTextRequired
	}
	if utf8.RuneCountInString(text) > 255 {
		return ErrTextTooLong
	}
	if hashtag != nil && utf8.RuneCountInString(*hashtag) > 125 {
		return ErrHashtagTooLong
	}
	return nil
}
