package commentapp

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid"

	commentEntity "socialite/internal/core/comment"
	commentPort "socialite/internal/ports/comment"
	postPort "socialite/internal/ports/post"
)

var (
	ErrTextRequired = errors.New("text is required")
	ErrTextTooLong  = errors.New("text must be at most 255 characters")
	ErrNotOwner     = errors.New("you do not own this comment")
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
	}
}

func (s *CommentService) Create(ctx context.Context, ownerID, postID, text string) (*commentPort.CommentDTO, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	// Missing post surfaces as a 404, not a dangling child row.
	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	c := &commentEntity.Comment{
		ID:      uuid.Must(uuid.NewV4()),
		OwnerID: uuid.FromStringOrNil(ownerID),
		PostID:  uuid.FromStringOrNil(postID),
		Text:    text,
	}

	if _, err := s.CommentRepository.Create(ctx, c); err != nil {
		return nil, err
	}

	created, err := s.CommentRepository.FindByID(ctx, c.ID.String())
	if err != nil {
		return nil, err
	}
	return toDTO(created), nil
}

func (s *CommentService) List(ctx context.Context) ([]*commentPort.CommentDTO, error) {
	comments, err := s.CommentRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, toDTO(c))
	}
	return dtos, nil
}

func (s *CommentService) Get(ctx context.Context, id string) (*commentPort.CommentDTO, error) {
	c, err := s.CommentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (s *CommentService) Update(ctx context.Context, actorID, id, text string) (*commentPort.CommentDTO, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	c, err := s.ownedComment(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	c.Text = text
	if err := s.CommentRepository.Update(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (s *CommentService) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.ownedComment(ctx, actorID, id); err != nil {
		return err
	}
	return s.CommentRepository.Delete(ctx, id)
}

func (s *CommentService) ownedComment(ctx context.Context, actorID, id string) (*commentEntity.Comment, error) {
	c, err := s.CommentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID.String() != actorID {
		return nil, ErrNotOwner
	}
	return c, nil
}

func toDTO(c *commentEntity.Comment) *commentPort.CommentDTO {
	return &commentPort.CommentDTO{
		ID:        c.ID.String(),
		PostID:    c.PostID.String(),
		OwnerName: c.Owner.FullName(),
		Text:      c.Text,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

// The limit is in characters, matching the varchar column width.
func validateText(text string) error {
	if text == "" {
		return ErrTextRequired
	}
	if utf8.RuneCountInString(text) > 255 {
		return ErrTextTooLong
	}
	return nil
}
