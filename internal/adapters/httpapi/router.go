package httpapi

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"socialite/internal/adapters/httpapi/middleware"
	postapp "socialite/internal/core/post/service"
	profileapp "socialite/internal/core/profile/service"
	commentPort "socialite/internal/ports/comment"
	identityPort "socialite/internal/ports/identity"
	likePort "socialite/internal/ports/like"
	postPort "socialite/internal/ports/post"
	profilePort "socialite/internal/ports/profile"
)

// Inbound ports: what the controllers need from the application layer.
type IdentityUseCase interface {
	Register(ctx context.Context, email, firstName, lastName, password string) (*identityPort.IdentityDTO, error)
	Login(ctx context.Context, email, password string) (*identityPort.LoginResponse, error)
	Me(ctx context.Context, id string) (*identityPort.IdentityDTO, error)
}

type ProfileUseCase interface {
	Create(ctx context.Context, ownerID string, in profileapp.CreateProfileInput) (*profilePort.ProfileDetailDTO, error)
	List(ctx context.Context, firstName, lastName string) ([]*profilePort.ProfileDTO, error)
	Get(ctx context.Context, id string) (*profilePort.ProfileDetailDTO, error)
	Update(ctx context.Context, actorID, id string, in profileapp.UpdateProfileInput) (*profilePort.ProfileDetailDTO, error)
	Delete(ctx context.Context, actorID, id string) error
	UploadImage(ctx context.Context, actorID, id, filename string, r io.Reader) (*profilePort.ProfileDetailDTO, error)
	Follow(ctx context.Context, actorID, targetProfileID string) error
	Unfollow(ctx context.Context, actorID, targetProfileID string) (bool, error)
}

type PostUseCase interface {
	Create(ctx context.Context, ownerID string, in postapp.CreatePostInput) (*postapp.CreatePostResult, error)
	List(ctx context.Context, viewerID, authorID, hashtag string) ([]*postPort.PostDTO, error)
	Get(ctx context.Context, id string) (*postPort.PostDTO, error)
	Update(ctx context.Context, actorID, id string, in postapp.UpdatePostInput) (*postPort.PostDTO, error)
	Delete(ctx context.Context, actorID, id string) error
}

type CommentUseCase interface {
	Create(ctx context.Context, ownerID, postID, text string) (*commentPort.CommentDTO, error)
	List(ctx context.Context) ([]*commentPort.CommentDTO, error)
	Get(ctx context.Context, id string) (*commentPort.CommentDTO, error)
	Update(ctx context.Context, actorID, id, text string) (*commentPort.CommentDTO, error)
	Delete(ctx context.Context, actorID, id string) error
}

type LikeUseCase interface {
	Toggle(ctx context.Context, actorID, postID string) (bool, error)
	List(ctx context.Context) ([]*likePort.LikeDetailDTO, error)
}

func SetupRoutes(
	identityUC IdentityUseCase,
	profileUC ProfileUseCase,
	postUC PostUseCase,
	commentUC CommentUseCase,
	likeUC LikeUseCase,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RateLimit(rate.Limit(20), 40))

	ic := NewIdentityController(identityUC)
	pc := NewProfileController(profileUC)
	poc := NewPostController(postUC)
	cc := NewCommentController(commentUC)
	lc := NewLikeController(likeUC)

	r.POST("/register", ic.Register)
	r.POST("/login", ic.Login)

	auth := r.Group("/", middleware.JWTAuthMiddleware())

	auth.GET("/me", ic.Me)

	auth.GET("/profiles", pc.List)
	auth.POST("/profiles", pc.Create)
	auth.GET("/profiles/:id", pc.Get)
	auth.PUT("/profiles/:id", pc.Update)
	auth.PATCH("/profiles/:id", pc.Update)
	auth.DELETE("/profiles/:id", pc.Delete)
	auth.GET("/profiles/:id/upload-image", pc.GetImage)
	auth.POST("/profiles/:id/upload-image", pc.UploadImage)
	// Graph mutations ride on GET like the rest of the profile actions.
	auth.GET("/profiles/:id/follow", pc.Follow)
	auth.GET("/profiles/:id/unfollow", pc.Unfollow)

	auth.GET("/posts", poc.List)
	auth.POST("/posts", poc.Create)
	auth.GET("/posts/:id", poc.Get)
	auth.PUT("/posts/:id", poc.Update)
	auth.PATCH("/posts/:id", poc.Update)
	auth.DELETE("/posts/:id", poc.Delete)
	auth.POST("/posts/:id/create_comment", cc.CreateForPost)

	auth.GET("/comments", cc.List)
	auth.POST("/comments", cc.Create)
	auth.GET("/comments/:id", cc.Get)
	auth.PUT("/comments/:id", cc.Update)
	auth.PATCH("/comments/:id", cc.Update)
	auth.DELETE("/comments/:id", cc.Delete)

	auth.GET("/likes", lc.List)
	auth.POST("/likes", lc.Toggle)

	return r
}
