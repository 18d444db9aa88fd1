package httpapi

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	postapp "socialite/internal/core/post/service"
)

type PostController struct{ uc PostUseCase }

func NewPostController(uc PostUseCase) *PostController {
	return &PostController{uc: uc}
}

func (ctl *PostController) List(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	posts, err := ctl.uc.List(c.Request.Context(), userID, c.Query("author"), c.Query("hashtag"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Create answers 201 with the post when it is created synchronously and 202
// with no post id when a future scheduled_time deferred it.
func (ctl *PostController) Create(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req struct {
		Text          string  `form:"text" json:"text" binding:"required"`
		Hashtag       *string `form:"hashtag" json:"hashtag"`
		ScheduledTime string  `form:"scheduled_time" json:"scheduled_time"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	in := postapp.CreatePostInput{
		Text:          req.Text,
		Hashtag:       req.Hashtag,
		ScheduledTime: req.ScheduledTime,
	}

	if header, err := c.FormFile("image"); err == nil {
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
			return
		}
		in.Image = data
		in.ImageName = header.Filename
	}

	res, err := ctl.uc.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	if res.Scheduled != nil {
		c.JSON(http.StatusAccepted, res.Scheduled)
		return
	}
	c.JSON(http.StatusCreated, res.Post)
}

func (ctl *PostController) Get(c *gin.Context) {
	p, err := ctl.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ctl *PostController) Update(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req struct {
		Text    *string `json:"text"`
		Hashtag *string `json:"hashtag"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	p, err := ctl.uc.Update(c.Request.Context(), userID, c.Param("id"), postapp.UpdatePostInput{
		Text:    req.Text,
		Hashtag: req.Hashtag,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ctl *PostController) Delete(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	if err := ctl.uc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
