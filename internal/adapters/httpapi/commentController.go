package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentController struct{ uc CommentUseCase }

func NewCommentController(uc CommentUseCase) *CommentController {
	return &CommentController{uc: uc}
}

func (ctl *CommentController) List(c *gin.Context) {
	comments, err := ctl.uc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (ctl *CommentController) Create(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req struct {
		Post string `json:"post" binding:"required"`
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	cm, err := ctl.uc.Create(c.Request.Context(), userID, req.Post, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

// CreateForPost serves POST /posts/:id/create_comment; the post id comes
// from the path instead of the body.
func (ctl *CommentController) CreateForPost(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	cm, err := ctl.uc.Create(c.Request.Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

func (ctl *CommentController) Get(c *gin.Context) {
	cm, err := ctl.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (ctl *CommentController) Update(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	cm, err := ctl.uc.Update(c.Request.Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (ctl *CommentController) Delete(c *gin.Context) {
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
