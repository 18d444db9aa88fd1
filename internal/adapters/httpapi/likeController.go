package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LikeController struct{ uc LikeUseCase }

func NewLikeController(uc LikeUseCase) *LikeController {
	return &LikeController{uc: uc}
}

func (ctl *LikeController) List(c *gin.Context) {
	likes, err := ctl.uc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

// Toggle is a single action endpoint: it likes an unliked post and unlikes
// a liked one, inferring intent from current state.
func (ctl *LikeController) Toggle(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req struct {
		Post string `json:"post" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	liked, err := ctl.uc.Toggle(c.Request.Context(), userID, req.Post)
	if err != nil {
		respondError(c, err)
		return
	}

	if liked {
		c.JSON(http.StatusCreated, gin.H{"detail": "Post liked."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Like removed."})
}
