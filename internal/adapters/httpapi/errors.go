package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	commentapp "socialite/internal/core/comment/service"
	identityapp "socialite/internal/core/identity/service"
	postapp "socialite/internal/core/post/service"
	profileapp "socialite/internal/core/profile/service"
	"socialite/internal/core/scheduledpost"
)

var businessRuleErrors = []error{
	profileapp.ErrSelfFollow,
	profileapp.ErrAlreadyFollowing,
	profileapp.ErrProfileExists,
	profileapp.ErrNoProfile,
	profileapp.ErrInvalidGender,
	profileapp.ErrBioTooLong,
	profileapp.ErrPhoneTooLong,
	postapp.ErrTextRequired,
	postapp.ErrTextTooLong,
	postapp.ErrHashtagTooLong,
	commentapp.ErrTextRequired,
	commentapp.ErrTextTooLong,
	identityapp.ErrEmailTaken,
	scheduledpost.ErrBadTimeFormat,
}

var permissionErrors = []error{
	profileapp.ErrNotOwner,
	postapp.ErrNotOwner,
	commentapp.ErrNotOwner,
}

// respondError maps service errors onto the HTTP surface: business-rule
// violations 400 with a human-readable detail, missing rows 404, non-owner
// mutations 403, everything else 500.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	for _, known := range permissionErrors {
		if errors.Is(err, known) {
			c.JSON(http.StatusForbidden, gin.H{"detail": known.Error()})
			return
		}
	}

	for _, known := range businessRuleErrors {
		if errors.Is(err, known) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": known.Error()})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// actorID pulls the authenticated identity id the JWT middleware stored.
func actorID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return "", false
	}
	return userID.(string), true
}
