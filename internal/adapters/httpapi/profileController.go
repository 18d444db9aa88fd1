package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileapp "socialite/internal/core/profile/service"
)

type ProfileController struct{ uc ProfileUseCase }

func NewProfileController(uc ProfileUseCase) *ProfileController {
	return &ProfileController{uc: uc}
}

func (ctl *ProfileController) List(c *gin.Context) {
	profiles, err := ctl.uc.List(c.Request.Context(), c.Query("first_name"), c.Query("last_name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (ctl *ProfileController) Create(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req struct {
		Gender      string  `json:"gender" binding:"required"`
		Bio         *string `json:"bio"`
		PhoneNumber *string `json:"phone_number"`
		FirstName   string  `json:"first_name"`
		LastName    string  `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	p, err := ctl.uc.Create(c.Request.Context(), userID, profileapp.CreateProfileInput{
		Gender:         req.Gender,
		Bio:            req.Bio,
		PhoneNumber:    req.PhoneNumber,
		OwnerFirstName: req.FirstName,
		OwnerLastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (ctl *ProfileController) Get(c *gin.Context) {
	p, err := ctl.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ctl *ProfileController) Update(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req struct {
		Gender      *string `json:"gender"`
		Bio         *string `json:"bio"`
		PhoneNumber *string `json:"phone_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	p, err := ctl.uc.Update(c.Request.Context(), userID, c.Param("id"), profileapp.UpdateProfileInput{
		Gender:      req.Gender,
		Bio:         req.Bio,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ctl *ProfileController) Delete(c *gin.Context) {
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

func (ctl *ProfileController) GetImage(c *gin.Context) {
	p, err := ctl.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": p.Image})
}

func (ctl *ProfileController) UploadImage(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return
	}
	defer f.Close()

	p, err := ctl.uc.UploadImage(c.Request.Context(), userID, c.Param("id"), header.Filename, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ctl *ProfileController) Follow(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	if err := ctl.uc.Follow(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "You are now following this user."})
}

// Unfollow answers 200 whether or not an edge existed; the detail string is
// the only difference between the two outcomes.
func (ctl *ProfileController) Unfollow(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	removed, err := ctl.uc.Unfollow(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if !removed {
		c.JSON(http.StatusOK, gin.H{"detail": "You are not following this user."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "You have unfollowed this user."})
}
