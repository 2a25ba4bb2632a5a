package handler

import (
	"fmt"
	"net/http"
	"path"
	"strconv"

	"taskboard/internal/blobstore"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler interface {
	GetUser(c *gin.Context)
	UpdateProfilePicture(c *gin.Context)
}

type userHandler struct {
	userRepo repository.UserRepository
	blobs    blobstore.Store
	logger   *zap.Logger
}

func NewUserHandler(userRepo repository.UserRepository, blobs blobstore.Store, logger *zap.Logger) UserHandler {
	return &userHandler{userRepo: userRepo, blobs: blobs, logger: logger}
}

// GetUser handles GET /api/v1/getUser/:id
func (h *userHandler) GetUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.userRepo.GetUserByID(id)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// profilePictureKey names the stored object after the owning user, keeping
// one picture per account regardless of the uploaded filename.
func profilePictureKey(username, filename string) string {
	return fmt.Sprintf("profile-pictures/%s%s", username, path.Ext(filename))
}

// UpdateProfilePicture handles POST /api/v1/updateProfilePicture.
// Expects a multipart form with a "username" field and a "profile_picture" file.
func (h *userHandler) UpdateProfilePicture(c *gin.Context) {
	username := c.PostForm("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username field required"})
		return
	}

	fileHeader, err := c.FormFile("profile_picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	key := profilePictureKey(username, fileHeader.Filename)

	// Replace any previous picture stored under the same key.
	if err := h.blobs.Delete(c.Request.Context(), key); err != nil {
		h.logger.Warn("Failed to delete previous profile picture", zap.String("key", key), zap.Error(err))
	}

	url, err := h.blobs.Put(c.Request.Context(), key, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.logger.Error("Failed to upload profile picture", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload profile picture"})
		return
	}

	user, err := h.userRepo.UpdateProfilePicture(username, url)
	if err != nil {
		h.logger.Error("Failed to update user profile", zap.String("username", username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user profile"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}
