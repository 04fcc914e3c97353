package handler

import (
	"net/http"

	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// RegisterRoutes registers favorite-related routes
func (h *FavoriteHandler) RegisterRoutes(posts, users *gin.RouterGroup) {
	posts.POST("/:post_id/favorite", h.Add)
	posts.DELETE("/:post_id/favorite", h.Remove)

	users.GET("/me/favorites", h.ListMine)
}

// Add bookmarks a post for the caller
// POST /api/posts/:post_id/favorite
func (h *FavoriteHandler) Add(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.AddFavorite(userID, postID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "post added to favorites"})
}

// Remove drops a post from the caller's favorites
// DELETE /api/posts/:post_id/favorite
func (h *FavoriteHandler) Remove(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.RemoveFavorite(userID, postID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post removed from favorites"})
}

// ListMine lists the caller's favorites with pagination
// GET /api/users/me/favorites
func (h *FavoriteHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	favorites, err := h.favoriteService.GetUserFavorites(userID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, favorites)
}
