package handler

import (
	"net/http"

	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	postService     service.PostService
}

func NewCategoryHandler(categoryService service.CategoryService, postService service.PostService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		postService:     postService,
	}
}

// RegisterRoutes registers category-related routes
func (h *CategoryHandler) RegisterRoutes(categories, admin *gin.RouterGroup) {
	categories.GET("", h.List)
	categories.GET("/:category_id/posts", h.ListPosts)

	admin.POST("/categories", h.Create)
}

// List retrieves every category
// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// Create creates a new category, admin only
// POST /api/admin/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// ListPosts lists a category's posts with pagination
// GET /api/categories/:category_id/posts
func (h *CategoryHandler) ListPosts(c *gin.Context) {
	categoryID, ok := pathID(c, "category_id")
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	posts, err := h.postService.GetCategoryPosts(categoryID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}
