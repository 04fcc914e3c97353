package handler

import (
	"net/http"

	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	lifecycleService service.LifecycleService
}

func NewUserHandler(lifecycleService service.LifecycleService) *UserHandler {
	return &UserHandler{lifecycleService: lifecycleService}
}

// RegisterRoutes registers user lifecycle routes
func (h *UserHandler) RegisterRoutes(users, admin *gin.RouterGroup) {
	users.DELETE("/me", h.DeleteSelf)
	admin.DELETE("/users/:user_id", h.DeleteByAdmin)
}

// DeleteSelf removes the caller's account with its full cascade
// DELETE /api/users/me
func (h *UserHandler) DeleteSelf(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.lifecycleService.DeleteUser(userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// DeleteByAdmin removes any user account, admin only
// DELETE /api/admin/users/:user_id
func (h *UserHandler) DeleteByAdmin(c *gin.Context) {
	userID := c.Param("user_id")

	if err := h.lifecycleService.DeleteUser(userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
