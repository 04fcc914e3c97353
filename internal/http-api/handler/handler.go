package handler

import (
	"net/http"
	"strconv"

	"forumhub/internal/http-api/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status and writes it out
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
}

// currentUserID returns the authenticated user's id set by AuthMiddleware
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	return userID.(string), true
}

// pathID parses an int64 id path parameter
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// pagination reads page/page_size query parameters with sane defaults
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
