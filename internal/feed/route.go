package feed

import (
	"caiary/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, service *FeedService) {
	handler := NewFeedHandler(service)

	r.GET("/articles/all", middleware.JWTAuth(), handler.Feed)
}
