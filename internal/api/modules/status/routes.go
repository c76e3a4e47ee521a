package status

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the status module
func RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/status", getStatus)
}
