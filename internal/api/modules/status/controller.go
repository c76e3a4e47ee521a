package status

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/textcraft/pkg/session"
)

var (
	store     *session.Store
	startedAt time.Time
)

// Init wires the module to the session store
func Init(s *session.Store) {
	store = s
	startedAt = time.Now()
}

// Return live session count and uptime
func getStatus(c *gin.Context) {
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "status module not initialized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active_sessions": store.Count(),
		"uptime_seconds":  int(time.Since(startedAt).Seconds()),
	})
}
