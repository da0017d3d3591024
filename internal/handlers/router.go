package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mixtape/internal/session"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Issuer          *session.Issuer
	Session         *SessionHandler
	Playlist        *PlaylistHandler
	Suggestions     *SuggestionsHandler
	Recommendations *RecommendationsHandler
	Messages        *MessageHandler
}

// SetupRouter builds the gin engine with all routes registered.
// Everything under /api/v1 except session creation requires a valid
// bearer session token.
func SetupRouter(deps RouterDeps) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.POST("/session", deps.Session.Create)

	authed := api.Group("")
	authed.Use(SessionMiddleware(deps.Issuer))
	{
		authed.GET("/playlist", deps.Playlist.List)
		authed.POST("/playlist/songs", deps.Playlist.AddSong)
		authed.DELETE("/playlist/songs", deps.Playlist.DeleteSong)
		authed.DELETE("/playlist", deps.Playlist.Clear)

		authed.GET("/suggestions", deps.Suggestions.List)
		authed.POST("/suggestions/promote", deps.Suggestions.Promote)

		authed.GET("/recommendations", deps.Recommendations.List)

		authed.POST("/messages", deps.Messages.Handle)
	}

	return router
}
