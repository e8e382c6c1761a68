package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"timeclock/internal/logging"
)

// NewRouter configures the gin engine and registers every route. The engine
// runs in release mode unless debug is requested.
func NewRouter(h *Handler, debug bool) *gin.Engine {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(requestLogger(h.log), gin.Recovery())

	r.POST("/login_pin", h.LoginByPIN)
	r.POST("/worker_status", h.WorkerStatus)

	r.POST("/clock_in", h.ClockIn)
	r.POST("/clock_out", h.ClockOut)

	r.GET("/users", h.ListUsers)
	r.POST("/users/add", h.AddUser)
	r.DELETE("/users/delete/:user_id", h.DeleteUser)

	r.POST("/logout", h.ForceLogout)
	r.POST("/edit_time_entry", h.EditTimeEntry)
	r.GET("/time_entries", h.ListTimeEntries)
	r.POST("/suspend_user", h.SuspendUser)

	r.GET("/notes/:note_id", h.GetNote)
	r.GET("/notes/entity/:entity_id", h.NotesForEntity)

	return r
}

// requestLogger records one structured line per request after it completes.
func requestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}
