package router

import (
	"net/http"

	"github.com/cuongbtq/movie-maker/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// ServiceName is reported by the health endpoint
const ServiceName = "movie-api-service"

// Options tunes the engine beyond handler dependencies
type Options struct {
	// MaxMultipartMemory bounds the upload bytes kept in memory before spilling to disk
	MaxMultipartMemory int64
}

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, opts Options) *gin.Engine {
	r := gin.New()
	if opts.MaxMultipartMemory > 0 {
		r.MaxMultipartMemory = opts.MaxMultipartMemory
	}

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": ServiceName,
		})
	})

	movieHandler := handler.NewMovieHandler(deps)

	r.GET("/", movieHandler.Root)

	// POST /generate - Compose a narrated movie from a script and optional assets
	r.POST("/generate", movieHandler.Generate)

	// GET /preview/:job_id - Still frame from a finished movie
	r.GET("/preview/:job_id", movieHandler.Preview)

	// GET /download/:job_id - Finished movie as an attachment
	r.GET("/download/:job_id", movieHandler.Download)

	// DELETE /jobs/:job_id - Remove a job's artifacts
	r.DELETE("/jobs/:job_id", movieHandler.DeleteJob)

	return r
}
