package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/degreeplan/internal/app"
)

var errPanic = errors.New("unexpected server error")

type Options struct {
	// Mode is a gin mode: debug, release or test.
	Mode           string
	RequestTimeout time.Duration
}

// NewRouter exposes the engine under /api/v1.
func NewRouter(engine app.Engine, opts Options, log zerolog.Logger) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	useEngineValidator()
	r := gin.New()
	r.Use(RequestID(), Logger(log), Recovery(log), Timeout(opts.RequestTimeout))

	r.GET("/healthz", func(c *gin.Context) {
		success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})
	r.NoRoute(func(c *gin.Context) {
		fail(c, app.NewError(app.ErrValidation, "unknown route "+c.Request.Method+" "+c.Request.URL.Path))
	})

	h := &handlers{engine: engine}
	students := r.Group("/api/v1/students/:id")
	{
		students.GET("", h.getProfile)
		students.PUT("", h.setProfile)
		students.GET("/plan", h.getPlan)
		students.GET("/requirements", h.getRequirements)
		students.GET("/elective-categories", h.getElectiveCategories)
		students.GET("/available", h.getAvailable)
		students.GET("/prerequisites/:code", h.checkPrerequisites)
		students.POST("/validate", h.validatePlacement)
		students.POST("/courses", h.addCourse)
		students.POST("/placeholders", h.addPlaceholder)
		students.PATCH("/courses/:attemptId", h.moveCourse)
		students.DELETE("/courses/:attemptId", h.removeCourse)
		students.POST("/generate", h.generate)
	}
	return r
}
