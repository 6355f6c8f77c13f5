package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bullyguard/internal/classifier"
	"bullyguard/internal/models"
)

// Server exposes the operator HTTP API: health, ad-hoc classification, and
// the training summary of the currently served model.
type Server struct {
	router  *gin.Engine
	clf     classifier.Classifier
	summary *models.TrainingSummary
	log     *logrus.Logger
}

// ClassifyRequest is the body of POST /api/v1/classify.
type ClassifyRequest struct {
	Text string `json:"text" binding:"required"`
}

// NewServer creates the API server around a shared classifier and the
// read-only training summary.
func NewServer(clf classifier.Classifier, summary *models.TrainingSummary, log *logrus.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router:  router,
		clf:     clf,
		summary: summary,
		log:     log,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := s.router.Group("/api/v1")
	api.POST("/classify", s.handleClassify)
	api.GET("/model/info", s.handleModelInfo)
}

func (s *Server) handleClassify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.log.Errorf("Failed to bind JSON for classification: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be blank"})
		return
	}

	verdict, err := s.clf.Classify(c.Request.Context(), req.Text)
	if err != nil {
		s.log.Errorf("Classification failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "classification unavailable"})
		return
	}

	c.JSON(http.StatusOK, verdict)
}

func (s *Server) handleModelInfo(c *gin.Context) {
	if s.summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no training summary for this run"})
		return
	}
	c.JSON(http.StatusOK, s.summary)
}

// Run starts the HTTP server on the given port. It blocks.
func (s *Server) Run(port string) error {
	s.log.Infof("Starting API server on port %s", port)
	return s.router.Run(":" + port)
}
