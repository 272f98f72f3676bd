package ui

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "qsolve/internal/errors"
)

type solutionRequest struct {
	Questions string `json:"questions" binding:"required"`
}

// handleIndex serves the embedded single-page client.
func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.indexHTML)
}

// handleOCR accepts a multipart image upload and returns the recognized text.
func (s *Server) handleOCR(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	defer file.Close()

	// Size and type are checked before any recognition work happens.
	if header.Size > s.config.OCR.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Image size (%.1f MB) exceeds the %d MB limit",
				float64(header.Size)/(1024*1024), s.config.OCR.MaxUploadBytes/(1024*1024)),
		})
		return
	}
	if contentType := header.Header.Get("Content-Type"); contentType != "" && !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are supported"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("ocr: failed to read upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process image"})
		return
	}

	text, err := s.recognizer.Recognize(c.Request.Context(), data)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": appMessage(err, "Invalid image")})
			return
		}
		log.Error().Err(err).Msg("ocr: recognition failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"extractedText": text})
}

// handleSolutions validates the question text, calls the generator, and
// stores the exchange as a session. No session is created on any failure.
func (s *Server) handleSolutions(c *gin.Context) {
	var req solutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}
	if strings.TrimSpace(req.Questions) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": "questions text is required"})
		return
	}

	solution, err := s.generator.Generate(c.Request.Context(), req.Questions)
	if err != nil {
		switch apperrors.CodeOf(err) {
		case apperrors.CodeNotConfigured:
			log.Error().Err(err).Msg("solutions: generator not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"error": appMessage(err, "Solution generator not configured")})
		default:
			log.Error().Err(err).Msg("solutions: generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate solutions"})
		}
		return
	}

	// The stored extracted text mirrors the submitted text, even when the
	// text originally came from the OCR endpoint.
	extracted := req.Questions
	session, err := s.store.CreateQuestionSession(c.Request.Context(), req.Questions, &extracted, &solution.Text)
	if err != nil {
		log.Error().Err(err).Msg("solutions: failed to store session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"solutions": solution.Text,
		"sessionId": session.ID,
		"modelUsed": solution.Model,
	})
}

// handleGetSession returns the full session record as JSON.
func (s *Server) handleGetSession(c *gin.Context) {
	session, err := s.store.GetQuestionSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		log.Error().Err(err).Str("sessionId", c.Param("id")).Msg("sessions: retrieval failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// handleSessionPage renders a session with its solutions as HTML.
func (s *Server) handleSessionPage(c *gin.Context) {
	session, err := s.store.GetQuestionSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			c.String(http.StatusNotFound, "Session not found")
			return
		}
		log.Error().Err(err).Str("sessionId", c.Param("id")).Msg("sessions: retrieval failed")
		c.String(http.StatusInternalServerError, "Failed to retrieve session")
		return
	}

	solutions := ""
	if session.Solutions != nil {
		solutions = *session.Solutions
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, "session.html", gin.H{
		"Session":       session,
		"SolutionsHTML": renderMarkdown(solutions),
	}); err != nil {
		log.Error().Err(err).Msg("sessions: template render failed")
	}
}

// handleHealth reports process liveness and whether the model is configured.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"modelConfigured": s.config.AI.GeminiKey != "",
	})
}

// appMessage extracts the user-facing message from an AppError chain.
func appMessage(err error, fallback string) string {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
