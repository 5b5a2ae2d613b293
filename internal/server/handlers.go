package server

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/gapfill/internal/artifact"
	"github.com/abhisek/gapfill/internal/gapfill"
)

// User-facing messages.
const (
	msgEmptyText     = "텍스트를 입력해주세요."
	msgGenerated     = "갭필 문제가 생성되었습니다."
	msgNotFound      = "파일을 찾을 수 없습니다."
	msgGenerateError = "오류가 발생했습니다"
	msgDownloadError = "다운로드 중 오류가 발생했습니다"
	msgAnalyzeError  = "분석 중 오류가 발생했습니다"
	msgGapfillError  = "갭필 문제 생성 중 오류가 발생했습니다"
)

const downloadName = "gapfill_exercise.html"

//go:embed index.html
var indexPage []byte

type textRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

// handleGenerate runs the pipeline for the form field "text" and points the
// caller at the saved page.
func (s *Server) handleGenerate(c *gin.Context) {
	text := c.PostForm("text")

	res, err := s.pipeline.Generate(c.Request.Context(), text)
	if err != nil {
		s.fail(c, msgGenerateError, err)
		return
	}

	htmlPath := ""
	if res.Artifact != "" {
		if p, err := s.artifacts.Resolve(res.Artifact); err == nil {
			htmlPath = p
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      msgGenerated,
		"html_path":    htmlPath,
		"download_url": "/download/" + res.Artifact,
	})
}

// handleDownload sends a saved page as an attachment. Only the base name
// of the requested path is used.
func (s *Server) handleDownload(c *gin.Context) {
	name := path.Base(c.Param("path"))

	page, err := s.artifacts.Read(name)
	if err != nil {
		if errors.Is(err, artifact.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
			return
		}
		s.fail(c, msgDownloadError, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+downloadName)
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req textRequest
	if !s.bindText(c, &req) {
		return
	}

	analysis, err := s.pipeline.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		s.fail(c, msgAnalyzeError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

func (s *Server) handleGapfill(c *gin.Context) {
	var req textRequest
	if !s.bindText(c, &req) {
		return
	}

	res, err := s.pipeline.Generate(c.Request.Context(), req.Text)
	if err != nil {
		s.fail(c, msgGapfillError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"gapfill": res.Exercise,
		"html":    res.HTML,
	})
}

// bindText decodes a JSON {text} body. A malformed body is treated like a
// missing text.
func (s *Server) bindText(c *gin.Context, req *textRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.log.Debug("bad request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgEmptyText})
		return false
	}
	return true
}

// fail maps pipeline errors to responses. Empty input is a client error;
// everything else is a 500 carrying the error text.
func (s *Server) fail(c *gin.Context, prefix string, err error) {
	if errors.Is(err, gapfill.ErrEmptyPassage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgEmptyText})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("%s: %v", prefix, err)})
}
