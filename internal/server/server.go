// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the research agent over HTTP: a small web UI,
// a WebSocket progress stream, and JSON endpoints.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pdiddy/research-assistant/internal/history"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Runner starts a research run and streams its progress. Satisfied by
// *agent.Agent; tests supply a mock.
type Runner interface {
	Run(ctx context.Context, query string) <-chan types.ProgressEvent
}

// HistoryLister reads stored conversations for the history endpoint.
type HistoryLister interface {
	List(ctx context.Context, limit int) ([]history.Conversation, error)
}

// Server wires the agent and history store into HTTP routes.
type Server struct {
	agent   Runner
	history HistoryLister
	cfg     types.ServerConfig
	logger  *slog.Logger
}

// New builds a server. The history lister may be nil, in which case
// the history endpoint returns an empty list.
func New(agent Runner, hist HistoryLister, cfg types.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{agent: agent, history: hist, cfg: cfg, logger: logger}
}

// Router assembles the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	r.GET("/", s.handleIndex)
	r.GET("/ws", s.handleWS)
	r.GET("/healthz", s.handleHealth)
	r.POST("/api/query", s.handleQuery)
	r.GET("/api/history", s.handleHistory)

	return r
}

// Run starts the HTTP server on the configured address.
func (s *Server) Run() error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	s.logger.Info("server listening", "addr", addr)
	return s.Router().Run(addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// queryRequest is the body of POST /api/query.
type queryRequest struct {
	Query string `json:"query" binding:"required"`
}

// queryResponse is the blocking JSON result of a full run.
type queryResponse struct {
	Report string                `json:"report"`
	Papers []types.PaperRecord   `json:"papers"`
	Steps  []types.ProgressEvent `json:"steps"`
}

// handleQuery runs the pipeline to completion and returns the final
// report. Clients wanting live progress use /ws instead.
func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	var resp queryResponse
	for ev := range s.agent.Run(c.Request.Context(), req.Query) {
		if ev.Final {
			resp.Report = ev.Report
			resp.Papers = ev.Papers
			continue
		}
		resp.Steps = append(resp.Steps, ev)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHistory(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	if s.history == nil {
		c.JSON(http.StatusOK, gin.H{"conversations": []history.Conversation{}})
		return
	}

	convs, err := s.history.List(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("listing history failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list history"})
		return
	}
	if convs == nil {
		convs = []history.Conversation{}
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}
