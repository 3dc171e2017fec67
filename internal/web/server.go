// Package web serves the task store as a small local JSON API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tgienger/stickyjar/internal/models"
	"github.com/tgienger/stickyjar/internal/store"
)

// Server exposes a store over HTTP. Requests are served one at a time
// because the store is not safe for concurrent use.
type Server struct {
	mu     sync.Mutex
	store  *store.Store
	logger *zap.Logger
}

func NewServer(st *store.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{store: st, logger: logger}
}

// Handler builds the routed request handler
func (s *Server) Handler() fasthttp.RequestHandler {
	r := router.New()

	r.GET("/health", s.health)

	r.GET("/api/v1/tasks", s.listTasks)
	r.POST("/api/v1/tasks", s.createTask)
	r.DELETE("/api/v1/tasks", s.clearTasks)
	r.DELETE("/api/v1/tasks/{id}", s.deleteTask)
	r.POST("/api/v1/tasks/{id}/complete", s.completeTask)

	r.GET("/api/v1/completed", s.listCompleted)
	r.DELETE("/api/v1/completed", s.clearCompleted)

	r.GET("/api/v1/stats", s.stats)

	return s.logRequests(r.Handler)
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler: s.Handler(),
		Name:    "stickyjar",
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case <-ctx.Done():
		if err := srv.Shutdown(); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) logRequests(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		next(ctx)
		s.logger.Debug("request",
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("path", ctx.Path()),
			zap.Int("status", ctx.Response.StatusCode()),
		)
	}
}

func (s *Server) health(ctx *fasthttp.RequestCtx) {
	respond(ctx, http.StatusOK, newSuccess(map[string]string{"status": "ok"}))
}

func (s *Server) listTasks(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if string(ctx.QueryArgs().Peek("group")) == "category" {
		respond(ctx, http.StatusOK, newSuccess(s.store.PendingByCategory()))
		return
	}
	respond(ctx, http.StatusOK, newSuccess(s.store.Pending()))
}

func (s *Server) createTask(ctx *fasthttp.RequestCtx) {
	var draft models.Draft
	if err := json.Unmarshal(ctx.PostBody(), &draft); err != nil {
		respond(ctx, http.StatusBadRequest, newError(CodeInvalid, "invalid payload"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.store.CreateTask(draft)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, newSuccess(task))
}

func (s *Server) completeTask(ctx *fasthttp.RequestCtx) {
	id := pathID(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.store.CompleteTask(id)
	if !ok {
		s.respondError(ctx, models.ErrTaskNotFound)
		return
	}
	respond(ctx, http.StatusOK, newSuccess(record))
}

func (s *Server) deleteTask(ctx *fasthttp.RequestCtx) {
	id := pathID(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.DeleteTask(id) {
		s.respondError(ctx, models.ErrTaskNotFound)
		return
	}
	ctx.SetStatusCode(http.StatusNoContent)
}

func (s *Server) clearTasks(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.ClearAllTasks()
	ctx.SetStatusCode(http.StatusNoContent)
}

func (s *Server) listCompleted(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	respond(ctx, http.StatusOK, newSuccess(s.store.Completed()))
}

func (s *Server) clearCompleted(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.ClearCompletedTasks()
	ctx.SetStatusCode(http.StatusNoContent)
}

func (s *Server) stats(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	respond(ctx, http.StatusOK, newSuccess(s.store.Stats()))
}

func (s *Server) respondError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, models.ErrTaskNotFound):
		respond(ctx, http.StatusNotFound, newError(CodeNotFound, err.Error()))
	case errors.Is(err, models.ErrEmptyText), errors.Is(err, models.ErrInvalidDraft):
		respond(ctx, http.StatusUnprocessableEntity, newError(CodeInvalid, err.Error()))
	default:
		s.logger.Error("request failed", zap.Error(err))
		respond(ctx, http.StatusInternalServerError, newError(CodeInternal, "internal error"))
	}
}

func pathID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}

func respond(ctx *fasthttp.RequestCtx, status int, payload Envelope) {
	body, err := json.Marshal(payload)
	if err != nil {
		ctx.SetStatusCode(http.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
