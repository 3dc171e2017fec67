package web

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/tgienger/stickyjar/internal/db"
	"github.com/tgienger/stickyjar/internal/models"
	"github.com/tgienger/stickyjar/internal/store"
)

type response struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func newTestServer(t *testing.T) (fasthttp.RequestHandler, *store.Store) {
	t.Helper()
	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	st := store.Open(db.NewMemory(), store.WithClock(func() time.Time { return now }))
	return NewServer(st, nil).Handler(), st
}

func do(t *testing.T, h fasthttp.RequestHandler, method, uri string, body []byte) (*fasthttp.RequestCtx, response) {
	t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != nil {
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBody(body)
	}
	h(&ctx)

	var resp response
	if string(ctx.Response.Header.ContentType()) == "application/json" {
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	}
	return &ctx, resp
}

func TestServer_Health(t *testing.T) {
	h, _ := newTestServer(t)
	ctx, resp := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
}

func TestServer_CreateAndList(t *testing.T) {
	h, st := newTestServer(t)

	ctx, resp := do(t, h, http.MethodPost, "/api/v1/tasks", []byte(`{"text":"  Make coffee ","color":"mint","category":"morning"}`))
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	var created models.Task
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "Make coffee", created.Text)
	assert.Equal(t, models.ColorMint, created.Color)
	assert.Len(t, st.Pending(), 1)

	ctx, resp = do(t, h, http.MethodGet, "/api/v1/tasks", nil)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(resp.Data, &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)

	_, resp = do(t, h, http.MethodGet, "/api/v1/tasks?group=category", nil)
	var groups []models.CategoryGroup
	require.NoError(t, json.Unmarshal(resp.Data, &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "morning", groups[0].Name)
}

func TestServer_CreateRejectsBadInput(t *testing.T) {
	h, st := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "malformed json", body: `{"text":`, status: http.StatusBadRequest},
		{name: "empty text", body: `{"text":"   "}`, status: http.StatusUnprocessableEntity},
		{name: "unknown color", body: `{"text":"a","color":"plaid"}`, status: http.StatusUnprocessableEntity},
		{name: "minutes out of range", body: `{"text":"a","estimatedMinutes":90}`, status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, resp := do(t, h, http.MethodPost, "/api/v1/tasks", []byte(tt.body))
			assert.Equal(t, tt.status, ctx.Response.StatusCode())
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, CodeInvalid, resp.Code)
		})
	}
	assert.Empty(t, st.Pending())
}

func TestServer_CompleteDeleteAndStats(t *testing.T) {
	h, st := newTestServer(t)

	a, err := st.CreateTask(models.Draft{Text: "a"})
	require.NoError(t, err)
	b, err := st.CreateTask(models.Draft{Text: "b"})
	require.NoError(t, err)

	ctx, resp := do(t, h, http.MethodPost, "/api/v1/tasks/"+a.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	var record models.CompletedTask
	require.NoError(t, json.Unmarshal(resp.Data, &record))
	assert.Equal(t, a.ID, record.ID)

	ctx, resp = do(t, h, http.MethodPost, "/api/v1/tasks/"+a.ID+"/complete", nil)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.Equal(t, CodeNotFound, resp.Code)

	ctx, _ = do(t, h, http.MethodDelete, "/api/v1/tasks/"+b.ID, nil)
	assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())
	ctx, _ = do(t, h, http.MethodDelete, "/api/v1/tasks/"+b.ID, nil)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())

	_, resp = do(t, h, http.MethodGet, "/api/v1/stats", nil)
	var stats models.Stats
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, 0, stats.Active)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, 1, stats.Today)
	assert.Len(t, stats.Achievements, 4)
	assert.True(t, stats.Achievements[0].Unlocked)

	_, resp = do(t, h, http.MethodGet, "/api/v1/completed", nil)
	var completed []models.CompletedTask
	require.NoError(t, json.Unmarshal(resp.Data, &completed))
	assert.Len(t, completed, 1)
}

func TestServer_Clear(t *testing.T) {
	h, st := newTestServer(t)

	a, err := st.CreateTask(models.Draft{Text: "a"})
	require.NoError(t, err)
	_, err = st.CreateTask(models.Draft{Text: "b"})
	require.NoError(t, err)
	_, ok := st.CompleteTask(a.ID)
	require.True(t, ok)

	ctx, _ := do(t, h, http.MethodDelete, "/api/v1/tasks", nil)
	assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())
	assert.Empty(t, st.Pending())
	assert.Len(t, st.Completed(), 1)

	ctx, _ = do(t, h, http.MethodDelete, "/api/v1/completed", nil)
	assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())
	assert.Empty(t, st.Completed())
	assert.Equal(t, 1, st.Streak())
}

func TestServer_UnknownRoute(t *testing.T) {
	h, _ := newTestServer(t)
	ctx, _ := do(t, h, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}
