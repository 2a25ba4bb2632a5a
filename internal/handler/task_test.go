package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"taskboard/internal/middleware"
	"taskboard/internal/models"
	"taskboard/internal/publisher"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeTaskRepo struct {
	mu      sync.Mutex
	tasks   []models.Task
	nextID  int64
	missing bool // every mutation reports zero rows affected
}

func (f *fakeTaskRepo) CreateTask(task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	task.ID = f.nextID
	f.tasks = append(f.tasks, *task)
	return nil
}

func (f *fakeTaskRepo) ListTasks(params repository.ListParams) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tasks == nil {
		return []models.Task{}, nil
	}
	return f.tasks, nil
}

func (f *fakeTaskRepo) ListTasksByUser(username string, params repository.ListParams) ([]models.Task, error) {
	return f.ListTasks(params)
}

func (f *fakeTaskRepo) UpdateTask(taskID int64, update repository.TaskUpdate) (bool, error) {
	return !f.missing, nil
}

func (f *fakeTaskRepo) SetFavorite(taskID int64, favorite bool) (bool, error) {
	return !f.missing, nil
}

func (f *fakeTaskRepo) AdjustViews(taskID int64, delta int) (bool, error) {
	return !f.missing, nil
}

func (f *fakeTaskRepo) DeleteTask(taskID int64) (bool, error) {
	return !f.missing, nil
}

func (f *fakeTaskRepo) CountTasks() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.tasks)), nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []publisher.Event
	done   chan struct{}
}

func (p *capturingPublisher) Publish(ctx context.Context, event string, payload interface{}) error {
	p.mu.Lock()
	p.events = append(p.events, publisher.Event{Event: event, Payload: payload})
	p.mu.Unlock()
	if p.done != nil {
		close(p.done)
	}
	return nil
}

func newTaskRouter(repo repository.TaskRepository, events publisher.Publisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, int64(1))
		c.Set(middleware.ContextEmail, "a@x.com")
	})
	h := NewTaskHandler(repo, events, zap.NewNop())
	r.GET("/api/v1/todos", h.ListTodos)
	r.GET("/api/v1/todosByUser/:username", h.ListTodosByUser)
	r.POST("/api/v1/todos/add", h.AddTodo)
	r.POST("/api/v1/todos/updateIsFavorite", h.UpdateIsFavorite)
	r.PUT("/api/v1/todos/update/:id", h.UpdateTodo)
	r.PUT("/api/v1/todos/updateViews/:id/:action", h.UpdateViews)
	r.DELETE("/api/v1/todos/delete/:id", h.DeleteTodo)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddTodo_PublishesTaskCount(t *testing.T) {
	repo := &fakeTaskRepo{}
	events := &capturingPublisher{done: make(chan struct{})}
	r := newTaskRouter(repo, events)

	w := do(r, http.MethodPost, "/api/v1/todos/add", `{"task_name":"buy milk"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Task inserted successfully")

	<-events.done
	events.mu.Lock()
	defer events.mu.Unlock()
	assert.Len(t, events.events, 1)
	assert.Equal(t, "totalCount", events.events[0].Event)
	assert.Equal(t, int64(1), events.events[0].Payload)
}

func TestAddTodo_MissingName(t *testing.T) {
	r := newTaskRouter(&fakeTaskRepo{}, publisher.Noop{})

	w := do(r, http.MethodPost, "/api/v1/todos/add", `{"description":"no name"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTodos_PageInfoDefaults(t *testing.T) {
	r := newTaskRouter(&fakeTaskRepo{}, publisher.Noop{})

	w := do(r, http.MethodGet, "/api/v1/todos", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"page":1`)
	assert.Contains(t, w.Body.String(), `"pageSize":10`)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestListTodos_ExplicitParams(t *testing.T) {
	r := newTaskRouter(&fakeTaskRepo{}, publisher.Noop{})

	w := do(r, http.MethodGet, "/api/v1/todos?page=2&pageSize=5&query=milk", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"page":2`)
	assert.Contains(t, w.Body.String(), `"pageSize":5`)
	assert.Contains(t, w.Body.String(), `"query":"milk"`)
}

func TestUpdateIsFavorite_RequiresBool(t *testing.T) {
	r := newTaskRouter(&fakeTaskRepo{}, publisher.Noop{})

	for _, body := range []string{
		`{"task_id":1}`,
		`{"task_id":1,"isFavorite":"true"}`,
		`{"isFavorite":true}`,
	} {
		w := do(r, http.MethodPost, "/api/v1/todos/updateIsFavorite", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestUpdateIsFavorite_NotFound(t *testing.T) {
	r := newTaskRouter(&fakeTaskRepo{missing: true}, publisher.Noop{})

	w := do(r, http.MethodPost, "/api/v1/todos/updateIsFavorite", `{"task_id":99,"isFavorite":true}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateViews_InvalidAction(t *testing.T) {
	r := newTaskRouter(&fakeTaskRepo{}, publisher.Noop{})

	w := do(r, http.MethodPut, "/api/v1/todos/updateViews/1/reset", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid action")
}

func TestUpdateViews_Increment(t *testing.T) {
	r := newTaskRouter(&fakeTaskRepo{}, publisher.Noop{})

	w := do(r, http.MethodPut, "/api/v1/todos/updateViews/1/increment", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Views updated successfully")
}

func TestUpdateTodo_NoFields(t *testing.T) {
	r := newTaskRouter(&fakeTaskRepo{}, publisher.Noop{})

	w := do(r, http.MethodPut, "/api/v1/todos/update/1", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTodo_BadID(t *testing.T) {
	r := newTaskRouter(&fakeTaskRepo{}, publisher.Noop{})

	w := do(r, http.MethodPut, "/api/v1/todos/update/abc", `{"task_name":"x"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTodo_NotFound(t *testing.T) {
	r := newTaskRouter(&fakeTaskRepo{missing: true}, publisher.Noop{})

	w := do(r, http.MethodDelete, "/api/v1/todos/delete/99", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTodo_Success(t *testing.T) {
	r := newTaskRouter(&fakeTaskRepo{}, publisher.Noop{})

	w := do(r, http.MethodDelete, "/api/v1/todos/delete/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Task deleted successfully")
}
