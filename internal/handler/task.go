package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"taskboard/internal/middleware"
	"taskboard/internal/models"
	"taskboard/internal/publisher"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// taskCountEvent is emitted after every task insertion.
const taskCountEvent = "totalCount"

type TaskHandler interface {
	ListTodos(c *gin.Context)
	ListTodosByUser(c *gin.Context)
	AddTodo(c *gin.Context)
	UpdateIsFavorite(c *gin.Context)
	UpdateTodo(c *gin.Context)
	UpdateViews(c *gin.Context)
	DeleteTodo(c *gin.Context)
}

type taskHandler struct {
	taskRepo repository.TaskRepository
	events   publisher.Publisher
	logger   *zap.Logger
}

func NewTaskHandler(taskRepo repository.TaskRepository, events publisher.Publisher, logger *zap.Logger) TaskHandler {
	return &taskHandler{taskRepo: taskRepo, events: events, logger: logger}
}

func listParams(c *gin.Context) (repository.ListParams, models.PageInfo) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	params := repository.ListParams{
		Page:     page,
		PageSize: pageSize,
		Query:    c.Query("query"),
	}
	return params.Normalize()
}

// ListTodos handles GET /api/v1/todos
func (h *taskHandler) ListTodos(c *gin.Context) {
	params, pageInfo := listParams(c)

	tasks, err := h.taskRepo.ListTasks(params)
	if err != nil {
		h.logger.Error("Failed to list tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pageInfo": pageInfo, "items": tasks})
}

// ListTodosByUser handles GET /api/v1/todosByUser/:username
func (h *taskHandler) ListTodosByUser(c *gin.Context) {
	params, pageInfo := listParams(c)
	username := c.Param("username")

	tasks, err := h.taskRepo.ListTasksByUser(username, params)
	if err != nil {
		h.logger.Error("Failed to list tasks by user", zap.String("username", username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pageInfo": pageInfo, "items": tasks})
}

type AddTodoRequest struct {
	TaskName    string     `json:"task_name" binding:"required"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  *int64     `json:"category_id"`
	IsFavorite  bool       `json:"isFavorite"`
}

// AddTodo handles POST /api/v1/todos/add
func (h *taskHandler) AddTodo(c *gin.Context) {
	var req AddTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := &models.Task{
		UserID:      c.MustGet(middleware.ContextUserID).(int64),
		TaskName:    req.TaskName,
		Description: req.Description,
		DueDate:     req.DueDate,
		CategoryID:  req.CategoryID,
		IsFavorite:  req.IsFavorite,
	}

	if err := h.taskRepo.CreateTask(task); err != nil {
		h.logger.Error("Failed to insert task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert task"})
		return
	}

	go h.broadcastTaskCount()

	c.JSON(http.StatusOK, gin.H{"message": "Task inserted successfully"})
}

// broadcastTaskCount publishes the current total task count. Failures are
// logged; they never affect the request that triggered the broadcast.
func (h *taskHandler) broadcastTaskCount() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := h.taskRepo.CountTasks()
	if err != nil {
		h.logger.Error("Failed to count tasks for broadcast", zap.Error(err))
		return
	}
	if err := h.events.Publish(ctx, taskCountEvent, count); err != nil {
		h.logger.Error("Failed to publish task count", zap.Error(err))
	}
}

type UpdateIsFavoriteRequest struct {
	TaskID     int64 `json:"task_id" binding:"required"`
	IsFavorite *bool `json:"isFavorite" binding:"required"`
}

// UpdateIsFavorite handles POST /api/v1/todos/updateIsFavorite
func (h *taskHandler) UpdateIsFavorite(c *gin.Context) {
	var req UpdateIsFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID and isFavorite flag are required"})
		return
	}

	found, err := h.taskRepo.SetFavorite(req.TaskID, *req.IsFavorite)
	if err != nil {
		h.logger.Error("Failed to update task favorite flag", zap.Int64("task_id", req.TaskID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
}

type UpdateTodoRequest struct {
	TaskName    *string    `json:"task_name"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  *int64     `json:"category_id"`
}

// UpdateTodo handles PUT /api/v1/todos/update/:id
func (h *taskHandler) UpdateTodo(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := repository.TaskUpdate{
		TaskName:    req.TaskName,
		Description: req.Description,
		DueDate:     req.DueDate,
		CategoryID:  req.CategoryID,
	}
	if update.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one field to update is required"})
		return
	}

	found, err := h.taskRepo.UpdateTask(taskID, update)
	if err != nil {
		h.logger.Error("Failed to update task", zap.Int64("task_id", taskID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
}

// UpdateViews handles PUT /api/v1/todos/updateViews/:id/:action
func (h *taskHandler) UpdateViews(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var delta int
	switch c.Param("action") {
	case "increment":
		delta = 1
	case "decrement":
		delta = -1
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		return
	}

	found, err := h.taskRepo.AdjustViews(taskID, delta)
	if err != nil {
		h.logger.Error("Failed to update views", zap.Int64("task_id", taskID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Views updated successfully"})
}

// DeleteTodo handles DELETE /api/v1/todos/delete/:id
func (h *taskHandler) DeleteTodo(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	found, err := h.taskRepo.DeleteTask(taskID)
	if err != nil {
		h.logger.Error("Failed to delete task", zap.Int64("task_id", taskID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func taskIDParam(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return 0, false
	}
	return id, true
}
