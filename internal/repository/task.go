package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// TaskUpdate carries the optional fields of a partial task update.
// Nil fields are left untouched.
type TaskUpdate struct {
	TaskName    *string
	Description *string
	DueDate     *time.Time
	CategoryID  *int64
}

func (u TaskUpdate) Empty() bool {
	return u.TaskName == nil && u.Description == nil && u.DueDate == nil && u.CategoryID == nil
}

type TaskRepository interface {
	CreateTask(task *models.Task) error
	ListTasks(params ListParams) ([]models.Task, error)
	ListTasksByUser(username string, params ListParams) ([]models.Task, error)
	UpdateTask(taskID int64, update TaskUpdate) (bool, error)
	SetFavorite(taskID int64, favorite bool) (bool, error)
	AdjustViews(taskID int64, delta int) (bool, error)
	DeleteTask(taskID int64) (bool, error)
	CountTasks() (int64, error)
}

type taskRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTaskRepository(db *sqlx.DB, logger *zap.Logger) TaskRepository {
	return &taskRepository{db: db, logger: logger}
}

func (r *taskRepository) CreateTask(task *models.Task) error {
	query := `INSERT INTO tasks (user_id, category_id, task_name, description, due_date, is_favorite, views)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING task_id, created_date`
	return r.db.QueryRowx(query, task.UserID, task.CategoryID, task.TaskName, task.Description,
		task.DueDate, task.IsFavorite, task.Views).Scan(&task.ID, &task.CreatedDate)
}

func (r *taskRepository) ListTasks(params ListParams) ([]models.Task, error) {
	query, args := newListQuery("tasks").search(params.Query).build(params)
	tasks := []models.Task{}
	if err := r.db.Select(&tasks, query, args...); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListTasksByUser(username string, params ListParams) ([]models.Task, error) {
	// user_id is resolved through the username in a single round trip
	query := `SELECT t.* FROM tasks t JOIN users u ON u.user_id = t.user_id WHERE u.username = $1`
	args := []interface{}{username}
	if params.Query != "" {
		args = append(args, "%"+params.Query+"%")
		query += fmt.Sprintf(" AND t.task_name ILIKE $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY t.task_id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, params.PageSize, (params.Page-1)*params.PageSize)

	tasks := []models.Task{}
	if err := r.db.Select(&tasks, query, args...); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) UpdateTask(taskID int64, update TaskUpdate) (bool, error) {
	sets := []string{}
	args := []interface{}{}
	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.TaskName != nil {
		addSet("task_name", *update.TaskName)
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.DueDate != nil {
		addSet("due_date", *update.DueDate)
	}
	if update.CategoryID != nil {
		addSet("category_id", *update.CategoryID)
	}
	if len(sets) == 0 {
		return false, nil
	}

	args = append(args, taskID)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE task_id = $%d", strings.Join(sets, ", "), len(args))
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return false, err
	}
	return rowsAffected(res)
}

func (r *taskRepository) SetFavorite(taskID int64, favorite bool) (bool, error) {
	res, err := r.db.Exec(`UPDATE tasks SET is_favorite = $1 WHERE task_id = $2`, favorite, taskID)
	if err != nil {
		return false, err
	}
	return rowsAffected(res)
}

func (r *taskRepository) AdjustViews(taskID int64, delta int) (bool, error) {
	res, err := r.db.Exec(`UPDATE tasks SET views = views + $1 WHERE task_id = $2`, delta, taskID)
	if err != nil {
		return false, err
	}
	return rowsAffected(res)
}

func (r *taskRepository) DeleteTask(taskID int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM tasks WHERE task_id = $1`, taskID)
	if err != nil {
		return false, err
	}
	return rowsAffected(res)
}

func (r *taskRepository) CountTasks() (int64, error) {
	var count int64
	err := r.db.Get(&count, `SELECT COUNT(*) FROM tasks`)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func rowsAffected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
