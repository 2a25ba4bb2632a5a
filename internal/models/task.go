package models

import "time"

type Task struct {
	ID          int64      `db:"task_id" json:"task_id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	CategoryID  *int64     `db:"category_id" json:"category_id"`
	TaskName    string     `db:"task_name" json:"task_name"`
	Description *string    `db:"description" json:"description"`
	DueDate     *time.Time `db:"due_date" json:"due_date"`
	IsFavorite  bool       `db:"is_favorite" json:"isFavorite"`
	Views       int64      `db:"views" json:"views"`
	CreatedDate time.Time  `db:"created_date" json:"created_date"`
}
