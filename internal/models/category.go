package models

type Category struct {
	ID           int64  `db:"category_id" json:"category_id"`
	CategoryName string `db:"category_name" json:"category_name"`
}

// PageInfo echoes the pagination parameters a list endpoint resolved to.
type PageInfo struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Query    string `json:"query"`
}
