package models

import "time"

type Book struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"` // 单调递增，删除后也不会复用
	Title     string    `gorm:"column:title;not null" json:"title"`
	Author    string    `gorm:"column:author;not null" json:"author"`
	CreatedAt time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"-"`
}

// BookPatch 描述部分更新，nil 字段保持不变
type BookPatch struct {
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
}
