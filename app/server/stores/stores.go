// Package stores 提供用户与书目的存储实现：进程内存、gorm（sqlite / postgres）以及 Redis 读缓存。
package stores

import (
	"book-library/app/server/models"
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type UserStore interface {
	// Create 保存新用户，用户名已存在时返回 ErrDuplicate
	Create(ctx context.Context, user *models.User) error
	// Get 按用户名查找，不存在时返回 ErrNotFound
	Get(ctx context.Context, username string) (*models.User, error)
}

type BookStore interface {
	// List 按插入顺序（即 ID 升序）返回全部书目
	List(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id int64) (*models.Book, error)
	// Create 分配新的 ID 并写回 book.ID
	Create(ctx context.Context, book *models.Book) error
	// Update 在同一临界区（或事务）内读取、修改并保存
	Update(ctx context.Context, id int64, mutate func(book *models.Book)) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
}
