package catalog

import (
	"book-library/app/server/models"
	"book-library/app/server/stores"
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

// Catalog 是书目的业务入口。权限检查由调用方负责。
type Catalog struct {
	store stores.BookStore
}

func New(store stores.BookStore) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) List(ctx context.Context) ([]models.Book, error) {
	return c.store.List(ctx)
}

func (c *Catalog) Get(ctx context.Context, id int64) (*models.Book, error) {
	return c.store.Get(ctx, id)
}

func (c *Catalog) Add(ctx context.Context, title, author string) (*models.Book, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(author) == "" {
		return nil, fmt.Errorf("title and author required: %w", ErrInvalidInput)
	}

	book := &models.Book{
		Title:  title,
		Author: author,
	}
	if err := c.store.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// Update 只修改提供了的字段；空字符串和未提供一样，不会把字段清空
func (c *Catalog) Update(ctx context.Context, id int64, patch models.BookPatch) (*models.Book, error) {
	return c.store.Update(ctx, id, func(book *models.Book) {
		if patch.Title != nil && *patch.Title != "" {
			book.Title = *patch.Title
		}
		if patch.Author != nil && *patch.Author != "" {
			book.Author = *patch.Author
		}
	})
}

func (c *Catalog) Delete(ctx context.Context, id int64) error {
	return c.store.Delete(ctx, id)
}
