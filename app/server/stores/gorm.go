package stores

import (
	"book-library/app/server/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	_ UserStore = (*GormUsers)(nil)
	_ BookStore = (*GormBooks)(nil)
)

type GormUsers struct {
	db *gorm.DB
}

func NewGormUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{db: db}
}

func (s *GormUsers) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先检查是否存在，避免依赖各个驱动的错误翻译
		var counter int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&counter).Error; err != nil {
			return fmt.Errorf("count user %s: %w", user.Username, err)
		} else if counter > 0 {
			return fmt.Errorf("user %s: %w", user.Username, ErrDuplicate)
		}

		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("user %s: %w", user.Username, ErrDuplicate)
			}
			return fmt.Errorf("create user %s: %w", user.Username, err)
		}

		return nil
	})
}

func (s *GormUsers) Get(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}

	return &user, nil
}

type GormBooks struct {
	db *gorm.DB
}

func NewGormBooks(db *gorm.DB) *GormBooks {
	return &GormBooks{db: db}
}

func (s *GormBooks) List(ctx context.Context) ([]models.Book, error) {
	books := []models.Book{}
	if err := s.db.WithContext(ctx).Model(&models.Book{}).Order("id ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return books, nil
}

func (s *GormBooks) Get(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	if err := s.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}

	return &book, nil
}

func (s *GormBooks) Create(ctx context.Context, book *models.Book) error {
	// ID 交给数据库自增分配
	book.ID = 0
	if err := s.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

func (s *GormBooks) Update(ctx context.Context, id int64, mutate func(book *models.Book)) (*models.Book, error) {
	var book models.Book
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("book %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("get book %d: %w", id, err)
		}

		mutate(&book)
		book.ID = id

		if err := tx.Save(&book).Error; err != nil {
			return fmt.Errorf("save book %d: %w", id, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &book, nil
}

func (s *GormBooks) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Book{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete book %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book %d: %w", id, ErrNotFound)
	}

	return nil
}
