package stores

import (
	"book-library/app/server/models"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"
)

var (
	_ UserStore = (*MemoryUsers)(nil)
	_ BookStore = (*MemoryBooks)(nil)
)

type MemoryUsers struct {
	lock  sync.RWMutex
	users map[string]models.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		users: make(map[string]models.User),
	}
}

func (s *MemoryUsers) Create(_ context.Context, user *models.User) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exist := s.users[user.Username]; exist {
		return fmt.Errorf("user %s: %w", user.Username, ErrDuplicate)
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.Username] = *user

	return nil
}

func (s *MemoryUsers) Get(_ context.Context, username string) (*models.User, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	user, exist := s.users[username]
	if !exist {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}

	return &user, nil
}

type MemoryBooks struct {
	lock   sync.RWMutex
	books  map[int64]models.Book
	lastID int64 // 只增不减，删除后也不回退
}

func NewMemoryBooks() *MemoryBooks {
	return &MemoryBooks{
		books: make(map[int64]models.Book),
	}
}

func (s *MemoryBooks) List(_ context.Context) ([]models.Book, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	books := make([]models.Book, 0, len(s.books))
	for _, id := range slices.Sorted(maps.Keys(s.books)) {
		books = append(books, s.books[id])
	}

	return books, nil
}

func (s *MemoryBooks) Get(_ context.Context, id int64) (*models.Book, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	book, exist := s.books[id]
	if !exist {
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}

	return &book, nil
}

func (s *MemoryBooks) Create(_ context.Context, book *models.Book) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	// 分配 ID 与写入必须在同一把锁内完成
	s.lastID++
	now := time.Now()
	book.ID = s.lastID
	book.CreatedAt = now
	book.UpdatedAt = now
	s.books[book.ID] = *book

	return nil
}

func (s *MemoryBooks) Update(_ context.Context, id int64, mutate func(book *models.Book)) (*models.Book, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	book, exist := s.books[id]
	if !exist {
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}

	mutate(&book)
	book.ID = id
	book.UpdatedAt = time.Now()
	s.books[id] = book

	return &book, nil
}

func (s *MemoryBooks) Delete(_ context.Context, id int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exist := s.books[id]; !exist {
		return fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	delete(s.books, id)

	return nil
}
