package handlers

import (
	"book-library/app/server/constants"
	serverhandlers "book-library/app/server/handlers"
	"book-library/app/server/models"
	"book-library/app/server/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var ErrNotReady = errors.New("server not ready")

type step struct {
	name string
	run  func(ctx context.Context) error
}

var sampleBooks = []serverhandlers.BookCreateRequest{
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald"},
	{Title: "1984", Author: "George Orwell"},
}

// Run 依次执行所有检查，遇到第一个失败就停止
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Wait > 0 {
		if err := a.waitReady(ctx); err != nil {
			return err
		}
	}

	steps := []step{
		{"register admin", a.registerAdmin},
		{"login", a.login},
		{"add books", a.addBooks},
		{"list books", a.listBooks},
		{"get book", a.getBook},
		{"update book", a.updateBook},
		{"add book without token", a.addWithoutToken},
	}
	if a.cfg.Cleanup {
		steps = append(steps, step{"delete books", a.deleteBooks})
	}

	for _, s := range steps {
		start := time.Now()
		if err := s.run(ctx); err != nil {
			a.l.Error("step failed", zap.String("step", s.name), zap.Error(err))
			return fmt.Errorf("%s: %w", s.name, err)
		}
		a.l.Info("step passed", zap.String("step", s.name), zap.Duration("took", time.Since(start)))
	}

	return nil
}

// waitReady 轮询健康检查，直到服务可用或超时
func (a *App) waitReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Wait)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		res, err := a.do(ctx, http.MethodGet, "/healthcheck", false, nil)
		if err == nil && res.status == http.StatusOK {
			return nil
		}
		a.l.Debug("waiting for server", zap.Error(err))

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w after %s", ErrNotReady, a.cfg.Wait)
		case <-ticker.C:
		}
	}
}

func (a *App) registerAdmin(ctx context.Context) error {
	res, err := a.do(ctx, http.MethodPost, "/register", false, &serverhandlers.RegisterRequest{
		Username: a.cfg.Username,
		Password: a.cfg.Password,
		Role:     string(models.RoleAdmin),
	})
	if err != nil {
		return err
	}

	// 重复运行时账号已经存在，继续用它登录
	if res.status == http.StatusBadRequest && res.message() == constants.MessageUserExists {
		a.l.Info("admin already registered", zap.String("username", a.cfg.Username))
		return nil
	}

	return res.expect(http.StatusCreated)
}

func (a *App) login(ctx context.Context) error {
	res, err := a.do(ctx, http.MethodPost, "/login", false, &serverhandlers.LoginRequest{
		Username: a.cfg.Username,
		Password: a.cfg.Password,
	})
	if err != nil {
		return err
	}
	if err = res.expect(http.StatusOK); err != nil {
		return err
	}

	var token serverhandlers.LoginToken
	if err = res.decode(&token); err != nil {
		return err
	}
	if token.Token == "" {
		return fmt.Errorf("empty token")
	}
	a.token = token.Token

	return nil
}

func (a *App) addBooks(ctx context.Context) error {
	for _, req := range sampleBooks {
		res, err := a.do(ctx, http.MethodPost, "/books", true, &req)
		if err != nil {
			return err
		}
		if err = res.expect(http.StatusCreated); err != nil {
			return err
		}

		var book models.Book
		if err = res.decode(&book); err != nil {
			return err
		}
		if book.ID <= 0 || book.Title != req.Title || book.Author != req.Author {
			return fmt.Errorf("unexpected book %+v", book)
		}
		if n := len(a.added); n > 0 && book.ID <= a.added[n-1] {
			return fmt.Errorf("book id %d is not greater than %d", book.ID, a.added[n-1])
		}
		a.added = append(a.added, book.ID)
	}

	return nil
}

func (a *App) listBooks(ctx context.Context) error {
	res, err := a.do(ctx, http.MethodGet, "/books", false, nil)
	if err != nil {
		return err
	}
	if err = res.expect(http.StatusOK); err != nil {
		return err
	}

	var books []models.Book
	if err = res.decode(&books); err != nil {
		return err
	}

	listed := make(map[int64]bool, len(books))
	for _, b := range books {
		listed[b.ID] = true
	}
	for _, id := range a.added {
		if !listed[id] {
			return fmt.Errorf("book %d missing from list", id)
		}
	}

	return nil
}

func (a *App) fetch(ctx context.Context, id int64) (*models.Book, error) {
	res, err := a.do(ctx, http.MethodGet, fmt.Sprintf("/books/%d", id), false, nil)
	if err != nil {
		return nil, err
	}
	if err = res.expect(http.StatusOK); err != nil {
		return nil, err
	}

	var book models.Book
	if err = res.decode(&book); err != nil {
		return nil, err
	}

	return &book, nil
}

func (a *App) getBook(ctx context.Context) error {
	book, err := a.fetch(ctx, a.added[0])
	if err != nil {
		return err
	}
	if book.Title != sampleBooks[0].Title {
		return fmt.Errorf("unexpected book %+v", book)
	}

	return nil
}

func (a *App) updateBook(ctx context.Context) error {
	id := a.added[0]
	title := sampleBooks[0].Title + " (Updated)"

	// 只更新标题，作者应保持不变
	res, err := a.do(ctx, http.MethodPut, fmt.Sprintf("/books/%d", id), true, &models.BookPatch{
		Title: utils.P(title),
	})
	if err != nil {
		return err
	}
	if err = res.expect(http.StatusOK); err != nil {
		return err
	}

	book, err := a.fetch(ctx, id)
	if err != nil {
		return err
	}
	if book.Title != title || book.Author != sampleBooks[0].Author {
		return fmt.Errorf("update not applied as expected: %+v", book)
	}

	return nil
}

func (a *App) addWithoutToken(ctx context.Context) error {
	res, err := a.do(ctx, http.MethodPost, "/books", false, &serverhandlers.BookCreateRequest{
		Title:  "Unauthorized Book",
		Author: "Nobody",
	})
	if err != nil {
		return err
	}

	return res.expect(http.StatusUnauthorized)
}

func (a *App) deleteBooks(ctx context.Context) error {
	for _, id := range a.added {
		res, err := a.do(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", id), true, nil)
		if err != nil {
			return err
		}
		if err = res.expect(http.StatusOK); err != nil {
			return err
		}
	}
	a.added = nil

	return nil
}
