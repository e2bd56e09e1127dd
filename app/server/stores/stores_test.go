package stores

import (
	"book-library/app/server/models"
	"context"
	"errors"
	"testing"
)

func exerciseUserStore(t *testing.T, s UserStore) {
	t.Helper()
	ctx := context.Background()

	if err := s.Create(ctx, &models.User{Username: "alice", PasswordHash: "h1", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("create alice: %v", err)
	}
	err := s.Create(ctx, &models.User{Username: "alice", PasswordHash: "h2", Role: models.RoleUser})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}

	user, err := s.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get alice: %v", err)
	}
	if user.PasswordHash != "h1" || user.Role != models.RoleAdmin {
		t.Fatalf("first registration should win, got %+v", user)
	}

	if _, err := s.Get(ctx, "bob"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func exerciseBookStore(t *testing.T, s BookStore) {
	t.Helper()
	ctx := context.Background()

	books, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("want empty list, got %d", len(books))
	}

	dune := &models.Book{Title: "Dune", Author: "Herbert"}
	if err := s.Create(ctx, dune); err != nil {
		t.Fatalf("create dune: %v", err)
	}
	if dune.ID != 1 {
		t.Fatalf("first id should be 1, got %d", dune.ID)
	}

	emma := &models.Book{Title: "Emma", Author: "Austen"}
	if err := s.Create(ctx, emma); err != nil {
		t.Fatalf("create emma: %v", err)
	}

	// 删除最新的一本后，新 ID 仍然继续递增
	if err := s.Delete(ctx, emma.ID); err != nil {
		t.Fatalf("delete emma: %v", err)
	}
	if _, err := s.Get(ctx, emma.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted book should be gone, got %v", err)
	}
	if err := s.Delete(ctx, emma.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}

	ulysses := &models.Book{Title: "Ulysses", Author: "Joyce"}
	if err := s.Create(ctx, ulysses); err != nil {
		t.Fatalf("create ulysses: %v", err)
	}
	if ulysses.ID <= emma.ID {
		t.Fatalf("ids must increase: got %d after %d", ulysses.ID, emma.ID)
	}

	updated, err := s.Update(ctx, dune.ID, func(book *models.Book) {
		book.Title = "Dune Messiah"
	})
	if err != nil {
		t.Fatalf("update dune: %v", err)
	}
	if updated.Title != "Dune Messiah" || updated.Author != "Herbert" || updated.ID != dune.ID {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if _, err := s.Update(ctx, 999, func(*models.Book) {}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing: want ErrNotFound, got %v", err)
	}

	books, err = s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(books) != 2 || books[0].ID != dune.ID || books[1].ID != ulysses.ID {
		t.Fatalf("unexpected list %+v", books)
	}
	if books[0].Title != "Dune Messiah" {
		t.Fatalf("list should reflect update, got %q", books[0].Title)
	}
}
