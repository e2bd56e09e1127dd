package handlers

import (
	"book-library/app/server/catalog"
	"book-library/app/server/constants"
	"book-library/app/server/models"
	"book-library/app/server/stores"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"strconv"
)

// parseBookID 解析路径中的 ID，非正整数按不存在处理
func parseBookID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (a *App) BookList(c echo.Context) error {
	rctx := c.Request().Context()

	books, err := a.books.List(rctx)
	if err != nil {
		a.l.Error("failed to get book list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, books)
}

func (a *App) BookInfoGet(c echo.Context) error {
	id, ok := parseBookID(c)
	if !ok {
		return a.er(c, http.StatusNotFound, constants.MessageBookNotFound)
	}

	rctx := c.Request().Context()

	book, err := a.books.Get(rctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return a.er(c, http.StatusNotFound, constants.MessageBookNotFound)
		}
		a.l.Error("failed to get book", zap.Int64("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, book)
}

func (a *App) BookCreate(c echo.Context) error {
	// 检查权限
	user, err, statusCode, message := a.requireAdmin(c)
	if err != nil {
		a.l.Debug("failed to auth", zap.Error(err))
		return a.er(c, statusCode, message)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req BookCreateRequest
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest, constants.MessageBookFieldsRequired)
	}

	// 创建
	book, err := a.books.Add(rctx, req.Title, req.Author)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			return a.er(c, http.StatusBadRequest, constants.MessageBookFieldsRequired)
		}
		a.l.Error("failed to create book", zap.Any("req", req), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.l.Info("book created", zap.Int64("id", book.ID), zap.String("by", user.Username))

	return c.JSON(http.StatusCreated, book)
}

func (a *App) BookInfoUpdate(c echo.Context) error {
	// 检查权限
	user, err, statusCode, message := a.requireAdmin(c)
	if err != nil {
		a.l.Debug("failed to auth", zap.Error(err))
		return a.er(c, statusCode, message)
	}

	id, ok := parseBookID(c)
	if !ok {
		return a.er(c, http.StatusNotFound, constants.MessageBookNotFound)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req models.BookPatch
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 更新
	book, err := a.books.Update(rctx, id, req)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return a.er(c, http.StatusNotFound, constants.MessageBookNotFound)
		}
		a.l.Error("failed to update book", zap.Int64("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.l.Info("book updated", zap.Int64("id", id), zap.String("by", user.Username))

	return c.JSON(http.StatusOK, book)
}

func (a *App) BookDelete(c echo.Context) error {
	// 检查权限
	user, err, statusCode, message := a.requireAdmin(c)
	if err != nil {
		a.l.Debug("failed to auth", zap.Error(err))
		return a.er(c, statusCode, message)
	}

	id, ok := parseBookID(c)
	if !ok {
		return a.er(c, http.StatusNotFound, constants.MessageBookNotFound)
	}

	rctx := c.Request().Context()

	// 删除
	if err := a.books.Delete(rctx, id); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return a.er(c, http.StatusNotFound, constants.MessageBookNotFound)
		}
		a.l.Error("failed to delete book", zap.Int64("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.l.Info("book deleted", zap.Int64("id", id), zap.String("by", user.Username))

	return c.JSON(http.StatusOK, &MessageResponse{
		Message: constants.MessageBookDeleted,
	})
}
