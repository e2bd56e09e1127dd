// Package credentials 负责用户注册与密码校验，密码只以 argon2id hash 的形式保存。
package credentials

import (
	"book-library/app/server/models"
	"book-library/app/server/stores"
	"context"
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrBadCredentials = errors.New("invalid credentials")
)

type Service struct {
	store  stores.UserStore
	params *argon2id.Params

	// 用户不存在时也校验一次，避免通过响应时间枚举用户名
	dummyHash string
}

func New(store stores.UserStore, params *argon2id.Params) (*Service, error) {
	if params == nil {
		params = argon2id.DefaultParams
	}

	dummyHash, err := argon2id.CreateHash("dummy password", params)
	if err != nil {
		return nil, fmt.Errorf("create dummy hash: %w", err)
	}

	return &Service{
		store:     store,
		params:    params,
		dummyHash: dummyHash,
	}, nil
}

// Register 创建新用户，role 为空时默认为普通用户
func (s *Service) Register(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", ErrInvalidInput)
	}
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrInvalidInput)
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(password, s.params)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err = s.store.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Verify 校验用户名与密码，用户不存在和密码错误返回同一个错误
func (s *Service) Verify(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.Get(ctx, username)
	if err != nil {
		if !errors.Is(err, stores.ErrNotFound) {
			return nil, err
		}
		// 仍然做一次校验，让耗时和密码错误时保持一致
		_, _, _ = argon2id.CheckHash(password, s.dummyHash)
		return nil, ErrBadCredentials
	}

	// 提取密码 hash 并进行校验
	if match, _, err := argon2id.CheckHash(password, user.PasswordHash); err != nil {
		return nil, fmt.Errorf("check password of %s: %w", username, err)
	} else if !match {
		return nil, ErrBadCredentials
	}

	return user, nil
}

func (s *Service) Lookup(ctx context.Context, username string) (*models.User, error) {
	return s.store.Get(ctx, username)
}
