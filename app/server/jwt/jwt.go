package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissing   = errors.New("token is missing")
	ErrMalformed = errors.New("token is malformed")
	ErrInvalid   = errors.New("token is invalid")
)

type JWT struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

type User struct {
	ID       string // jti，每次签发都不同
	Username string
	Expires  int64 // Unix second
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func New(key string, ttl time.Duration) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("ttl must be positive")
	}

	return &JWT{key: []byte(key), ttl: ttl, now: time.Now}, nil
}

// BearerToken 从 Authorization 头中提取 token
func BearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissing
	}

	splits := strings.Split(authHeader, " ")
	if len(splits) != 2 || splits[1] == "" {
		return "", fmt.Errorf("%w: invalid auth header", ErrMalformed)
	}

	if strings.ToLower(splits[0]) != "bearer" {
		return "", fmt.Errorf("%w: unknown auth method %s", ErrMalformed, splits[0])
	}

	return splits[1], nil
}

func (j *JWT) ParseUser(tokenString string) (*User, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, ErrMissing
	}

	// 映射字段
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	// 匹配内容
	if !token.Valid || c.Username == "" {
		return nil, fmt.Errorf("%w: missing username", ErrInvalid)
	}

	return &User{
		ID:       c.ID,
		Username: c.Username,
		Expires:  c.ExpiresAt.Unix(),
	}, nil
}

func (j *JWT) SignToken(username string) (string, *User, error) {
	now := j.now()
	user := &User{
		ID:       uuid.NewString(),
		Username: username,
		Expires:  now.Add(j.ttl).Unix(),
	}

	// 创建声明
	c := claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(time.Unix(user.Expires, 0)),
		},
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	// 签名并返回
	signed, err := token.SignedString(j.key)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return signed, user, nil
}
