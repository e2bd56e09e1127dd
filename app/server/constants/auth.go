package constants

import "time"

const (
	AuthTokenDuration  = 1 * time.Hour // 登录令牌默认有效期
	AuthContextUserKey = "currentUser" // echo context 中保存已验证用户的键
)
