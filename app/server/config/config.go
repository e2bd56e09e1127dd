package config

import "time"

type Config struct {
	System struct {
		IsProd      bool     // 是否为生产环境
		Listen      string   // 监听地址
		CORSOrigins []string // 允许跨域的来源
	}
	Storage struct {
		Driver                string // 存储驱动： memory / sqlite / postgres
		DBConnectionString    string // 数据库的连接字符串，memory 驱动下不使用
		RedisConnectionString string // Redis 的连接字符串，留空则不启用书目缓存
	}
	Security struct {
		SignatureSecretKey string        // 签名密钥，用于产生签名（例如 JWT ），更新会导致旧有会话失效
		TokenTTL           time.Duration // 登录令牌有效期
		AdminUsername      string        // 启动时初始化的管理员用户名（可选）
		AdminPassword      string        // 启动时初始化的管理员密码（可选）
	}
}
