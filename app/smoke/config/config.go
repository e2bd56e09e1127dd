package config

import (
	"time"
)

type Config struct {
	// 基础配置
	IsProd bool

	// 与 Server 通信配置
	BaseURL string        // 服务地址
	Timeout time.Duration // 单个请求的超时时间
	Wait    time.Duration // 等待服务就绪的最长时间，0 表示不等待

	// 测试使用的管理员账号，不存在时会先注册
	Username string
	Password string

	// 结束后删除本次创建的书目
	Cleanup bool
}
