package utils

// P 返回值的指针，用于填充可选字段
func P[T any](v T) *T {
	return &v
}
