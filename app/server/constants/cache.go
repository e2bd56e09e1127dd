package constants

import "time"

const (
	CacheKeyBookInfo = "library:book:info:%d"
)

const (
	CacheExpireBookInfo = 1 * time.Hour
)
