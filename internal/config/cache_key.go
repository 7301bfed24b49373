package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuizSessionKey returns the cache key for a visitor's quiz session
func (r *CacheKeyStruct) QuizSessionKey(visitorID string) string {
	return fmt.Sprintf("quiz:visitor:%s:session", visitorID)
}

var CacheKey = NewCacheKeyStruct()
