package redis

import "github.com/shuldan/errorinterceptor/pkg/errors"

var newRedisSinkCode = errors.WithPrefix("REDIS_SINK")

var (
	ErrInvalidClient = newRedisSinkCode().New("redis client cannot be nil")
	ErrMissingAddr   = newRedisSinkCode().New("redis address is not configured")
	ErrEncodeRecord  = newRedisSinkCode().New("failed to encode record {{.id}}")
	ErrAppendFailed  = newRedisSinkCode().New("failed to append record {{.id}} to stream {{.stream}}")
	ErrCloseFailed   = newRedisSinkCode().New("failed to close redis client")
)
