package rate

import "errors"

var (
	// ErrRateLimited is an exported constant or variable used by the captcha engine.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable is an exported constant or variable used by the captcha engine.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
