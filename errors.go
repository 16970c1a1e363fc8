package goCaptcha

import "errors"

var (
	// ErrKindInvalid is an exported constant or variable used by the captcha engine.
	ErrKindInvalid = errors.New("unsupported challenge kind")
	// ErrOptionsInvalid is an exported constant or variable used by the captcha engine.
	ErrOptionsInvalid = errors.New("invalid challenge options")
	// ErrRenderFailed is an exported constant or variable used by the captcha engine.
	ErrRenderFailed = errors.New("challenge artifact rendering failed")
	// ErrStoreUnavailable is an exported constant or variable used by the captcha engine.
	ErrStoreUnavailable = errors.New("challenge store unavailable")
	// ErrGenerateRateLimited is an exported constant or variable used by the captcha engine.
	ErrGenerateRateLimited = errors.New("challenge generation rate limited")
	// ErrEngineNotReady is an exported constant or variable used by the captcha engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
