package test

import (
	"context"
	"testing"

	goCaptcha "github.com/MrEthical07/goCaptcha"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = goCaptcha.New

	var _ *goCaptcha.Engine
	var _ goCaptcha.Config
	var _ goCaptcha.Challenge
	var _ goCaptcha.GenerateOptions
	var _ goCaptcha.VerifyResult
	var _ goCaptcha.Stats
	var _ goCaptcha.HealthReport
	var _ goCaptcha.AuditSink
	var _ goCaptcha.AuditEvent
	var _ goCaptcha.MetricsSnapshot

	var _ error = goCaptcha.ErrKindInvalid
	var _ error = goCaptcha.ErrOptionsInvalid
	var _ error = goCaptcha.ErrRenderFailed
	var _ error = goCaptcha.ErrStoreUnavailable
	var _ error = goCaptcha.ErrGenerateRateLimited
	var _ error = goCaptcha.ErrEngineNotReady

	var _ goCaptcha.ChallengeKind = goCaptcha.KindText
	var _ goCaptcha.ChallengeKind = goCaptcha.KindMath
	var _ goCaptcha.ChallengeKind = goCaptcha.KindDigits

	var _ goCaptcha.Outcome = goCaptcha.OutcomeSuccess
	var _ goCaptcha.Outcome = goCaptcha.OutcomeInvalid
	var _ goCaptcha.Outcome = goCaptcha.OutcomeExpired
	var _ goCaptcha.Outcome = goCaptcha.OutcomeAttemptsExhausted
	var _ goCaptcha.Outcome = goCaptcha.OutcomeNotFound

	var _ goCaptcha.Backend = goCaptcha.BackendMemory
	var _ goCaptcha.Backend = goCaptcha.BackendRedis

	var _ func(*goCaptcha.Engine, context.Context, goCaptcha.ChallengeKind, goCaptcha.GenerateOptions) (*goCaptcha.Challenge, error) = (*goCaptcha.Engine).Generate
	var _ func(*goCaptcha.Engine, context.Context, string, string) (goCaptcha.VerifyResult, error) = (*goCaptcha.Engine).Verify
	var _ func(*goCaptcha.Engine, context.Context, string, goCaptcha.ChallengeKind, goCaptcha.GenerateOptions) (*goCaptcha.Challenge, error) = (*goCaptcha.Engine).Refresh
	var _ func(*goCaptcha.Engine, context.Context) (int, error) = (*goCaptcha.Engine).Sweep
	var _ func(*goCaptcha.Engine, context.Context) (goCaptcha.Stats, error) = (*goCaptcha.Engine).Stats
	var _ func(*goCaptcha.Engine, context.Context) goCaptcha.HealthReport = (*goCaptcha.Engine).Health
}
