package goCaptcha

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventGenerate           = "challenge_generate"
	auditEventVerify             = "challenge_verify"
	auditEventRefresh            = "challenge_refresh"
	auditEventSweep              = "challenge_sweep"
	auditEventHealthProbe        = "challenge_health_probe"
	auditEventRateLimitTriggered = "rate_limit_triggered"
)

// AuditErrorCode defines a public type used by goCaptcha APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrKindInvalid AuditErrorCode = "kind_invalid"
	auditErrOptions     AuditErrorCode = "options_invalid"
	auditErrRender      AuditErrorCode = "render_failed"
	auditErrRateLimited AuditErrorCode = "rate_limited"
	auditErrUnavailable AuditErrorCode = "backend_unavailable"
	auditErrNotReady    AuditErrorCode = "engine_not_ready"
	auditErrInternal    AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	challengeID string,
	kind string,
	outcome string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp:   time.Now().UTC(),
		EventType:   eventType,
		ChallengeID: challengeID,
		Kind:        kind,
		Outcome:     outcome,
		IP:          clientIPFromContext(ctx),
		Success:     success,
		Metadata:    metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func (e *Engine) emitRateLimit(
	ctx context.Context,
	scope string,
	metadataBuilder func() map[string]string,
) {
	e.metricInc(MetricGenerateRateLimited)
	e.emitAudit(ctx, auditEventRateLimitTriggered, false, "", "", "", ErrGenerateRateLimited, func() map[string]string {
		base := map[string]string{
			"scope": scope,
		}
		if metadataBuilder == nil {
			return base
		}
		for k, v := range metadataBuilder() {
			base[k] = v
		}
		return base
	})
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrKindInvalid):
		return auditErrKindInvalid
	case errors.Is(err, ErrOptionsInvalid):
		return auditErrOptions
	case errors.Is(err, ErrRenderFailed):
		return auditErrRender
	case errors.Is(err, ErrGenerateRateLimited):
		return auditErrRateLimited
	case errors.Is(err, ErrStoreUnavailable):
		return auditErrUnavailable
	case errors.Is(err, ErrEngineNotReady):
		return auditErrNotReady
	default:
		return auditErrInternal
	}
}
