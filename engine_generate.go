package goCaptcha

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MrEthical07/goCaptcha/internal"
	"github.com/MrEthical07/goCaptcha/internal/rate"
	"github.com/MrEthical07/goCaptcha/internal/render"
	"github.com/google/uuid"
)

// Generate issues a new challenge of the given kind and returns its opaque id,
// the rendered artifact, and expiry metadata. The plaintext answer is stored
// normalized and never returned.
//
// Generate may return an error when input validation, dependency calls, or security checks fail.
// Generate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Generate(ctx context.Context, kind ChallengeKind, opts GenerateOptions) (*Challenge, error) {
	if e == nil || e.store == nil || e.renderer == nil {
		return nil, ErrEngineNotReady
	}
	if !kind.valid() {
		e.metricInc(MetricGenerateFailure)
		e.emitAudit(ctx, auditEventGenerate, false, "", kind.String(), "", ErrKindInvalid, nil)
		return nil, ErrKindInvalid
	}

	ip := clientIPFromContext(ctx)
	if e.rateLimiter != nil {
		if err := e.rateLimiter.CheckGenerate(ctx, ip); err != nil {
			mapped := mapRateLimiterError(err)
			e.metricInc(MetricGenerateFailure)
			if errors.Is(mapped, ErrGenerateRateLimited) {
				e.emitRateLimit(ctx, "challenge_generate", nil)
			}
			e.emitAudit(ctx, auditEventGenerate, false, "", kind.String(), "", mapped, nil)
			return nil, mapped
		}
	}

	challenge, record, err := e.buildChallenge(kind, opts)
	if err != nil {
		e.metricInc(MetricGenerateFailure)
		e.emitAudit(ctx, auditEventGenerate, false, "", kind.String(), "", err, nil)
		return nil, err
	}

	if err := e.store.Save(ctx, challenge.ID, record, challenge.TTL); err != nil {
		e.metricInc(MetricGenerateFailure)
		e.metricInc(MetricStoreUnavailable)
		e.emitAudit(ctx, auditEventGenerate, false, challenge.ID, kind.String(), "", ErrStoreUnavailable, nil)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if e.rateLimiter != nil {
		// Budget bookkeeping is best-effort; issuance already happened.
		_ = e.rateLimiter.IncrementGenerate(ctx, ip)
	}

	e.metricInc(MetricGenerateSuccess)
	e.emitAudit(ctx, auditEventGenerate, true, challenge.ID, kind.String(), "", nil, func() map[string]string {
		return map[string]string{
			"ttl_seconds": strconv.FormatInt(int64(challenge.TTL/time.Second), 10),
		}
	})

	return challenge, nil
}

// Refresh invalidates the prior challenge id (even if still live) and issues a
// replacement. The delete is best-effort: a failed invalidation never blocks
// the new issuance.
//
// Refresh may return an error when input validation, dependency calls, or security checks fail.
// Refresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Refresh(ctx context.Context, id string, kind ChallengeKind, opts GenerateOptions) (*Challenge, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	if id != "" {
		_ = e.store.Delete(ctx, id)
	}

	challenge, err := e.Generate(ctx, kind, opts)
	if err != nil {
		return nil, err
	}

	e.metricInc(MetricRefreshIssued)
	e.emitAudit(ctx, auditEventRefresh, true, challenge.ID, kind.String(), "", nil, func() map[string]string {
		if id == "" {
			return nil
		}
		return map[string]string{
			"replaced_id": id,
		}
	})

	return challenge, nil
}

func (e *Engine) buildChallenge(kind ChallengeKind, opts GenerateOptions) (*Challenge, *challengeRecord, error) {
	content, err := render.NewContent(renderKind(kind), e.contentLength(kind, opts))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	renderer := e.renderer
	if opts.Width != 0 || opts.Height != 0 || opts.NoiseLevel != 0 {
		renderer, err = render.New(e.renderOverrides(opts))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrOptionsInvalid, err)
		}
	}

	artifact, err := renderer.Render(content.Display)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	id, err := e.newChallengeID()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = e.config.Challenge.TTL
	}

	now := time.Now()
	record := &challengeRecord{
		Answer:      normalizeAnswer(content.Answer),
		Kind:        kind,
		CreatedAt:   now.Unix(),
		ExpiresAt:   now.Add(ttl).Unix(),
		Attempts:    0,
		MaxAttempts: uint16(e.config.Challenge.MaxAttempts),
	}

	challenge := &Challenge{
		ID:        id,
		Kind:      kind,
		Artifact:  artifact,
		ExpiresAt: now.Add(ttl),
		TTL:       ttl,
	}

	return challenge, record, nil
}

func (e *Engine) contentLength(kind ChallengeKind, opts GenerateOptions) int {
	if opts.Length > 0 {
		return opts.Length
	}
	switch kind {
	case KindText:
		return e.config.Challenge.TextLength
	case KindDigits:
		return e.config.Challenge.DigitLength
	default:
		return 0
	}
}

func (e *Engine) renderOverrides(opts GenerateOptions) render.Config {
	cfg := render.Config{
		Width:      e.config.Render.Width,
		Height:     e.config.Render.Height,
		NoiseLevel: e.config.Render.NoiseLevel,
		FontSize:   e.config.Render.FontSize,
	}
	if opts.Width != 0 {
		cfg.Width = opts.Width
	}
	if opts.Height != 0 {
		cfg.Height = opts.Height
	}
	if opts.NoiseLevel != 0 {
		cfg.NoiseLevel = opts.NoiseLevel
	}
	return cfg
}

// newChallengeID mints an id that is effectively collision-free: either
// issuance-millisecond + 8 hex chars of fresh randomness, or a UUIDv4,
// depending on the configured strategy. Ids are never reused.
func (e *Engine) newChallengeID() (string, error) {
	switch e.config.Challenge.IDStrategy {
	case IDUUID:
		return e.config.Challenge.IDPrefix + uuid.New().String(), nil
	default:
		suffix, err := internal.HexSuffix(4)
		if err != nil {
			return "", err
		}
		return e.config.Challenge.IDPrefix +
			strconv.FormatInt(time.Now().UnixMilli(), 10) +
			"_" + suffix, nil
	}
}

func renderKind(kind ChallengeKind) render.Kind {
	switch kind {
	case KindText:
		return render.KindText
	case KindMath:
		return render.KindMath
	default:
		return render.KindDigits
	}
}

func mapRateLimiterError(err error) error {
	switch {
	case errors.Is(err, rate.ErrRateLimited):
		return ErrGenerateRateLimited
	case errors.Is(err, rate.ErrRedisUnavailable):
		return ErrStoreUnavailable
	default:
		return ErrStoreUnavailable
	}
}
