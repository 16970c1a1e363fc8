package goCaptcha

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Sweep removes logically-expired records from the active store and returns
// the removal count. For the Redis backend this is a bounded accounting pass;
// native TTL eviction remains authoritative. Intended to be driven by an
// external scheduler.
//
// Sweep may return an error when input validation, dependency calls, or security checks fail.
// Sweep does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Sweep(ctx context.Context) (int, error) {
	if e == nil || e.store == nil {
		return 0, ErrEngineNotReady
	}

	removed, err := e.store.SweepExpired(ctx)
	if err != nil {
		e.metricInc(MetricStoreUnavailable)
		e.emitAudit(ctx, auditEventSweep, false, "", "", "", ErrStoreUnavailable, nil)
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	e.metricInc(MetricSweepRun)
	e.metricAdd(MetricSweepRemoved, uint64(removed))
	e.emitAudit(ctx, auditEventSweep, true, "", "", "", nil, func() map[string]string {
		return map[string]string{
			"removed": strconv.Itoa(removed),
		}
	})

	return removed, nil
}

// Stats reports store-level record counts plus the active backend name.
//
// Stats may return an error when input validation, dependency calls, or security checks fail.
// Stats does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	if e == nil || e.store == nil {
		return Stats{}, ErrEngineNotReady
	}

	storeStats, err := e.store.Stats(ctx)
	if err != nil {
		e.metricInc(MetricStoreUnavailable)
		return Stats{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return Stats{
		Total:   storeStats.Total,
		Active:  storeStats.Active,
		Expired: storeStats.Expired,
		Backend: e.store.Backend().String(),
	}, nil
}

// Health performs a synthetic save/get/delete round-trip against the active
// store. It never returns an error: probe failures are reported in the
// HealthReport message.
//
// Health may return an error when input validation, dependency calls, or security checks fail.
// Health does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Health(ctx context.Context) HealthReport {
	if e == nil || e.store == nil {
		return HealthReport{Healthy: false, Message: "engine not initialized"}
	}

	probeID, err := e.newChallengeID()
	if err != nil {
		e.metricInc(MetricHealthProbeFailure)
		return HealthReport{Healthy: false, Message: "probe id generation failed"}
	}
	probeID += "_health"

	now := time.Now()
	record := &challengeRecord{
		Answer:      "health",
		Kind:        e.config.Challenge.DefaultKind,
		CreatedAt:   now.Unix(),
		ExpiresAt:   now.Add(time.Minute).Unix(),
		Attempts:    0,
		MaxAttempts: 1,
	}

	if err := e.store.Save(ctx, probeID, record, time.Minute); err != nil {
		e.metricInc(MetricHealthProbeFailure)
		e.emitAudit(ctx, auditEventHealthProbe, false, probeID, "", "", ErrStoreUnavailable, nil)
		return HealthReport{Healthy: false, Message: "store save failed: " + err.Error()}
	}

	fetched, err := e.store.Get(ctx, probeID)
	if err != nil || fetched == nil || fetched.Answer != record.Answer {
		_ = e.store.Delete(ctx, probeID)
		e.metricInc(MetricHealthProbeFailure)
		e.emitAudit(ctx, auditEventHealthProbe, false, probeID, "", "", ErrStoreUnavailable, nil)
		return HealthReport{Healthy: false, Message: "store read-back failed"}
	}

	if err := e.store.Delete(ctx, probeID); err != nil {
		e.metricInc(MetricHealthProbeFailure)
		e.emitAudit(ctx, auditEventHealthProbe, false, probeID, "", "", ErrStoreUnavailable, nil)
		return HealthReport{Healthy: false, Message: "store delete failed: " + err.Error()}
	}

	e.emitAudit(ctx, auditEventHealthProbe, true, "", "", "", nil, nil)
	return HealthReport{Healthy: true, Message: e.store.Backend().String() + " backend healthy"}
}
