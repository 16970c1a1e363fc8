package goCaptcha

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Verify checks a claimed solution against the stored challenge record and
// returns the outcome as a value. Wrong guesses, expiry, exhausted attempts,
// and unknown ids are expected results, never errors; only backend
// unavailability is reported as an error.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Verify(ctx context.Context, id, userInput string) (VerifyResult, error) {
	if e == nil || e.store == nil {
		return VerifyResult{}, ErrEngineNotReady
	}

	start := time.Now()
	result, err := e.verify(ctx, id, userInput)
	e.observeVerify(start)

	if err != nil {
		e.metricInc(MetricStoreUnavailable)
		e.emitAudit(ctx, auditEventVerify, false, id, "", "", err, nil)
		return VerifyResult{}, err
	}

	e.recordVerifyOutcome(ctx, id, result)
	return result, nil
}

func (e *Engine) verify(ctx context.Context, id, userInput string) (VerifyResult, error) {
	if id == "" {
		return VerifyResult{Outcome: OutcomeNotFound}, nil
	}

	record, err := e.store.Get(ctx, id)
	switch {
	case errors.Is(err, errChallengeNotFound):
		return VerifyResult{Outcome: OutcomeNotFound}, nil
	case errors.Is(err, errChallengeExpired):
		// The store already deleted the logical corpse on read.
		return VerifyResult{Outcome: OutcomeExpired}, nil
	case err != nil:
		return VerifyResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if record.expiredAt(time.Now()) {
		if err := e.store.Delete(ctx, id); err != nil {
			return VerifyResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return VerifyResult{Outcome: OutcomeExpired}, nil
	}

	// Records at the attempt ceiling are terminal even before counting this
	// call; they should only be observable here if a prior delete failed.
	if record.Attempts >= record.MaxAttempts {
		if err := e.store.Delete(ctx, id); err != nil {
			return VerifyResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return VerifyResult{Outcome: OutcomeAttemptsExhausted}, nil
	}

	// Every guess consumes one attempt unit before the comparison decides the
	// record's fate, so a successful guess still counts against the budget.
	record.Attempts++

	if normalizeAnswer(userInput) == record.Answer {
		if err := e.store.Delete(ctx, id); err != nil {
			return VerifyResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return VerifyResult{Outcome: OutcomeSuccess}, nil
	}

	if record.Attempts >= record.MaxAttempts {
		if err := e.store.Delete(ctx, id); err != nil {
			return VerifyResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return VerifyResult{Outcome: OutcomeAttemptsExhausted}, nil
	}

	remaining := time.Until(time.Unix(record.ExpiresAt, 0))
	if remaining <= 0 {
		if err := e.store.Delete(ctx, id); err != nil {
			return VerifyResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return VerifyResult{Outcome: OutcomeExpired}, nil
	}

	if err := e.store.Save(ctx, id, record, remaining); err != nil {
		return VerifyResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return VerifyResult{
		Outcome:      OutcomeInvalid,
		AttemptsLeft: int(record.MaxAttempts - record.Attempts),
	}, nil
}

func (e *Engine) recordVerifyOutcome(ctx context.Context, id string, result VerifyResult) {
	switch result.Outcome {
	case OutcomeSuccess:
		e.metricInc(MetricVerifySuccess)
	case OutcomeInvalid:
		e.metricInc(MetricVerifyInvalid)
	case OutcomeExpired:
		e.metricInc(MetricVerifyExpired)
	case OutcomeAttemptsExhausted:
		e.metricInc(MetricVerifyExhausted)
	case OutcomeNotFound:
		e.metricInc(MetricVerifyNotFound)
	}

	e.emitAudit(ctx, auditEventVerify, result.Outcome == OutcomeSuccess, id, "", result.Outcome.String(), nil, func() map[string]string {
		if result.Outcome != OutcomeInvalid {
			return nil
		}
		return map[string]string{
			"attempts_left": strconv.Itoa(result.AttemptsLeft),
		}
	})
}

func (e *Engine) observeVerify(start time.Time) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(MetricVerifyLatency, time.Since(start))
}

// normalizeAnswer is the single comparison policy for all kinds: leading and
// trailing whitespace is ignored and matching is case-insensitive, because
// the artifact's glyph distortion must never make case significant.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
