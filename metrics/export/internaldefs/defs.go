package internaldefs

import (
	goCaptcha "github.com/MrEthical07/goCaptcha"
)

// CounterDef defines a public type used by goCaptcha APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goCaptcha.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goCaptcha APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goCaptcha.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the captcha engine.
var CounterDefs = []CounterDef{
	{ID: goCaptcha.MetricGenerateSuccess, Name: "gocaptcha_generate_success_total", Help: "Successfully issued challenges."},
	{ID: goCaptcha.MetricGenerateFailure, Name: "gocaptcha_generate_failure_total", Help: "Failed challenge generation attempts."},
	{ID: goCaptcha.MetricGenerateRateLimited, Name: "gocaptcha_generate_rate_limited_total", Help: "Rate-limited challenge generation attempts."},
	{ID: goCaptcha.MetricVerifySuccess, Name: "gocaptcha_verify_success_total", Help: "Verifications that matched the stored answer."},
	{ID: goCaptcha.MetricVerifyInvalid, Name: "gocaptcha_verify_invalid_total", Help: "Verifications with a wrong answer and attempts remaining."},
	{ID: goCaptcha.MetricVerifyExpired, Name: "gocaptcha_verify_expired_total", Help: "Verifications against expired challenges."},
	{ID: goCaptcha.MetricVerifyExhausted, Name: "gocaptcha_verify_exhausted_total", Help: "Challenges invalidated due to the attempt cap."},
	{ID: goCaptcha.MetricVerifyNotFound, Name: "gocaptcha_verify_not_found_total", Help: "Verifications against unknown challenge ids."},
	{ID: goCaptcha.MetricRefreshIssued, Name: "gocaptcha_refresh_issued_total", Help: "Refresh operations that reissued a challenge."},
	{ID: goCaptcha.MetricSweepRun, Name: "gocaptcha_sweep_run_total", Help: "Maintenance sweep passes."},
	{ID: goCaptcha.MetricSweepRemoved, Name: "gocaptcha_sweep_removed_total", Help: "Expired records removed by maintenance sweeps."},
	{ID: goCaptcha.MetricStoreUnavailable, Name: "gocaptcha_store_unavailable_total", Help: "Operations that failed due to store unavailability."},
	{ID: goCaptcha.MetricHealthProbeFailure, Name: "gocaptcha_health_probe_failure_total", Help: "Failed synthetic health probes."},
}

// HistogramDefs is an exported constant or variable used by the captcha engine.
var HistogramDefs = []HistogramDef{
	{ID: goCaptcha.MetricVerifyLatency, Name: "gocaptcha_verify_latency_seconds", Help: "Verify latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the captcha engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the captcha engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
