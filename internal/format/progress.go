package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates derived from very slow early progress.
const maxETA = 24 * time.Hour

// clampFraction bounds a progress fraction to [0, 1].
func clampFraction(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// ProgressBar renders a fixed-width bar of full and light block characters.
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clampFraction(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar]  42.0% ETA: 1m5s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	p := clampFraction(progress)
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(p, width), p*100, FormatETA(eta))
}

// ETAEstimator derives a remaining-time estimate from a progress fraction
// that grows monotonically over the lifetime of a single run. It is not safe
// for concurrent use.
type ETAEstimator struct {
	start    time.Time
	progress float64
	rate     float64 // fraction per second
}

// NewETAEstimator starts an estimator at the given instant.
func NewETAEstimator(start time.Time) *ETAEstimator {
	return &ETAEstimator{start: start}
}

// Update records the progress observed at now and returns the new estimate.
// Out-of-range fractions are clamped.
func (e *ETAEstimator) Update(progress float64, now time.Time) time.Duration {
	e.progress = clampFraction(progress)
	if elapsed := now.Sub(e.start).Seconds(); elapsed > 0 {
		e.rate = e.progress / elapsed
	}
	return e.ETA()
}

// Progress returns the last recorded fraction.
func (e *ETAEstimator) Progress() float64 { return e.progress }

// ETA returns the current estimate, or 0 when none is available.
func (e *ETAEstimator) ETA() time.Duration {
	if e.progress >= 1 {
		return 0
	}
	if e.rate <= 0 {
		return 0
	}
	remaining := (1 - e.progress) / e.rate
	if remaining > maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(remaining * float64(time.Second))
}
