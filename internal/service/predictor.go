package service

import "papertrade/internal/domain"

// Prediction clamp bounds. The heuristic is a placeholder signal: a damped
// recent return capped at ±5%, with confidence shrinking as volatility grows.
const (
	returnDamping = 0.8
	maxAbsReturn  = 0.05

	baseConfidence    = 0.85
	volatilityPenalty = 0.5
	minConfidence     = 0.50
)

// Predict maps market features to a (predicted return, confidence) pair.
//
// horizonMinutes is accepted for API compatibility but does not affect the
// computation; the heuristic has no horizon model.
func Predict(features domain.MarketFeatures, horizonMinutes int) (predictedReturn, confidence float64) {
	predictedReturn = clamp(features.RecentReturn*returnDamping, -maxAbsReturn, maxAbsReturn)
	confidence = clamp(baseConfidence-features.Volatility*volatilityPenalty, minConfidence, baseConfidence)

	return predictedReturn, confidence
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
