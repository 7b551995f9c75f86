package service

import (
	"strings"

	"github.com/danielmriley/aigent-sub002/internal/domain"
)

// Core-eligibility thresholds. An entry must clear both to be proposed for
// the Core tier.
const (
	CoreAggregateThreshold  = 0.75
	CoreConfidenceThreshold = 0.60
)

// PromotionSignals are the four bounded inputs to the core-eligibility
// predicate. Each is constrained to [0, 1] by the caller.
type PromotionSignals struct {
	RepetitionScore         float32
	EmotionalSalience       float32
	UserConfirmedImportance float32
	TaskUtility             float32
}

// IsCoreEligible is the sole gate for proposing a Core promotion: blank
// content is never eligible; otherwise the unweighted mean of the four
// signals must reach the aggregate threshold and the entry's own confidence
// must reach the confidence threshold. Pure and order-independent, and
// non-decreasing in each signal.
func IsCoreEligible(entry domain.MemoryEntry, signals PromotionSignals) bool {
	if strings.TrimSpace(entry.Content) == "" {
		return false
	}

	aggregate := (signals.RepetitionScore +
		signals.EmotionalSalience +
		signals.UserConfirmedImportance +
		signals.TaskUtility) / 4.0

	return aggregate >= CoreAggregateThreshold && entry.Confidence >= CoreConfidenceThreshold
}
