package service

import (
	"fmt"
	"strings"

	"github.com/danielmriley/aigent-sub002/internal/domain"
)

// Distillation heuristics. Repetition saturates at three occurrences;
// entries carrying a user signal or substantial content score higher.
const (
	repetitionSaturation     = 3.0
	userConfirmedHigh        = 0.8
	userConfirmedLow         = 0.4
	taskUtilityHigh          = 0.8
	taskUtilityLow           = 0.5
	taskUtilityLengthCutoff  = 32
	semanticPromotionMinimum = 0.70
)

// SleepPromotion is one proposed tier promotion. It references the source
// entry by id in its reason text; the source entry itself is never mutated.
type SleepPromotion struct {
	SourceID string            `json:"source_id"`
	ToTier   domain.MemoryTier `json:"to_tier"`
	Reason   string            `json:"reason"`
	Content  string            `json:"content"`
}

// SleepSummary is the outcome of one distillation pass.
type SleepSummary struct {
	Distilled   string           `json:"distilled"`
	PromotedIDs []string         `json:"promoted_ids"`
	Promotions  []SleepPromotion `json:"promotions"`
}

// Distill scans a point-in-time snapshot of all entries and proposes tier
// promotions. It is pure and read-only: it performs no persistence and no
// trust decision. Every proposal must be re-submitted through the firewall
// with a sleep: source before it is committed.
//
// Core entries are never candidates (they are already at the top tier) but
// their content still counts toward repetition totals. Sleep-cycle marker
// entries are skipped as candidates so bookkeeping never snowballs upward,
// and blank-content entries are skipped because no blank entry is ever a
// committable promotion.
//
// Eligibility order is policy: an entry satisfying both the Core predicate
// and the Semantic confidence floor is always promoted to Core.
func Distill(entries []domain.MemoryEntry) SleepSummary {
	normalizedCount := make(map[string]int, len(entries))
	for _, entry := range entries {
		key := strings.ToLower(strings.TrimSpace(entry.Content))
		if key == "" {
			continue
		}
		normalizedCount[key]++
	}

	var promotions []SleepPromotion
	for _, entry := range entries {
		if entry.Tier == domain.TierCore {
			continue
		}
		if strings.HasPrefix(entry.Source, "sleep:cycle") {
			continue
		}
		if strings.TrimSpace(entry.Content) == "" {
			continue
		}

		repeats := normalizedCount[strings.ToLower(strings.TrimSpace(entry.Content))]
		if repeats < 1 {
			repeats = 1
		}

		signals := PromotionSignals{
			RepetitionScore:         clamp01(float32(repeats) / repetitionSaturation),
			EmotionalSalience:       clamp01(abs32(entry.Valence)),
			UserConfirmedImportance: userImportance(entry.Source),
			TaskUtility:             taskUtility(entry.Content),
		}

		var toTier domain.MemoryTier
		switch {
		case IsCoreEligible(entry, signals):
			toTier = domain.TierCore
		case entry.Confidence >= semanticPromotionMinimum:
			toTier = domain.TierSemantic
		default:
			continue
		}

		promotions = append(promotions, SleepPromotion{
			SourceID: entry.ID.String(),
			ToTier:   toTier,
			Reason: fmt.Sprintf("sleep-distilled repetition=%d confidence=%.2f",
				repeats, entry.Confidence),
			Content: entry.Content,
		})
	}

	promotedIDs := make([]string, 0, len(promotions))
	for _, p := range promotions {
		promotedIDs = append(promotedIDs, p.SourceID)
	}

	return SleepSummary{
		Distilled: fmt.Sprintf("distilled %d memories, proposed %d promotions",
			len(entries), len(promotions)),
		PromotedIDs: promotedIDs,
		Promotions:  promotions,
	}
}

func userImportance(source string) float32 {
	if strings.Contains(source, "user") {
		return userConfirmedHigh
	}
	return userConfirmedLow
}

func taskUtility(content string) float32 {
	if len(content) > taskUtilityLengthCutoff {
		return taskUtilityHigh
	}
	return taskUtilityLow
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
