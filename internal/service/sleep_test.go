package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/danielmriley/aigent-sub002/internal/domain"
	"github.com/google/uuid"
)

func distillEntry(tier domain.MemoryTier, content, source string, confidence, valence float32) domain.MemoryEntry {
	return domain.MemoryEntry{
		ID:         uuid.New(),
		Tier:       tier,
		Content:    content,
		Source:     source,
		Confidence: confidence,
		Valence:    valence,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestDistillSingleConfidentEpisodic(t *testing.T) {
	entry := distillEntry(domain.TierEpisodic,
		"assistant deployed the staging environment without issues", "assistant-reply", 0.85, 0)

	summary := Distill([]domain.MemoryEntry{entry})

	if len(summary.Promotions) != 1 {
		t.Fatalf("got %d promotions, want 1", len(summary.Promotions))
	}
	p := summary.Promotions[0]
	if p.ToTier != domain.TierSemantic {
		t.Errorf("ToTier = %s, want %s", p.ToTier, domain.TierSemantic)
	}
	if p.SourceID != entry.ID.String() {
		t.Errorf("SourceID = %s, want %s", p.SourceID, entry.ID)
	}
	if !strings.Contains(p.Reason, "sleep-distilled") {
		t.Errorf("reason %q does not contain sleep-distilled", p.Reason)
	}
	if want := "distilled 1 memories, proposed 1 promotions"; summary.Distilled != want {
		t.Errorf("Distilled = %q, want %q", summary.Distilled, want)
	}
}

func TestDistillReasonFormat(t *testing.T) {
	entry := distillEntry(domain.TierEpisodic, "short note", "user-chat", 0.82, 0)

	summary := Distill([]domain.MemoryEntry{entry})
	if len(summary.Promotions) != 1 {
		t.Fatalf("got %d promotions, want 1", len(summary.Promotions))
	}
	want := "sleep-distilled repetition=1 confidence=0.82"
	if summary.Promotions[0].Reason != want {
		t.Errorf("Reason = %q, want %q", summary.Promotions[0].Reason, want)
	}
}

func TestDistillRepetitionDrivesCorePromotion(t *testing.T) {
	// Three repeats saturate the repetition signal. With a user source and
	// content longer than the utility cutoff the aggregate is
	// (1.0 + 0 + 0.8 + 0.8) / 4 = 0.65, still short of Core, so add valence.
	content := "the user strongly prefers tabs over spaces everywhere"
	var entries []domain.MemoryEntry
	for i := 0; i < 3; i++ {
		entries = append(entries, distillEntry(domain.TierEpisodic, content, "user-chat", 0.9, 0.9))
	}

	// Aggregate per copy: (1.0 + 0.9 + 0.8 + 0.8) / 4 = 0.875 >= 0.75.
	summary := Distill(entries)
	if len(summary.Promotions) != 3 {
		t.Fatalf("got %d promotions, want 3", len(summary.Promotions))
	}
	for _, p := range summary.Promotions {
		if p.ToTier != domain.TierCore {
			t.Errorf("ToTier = %s, want %s", p.ToTier, domain.TierCore)
		}
		if !strings.Contains(p.Reason, "repetition=3") {
			t.Errorf("reason %q does not record the repetition count", p.Reason)
		}
	}
}

func TestDistillCoreTakesPriorityOverSemantic(t *testing.T) {
	// High confidence satisfies both the Semantic floor and the Core
	// predicate; Core wins.
	content := "user confirmed the quarterly goal is shipping the mobile app"
	entries := []domain.MemoryEntry{
		distillEntry(domain.TierEpisodic, content, "user-input", 0.95, 0.8),
		distillEntry(domain.TierEpisodic, content, "user-input", 0.95, 0.8),
		distillEntry(domain.TierEpisodic, content, "user-input", 0.95, 0.8),
	}

	summary := Distill(entries)
	for _, p := range summary.Promotions {
		if p.ToTier != domain.TierCore {
			t.Errorf("ToTier = %s, want %s when both tiers qualify", p.ToTier, domain.TierCore)
		}
	}
}

func TestDistillSkipsCoreEntries(t *testing.T) {
	entries := []domain.MemoryEntry{
		distillEntry(domain.TierCore, "I value honesty in every answer I give", "onboarding", 0.95, 0.5),
	}

	summary := Distill(entries)
	if len(summary.Promotions) != 0 {
		t.Errorf("got %d promotions from core-only input, want 0", len(summary.Promotions))
	}
	if want := "distilled 1 memories, proposed 0 promotions"; summary.Distilled != want {
		t.Errorf("Distilled = %q, want %q", summary.Distilled, want)
	}
}

func TestDistillSkipsSleepCycleMarkers(t *testing.T) {
	entries := []domain.MemoryEntry{
		distillEntry(domain.TierSemantic,
			"sleep cycle summary: distilled 4 memories, proposed 2 promotions", "sleep:cycle", 0.9, 0),
	}

	summary := Distill(entries)
	if len(summary.Promotions) != 0 {
		t.Errorf("cycle marker produced %d promotions, want 0", len(summary.Promotions))
	}
}

func TestDistillLowConfidenceStays(t *testing.T) {
	entries := []domain.MemoryEntry{
		distillEntry(domain.TierEpisodic, "uncertain observation about the weather", "assistant-reply", 0.5, 0),
	}

	summary := Distill(entries)
	if len(summary.Promotions) != 0 {
		t.Errorf("got %d promotions for low-confidence entry, want 0", len(summary.Promotions))
	}
}

func TestDistillBlankContentIgnored(t *testing.T) {
	entries := []domain.MemoryEntry{
		distillEntry(domain.TierEpisodic, "   ", "user-chat", 0.95, 0.9),
		distillEntry(domain.TierEpisodic, "", "user-chat", 0.95, 0.9),
	}

	// Blank entries are never candidates regardless of confidence: a blank
	// promotion could not be committed.
	summary := Distill(entries)
	if len(summary.Promotions) != 0 {
		t.Errorf("blank content produced %d promotions, want 0", len(summary.Promotions))
	}
}

func TestDistillEmptyStore(t *testing.T) {
	summary := Distill(nil)
	if len(summary.Promotions) != 0 || len(summary.PromotedIDs) != 0 {
		t.Errorf("empty input produced promotions: %+v", summary)
	}
	if want := "distilled 0 memories, proposed 0 promotions"; summary.Distilled != want {
		t.Errorf("Distilled = %q, want %q", summary.Distilled, want)
	}
}

func TestDistillMessageCounts(t *testing.T) {
	var entries []domain.MemoryEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, distillEntry(domain.TierEpisodic,
			fmt.Sprintf("observation number %d about the project", i), "assistant-reply", 0.8, 0))
	}

	summary := Distill(entries)
	want := fmt.Sprintf("distilled 5 memories, proposed %d promotions", len(summary.Promotions))
	if summary.Distilled != want {
		t.Errorf("Distilled = %q, want %q", summary.Distilled, want)
	}
	if len(summary.PromotedIDs) != len(summary.Promotions) {
		t.Errorf("PromotedIDs has %d ids, want %d", len(summary.PromotedIDs), len(summary.Promotions))
	}
}
