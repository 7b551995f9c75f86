package service

import (
	"strings"
	"testing"
	"time"

	"github.com/danielmriley/aigent-sub002/internal/domain"
	"github.com/google/uuid"
)

func profileEntry(content, source string, at time.Time) domain.MemoryEntry {
	return domain.MemoryEntry{
		ID:        uuid.New(),
		Tier:      domain.TierUserProfile,
		Content:   content,
		Source:    source,
		CreatedAt: at,
	}
}

func TestFormatUserProfileBlockEmpty(t *testing.T) {
	entries := []domain.MemoryEntry{
		{Tier: domain.TierEpisodic, Content: "not a profile entry"},
	}
	if got := FormatUserProfileBlock(entries); got != "" {
		t.Errorf("FormatUserProfileBlock = %q, want empty", got)
	}
}

func TestFormatUserProfileBlockGrouping(t *testing.T) {
	now := time.Now().UTC()
	entries := []domain.MemoryEntry{
		profileEntry("editor: vim", SourceProfilePreference, now),
		profileEntry("goal: ship the api by friday", SourceProfileGoal, now),
		profileEntry("timezone: pacific", SourceProfileFact, now),
		profileEntry("tone: concise and direct", SourceProfileStyle, now),
		profileEntry("misc: likes espresso", "user-profile:other", now),
	}

	block := FormatUserProfileBlock(entries)

	for _, want := range []string{
		"Preferences:", "Goals:", "Known facts:", "Communication style:", "Other:",
		"  - editor: vim",
		"  - goal: ship the api by friday",
		"  - timezone: pacific",
		"  - tone: concise and direct",
		"  - misc: likes espresso",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("block missing %q:\n%s", want, block)
		}
	}
}

func TestFormatUserProfileBlockDeduplicatesByKey(t *testing.T) {
	old := time.Now().UTC().Add(-time.Hour)
	entries := []domain.MemoryEntry{
		profileEntry("editor: emacs", SourceProfilePreference, old),
		profileEntry("editor: vim", SourceProfilePreference, old.Add(time.Hour)),
	}

	block := FormatUserProfileBlock(entries)
	if strings.Contains(block, "emacs") {
		t.Errorf("stale profile fact survived dedup:\n%s", block)
	}
	if !strings.Contains(block, "editor: vim") {
		t.Errorf("newest profile fact missing:\n%s", block)
	}
}

func TestUserProfileEntriesNewestFirst(t *testing.T) {
	now := time.Now().UTC()
	oldest := profileEntry("a: 1", SourceProfileFact, now.Add(-2*time.Hour))
	middle := profileEntry("b: 2", SourceProfileFact, now.Add(-time.Hour))
	newest := profileEntry("c: 3", SourceProfileFact, now)

	got := UserProfileEntries([]domain.MemoryEntry{oldest, newest, middle})
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0].ID != newest.ID || got[2].ID != oldest.ID {
		t.Errorf("entries not in newest-first order")
	}
}
