package vault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/danielmriley/aigent-sub002/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testEntry(tier domain.MemoryTier, content string, at time.Time) domain.MemoryEntry {
	return domain.MemoryEntry{
		ID:             uuid.New(),
		Tier:           tier,
		Content:        content,
		Source:         "user-chat",
		Confidence:     0.7,
		CreatedAt:      at,
		ProvenanceHash: domain.ProvenanceHash(content),
	}
}

func TestSyncWritesNotesTiersAndIndex(t *testing.T) {
	root := t.TempDir()
	p := NewProjector(root, 0, zap.NewNop())

	now := time.Now().UTC()
	entries := []domain.MemoryEntry{
		testEntry(domain.TierEpisodic, "talked about the roadmap", now),
		testEntry(domain.TierSemantic, "user works in biotech", now.Add(time.Second)),
	}

	summary, err := p.Sync(entries)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.NoteCount)

	notes, err := os.ReadDir(filepath.Join(root, "notes"))
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	// One YAML summary per tier, present even when the tier is empty.
	tiers, err := os.ReadDir(filepath.Join(root, "tiers"))
	require.NoError(t, err)
	assert.Len(t, tiers, len(domain.AllTiers()))

	index, err := os.ReadFile(filepath.Join(root, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "tier-episodic")
}

func TestSyncIsIdempotent(t *testing.T) {
	root := t.TempDir()
	p := NewProjector(root, 0, zap.NewNop())

	entries := []domain.MemoryEntry{
		testEntry(domain.TierEpisodic, "a stable note", time.Now().UTC()),
	}

	first, err := p.Sync(entries)
	require.NoError(t, err)
	assert.Greater(t, first.FilesWritten, 0)

	second, err := p.Sync(entries)
	require.NoError(t, err)
	assert.Equal(t, 0, second.FilesWritten, "unchanged store must produce zero writes")
	assert.Equal(t, 0, second.FilesRemoved)
	assert.Equal(t, first.FilesWritten, second.FilesUnchanged)
}

func TestSyncRemovesStaleNotes(t *testing.T) {
	root := t.TempDir()
	p := NewProjector(root, 0, zap.NewNop())

	doomed := testEntry(domain.TierEpisodic, "soon to be compacted away", time.Now().UTC())
	_, err := p.Sync([]domain.MemoryEntry{doomed})
	require.NoError(t, err)

	summary, err := p.Sync(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FilesRemoved)

	notes, err := os.ReadDir(filepath.Join(root, "notes"))
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestSyncLeavesForeignFilesAlone(t *testing.T) {
	root := t.TempDir()
	p := NewProjector(root, 0, zap.NewNop())

	_, err := p.Sync(nil)
	require.NoError(t, err)

	// A user's own file at the vault root is not managed and survives.
	foreign := filepath.Join(root, "my-scratchpad.md")
	require.NoError(t, os.WriteFile(foreign, []byte("mine"), 0o644))

	_, err = p.Sync(nil)
	require.NoError(t, err)

	content, err := os.ReadFile(foreign)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(content))
}

func TestNoteFrontMatter(t *testing.T) {
	root := t.TempDir()
	p := NewProjector(root, 0, zap.NewNop())

	entry := testEntry(domain.TierReflective, "I should summarize earlier", time.Now().UTC())
	entry.Tags = []string{"habit", "meta"}
	_, err := p.Sync([]domain.MemoryEntry{entry})
	require.NoError(t, err)

	notes, err := os.ReadDir(filepath.Join(root, "notes"))
	require.NoError(t, err)
	require.Len(t, notes, 1)

	raw, err := os.ReadFile(filepath.Join(root, "notes", notes[0].Name()))
	require.NoError(t, err)
	text := string(raw)

	for _, want := range []string{
		"id: " + entry.ID.String(),
		"tier: reflective",
		"provenance_hash: " + entry.ProvenanceHash,
		"tags: [habit, meta]",
		"I should summarize earlier",
	} {
		assert.Contains(t, text, want)
	}
}

func TestTierSummaryLimit(t *testing.T) {
	root := t.TempDir()
	p := NewProjector(root, 2, zap.NewNop())

	now := time.Now().UTC()
	var entries []domain.MemoryEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, testEntry(domain.TierSemantic, strings.Repeat("x", i+1), now.Add(time.Duration(i)*time.Second)))
	}

	_, err := p.Sync(entries)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(root, "tiers", "semantic.yaml"))
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, "count: 5")
	assert.Equal(t, 2, strings.Count(text, "- id:"), "summary must honor the tier limit")
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short string untouched", "hello", 10, "hello"},
		{"ascii cut at limit", "hello", 3, "hel"},
		{"multi-byte rune straddling the cut is dropped", "café", 4, "caf"},
		{"cut lands on a rune boundary", "café", 5, "café"},
		{"wide rune dropped whole", "a世界", 2, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.max)
			}
		})
	}
}
