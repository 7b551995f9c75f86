// Package vault maintains a human-browsable, idempotent mirror of the
// entry set: one markdown note per entry, one YAML summary per tier, and an
// index. Every file write is checksum-gated so an unchanged store produces
// zero writes and no spurious modification timestamps.
package vault

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/danielmriley/aigent-sub002/internal/domain"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultTierLimit caps how many entries appear in each per-tier YAML
// summary when no override is configured.
const DefaultTierLimit = 12

// Projector renders the entry set into a vault directory.
type Projector struct {
	root      string
	tierLimit int
	logger    *zap.Logger
}

// Summary reports what one sync pass did.
type Summary struct {
	Root           string `json:"root"`
	NoteCount      int    `json:"note_count"`
	FilesWritten   int    `json:"files_written"`
	FilesRemoved   int    `json:"files_removed"`
	FilesUnchanged int    `json:"files_unchanged"`
}

func NewProjector(root string, tierLimit int, logger *zap.Logger) *Projector {
	if tierLimit <= 0 {
		tierLimit = DefaultTierLimit
	}
	return &Projector{root: root, tierLimit: tierLimit, logger: logger}
}

func (p *Projector) Root() string {
	return p.root
}

// Sync performs a full rebuild of the vault: the desired file set is
// rendered in memory, unchanged files are detected by checksum and left
// untouched, changed or new files are written, and managed files no longer
// desired are removed. Calling Sync twice on the same entry set writes
// nothing the second time.
func (p *Projector) Sync(entries []domain.MemoryEntry) (Summary, error) {
	desired, err := p.render(entries)
	if err != nil {
		return Summary{}, err
	}

	for _, dir := range []string{p.root, filepath.Join(p.root, "notes"), filepath.Join(p.root, "tiers")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Summary{}, fmt.Errorf("create vault dir: %w", err)
		}
	}

	summary := Summary{Root: p.root, NoteCount: len(entries)}

	for rel, content := range desired {
		path := filepath.Join(p.root, rel)
		if existing, err := os.ReadFile(path); err == nil {
			if sha256.Sum256(existing) == sha256.Sum256([]byte(content)) {
				summary.FilesUnchanged++
				continue
			}
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return summary, fmt.Errorf("write vault file %s: %w", rel, err)
		}
		summary.FilesWritten++
	}

	removed, err := p.removeStale(desired)
	if err != nil {
		return summary, err
	}
	summary.FilesRemoved = removed

	if summary.FilesWritten > 0 || summary.FilesRemoved > 0 {
		p.logger.Debug("vault projection updated",
			zap.String("root", p.root),
			zap.Int("written", summary.FilesWritten),
			zap.Int("removed", summary.FilesRemoved))
	}
	return summary, nil
}

// removeStale deletes managed files (notes/, tiers/, index.md) that are no
// longer part of the desired set, e.g. notes for compacted-away entries.
func (p *Projector) removeStale(desired map[string]string) (int, error) {
	removed := 0
	for _, dir := range []string{"notes", "tiers"} {
		full := filepath.Join(p.root, dir)
		items, err := os.ReadDir(full)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("scan vault dir %s: %w", dir, err)
		}
		for _, item := range items {
			if item.IsDir() {
				continue
			}
			rel := filepath.Join(dir, item.Name())
			if _, ok := desired[rel]; !ok {
				if err := os.Remove(filepath.Join(p.root, rel)); err != nil {
					return removed, fmt.Errorf("remove stale vault file %s: %w", rel, err)
				}
				removed++
			}
		}
	}
	return removed, nil
}

// render builds the complete desired file map, keyed by path relative to
// the vault root. All output is deterministic for a given entry set.
func (p *Projector) render(entries []domain.MemoryEntry) (map[string]string, error) {
	sorted := make([]domain.MemoryEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	desired := make(map[string]string, len(sorted)+len(domain.AllTiers())+1)

	byTier := make(map[domain.MemoryTier][]domain.MemoryEntry)
	for _, entry := range sorted {
		desired[filepath.Join("notes", noteName(entry)+".md")] = renderNote(entry)
		byTier[entry.Tier] = append(byTier[entry.Tier], entry)
	}

	for _, tier := range domain.AllTiers() {
		content, err := renderTierSummary(tier, byTier[tier], p.tierLimit)
		if err != nil {
			return nil, err
		}
		desired[filepath.Join("tiers", string(tier)+".yaml")] = content
	}

	desired["index.md"] = renderIndex(sorted, byTier)
	return desired, nil
}

func noteName(entry domain.MemoryEntry) string {
	date := entry.CreatedAt.UTC().Format("20060102")
	idShort := entry.ID.String()[:8]
	return fmt.Sprintf("%s-%s-%s", date, entry.Tier, idShort)
}

func renderNote(entry domain.MemoryEntry) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %s\n", entry.ID)
	fmt.Fprintf(&b, "tier: %s\n", entry.Tier)
	fmt.Fprintf(&b, "source: %s\n", entry.Source)
	fmt.Fprintf(&b, "confidence: %.2f\n", entry.Confidence)
	fmt.Fprintf(&b, "valence: %.2f\n", entry.Valence)
	fmt.Fprintf(&b, "created_at: %s\n", entry.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"))
	fmt.Fprintf(&b, "provenance_hash: %s\n", entry.ProvenanceHash)
	if len(entry.Tags) > 0 {
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(entry.Tags, ", "))
	}
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", noteName(entry))
	b.WriteString(entry.Content)
	b.WriteString("\n\n## Links\n- [[index]]\n")
	fmt.Fprintf(&b, "- [[tier-%s]]\n", entry.Tier)
	return b.String()
}

// tierSummary is the YAML shape of one per-tier summary file. Volatile
// fields (timestamps of the sync itself) are deliberately excluded so the
// rendering stays idempotent.
type tierSummary struct {
	Tier    string             `yaml:"tier"`
	Count   int                `yaml:"count"`
	Entries []tierSummaryEntry `yaml:"entries"`
}

type tierSummaryEntry struct {
	ID         string  `yaml:"id"`
	Source     string  `yaml:"source"`
	Confidence float32 `yaml:"confidence"`
	Content    string  `yaml:"content"`
}

func renderTierSummary(tier domain.MemoryTier, entries []domain.MemoryEntry, limit int) (string, error) {
	summary := tierSummary{
		Tier:    string(tier),
		Count:   len(entries),
		Entries: []tierSummaryEntry{},
	}
	for i, entry := range entries {
		if i >= limit {
			break
		}
		summary.Entries = append(summary.Entries, tierSummaryEntry{
			ID:         entry.ID.String(),
			Source:     entry.Source,
			Confidence: entry.Confidence,
			Content:    truncate(entry.Content, 200),
		})
	}

	out, err := yaml.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("encode tier summary %s: %w", tier, err)
	}
	return string(out), nil
}

func renderIndex(sorted []domain.MemoryEntry, byTier map[domain.MemoryTier][]domain.MemoryEntry) string {
	var b strings.Builder
	b.WriteString("# Memory Vault Index\n\n## Tiers\n")
	for _, tier := range domain.AllTiers() {
		fmt.Fprintf(&b, "- [[tier-%s]] (%d)\n", tier, len(byTier[tier]))
	}

	b.WriteString("\n## Recent Notes\n")
	for i, entry := range sorted {
		if i >= 20 {
			break
		}
		fmt.Fprintf(&b, "- [[%s]]\n", noteName(entry))
	}
	return b.String()
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
