package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/danielmriley/aigent-sub002/internal/domain"
	"github.com/danielmriley/aigent-sub002/internal/embedcache"
	"github.com/danielmriley/aigent-sub002/internal/eventlog"
	"github.com/danielmriley/aigent-sub002/internal/vault"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultConfidence is assigned to entries whose producer supplies none.
const DefaultConfidence = 0.7

var ErrContentEmpty = errors.New("content is required")

// QuarantineError is returned when the firewall rejects a candidate entry.
// It carries the human-readable reason and is routed back to whichever
// collaborator originated the entry; it is never upgraded to an accept.
type QuarantineError struct {
	Reason string
}

func (e *QuarantineError) Error() string {
	return "memory quarantined: " + e.Reason
}

// EmbedFunc maps text to an embedding vector. Injected by the surrounding
// runtime; never called while holding a log mutation in flight.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// Stats summarizes the store by tier.
type Stats struct {
	Total       int `json:"total"`
	Episodic    int `json:"episodic"`
	Semantic    int `json:"semantic"`
	Procedural  int `json:"procedural"`
	Reflective  int `json:"reflective"`
	UserProfile int `json:"user_profile"`
	Core        int `json:"core"`
}

// RecordRequest is the full-option record form used by the API surface.
// Nil Confidence or Valence fall back to the defaults (0.7 and inferred
// sentiment respectively).
type RecordRequest struct {
	Tier       domain.MemoryTier
	Content    string
	Source     string
	Confidence *float32
	Valence    *float32
	Tags       []string
}

// Manager composes the firewall, event log, vault projector, and embed
// cache behind one mutex. It is the single logical writer the concurrency
// model requires: every mutating call is serialized here, and distillation
// always runs against a snapshot taken under the same lock.
type Manager struct {
	mu        sync.Mutex
	identity  domain.IdentityKernel
	set       *entrySet
	log       *eventlog.Log
	firewall  *Firewall
	projector *vault.Projector
	embeds    *embedcache.Cache
	embedFn   EmbedFunc
	logger    *zap.Logger
}

// NewManager builds a manager over the given event log (nil for an
// ephemeral store) and replays existing events through the firewall.
// Replayed entries that no longer pass are skipped with a warning — a
// quarantine is never silently accepted, not even from our own history.
func NewManager(log *eventlog.Log, logger *zap.Logger) (*Manager, error) {
	m := &Manager{
		identity: domain.DefaultIdentityKernel(),
		set:      newEntrySet(),
		log:      log,
		firewall: NewFirewall(logger),
		logger:   logger,
	}

	if log == nil {
		return m, nil
	}

	events, err := log.Load()
	if err != nil {
		return nil, fmt.Errorf("load event log: %w", err)
	}

	for _, event := range events {
		entry := event.Entry
		entry.Origin = domain.ClassifySource(entry.Source)
		if decision := m.firewall.Evaluate(m.identity, entry); decision.Quarantined {
			logger.Warn("skipping quarantined entry during replay",
				zap.String("id", entry.ID.String()),
				zap.String("reason", decision.Reason))
			continue
		}
		m.set.insert(entry)
	}

	stats := m.statsLocked()
	logger.Info("memory loaded",
		zap.Int("events", len(events)),
		zap.Int("total", stats.Total),
		zap.Int("core", stats.Core),
		zap.Int("episodic", stats.Episodic),
		zap.Int("semantic", stats.Semantic))
	return m, nil
}

// SetProjector attaches a vault projector; the vault is rebuilt after every
// committed mutation from then on.
func (m *Manager) SetProjector(p *vault.Projector) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projector = p
}

// SetIdentity replaces the identity kernel consulted by the firewall.
func (m *Manager) SetIdentity(identity domain.IdentityKernel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identity = identity
}

// Identity returns the current identity kernel.
func (m *Manager) Identity() domain.IdentityKernel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

// SetEmbedder attaches an embedding backend and its side cache. Vectors
// are cached keyed by entry id and never enter the event log.
func (m *Manager) SetEmbedder(cache *embedcache.Cache, fn EmbedFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embeds = cache
	m.embedFn = fn
}

// Record validates, commits, and projects one new entry with defaults:
// confidence 0.7 and heuristically inferred valence.
func (m *Manager) Record(ctx context.Context, tier domain.MemoryTier, content, source string) (domain.MemoryEntry, error) {
	return m.RecordWith(ctx, RecordRequest{Tier: tier, Content: content, Source: source})
}

// RecordTagged is Record with semantic tags attached.
func (m *Manager) RecordTagged(ctx context.Context, tier domain.MemoryTier, content, source string, tags []string) (domain.MemoryEntry, error) {
	return m.RecordWith(ctx, RecordRequest{Tier: tier, Content: content, Source: source, Tags: tags})
}

// RecordWith is the full-option record path: firewall, then append, then
// vault sync. The committed entry is returned on accept.
func (m *Manager) RecordWith(ctx context.Context, req RecordRequest) (domain.MemoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, err := m.recordLocked(ctx, req)
	if err != nil {
		return domain.MemoryEntry{}, err
	}
	if err := m.syncVaultLocked(); err != nil {
		return entry, err
	}
	return entry, nil
}

func (m *Manager) recordLocked(ctx context.Context, req RecordRequest) (domain.MemoryEntry, error) {
	if strings.TrimSpace(req.Content) == "" {
		return domain.MemoryEntry{}, ErrContentEmpty
	}

	confidence := float32(DefaultConfidence)
	if req.Confidence != nil {
		confidence = domain.ClampConfidence(*req.Confidence)
	}
	valence := InferValence(req.Content)
	if req.Valence != nil {
		valence = domain.ClampValence(*req.Valence)
	}

	entry := domain.MemoryEntry{
		ID:             uuid.New(),
		Tier:           req.Tier,
		Content:        req.Content,
		Source:         req.Source,
		Confidence:     confidence,
		Valence:        valence,
		CreatedAt:      time.Now().UTC(),
		ProvenanceHash: domain.ProvenanceHash(req.Content),
		Tags:           req.Tags,
		Origin:         domain.ClassifySource(req.Source),
	}

	if decision := m.firewall.Evaluate(m.identity, entry); decision.Quarantined {
		return domain.MemoryEntry{}, &QuarantineError{Reason: decision.Reason}
	}

	if !m.set.insert(entry) {
		return entry, nil
	}

	m.logger.Debug("memory entry recorded",
		zap.String("id", entry.ID.String()),
		zap.String("tier", string(entry.Tier)),
		zap.String("source", entry.Source),
		zap.Int("content_len", len(entry.Content)))

	if m.log != nil {
		if err := m.log.Append(domain.NewRecordEvent(entry)); err != nil {
			return domain.MemoryEntry{}, fmt.Errorf("append entry: %w", err)
		}
	} else {
		m.logger.Warn("no event log configured, entry is ephemeral",
			zap.String("tier", string(entry.Tier)),
			zap.String("source", entry.Source))
	}

	m.cacheEmbedding(ctx, entry)
	return entry, nil
}

// cacheEmbedding computes and caches a vector for the entry when an
// embedding backend is configured. Failures degrade to a warning: the
// entry is already durable and vectors are recomputable.
func (m *Manager) cacheEmbedding(ctx context.Context, entry domain.MemoryEntry) {
	if m.embedFn == nil || m.embeds == nil {
		return
	}
	vector, err := m.embedFn(ctx, entry.Content)
	if err != nil {
		m.logger.Warn("embedding failed", zap.String("id", entry.ID.String()), zap.Error(err))
		return
	}
	if err := m.embeds.Put(ctx, entry.ID, vector); err != nil {
		m.logger.Warn("embedding cache write failed", zap.String("id", entry.ID.String()), zap.Error(err))
	}
}

// All returns a snapshot of every entry in insertion (= temporal) order.
func (m *Manager) All() []domain.MemoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set.snapshot()
}

// EntriesByTier returns a snapshot of all entries in one tier.
func (m *Manager) EntriesByTier(tier domain.MemoryTier) []domain.MemoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.MemoryEntry
	for _, entry := range m.set.all() {
		if entry.Tier == tier {
			out = append(out, entry)
		}
	}
	return out
}

// Recent returns up to limit entries, newest first.
func (m *Manager) Recent(limit int) []domain.MemoryEntry {
	entries := m.All()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Stats returns per-tier counts.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statsLocked()
}

func (m *Manager) statsLocked() Stats {
	s := Stats{Total: m.set.len()}
	for _, entry := range m.set.all() {
		switch entry.Tier {
		case domain.TierEpisodic:
			s.Episodic++
		case domain.TierSemantic:
			s.Semantic++
		case domain.TierProcedural:
			s.Procedural++
		case domain.TierReflective:
			s.Reflective++
		case domain.TierUserProfile:
			s.UserProfile++
		case domain.TierCore:
			s.Core++
		}
	}
	return s
}

// ProfileBlock renders the deduplicated user-profile prompt block.
func (m *Manager) ProfileBlock() string {
	return FormatUserProfileBlock(m.All())
}

// RunSleepCycle snapshots the store, distills promotion proposals, and
// commits them. Every proposal re-enters the normal record path with a
// sleep: source, so a proposed Core promotion is itself firewalled;
// quarantined proposals are dropped with a warning. The log is backed up
// before the cycle writes anything.
func (m *Manager) RunSleepCycle(ctx context.Context) (SleepSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.set.snapshot()
	m.logger.Info("sleep cycle starting", zap.Int("entries", len(snapshot)))

	summary := Distill(snapshot)

	if m.log != nil {
		if err := m.log.Backup(); err != nil {
			return SleepSummary{}, fmt.Errorf("backup before sleep: %w", err)
		}
	}

	marker, err := m.recordLocked(ctx, RecordRequest{
		Tier:    domain.TierSemantic,
		Content: "sleep cycle summary: " + summary.Distilled,
		Source:  "sleep:cycle",
	})
	if err != nil {
		return SleepSummary{}, fmt.Errorf("record sleep marker: %w", err)
	}
	summary.PromotedIDs = append(summary.PromotedIDs, marker.ID.String())

	for _, promotion := range summary.Promotions {
		promoted, err := m.recordLocked(ctx, RecordRequest{
			Tier:    promotion.ToTier,
			Content: promotion.Content,
			Source:  "sleep:" + promotion.Reason,
		})
		if err != nil {
			var qe *QuarantineError
			if errors.As(err, &qe) {
				m.logger.Warn("sleep promotion quarantined",
					zap.String("source_id", promotion.SourceID),
					zap.String("to_tier", string(promotion.ToTier)),
					zap.String("reason", qe.Reason))
				continue
			}
			return SleepSummary{}, fmt.Errorf("commit sleep promotion: %w", err)
		}
		summary.PromotedIDs = append(summary.PromotedIDs, promoted.ID.String())
	}

	if err := m.syncVaultLocked(); err != nil {
		return SleepSummary{}, err
	}

	m.logger.Info("sleep cycle complete",
		zap.Int("proposals", len(summary.Promotions)),
		zap.Int("committed", len(summary.PromotedIDs)))
	return summary, nil
}

// SeedConstitution records the four constitution statements as Core
// entries. Idempotent: a seed whose source and content already exist is
// skipped. Returns how many entries were newly recorded.
func (m *Manager) SeedConstitution(ctx context.Context, botName, userName string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := make(map[string]bool)
	for _, entry := range m.set.all() {
		if entry.Tier == domain.TierCore {
			existing[entry.Source+"\x00"+entry.Content] = true
		}
	}

	seeded := 0
	for _, seed := range ConstitutionSeeds(botName, userName) {
		if existing[seed.Source+"\x00"+seed.Content] {
			continue
		}
		if _, err := m.recordLocked(ctx, RecordRequest{
			Tier:    domain.TierCore,
			Content: seed.Content,
			Source:  seed.Source,
		}); err != nil {
			return seeded, fmt.Errorf("seed constitution: %w", err)
		}
		seeded++
	}

	if seeded > 0 {
		if err := m.syncVaultLocked(); err != nil {
			return seeded, err
		}
		m.logger.Info("constitution seeded", zap.Int("entries", seeded))
	}
	return seeded, nil
}

// WipeAll removes every entry via log compaction and returns how many were
// removed.
func (m *Manager) WipeAll(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := m.set.len()
	m.set.clear()

	if m.log != nil {
		if err := m.log.Overwrite(nil); err != nil {
			return 0, fmt.Errorf("compact log: %w", err)
		}
	}
	if err := m.pruneEmbeddingsLocked(ctx); err != nil {
		return removed, err
	}
	if err := m.syncVaultLocked(); err != nil {
		return removed, err
	}
	return removed, nil
}

// WipeTiers removes all entries in the given tiers via log compaction.
func (m *Manager) WipeTiers(ctx context.Context, tiers []domain.MemoryTier) (int, error) {
	if len(tiers) == 0 {
		return 0, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doomed := make(map[domain.MemoryTier]bool, len(tiers))
	for _, tier := range tiers {
		doomed[tier] = true
	}

	removed := m.set.retain(func(entry domain.MemoryEntry) bool {
		return !doomed[entry.Tier]
	})

	if m.log != nil {
		events, err := m.log.Load()
		if err != nil {
			return removed, fmt.Errorf("load log for compaction: %w", err)
		}
		kept := events[:0]
		for _, event := range events {
			if !doomed[event.Entry.Tier] {
				kept = append(kept, event)
			}
		}
		if err := m.log.Overwrite(kept); err != nil {
			return removed, fmt.Errorf("compact log: %w", err)
		}
	}
	if err := m.pruneEmbeddingsLocked(ctx); err != nil {
		return removed, err
	}
	if err := m.syncVaultLocked(); err != nil {
		return removed, err
	}
	return removed, nil
}

func (m *Manager) pruneEmbeddingsLocked(ctx context.Context) error {
	if m.embeds == nil {
		return nil
	}
	keep := make(map[uuid.UUID]bool, m.set.len())
	for _, entry := range m.set.all() {
		keep[entry.ID] = true
	}
	pruned, err := m.embeds.Prune(ctx, keep)
	if err != nil {
		return fmt.Errorf("prune embeddings: %w", err)
	}
	if pruned > 0 {
		m.logger.Debug("pruned stale embeddings", zap.Int("count", pruned))
	}
	return nil
}

// SyncVault forces a full projection rebuild.
func (m *Manager) SyncVault() (vault.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.projector == nil {
		return vault.Summary{}, nil
	}
	return m.projector.Sync(m.set.snapshot())
}

func (m *Manager) syncVaultLocked() error {
	if m.projector == nil {
		return nil
	}
	if _, err := m.projector.Sync(m.set.snapshot()); err != nil {
		return fmt.Errorf("sync vault: %w", err)
	}
	return nil
}
