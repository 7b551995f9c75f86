package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// MemoryTier is the protection level of an entry, from volatile raw turns
// up to the immutable identity constitution. Tier membership selects which
// firewall rule applies; the ordering is documentation, not arithmetic.
type MemoryTier string

const (
	TierEpisodic    MemoryTier = "episodic"
	TierSemantic    MemoryTier = "semantic"
	TierProcedural  MemoryTier = "procedural"
	TierReflective  MemoryTier = "reflective"
	TierUserProfile MemoryTier = "user_profile"
	TierCore        MemoryTier = "core"
)

func AllTiers() []MemoryTier {
	return []MemoryTier{
		TierEpisodic,
		TierSemantic,
		TierProcedural,
		TierReflective,
		TierUserProfile,
		TierCore,
	}
}

func ValidTier(t string) bool {
	switch MemoryTier(t) {
	case TierEpisodic, TierSemantic, TierProcedural, TierReflective, TierUserProfile, TierCore:
		return true
	}
	return false
}

// MemoryEntry is one durable observation, fact, skill, reflection, profile
// item, or identity statement. Embeddings are deliberately absent from the
// type: they live in the embedcache side store keyed by ID, so the on-disk
// event log can never carry them.
type MemoryEntry struct {
	ID             uuid.UUID  `json:"id"`
	Tier           MemoryTier `json:"tier"`
	Content        string     `json:"content"`
	Source         string     `json:"source"`
	Confidence     float32    `json:"confidence"`
	Valence        float32    `json:"valence"`
	CreatedAt      time.Time  `json:"created_at"`
	ProvenanceHash string     `json:"provenance_hash"`
	Tags           []string   `json:"tags,omitempty"`

	// Origin is classified once from Source at creation or replay time and
	// never serialized; the firewall consults it instead of re-parsing
	// prefixes on every evaluation.
	Origin OriginKind `json:"-"`
}

// ProvenanceHash returns the content-derived integrity tag stored alongside
// an entry: the hex SHA-256 of the content bytes.
func ProvenanceHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ClampConfidence bounds a confidence value to [0, 1]. Producers clamp at
// creation; the firewall does not re-clamp.
func ClampConfidence(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampValence bounds a valence value to [-1, 1].
func ClampValence(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
