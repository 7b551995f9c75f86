package service

import (
	"fmt"
	"strings"

	"github.com/danielmriley/aigent-sub002/internal/domain"
	"go.uber.org/zap"
)

// adversarialPatterns is the literal substring blocklist scanned against
// lowercased Core candidate content. Intentionally small and pragmatic: it
// is a content-policy filter, not a security sandbox.
var adversarialPatterns = []string{
	"ignore user",
	"deceive",
	"manipulate the user",
	"override all instructions",
	"disregard safety",
	"lie to",
}

// Decision is the firewall's one-shot outcome for a candidate entry.
// Quarantine is a normal result carried as data, never an error, and must
// never be silently upgraded to an accept.
type Decision struct {
	Quarantined bool
	Reason      string
}

func accept() Decision {
	return Decision{}
}

func quarantine(reason string) Decision {
	return Decision{Quarantined: true, Reason: reason}
}

// Firewall is the tier-aware gatekeeper evaluated before any entry is
// durably committed. Core is a hard boundary; UserProfile and Reflective
// are soft (log-only) because their mistakes self-correct through later
// consolidation; all other tiers accept unconditionally.
type Firewall struct {
	logger *zap.Logger
}

func NewFirewall(logger *zap.Logger) *Firewall {
	return &Firewall{logger: logger}
}

// Evaluate decides Accept or Quarantine for one candidate entry against the
// given identity kernel.
func (f *Firewall) Evaluate(identity domain.IdentityKernel, entry domain.MemoryEntry) Decision {
	origin := entry.Origin
	if origin == "" {
		origin = domain.ClassifySource(entry.Source)
	}

	switch entry.Tier {
	case domain.TierCore:
		return f.evaluateCore(identity, entry, origin)

	case domain.TierUserProfile:
		if !origin.ExpectedForUserProfile() {
			f.logger.Warn("unexpected source for user-profile entry",
				zap.String("source", entry.Source),
				zap.String("origin", string(origin)))
		}
		return accept()

	case domain.TierReflective:
		if !origin.ExpectedForReflective() {
			f.logger.Warn("unexpected source for reflective entry",
				zap.String("source", entry.Source),
				zap.String("origin", string(origin)))
		}
		return accept()

	default:
		return accept()
	}
}

func (f *Firewall) evaluateCore(identity domain.IdentityKernel, entry domain.MemoryEntry, origin domain.OriginKind) Decision {
	if !origin.TrustedForCore() {
		return quarantine(fmt.Sprintf(
			"untrusted source %q: core updates must come from onboarding, sleep distillation, or identity seeding",
			entry.Source))
	}

	text := strings.ToLower(entry.Content)
	for _, pattern := range adversarialPatterns {
		if strings.Contains(text, pattern) {
			return quarantine(fmt.Sprintf(
				"content matches adversarial pattern %q and conflicts with trusted collaboration values",
				pattern))
		}
	}

	if len(identity.Values) == 0 {
		return quarantine("identity kernel has no values to align against")
	}

	return accept()
}
