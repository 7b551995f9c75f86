package domain

import "strings"

// OriginKind is the closed set of producer origins an entry can carry. It is
// derived from the free-form source tag exactly once, at creation or replay,
// so trust decisions never depend on repeated string parsing of the tag.
type OriginKind string

const (
	OriginOnboarding     OriginKind = "onboarding"
	OriginSleep          OriginKind = "sleep"
	OriginIdentity       OriginKind = "identity"
	OriginConstitution   OriginKind = "constitution"
	OriginUserProfile    OriginKind = "user-profile"
	OriginUserInput      OriginKind = "user-input"
	OriginUserChat       OriginKind = "user-chat"
	OriginReflection     OriginKind = "reflect"
	OriginAssistantReply OriginKind = "assistant-reply"
	OriginAgenticSleep   OriginKind = "agentic-sleep"
	OriginUnknown        OriginKind = "unknown"
)

// ClassifySource maps a source tag to its origin kind by prefix. The
// prefixes are mutually exclusive, so case order carries no meaning.
func ClassifySource(source string) OriginKind {
	switch {
	case strings.HasPrefix(source, "onboarding"):
		return OriginOnboarding
	case strings.HasPrefix(source, "agentic-sleep"):
		return OriginAgenticSleep
	case strings.HasPrefix(source, "sleep:"):
		return OriginSleep
	case strings.HasPrefix(source, "identity:"):
		return OriginIdentity
	case strings.HasPrefix(source, "constitution:"):
		return OriginConstitution
	case strings.HasPrefix(source, "user-profile:"):
		return OriginUserProfile
	case strings.HasPrefix(source, "user-input"):
		return OriginUserInput
	case strings.HasPrefix(source, "user-chat"):
		return OriginUserChat
	case strings.HasPrefix(source, "reflect:"):
		return OriginReflection
	case strings.HasPrefix(source, "assistant-reply"):
		return OriginAssistantReply
	default:
		return OriginUnknown
	}
}

// TrustedForCore reports whether entries of this origin may propose Core
// writes. Core is the hard boundary: identity corruption compounds across
// every future turn.
func (k OriginKind) TrustedForCore() bool {
	switch k {
	case OriginOnboarding, OriginSleep, OriginIdentity, OriginConstitution:
		return true
	}
	return false
}

// ExpectedForUserProfile reports whether this origin is a usual producer of
// UserProfile entries. A mismatch is logged, never rejected.
func (k OriginKind) ExpectedForUserProfile() bool {
	switch k {
	case OriginUserProfile, OriginSleep, OriginOnboarding, OriginUserInput:
		return true
	}
	return false
}

// ExpectedForReflective reports whether this origin is a usual producer of
// Reflective entries. A mismatch is logged, never rejected.
func (k OriginKind) ExpectedForReflective() bool {
	switch k {
	case OriginReflection, OriginSleep, OriginOnboarding, OriginAssistantReply, OriginAgenticSleep:
		return true
	}
	return false
}
