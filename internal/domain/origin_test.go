package domain

import "testing"

func TestClassifySource(t *testing.T) {
	tests := []struct {
		source string
		want   OriginKind
	}{
		{"onboarding:init", OriginOnboarding},
		{"onboarding", OriginOnboarding},
		{"sleep:distill", OriginSleep},
		{"sleep:sleep-distilled repetition=3 confidence=0.85", OriginSleep},
		{"identity:values", OriginIdentity},
		{"constitution:personality", OriginConstitution},
		{"user-profile:preference", OriginUserProfile},
		{"user-input", OriginUserInput},
		{"user-chat", OriginUserChat},
		{"reflect:nightly", OriginReflection},
		{"assistant-reply", OriginAssistantReply},
		{"agentic-sleep", OriginAgenticSleep},
		{"tool:shell", OriginUnknown},
		{"", OriginUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := ClassifySource(tt.source); got != tt.want {
				t.Errorf("ClassifySource(%q) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestTrustedForCore(t *testing.T) {
	trusted := []OriginKind{OriginOnboarding, OriginSleep, OriginIdentity, OriginConstitution}
	for _, k := range trusted {
		if !k.TrustedForCore() {
			t.Errorf("%v should be trusted for core", k)
		}
	}

	untrusted := []OriginKind{OriginUserChat, OriginUserInput, OriginReflection, OriginAssistantReply, OriginAgenticSleep, OriginUnknown}
	for _, k := range untrusted {
		if k.TrustedForCore() {
			t.Errorf("%v should not be trusted for core", k)
		}
	}
}

func TestProvenanceHashIsStable(t *testing.T) {
	a := ProvenanceHash("user prefers milestone check-ins")
	b := ProvenanceHash("user prefers milestone check-ins")
	if a != b {
		t.Errorf("same content should hash identically: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected hex sha256 (64 chars), got %d", len(a))
	}
	if ProvenanceHash("other content") == a {
		t.Error("different content should not collide")
	}
}

func TestClamps(t *testing.T) {
	if got := ClampConfidence(1.5); got != 1 {
		t.Errorf("ClampConfidence(1.5) = %v", got)
	}
	if got := ClampConfidence(-0.2); got != 0 {
		t.Errorf("ClampConfidence(-0.2) = %v", got)
	}
	if got := ClampValence(-3); got != -1 {
		t.Errorf("ClampValence(-3) = %v", got)
	}
	if got := ClampValence(0.4); got != 0.4 {
		t.Errorf("ClampValence(0.4) = %v", got)
	}
}
