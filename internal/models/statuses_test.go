package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProposalTransitions(t *testing.T) {
	tests := []struct {
		from, to ProposalStatus
		allowed  bool
	}{
		{ProposalStatusPending, ProposalStatusNegotiating, true},
		{ProposalStatusPending, ProposalStatusAccepted, true},
		{ProposalStatusPending, ProposalStatusRejected, true},
		{ProposalStatusNegotiating, ProposalStatusNegotiating, true},
		{ProposalStatusNegotiating, ProposalStatusAccepted, true},
		{ProposalStatusNegotiating, ProposalStatusRejected, true},
		{ProposalStatusPending, ProposalStatusPending, false},
		{ProposalStatusPending, ProposalStatusCompleted, false},
		{ProposalStatusAccepted, ProposalStatusNegotiating, false},
		{ProposalStatusRejected, ProposalStatusAccepted, false},
		{ProposalStatusCompleted, ProposalStatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestApplicationTransitions(t *testing.T) {
	assert.True(t, ApplicationStatusPending.CanTransitionTo(ApplicationStatusAccepted))
	assert.True(t, ApplicationStatusPending.CanTransitionTo(ApplicationStatusRejected))
	assert.True(t, ApplicationStatusAccepted.CanTransitionTo(ApplicationStatusAccepted))
	assert.False(t, ApplicationStatusRejected.CanTransitionTo(ApplicationStatusAccepted))
	assert.False(t, ApplicationStatusAccepted.CanTransitionTo(ApplicationStatusPending))
}

func TestInfluencerPlatformLookup(t *testing.T) {
	inf := Influencer{SocialPlatforms: []SocialPlatform{
		{Platform: "YouTube", Username: "chan"},
		{Platform: "Instagram", Username: "insta"},
	}}

	p, ok := inf.Platform("instagram")
	assert.True(t, ok)
	assert.Equal(t, "insta", p.Username)

	_, ok = inf.Platform("tiktok")
	assert.False(t, ok)
}
