package models

type UserRole string
type ProfileStatus string
type CampaignStatus string
type ApplicationStatus string
type ProposalStatus string
type PaymentStatus string
type NegotiationParty string

const (
	UserRoleInfluencer UserRole = "influencer"
	UserRoleBrand      UserRole = "brand"
	UserRoleAdmin      UserRole = "admin"

	ProfileStatusPending  ProfileStatus = "pending"
	ProfileStatusApproved ProfileStatus = "approved"
	ProfileStatusRejected ProfileStatus = "rejected"

	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusClosed    CampaignStatus = "closed"
	CampaignStatusCompleted CampaignStatus = "completed"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	ProposalStatusPending     ProposalStatus = "pending"
	ProposalStatusNegotiating ProposalStatus = "negotiating"
	ProposalStatusAccepted    ProposalStatus = "accepted"
	ProposalStatusRejected    ProposalStatus = "rejected"
	ProposalStatusCompleted   ProposalStatus = "completed"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusEscrow    PaymentStatus = "escrow"
	PaymentStatusReleased  PaymentStatus = "released"
	PaymentStatusCompleted PaymentStatus = "completed"

	PartyInfluencer NegotiationParty = "influencer"
	PartyBrand      NegotiationParty = "brand"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleInfluencer, UserRoleBrand, UserRoleAdmin:
		return true
	}
	return false
}

func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusActive, CampaignStatusClosed, CampaignStatusCompleted:
		return true
	}
	return false
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusNegotiating, ProposalStatusAccepted,
		ProposalStatusRejected, ProposalStatusCompleted:
		return true
	}
	return false
}

// ============================================
// Transition tables
// ============================================

var proposalTransitions = map[ProposalStatus][]ProposalStatus{
	ProposalStatusPending:     {ProposalStatusNegotiating, ProposalStatusAccepted, ProposalStatusRejected},
	ProposalStatusNegotiating: {ProposalStatusNegotiating, ProposalStatusAccepted, ProposalStatusRejected},
}

// CanTransitionTo reports whether a proposal may move from s to next.
// accepted, rejected and completed are terminal.
func (s ProposalStatus) CanTransitionTo(next ProposalStatus) bool {
	for _, allowed := range proposalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether an application may move from s to next.
// Re-applying the current status is allowed and changes nothing.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	return s == ApplicationStatusPending &&
		(next == ApplicationStatusAccepted || next == ApplicationStatusRejected)
}
