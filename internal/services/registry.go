package services

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	BrandService        BrandService
	InfluencerService   InfluencerService
	CampaignService     CampaignService
	ProposalService     ProposalService
	ChatService         ChatService
	NotificationService NotificationService
}
