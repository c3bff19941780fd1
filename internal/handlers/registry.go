package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	BrandHandler      *BrandHandler
	InfluencerHandler *InfluencerHandler
	CampaignHandler   *CampaignHandler
	ProposalHandler   *ProposalHandler
	ChatHandler       *ChatHandler
}
