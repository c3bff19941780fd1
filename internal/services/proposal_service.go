package services

import (
	"errors"
	"io"
	"time"

	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/metrics"
	"marketplace_backend/internal/models"
	"marketplace_backend/internal/repositories"
	"marketplace_backend/internal/services/dto"
	"marketplace_backend/internal/storage"
	"marketplace_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttachmentUpload describes a file attached to a proposal.
type AttachmentUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type ProposalService interface {
	Submit(db *gorm.DB, userID string, role models.UserRole, req *dto.SubmitProposalRequest) (*models.Proposal, error)
	ListForCampaign(db *gorm.DB, userID, campaignID string) ([]models.Proposal, error)
	ListMine(db *gorm.DB, userID string) ([]models.Proposal, error)
	UpdateStatus(db *gorm.DB, userID, proposalID string, req *dto.UpdateProposalStatusRequest) (*models.Proposal, error)
	Negotiate(db *gorm.DB, userID, proposalID string, req *dto.NegotiateRequest) (*models.Proposal, error)
	AcceptTerms(db *gorm.DB, userID, proposalID string, req *dto.AcceptTermsRequest) (*models.Proposal, error)
	Get(db *gorm.DB, userID, proposalID string) (*models.Proposal, error)
	AddAttachment(db *gorm.DB, userID, proposalID string, upload AttachmentUpload) (*models.ProposalAttachment, error)
}

type ProposalServiceImpl struct {
	proposalRepo  repositories.ProposalRepository
	campaignRepo  repositories.CampaignRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
	storage       storage.Storage
	limits        UploadLimits
	metrics       *metrics.Metrics
	now           func() time.Time
}

func NewProposalService(
	proposalRepo repositories.ProposalRepository,
	campaignRepo repositories.CampaignRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
	storage storage.Storage,
	limits UploadLimits,
	m *metrics.Metrics,
) ProposalService {
	return &ProposalServiceImpl{
		proposalRepo:  proposalRepo,
		campaignRepo:  campaignRepo,
		userRepo:      userRepo,
		notifications: notifications,
		storage:       storage,
		limits:        limits,
		metrics:       m,
		now:           time.Now,
	}
}

func (s *ProposalServiceImpl) Submit(db *gorm.DB, userID string, role models.UserRole, req *dto.SubmitProposalRequest) (*models.Proposal, error) {
	campaign, err := s.findCampaign(db, req.CampaignID)
	if err != nil {
		return nil, err
	}

	if role != models.UserRoleInfluencer {
		return nil, apperrors.ErrOnlyInfluencersSubmit
	}

	if campaign.Brand == nil {
		return nil, apperrors.InternalError(errors.New("campaign " + campaign.ID + " has no brand"))
	}

	proposal := &models.Proposal{
		CampaignID:    campaign.ID,
		InfluencerID:  userID,
		BrandID:       campaign.Brand.UserID,
		Message:       req.Message,
		ProposedRate:  req.ProposedRate,
		Deliverables:  nonNilStrings(req.Deliverables),
		Timeline:      req.Timeline,
		Status:        models.ProposalStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}

	if err := s.proposalRepo.Create(db, proposal); err != nil {
		if errors.Is(err, repositories.ErrProposalAlreadyExists) {
			return nil, apperrors.ErrProposalAlreadySubmitted
		}
		return nil, apperrors.InternalError(err)
	}

	if s.metrics != nil {
		s.metrics.ProposalsSubmitted.Inc()
	}
	logger.CtxInfo(contextOf(db), "Proposal submitted", "proposal_id", proposal.ID, "campaign_id", campaign.ID)

	s.notifyBrand(db, proposal.BrandID, userID, campaign.Title)
	return proposal, nil
}

// notifyBrand looks up both parties and queues the email. Lookup failures are
// logged and swallowed.
func (s *ProposalServiceImpl) notifyBrand(db *gorm.DB, brandUserID, influencerID, campaignTitle string) {
	ctx := contextOf(db)

	brandUser, err := s.userRepo.FindByID(db, brandUserID)
	if err != nil {
		logger.CtxWithError(ctx, "Proposal notification skipped: brand user lookup failed", err, "brand_user_id", brandUserID)
		return
	}

	influencerName := ""
	if influencer, err := s.userRepo.FindByID(db, influencerID); err == nil {
		influencerName = influencer.Name
	} else {
		logger.CtxWithError(ctx, "Influencer lookup failed for notification", err, "influencer_id", influencerID)
	}

	s.notifications.NotifyProposalSubmitted(ctx, brandUser.Email, campaignTitle, influencerName)
}

func (s *ProposalServiceImpl) ListForCampaign(db *gorm.DB, userID, campaignID string) ([]models.Proposal, error) {
	campaign, err := s.findCampaign(db, campaignID)
	if err != nil {
		return nil, err
	}

	if !ownsCampaign(campaign, userID) {
		return nil, apperrors.ErrAccessDenied
	}

	proposals, err := s.proposalRepo.FindByCampaign(db, campaign.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if proposals == nil {
		proposals = []models.Proposal{}
	}
	return proposals, nil
}

func (s *ProposalServiceImpl) ListMine(db *gorm.DB, userID string) ([]models.Proposal, error) {
	proposals, err := s.proposalRepo.FindByInfluencer(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if proposals == nil {
		proposals = []models.Proposal{}
	}
	return proposals, nil
}

func (s *ProposalServiceImpl) UpdateStatus(db *gorm.DB, userID, proposalID string, req *dto.UpdateProposalStatusRequest) (*models.Proposal, error) {
	proposal, err := s.find(db, proposalID)
	if err != nil {
		return nil, err
	}

	if proposal.BrandID != userID {
		return nil, apperrors.ErrAccessDenied
	}

	if err := s.checkTransition(proposal.Status, req.Status); err != nil {
		return nil, err
	}

	var entry *models.ProposalNegotiation
	if req.Message != "" {
		entry = &models.ProposalNegotiation{From: models.PartyBrand, Message: req.Message}
	}

	err = s.transition(db, proposal, map[string]interface{}{"status": req.Status}, entry)
	if err != nil {
		return nil, err
	}
	return s.find(db, proposalID)
}

func (s *ProposalServiceImpl) Negotiate(db *gorm.DB, userID, proposalID string, req *dto.NegotiateRequest) (*models.Proposal, error) {
	proposal, err := s.find(db, proposalID)
	if err != nil {
		return nil, err
	}

	if proposal.InfluencerID != userID {
		return nil, apperrors.ErrAccessDenied
	}

	if err := s.checkTransition(proposal.Status, models.ProposalStatusNegotiating); err != nil {
		return nil, err
	}

	entry := &models.ProposalNegotiation{
		From:         models.PartyInfluencer,
		Message:      req.Message,
		ProposedRate: req.ProposedRate,
	}

	err = s.transition(db, proposal, map[string]interface{}{"status": models.ProposalStatusNegotiating}, entry)
	if err != nil {
		return nil, err
	}
	return s.find(db, proposalID)
}

// AcceptTerms stores the final terms exactly as given and closes the negotiation.
func (s *ProposalServiceImpl) AcceptTerms(db *gorm.DB, userID, proposalID string, req *dto.AcceptTermsRequest) (*models.Proposal, error) {
	proposal, err := s.find(db, proposalID)
	if err != nil {
		return nil, err
	}

	if !proposal.IsParty(userID) {
		return nil, apperrors.ErrAccessDenied
	}

	if err := s.checkTransition(proposal.Status, models.ProposalStatusAccepted); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"status":             models.ProposalStatusAccepted,
		"final_rate":         *req.FinalRate,
		"final_deliverables": datatypes.NewJSONSlice(nonNilStrings(req.FinalDeliverables)),
		"final_timeline":     req.FinalTimeline,
	}

	if err := s.transition(db, proposal, fields, nil); err != nil {
		return nil, err
	}
	return s.find(db, proposalID)
}

func (s *ProposalServiceImpl) Get(db *gorm.DB, userID, proposalID string) (*models.Proposal, error) {
	proposal, err := s.find(db, proposalID)
	if err != nil {
		return nil, err
	}

	if !proposal.IsParty(userID) {
		return nil, apperrors.ErrAccessDenied
	}
	return proposal, nil
}

func (s *ProposalServiceImpl) AddAttachment(db *gorm.DB, userID, proposalID string, upload AttachmentUpload) (*models.ProposalAttachment, error) {
	ctx := contextOf(db)

	proposal, err := s.find(db, proposalID)
	if err != nil {
		return nil, err
	}

	if !proposal.IsParty(userID) {
		return nil, apperrors.ErrAccessDenied
	}

	if s.limits.tooLarge(upload.Size) {
		return nil, apperrors.ErrFileTooLarge
	}
	if !s.limits.allows(upload.ContentType) {
		return nil, apperrors.ErrInvalidFileType
	}

	key := storage.NewKey("proposals/"+proposal.ID, upload.Filename)
	if err := s.storage.Save(ctx, key, upload.Reader, upload.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		s.discard(db, key)
		return nil, apperrors.InternalError(err)
	}

	attachment := &models.ProposalAttachment{
		ProposalID:  proposal.ID,
		Filename:    upload.Filename,
		URL:         url,
		StorageKey:  key,
		ContentType: upload.ContentType,
		Size:        upload.Size,
		UploadedBy:  userID,
		UploadedAt:  s.now(),
	}

	if err := s.proposalRepo.AddAttachment(db, attachment); err != nil {
		s.discard(db, key)
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Proposal attachment added", "proposal_id", proposal.ID, "key", key, "size", upload.Size)
	return attachment, nil
}

// transition applies fields and the optional history entry in one
// transaction, guarded by the status the caller validated against.
func (s *ProposalServiceImpl) transition(db *gorm.DB, proposal *models.Proposal, fields map[string]interface{}, entry *models.ProposalNegotiation) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.proposalRepo.Transition(tx, proposal.ID, proposal.Status, fields); err != nil {
		if errors.Is(err, repositories.ErrProposalStatusChanged) {
			return apperrors.ErrConflict(err, "proposal", "Proposal was modified concurrently, please retry")
		}
		return apperrors.InternalError(err)
	}

	if entry != nil {
		entry.ProposalID = proposal.ID
		entry.Timestamp = s.now()
		if err := s.proposalRepo.AppendNegotiation(tx, entry); err != nil {
			return apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProposalServiceImpl) checkTransition(from, to models.ProposalStatus) error {
	if !from.CanTransitionTo(to) {
		return apperrors.ErrInvalidStatus("proposal",
			"Cannot change proposal status from "+string(from)+" to "+string(to))
	}
	return nil
}

func (s *ProposalServiceImpl) find(db *gorm.DB, proposalID string) (*models.Proposal, error) {
	proposal, err := s.proposalRepo.FindByID(db, proposalID)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return nil, apperrors.ErrProposalNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return proposal, nil
}

func (s *ProposalServiceImpl) findCampaign(db *gorm.DB, campaignID string) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(db, campaignID)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return campaign, nil
}

func (s *ProposalServiceImpl) discard(db *gorm.DB, key string) {
	ctx := contextOf(db)
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.CtxWithError(ctx, "Failed to remove orphaned attachment", err, "key", key)
	}
}
