package apperrors

import (
	"net/http"
)

// =========================================================================
// Factories
// =========================================================================

// ErrNotFound wraps a repository "not found" sentinel.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists is a duplicate-record conflict. Duplicates are a client
// mistake in this API, so they are reported as 400.
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusBadRequest)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusBadRequest)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Predefined errors
// =========================================================================

// --- auth ---

var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid credentials", http.StatusBadRequest)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired       = New(CodeTokenExpired, "auth", "Token expired", http.StatusUnauthorized)
	ErrMissingToken       = New(CodeUnauthorized, "auth", "No token provided", http.StatusUnauthorized)
	ErrUserAlreadyExists  = New(CodeAlreadyExists, "auth", "User already exists", http.StatusBadRequest)
	ErrInvalidResetToken  = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusBadRequest)
	ErrWrongPassword      = New(CodeInvalidCredentials, "auth", "Current password is incorrect", http.StatusBadRequest)
	ErrUserNotFound       = New(CodeNotFound, "user", "User not found", http.StatusNotFound)
	ErrNotAuthorized      = New(CodeForbidden, "auth", "Not authorized", http.StatusForbidden)
	ErrAccessDenied       = New(CodeForbidden, "auth", "Access denied", http.StatusForbidden)
)

// --- profiles ---

var (
	ErrProfileAlreadyExists = New(CodeAlreadyExists, "profile", "Profile already exists", http.StatusBadRequest)
	ErrBrandNotFound        = New(CodeNotFound, "brand", "Brand not found", http.StatusNotFound)
	ErrInfluencerNotFound   = New(CodeNotFound, "influencer", "Influencer not found", http.StatusNotFound)
	ErrNoInstagramAccount   = New(CodeInvalidOperation, "influencer", "No Instagram account linked", http.StatusBadRequest)
	ErrInvalidUserRole      = New(CodeForbidden, "business_logic", "Invalid user role for this operation", http.StatusForbidden)
)

// --- campaigns ---

var (
	ErrCampaignNotFound     = New(CodeNotFound, "campaign", "Campaign not found", http.StatusNotFound)
	ErrApplicationNotFound  = New(CodeNotFound, "campaign", "Proposal not found", http.StatusNotFound)
	ErrOnlyBrandsCreate     = New(CodeForbidden, "campaign", "Only brands can create campaigns", http.StatusForbidden)
	ErrOnlyInfluencersApply = New(CodeForbidden, "campaign", "Only influencers can apply", http.StatusForbidden)
	ErrAlreadyApplied       = New(CodeConflict, "campaign", "Already applied", http.StatusBadRequest)
	ErrCampaignNotOpen      = New(CodeInvalidStatus, "campaign", "Campaign is not accepting applications", http.StatusBadRequest)
	ErrDeadlineInPast       = New(CodeValidationFailed, "campaign", "Deadline must be in the future", http.StatusBadRequest)
)

// --- proposals ---

var (
	ErrProposalNotFound         = New(CodeNotFound, "proposal", "Proposal not found", http.StatusNotFound)
	ErrOnlyInfluencersSubmit    = New(CodeForbidden, "proposal", "Only influencers can submit proposals", http.StatusForbidden)
	ErrProposalAlreadySubmitted = New(CodeConflict, "proposal", "You have already submitted a proposal for this campaign", http.StatusBadRequest)
)

// --- chat ---

var (
	ErrChatNotFound  = New(CodeNotFound, "chat", "Chat not found", http.StatusNotFound)
	ErrChatWithSelf  = New(CodeValidationFailed, "chat", "Cannot start a chat with yourself", http.StatusBadRequest)
	ErrRecipientGone = New(CodeNotFound, "chat", "Recipient not found", http.StatusNotFound)
)

// --- uploads ---

var (
	ErrFileTooLarge    = New(CodeFileTooLarge, "upload", "File is too large", http.StatusBadRequest)
	ErrInvalidFileType = New(CodeInvalidFileType, "upload", "File type is not allowed", http.StatusBadRequest)
)
