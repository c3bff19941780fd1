package services

import (
	"strings"

	"marketplace_backend/internal/config"
)

// UploadLimits bounds user uploads. An empty AllowedTypes accepts any type.
type UploadLimits struct {
	MaxSize      int64
	AllowedTypes []string
}

func UploadLimitsFrom(cfg *config.Config) UploadLimits {
	return UploadLimits{
		MaxSize:      cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
	}
}

func (l UploadLimits) tooLarge(size int64) bool {
	return l.MaxSize > 0 && size > l.MaxSize
}

func (l UploadLimits) allows(contentType string) bool {
	if len(l.AllowedTypes) == 0 {
		return true
	}
	// Drop parameters such as "; charset=utf-8".
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))
	for _, allowed := range l.AllowedTypes {
		if strings.EqualFold(allowed, mediaType) {
			return true
		}
	}
	return false
}
