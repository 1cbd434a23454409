package services

import (
	"context"
	"errors"

	"github.com/pulsedash/pulsedash/internal/i18n"
	"github.com/pulsedash/pulsedash/internal/logging"
	"github.com/pulsedash/pulsedash/internal/models"
	"github.com/pulsedash/pulsedash/internal/session"
)

// LanguageService handles language and translation business logic
type LanguageService struct {
	logger   *logging.Logger
	resolver *i18n.Resolver
	sessions session.Store
}

// NewLanguageService creates a new LanguageService
func NewLanguageService(logger *logging.Logger, resolver *i18n.Resolver, sessions session.Store) *LanguageService {
	return &LanguageService{
		logger:   logger,
		resolver: resolver,
		sessions: sessions,
	}
}

// Languages lists the supported dashboard languages with self-described
// display names.
func (s *LanguageService) Languages(ctx context.Context) *models.LanguageListResponse {
	codes := s.resolver.Languages()

	languages := make([]models.LanguageInfo, len(codes))
	for i, code := range codes {
		languages[i] = models.LanguageInfo{
			Code: code,
			Name: s.resolver.LanguageName(code, code),
		}
	}

	return &models.LanguageListResponse{
		Languages: languages,
		Default:   s.resolver.DefaultLanguage(),
	}
}

// Label resolves a translation key. When no language is requested, the
// session's stored language (if any) applies, then the configured default.
func (s *LanguageService) Label(ctx context.Context, key, language, sessionID string) (*models.LabelResponse, error) {
	if key == "" {
		return nil, &ServiceError{
			Code:    "INVALID_REQUEST",
			Message: "label key is required",
		}
	}

	if language == "" && sessionID != "" {
		stored, err := s.sessions.GetLanguage(ctx, sessionID)
		switch {
		case err == nil:
			language = stored
		case !errors.Is(err, session.ErrNotFound):
			return nil, &ServiceError{
				Code:    "SESSION_STORE_FAILED",
				Message: "Failed to read session language",
				Details: map[string]interface{}{"error": err.Error()},
			}
		}
	}
	if language == "" {
		language = s.resolver.DefaultLanguage()
	}

	value, resolved := s.resolver.Translate(key, language)
	if resolved == "" {
		// Untranslated keys resolve to themselves; report the requested
		// language so the client sees what was attempted.
		resolved = language
	}

	return &models.LabelResponse{
		Key:      key,
		Language: resolved,
		Value:    value,
	}, nil
}

// SessionLanguage returns the language stored for a session, falling back to
// the configured default for fresh sessions.
func (s *LanguageService) SessionLanguage(ctx context.Context, sessionID string) (*models.SessionLanguageResponse, error) {
	if sessionID == "" {
		return nil, &ServiceError{
			Code:    "INVALID_REQUEST",
			Message: "session_id is required",
		}
	}

	language, err := s.sessions.GetLanguage(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		language = s.resolver.DefaultLanguage()
	} else if err != nil {
		return nil, &ServiceError{
			Code:    "SESSION_STORE_FAILED",
			Message: "Failed to read session language",
			Details: map[string]interface{}{"error": err.Error()},
		}
	}

	return &models.SessionLanguageResponse{
		SessionID: sessionID,
		Language:  language,
	}, nil
}

// SetSessionLanguage stores a supported language for a session.
func (s *LanguageService) SetSessionLanguage(ctx context.Context, sessionID, language string) (*models.SessionLanguageResponse, error) {
	if sessionID == "" {
		return nil, &ServiceError{
			Code:    "INVALID_REQUEST",
			Message: "session_id is required",
		}
	}

	if !s.resolver.HasLanguage(language) {
		return nil, &ServiceError{
			Code:    "INVALID_LANGUAGE",
			Message: "unsupported language: " + language,
			Details: map[string]interface{}{
				"available_languages": s.resolver.Languages(),
			},
		}
	}

	if err := s.sessions.SetLanguage(ctx, sessionID, language); err != nil {
		return nil, &ServiceError{
			Code:    "SESSION_STORE_FAILED",
			Message: "Failed to store session language",
			Details: map[string]interface{}{"error": err.Error()},
		}
	}

	s.logger.WithContext(ctx).Info("Session language updated",
		"session_id", sessionID,
		"language", language)

	return &models.SessionLanguageResponse{
		SessionID: sessionID,
		Language:  language,
	}, nil
}
