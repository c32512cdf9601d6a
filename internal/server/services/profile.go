package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/logging"
	"github.com/dmitrijs2005/langmatch/internal/server/config"
	"github.com/dmitrijs2005/langmatch/internal/server/models"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/repomanager"
)

// Profile field limits.
const (
	MinDisplayNameLength = 2
	MaxDisplayNameLength = 50
	MaxBioLength         = 200
	MaxPhotoSize         = 5 << 20
)

// ProfileUpdate lists the fields to change; nil means "keep".
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	Level       *string
}

// PhotoUpload is where and under which key the client uploads a photo.
type PhotoUpload struct {
	Key string
	URL string
}

// ProfileService manages user profiles. It never touches match state.
type ProfileService struct {
	base
	store *objectStore
}

func NewProfileService(rm repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *ProfileService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &ProfileService{
		base:  newBase(rm, cfg, nil, logger.With("module", "profiles")),
		store: &objectStore{config: cfg},
	}
}

func validateDisplayName(name string) error {
	if n := utf8.RuneCountInString(name); n < MinDisplayNameLength || n > MaxDisplayNameLength {
		return fmt.Errorf("%w: display name must be %d-%d characters", common.ErrorValidation,
			MinDisplayNameLength, MaxDisplayNameLength)
	}
	return nil
}

// CreateProfile registers the caller. An empty display name is allowed and
// shows up as "Anonymous" in matches.
func (s *ProfileService) CreateProfile(ctx context.Context, caller, email, displayName string) (*models.Profile, error) {
	if caller == "" {
		return nil, common.ErrorUnauthorized
	}
	displayName = strings.TrimSpace(displayName)
	if displayName != "" {
		if err := validateDisplayName(displayName); err != nil {
			return nil, err
		}
	}

	now := s.now()
	p := &models.Profile{
		ID:          caller,
		Email:       strings.TrimSpace(email),
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repos.Profiles().Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "profile created", "user_id", caller)
	return p, nil
}

// GetProfile returns the caller's own profile.
func (s *ProfileService) GetProfile(ctx context.Context, caller, userID string) (*models.Profile, error) {
	if err := authorize(caller, userID); err != nil {
		return nil, err
	}
	return s.repos.Profiles().Get(ctx, userID)
}

// UpdateProfile applies upd. Past match snapshots keep the old values. A new
// level is copied to the user's queue entry in the same transaction.
func (s *ProfileService) UpdateProfile(ctx context.Context, caller, userID string, upd ProfileUpdate) (*models.Profile, error) {
	if err := authorize(caller, userID); err != nil {
		return nil, err
	}

	var out *models.Profile
	err := s.withConflictRetry(ctx, "update_profile", func(ctx context.Context) error {
		return s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
			p, err := r.Profiles().Get(ctx, userID)
			if err != nil {
				return err
			}

			if upd.DisplayName != nil {
				name := strings.TrimSpace(*upd.DisplayName)
				if err := validateDisplayName(name); err != nil {
					return err
				}
				p.DisplayName = name
			}
			if upd.Bio != nil {
				bio := strings.TrimSpace(*upd.Bio)
				if utf8.RuneCountInString(bio) > MaxBioLength {
					return fmt.Errorf("%w: bio must be at most %d characters", common.ErrorValidation, MaxBioLength)
				}
				p.Bio = bio
			}
			levelChanged := false
			if upd.Level != nil {
				level, err := models.ParseLevel(*upd.Level)
				if err != nil {
					return err
				}
				levelChanged = level != p.ProficiencyLevel
				p.ProficiencyLevel = level
			}
			p.UpdatedAt = s.now()

			if err := r.Profiles().UpdateDetails(ctx, p); err != nil {
				return err
			}
			if levelChanged && p.IsLookingForMatch {
				if err := r.Queue().SetLevel(ctx, userID, p.ProficiencyLevel); err != nil {
					return err
				}
			}
			out = p
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PhotoUploadURL presigns an upload of an image of the given size.
func (s *ProfileService) PhotoUploadURL(ctx context.Context, caller, userID, contentType string, size int64) (*PhotoUpload, error) {
	if err := authorize(caller, userID); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: only images are allowed", common.ErrorValidation)
	}
	if size <= 0 || size > MaxPhotoSize {
		return nil, fmt.Errorf("%w: photo must be at most 5MB", common.ErrorValidation)
	}

	key := NewPhotoKey(userID)
	url, err := s.store.presignPut(ctx, key, contentType, size)
	if err != nil {
		s.logger.Error(ctx, "presign failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return &PhotoUpload{Key: key, URL: url}, nil
}

// SetPhoto points the profile at an uploaded object and removes the previous
// one. Failing to remove the old object is only logged.
func (s *ProfileService) SetPhoto(ctx context.Context, caller, userID, key string) (*models.Profile, error) {
	if err := authorize(caller, userID); err != nil {
		return nil, err
	}
	prefix := photoKeyPrefix(userID)
	if !strings.HasPrefix(key, prefix) || len(key) == len(prefix) || strings.Contains(key[len(prefix):], "/") {
		return nil, fmt.Errorf("%w: photo key must be under %s", common.ErrorValidation, prefix)
	}

	prev, err := s.repos.Profiles().Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	url := s.store.publicURL(key)
	if err := s.repos.Profiles().SetPhoto(ctx, userID, url, key); err != nil {
		return nil, err
	}

	if prev.PhotoKey != "" && prev.PhotoKey != key {
		if err := s.store.delete(ctx, prev.PhotoKey); err != nil {
			s.logger.Warn(ctx, "old photo not deleted", "key", prev.PhotoKey, "error", err)
		}
	}

	p := *prev
	p.PhotoURL = url
	p.PhotoKey = key
	return &p, nil
}
