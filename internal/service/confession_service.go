package service

import (
	"strings"
	"time"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"github.com/crushconfessions/crushconfessions-backend/internal/repository"
)

// CreateConfessionInput carries the validated confession fields
type CreateConfessionInput struct {
	Content         string
	TargetUserEmail string
	Visibility      string
}

// ConfessionService confession CRUD and like toggling
type ConfessionService interface {
	Create(senderID string, input CreateConfessionInput) (*domain.Confession, error)
	Feed(viewerID, feed, confessionID string) ([]domain.ConfessionResponse, error)
	SentBy(viewerID string) ([]domain.ConfessionResponse, error)
	ReceivedBy(viewerID string) ([]domain.ConfessionResponse, error)
	Delete(confessionID, userID string) error
	ToggleLike(confessionID, userID string) (*domain.LikeToggleResponse, error)
}

type confessionService struct {
	confessionRepo repository.ConfessionRepository
	likeRepo       repository.LikeRepository
	commentRepo    repository.CommentRepository
	userRepo       repository.UserRepository
	emailDomain    string
}

// NewConfessionService creates a new ConfessionService
func NewConfessionService(
	confessionRepo repository.ConfessionRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	emailDomain string,
) ConfessionService {
	return &confessionService{
		confessionRepo: confessionRepo,
		likeRepo:       likeRepo,
		commentRepo:    commentRepo,
		userRepo:       userRepo,
		emailDomain:    emailDomain,
	}
}

// Create validates the target and persists a new confession.
// PRIVATE confessions must resolve to a registered target user.
func (s *confessionService) Create(senderID string, input CreateConfessionInput) (*domain.Confession, error) {
	var targetUserID *string

	if email := strings.ToLower(strings.TrimSpace(input.TargetUserEmail)); email != "" {
		if !strings.HasSuffix(email, s.emailDomain) {
			return nil, common.ErrEmailDomain
		}
		target, err := s.userRepo.FindByEmail(email)
		if err != nil {
			if input.Visibility == domain.VisibilityPrivate {
				return nil, common.ErrTargetNotFound
			}
			// PUBLIC confessions tolerate an unregistered crush
		} else {
			targetUserID = &target.ID
		}
	}

	if input.Visibility == domain.VisibilityPrivate && targetUserID == nil {
		return nil, common.ErrPrivateNeedsTarget
	}

	confession := &domain.Confession{
		Content:      input.Content,
		Visibility:   input.Visibility,
		SenderID:     senderID,
		TargetUserID: targetUserID,
		Status:       domain.ConfessionActive,
	}
	if err := s.confessionRepo.Create(confession); err != nil {
		return nil, err
	}
	return confession, nil
}

// Feed lists confessions for the viewer with derived counts and flags
func (s *confessionService) Feed(viewerID, feed, confessionID string) ([]domain.ConfessionResponse, error) {
	confessions, err := s.confessionRepo.FindFeed(viewerID, feed, confessionID)
	if err != nil {
		return nil, err
	}
	return s.buildResponses(viewerID, confessions)
}

func (s *confessionService) SentBy(viewerID string) ([]domain.ConfessionResponse, error) {
	confessions, err := s.confessionRepo.FindSentBy(viewerID)
	if err != nil {
		return nil, err
	}
	return s.buildResponses(viewerID, confessions)
}

func (s *confessionService) ReceivedBy(viewerID string) ([]domain.ConfessionResponse, error) {
	confessions, err := s.confessionRepo.FindReceivedBy(viewerID)
	if err != nil {
		return nil, err
	}
	return s.buildResponses(viewerID, confessions)
}

// Delete hard-deletes a confession with cascading cleanup. Sender only.
func (s *confessionService) Delete(confessionID, userID string) error {
	confession, err := s.confessionRepo.FindByID(confessionID)
	if err != nil {
		return err
	}
	if confession.SenderID != userID {
		return common.ErrForbidden
	}
	return s.confessionRepo.DeleteCascade(confessionID)
}

// ToggleLike flips the liked state for (user, confession)
func (s *confessionService) ToggleLike(confessionID, userID string) (*domain.LikeToggleResponse, error) {
	if _, err := s.confessionRepo.FindByID(confessionID); err != nil {
		return nil, err
	}

	has, err := s.likeRepo.Has(userID, confessionID)
	if err != nil {
		return nil, err
	}

	if has {
		err = s.likeRepo.Remove(userID, confessionID)
	} else {
		err = s.likeRepo.Add(userID, confessionID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountByConfession(confessionID)
	if err != nil {
		return nil, err
	}
	return &domain.LikeToggleResponse{Liked: !has, Likes: count}, nil
}

// buildResponses derives counts, names and the viewer's perspective.
// Nothing here is persisted; the same rows always produce the same output.
func (s *confessionService) buildResponses(viewerID string, confessions []domain.Confession) ([]domain.ConfessionResponse, error) {
	ids := make([]string, len(confessions))
	for i, cf := range confessions {
		ids[i] = cf.ID
	}

	likeCounts, err := s.likeRepo.CountByConfessionIDs(ids)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.commentRepo.CountByConfessionIDs(ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.likeRepo.LikedConfessionIDs(viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.ConfessionResponse, 0, len(confessions))
	for _, cf := range confessions {
		isSender := cf.SenderID == viewerID
		isReceiver := cf.TargetUserID != nil && *cf.TargetUserID == viewerID

		senderName := "Anonymous"
		if isSender {
			senderName = "You"
		} else if cf.Sender != nil {
			senderName = cf.Sender.PublicName()
		}

		targetName := "Anonymous"
		if cf.TargetUser != nil {
			targetName = cf.TargetUser.PublicName()
		}

		// The chat channel is only exposed once the reveal is mutual
		var chatChannelID *string
		if cf.IsMutual() {
			chatChannelID = cf.ChatChannelID
		}

		responses = append(responses, domain.ConfessionResponse{
			ID:               cf.ID,
			Content:          cf.Content,
			Timestamp:        cf.Timestamp.Format(time.RFC3339),
			Status:           cf.Status,
			Visibility:       cf.Visibility,
			Likes:            likeCounts[cf.ID],
			Comments:         commentCounts[cf.ID],
			TargetUserName:   targetName,
			SenderName:       senderName,
			HasLiked:         liked[cf.ID],
			IsSender:         isSender,
			IsReceiver:       isReceiver,
			SenderRevealed:   cf.SenderRevealed,
			ReceiverRevealed: cf.ReceiverRevealed,
			MutualReveal:     cf.IsMutual(),
			ChatChannelID:    chatChannelID,
		})
	}
	return responses, nil
}
