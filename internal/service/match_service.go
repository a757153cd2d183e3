package service

import (
	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"github.com/crushconfessions/crushconfessions-backend/internal/repository"
)

// MatchService decides when a reveal becomes a mutual match and a
// conversation gets provisioned
type MatchService interface {
	RevealConfessionInterest(confessionID, actingUserID string) (*domain.RevealResponse, error)
	RequestCommentReveal(commentID, actingUserID string) (*domain.CommentRevealResponse, error)
	ApproveCommentReveal(commentID, actingUserID string) (*domain.CommentRevealResponse, error)
}

type matchService struct {
	confessionRepo repository.ConfessionRepository
	commentRepo    repository.CommentRepository
	matchRepo      repository.MatchRepository
}

// NewMatchService creates a new MatchService
func NewMatchService(
	confessionRepo repository.ConfessionRepository,
	commentRepo repository.CommentRepository,
	matchRepo repository.MatchRepository,
) MatchService {
	return &matchService{
		confessionRepo: confessionRepo,
		commentRepo:    commentRepo,
		matchRepo:      matchRepo,
	}
}

// RevealConfessionInterest records the acting user's reveal. Only the
// sender or the target may reveal, and a user who is both cannot match
// with themselves. The state transition itself is transactional in the
// match repository.
func (s *matchService) RevealConfessionInterest(confessionID, actingUserID string) (*domain.RevealResponse, error) {
	confession, err := s.confessionRepo.FindByID(confessionID)
	if err != nil {
		return nil, err
	}

	isSender := confession.SenderID == actingUserID
	isTarget := confession.TargetUserID != nil && *confession.TargetUserID == actingUserID

	if !isSender && !isTarget {
		return nil, common.ErrNotConfessionParty
	}
	if isSender && confession.TargetUserID != nil && *confession.TargetUserID == confession.SenderID {
		return nil, common.ErrSelfReveal
	}

	outcome, err := s.matchRepo.ApplyReveal(confessionID, isSender)
	if err != nil {
		return nil, err
	}

	resp := &domain.RevealResponse{
		Status:           outcome.Status,
		MutualReveal:     outcome.MutualReveal,
		SenderRevealed:   outcome.SenderRevealed,
		ReceiverRevealed: outcome.ReceiverRevealed,
	}

	switch {
	case outcome.MutualReveal && outcome.ConversationID != "":
		resp.ConversationID = outcome.ConversationID
		resp.ConversationAlreadyExists = outcome.ConversationReused
		if outcome.ConversationReused {
			resp.Message = "Both users have revealed interest! A chat already exists."
		} else {
			resp.Message = "Both users have revealed interest! A chat has been created."
		}
	case outcome.MutualReveal:
		resp.Message = "You have revealed interest, but there is no specific target user."
	default:
		resp.Message = "Interest revealed successfully"
	}
	return resp, nil
}

// RequestCommentReveal marks a comment author's wish to reveal their
// identity. Only the author may request; repeating a request is a no-op.
func (s *matchService) RequestCommentReveal(commentID, actingUserID string) (*domain.CommentRevealResponse, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actingUserID {
		return nil, common.ErrForbidden
	}

	if !comment.RevealRequested {
		if err := s.commentRepo.SetRevealRequested(commentID); err != nil {
			return nil, err
		}
	}

	return &domain.CommentRevealResponse{
		Message:         "Identity reveal requested successfully",
		RevealRequested: true,
		RevealApproved:  comment.RevealApproved,
	}, nil
}

// ApproveCommentReveal lets the confession owner approve a pending
// request, provisioning a conversation between owner and commenter.
func (s *matchService) ApproveCommentReveal(commentID, actingUserID string) (*domain.CommentRevealResponse, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, err
	}

	confession, err := s.confessionRepo.FindByID(comment.ConfessionID)
	if err != nil {
		return nil, err
	}
	if confession.SenderID != actingUserID {
		return nil, common.ErrForbidden
	}
	if !comment.RevealRequested {
		return nil, common.ErrNoRevealRequest
	}

	conversationID, reused, err := s.matchRepo.ApproveCommentReveal(
		commentID, confession.SenderID, comment.UserID)
	if err != nil {
		return nil, err
	}

	message := "Identity reveal approved! A chat has been created."
	if reused {
		message = "Identity reveal approved! A chat already exists."
	}
	return &domain.CommentRevealResponse{
		Message:                   message,
		RevealRequested:           true,
		RevealApproved:            true,
		ConversationID:            conversationID,
		ConversationAlreadyExists: reused,
	}, nil
}
