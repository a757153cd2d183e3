package service

import (
	"errors"
	"regexp"
	"time"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"github.com/crushconfessions/crushconfessions-backend/internal/repository"
)

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// ExtractMentions returns the @handle tokens in content, without the
// leading @. Mentions are derived on every read, never stored.
func ExtractMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	mentions := make([]string, 0, len(matches))
	for _, m := range matches {
		mentions = append(mentions, m[1])
	}
	return mentions
}

// CommentService threaded comments and comment-like toggling
type CommentService interface {
	CreateComment(confessionID, authorID, content string, parentCommentID *string) (*domain.CommentResponse, error)
	ListComments(confessionID, viewerID string) ([]domain.CommentResponse, error)
	ToggleLike(commentID, userID string) (*domain.LikeToggleResponse, error)
}

type commentService struct {
	commentRepo    repository.CommentRepository
	confessionRepo repository.ConfessionRepository
	userRepo       repository.UserRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	confessionRepo repository.ConfessionRepository,
	userRepo repository.UserRepository,
) CommentService {
	return &commentService{
		commentRepo:    commentRepo,
		confessionRepo: confessionRepo,
		userRepo:       userRepo,
	}
}

// CreateComment adds a comment or a reply. Replies nest exactly one
// level: the parent must be a top-level comment of the same confession.
func (s *commentService) CreateComment(confessionID, authorID, content string, parentCommentID *string) (*domain.CommentResponse, error) {
	if _, err := s.confessionRepo.FindByID(confessionID); err != nil {
		return nil, err
	}

	if parentCommentID != nil {
		parent, err := s.commentRepo.FindByID(*parentCommentID)
		if err != nil {
			if errors.Is(err, common.ErrCommentNotFound) {
				return nil, common.ErrParentNotFound
			}
			return nil, err
		}
		if parent.ConfessionID != confessionID {
			return nil, common.ErrParentMismatch
		}
		if parent.ParentCommentID != nil {
			return nil, common.ErrReplyDepth
		}
	}

	comment := &domain.Comment{
		Content:         content,
		ConfessionID:    confessionID,
		UserID:          authorID,
		ParentCommentID: parentCommentID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		return nil, err
	}

	resp := s.format(comment, author, 0, false)
	resp.Replies = []domain.CommentResponse{}
	return &resp, nil
}

// ListComments returns top-level comments newest first with replies
// oldest first, annotated with the viewer's like state
func (s *commentService) ListComments(confessionID, viewerID string) ([]domain.CommentResponse, error) {
	if _, err := s.confessionRepo.FindByID(confessionID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindTopLevelWithReplies(confessionID)
	if err != nil {
		return nil, err
	}

	var commentIDs []string
	for i := range comments {
		commentIDs = append(commentIDs, comments[i].ID)
		for j := range comments[i].Replies {
			commentIDs = append(commentIDs, comments[i].Replies[j].ID)
		}
	}

	likeCounts, err := s.commentRepo.CountLikesByCommentIDs(commentIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.commentRepo.LikedCommentIDs(viewerID, commentIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.CommentResponse, 0, len(comments))
	for i := range comments {
		cm := &comments[i]
		resp := s.format(cm, cm.User, likeCounts[cm.ID], liked[cm.ID])

		resp.Replies = make([]domain.CommentResponse, 0, len(cm.Replies))
		for j := range cm.Replies {
			reply := &cm.Replies[j]
			replyResp := s.format(reply, reply.User, likeCounts[reply.ID], liked[reply.ID])
			replyResp.Replies = []domain.CommentResponse{}
			resp.Replies = append(resp.Replies, replyResp)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// ToggleLike flips the liked state for (user, comment)
func (s *commentService) ToggleLike(commentID, userID string) (*domain.LikeToggleResponse, error) {
	if _, err := s.commentRepo.FindByID(commentID); err != nil {
		return nil, err
	}

	has, err := s.commentRepo.HasLike(userID, commentID)
	if err != nil {
		return nil, err
	}

	if has {
		err = s.commentRepo.RemoveLike(userID, commentID)
	} else {
		err = s.commentRepo.AddLike(userID, commentID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.commentRepo.CountLikes(commentID)
	if err != nil {
		return nil, err
	}
	return &domain.LikeToggleResponse{Liked: !has, Likes: count}, nil
}

// format builds a comment DTO. The author's display name is shown only
// once a reveal was approved; everyone else stays "Anonymous".
func (s *commentService) format(cm *domain.Comment, author *domain.User, likes int64, userLiked bool) domain.CommentResponse {
	user := domain.UserSummary{ID: cm.UserID, DisplayName: "Anonymous"}
	if author != nil {
		user.ID = author.ID
		user.ProfilePicture = author.ProfilePicture
		if cm.RevealApproved {
			user.DisplayName = author.PublicName()
		}
	}

	return domain.CommentResponse{
		ID:              cm.ID,
		Content:         cm.Content,
		CreatedAt:       cm.CreatedAt.Format(time.RFC3339),
		Likes:           likes,
		User:            user,
		UserLiked:       userLiked,
		Mentions:        ExtractMentions(cm.Content),
		RevealRequested: cm.RevealRequested,
		RevealApproved:  cm.RevealApproved,
	}
}
