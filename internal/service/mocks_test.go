package service

import (
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"github.com/crushconfessions/crushconfessions-backend/internal/repository"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(id string) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByIDs(ids []string) ([]domain.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Create(user *domain.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) UpdateFields(id string, fields map[string]interface{}) error {
	return m.Called(id, fields).Error(0)
}

// --- Mock ConfessionRepository ---

type mockConfessionRepo struct {
	mock.Mock
}

func (m *mockConfessionRepo) FindByID(id string) (*domain.Confession, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Confession), args.Error(1)
}

func (m *mockConfessionRepo) FindFeed(viewerID, feed, confessionID string) ([]domain.Confession, error) {
	args := m.Called(viewerID, feed, confessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Confession), args.Error(1)
}

func (m *mockConfessionRepo) FindSentBy(userID string) ([]domain.Confession, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Confession), args.Error(1)
}

func (m *mockConfessionRepo) FindReceivedBy(userID string) ([]domain.Confession, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Confession), args.Error(1)
}

func (m *mockConfessionRepo) Create(confession *domain.Confession) error {
	return m.Called(confession).Error(0)
}

func (m *mockConfessionRepo) DeleteCascade(id string) error {
	return m.Called(id).Error(0)
}

// --- Mock LikeRepository ---

type mockLikeRepo struct {
	mock.Mock
}

func (m *mockLikeRepo) Has(userID, confessionID string) (bool, error) {
	args := m.Called(userID, confessionID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepo) Add(userID, confessionID string) error {
	return m.Called(userID, confessionID).Error(0)
}

func (m *mockLikeRepo) Remove(userID, confessionID string) error {
	return m.Called(userID, confessionID).Error(0)
}

func (m *mockLikeRepo) CountByConfession(confessionID string) (int64, error) {
	args := m.Called(confessionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLikeRepo) CountByConfessionIDs(confessionIDs []string) (map[string]int64, error) {
	args := m.Called(confessionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockLikeRepo) LikedConfessionIDs(userID string) (map[string]bool, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// --- Mock CommentRepository ---

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) FindByID(id string) (*domain.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) FindTopLevelWithReplies(confessionID string) ([]domain.Comment, error) {
	args := m.Called(confessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) CountByConfessionIDs(confessionIDs []string) (map[string]int64, error) {
	args := m.Called(confessionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockCommentRepo) Create(comment *domain.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *mockCommentRepo) SetRevealRequested(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockCommentRepo) SetRevealApproved(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockCommentRepo) HasLike(userID, commentID string) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCommentRepo) AddLike(userID, commentID string) error {
	return m.Called(userID, commentID).Error(0)
}

func (m *mockCommentRepo) RemoveLike(userID, commentID string) error {
	return m.Called(userID, commentID).Error(0)
}

func (m *mockCommentRepo) CountLikes(commentID string) (int64, error) {
	args := m.Called(commentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCommentRepo) CountLikesByCommentIDs(commentIDs []string) (map[string]int64, error) {
	args := m.Called(commentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockCommentRepo) LikedCommentIDs(userID string, commentIDs []string) (map[string]bool, error) {
	args := m.Called(userID, commentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// --- Mock ConversationRepository ---

type mockConversationRepo struct {
	mock.Mock
}

func (m *mockConversationRepo) FindByID(id string) (*domain.Conversation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *mockConversationRepo) FindByIDWithUsers(id string) (*domain.Conversation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *mockConversationRepo) FindActiveByUser(userID string) ([]domain.Conversation, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *mockConversationRepo) Create(conversation *domain.Conversation) error {
	return m.Called(conversation).Error(0)
}

func (m *mockConversationRepo) UpdateStatus(id, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *mockConversationRepo) DeleteWithMessages(id string) error {
	return m.Called(id).Error(0)
}

// --- Mock MessageRepository ---

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(message *domain.Message) error {
	return m.Called(message).Error(0)
}

func (m *mockMessageRepo) FindByConversation(conversationID string) ([]domain.Message, error) {
	args := m.Called(conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *mockMessageRepo) FindLastByConversation(conversationID string) (*domain.Message, error) {
	args := m.Called(conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *mockMessageRepo) CountUnread(conversationID, viewerID string) (int64, error) {
	args := m.Called(conversationID, viewerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessageRepo) CountUnreadIn(conversationIDs []string, viewerID string) (int64, error) {
	args := m.Called(conversationIDs, viewerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessageRepo) MarkConversationRead(conversationID, viewerID string) error {
	return m.Called(conversationID, viewerID).Error(0)
}

// --- Mock BlockRepository ---

type mockBlockRepo struct {
	mock.Mock
}

func (m *mockBlockRepo) Find(blockerID, blockedID string) (*domain.UserBlock, error) {
	args := m.Called(blockerID, blockedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserBlock), args.Error(1)
}

func (m *mockBlockRepo) Create(block *domain.UserBlock) error {
	return m.Called(block).Error(0)
}

func (m *mockBlockRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockBlockRepo) ExistsEitherDirection(userA, userB string) (bool, error) {
	args := m.Called(userA, userB)
	return args.Bool(0), args.Error(1)
}

// --- Mock MatchRepository ---

type mockMatchRepo struct {
	mock.Mock
}

func (m *mockMatchRepo) ApplyReveal(confessionID string, asSender bool) (*repository.RevealOutcome, error) {
	args := m.Called(confessionID, asSender)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RevealOutcome), args.Error(1)
}

func (m *mockMatchRepo) ApproveCommentReveal(commentID, confessionSenderID, commentAuthorID string) (string, bool, error) {
	args := m.Called(commentID, confessionSenderID, commentAuthorID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockMatchRepo) FindOrCreateConversation(userA, userB string) (*domain.Conversation, bool, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Conversation), args.Bool(1), args.Error(2)
}

// --- Helpers ---

func strPtr(s string) *string {
	return &s
}
