package service

import (
	"errors"
	"testing"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newConfessionService(
	confessionRepo *mockConfessionRepo,
	likeRepo *mockLikeRepo,
	commentRepo *mockCommentRepo,
	userRepo *mockUserRepo,
) ConfessionService {
	return NewConfessionService(confessionRepo, likeRepo, commentRepo, userRepo, "@umt.edu.pk")
}

func TestCreateConfession_PublicWithoutTarget(t *testing.T) {
	confessionRepo := new(mockConfessionRepo)
	svc := newConfessionService(confessionRepo, new(mockLikeRepo), new(mockCommentRepo), new(mockUserRepo))

	confessionRepo.On("Create", mock.AnythingOfType("*domain.Confession")).Return(nil)

	confession, err := svc.Create("sender-1", CreateConfessionInput{
		Content:    "I saw you at the library and could not stop smiling",
		Visibility: domain.VisibilityPublic,
	})

	assert.NoError(t, err)
	assert.Nil(t, confession.TargetUserID)
	assert.Equal(t, domain.ConfessionActive, confession.Status)
}

func TestCreateConfession_PublicUnregisteredCrush(t *testing.T) {
	confessionRepo := new(mockConfessionRepo)
	userRepo := new(mockUserRepo)
	svc := newConfessionService(confessionRepo, new(mockLikeRepo), new(mockCommentRepo), userRepo)

	userRepo.On("FindByEmail", "crush@umt.edu.pk").Return(nil, errors.New("not found"))
	confessionRepo.On("Create", mock.AnythingOfType("*domain.Confession")).Return(nil)

	confession, err := svc.Create("sender-1", CreateConfessionInput{
		Content:         "To the person who always sits in the front row",
		TargetUserEmail: "crush@umt.edu.pk",
		Visibility:      domain.VisibilityPublic,
	})

	assert.NoError(t, err)
	assert.Nil(t, confession.TargetUserID)
}

func TestCreateConfession_PrivateUnregisteredTarget(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := newConfessionService(new(mockConfessionRepo), new(mockLikeRepo), new(mockCommentRepo), userRepo)

	userRepo.On("FindByEmail", "crush@umt.edu.pk").Return(nil, errors.New("not found"))

	confession, err := svc.Create("sender-1", CreateConfessionInput{
		Content:         "This one is just for you and nobody else",
		TargetUserEmail: "crush@umt.edu.pk",
		Visibility:      domain.VisibilityPrivate,
	})

	assert.ErrorIs(t, err, common.ErrTargetNotFound)
	assert.Nil(t, confession)
}

func TestCreateConfession_PrivateWithoutTarget(t *testing.T) {
	svc := newConfessionService(new(mockConfessionRepo), new(mockLikeRepo), new(mockCommentRepo), new(mockUserRepo))

	confession, err := svc.Create("sender-1", CreateConfessionInput{
		Content:    "This one is just for you and nobody else",
		Visibility: domain.VisibilityPrivate,
	})

	assert.ErrorIs(t, err, common.ErrPrivateNeedsTarget)
	assert.Nil(t, confession)
}

func TestCreateConfession_ForeignTargetDomain(t *testing.T) {
	svc := newConfessionService(new(mockConfessionRepo), new(mockLikeRepo), new(mockCommentRepo), new(mockUserRepo))

	confession, err := svc.Create("sender-1", CreateConfessionInput{
		Content:         "Doesn't matter, the address is off campus",
		TargetUserEmail: "crush@gmail.com",
		Visibility:      domain.VisibilityPublic,
	})

	assert.ErrorIs(t, err, common.ErrEmailDomain)
	assert.Nil(t, confession)
}

func TestDeleteConfession_SenderOnly(t *testing.T) {
	confessionRepo := new(mockConfessionRepo)
	svc := newConfessionService(confessionRepo, new(mockLikeRepo), new(mockCommentRepo), new(mockUserRepo))

	confession := &domain.Confession{ID: "conf-1", SenderID: "sender-1"}
	confessionRepo.On("FindByID", "conf-1").Return(confession, nil)

	err := svc.Delete("conf-1", "someone-else")
	assert.ErrorIs(t, err, common.ErrForbidden)
	confessionRepo.AssertNotCalled(t, "DeleteCascade")
}

func TestDeleteConfession_Success(t *testing.T) {
	confessionRepo := new(mockConfessionRepo)
	svc := newConfessionService(confessionRepo, new(mockLikeRepo), new(mockCommentRepo), new(mockUserRepo))

	confession := &domain.Confession{ID: "conf-1", SenderID: "sender-1"}
	confessionRepo.On("FindByID", "conf-1").Return(confession, nil)
	confessionRepo.On("DeleteCascade", "conf-1").Return(nil)

	err := svc.Delete("conf-1", "sender-1")
	assert.NoError(t, err)
	confessionRepo.AssertExpectations(t)
}

func TestToggleLike_AddsThenCounts(t *testing.T) {
	confessionRepo := new(mockConfessionRepo)
	likeRepo := new(mockLikeRepo)
	svc := newConfessionService(confessionRepo, likeRepo, new(mockCommentRepo), new(mockUserRepo))

	confessionRepo.On("FindByID", "conf-1").Return(&domain.Confession{ID: "conf-1"}, nil)
	likeRepo.On("Has", "user-1", "conf-1").Return(false, nil)
	likeRepo.On("Add", "user-1", "conf-1").Return(nil)
	likeRepo.On("CountByConfession", "conf-1").Return(int64(5), nil)

	result, err := svc.ToggleLike("conf-1", "user-1")

	assert.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(5), result.Likes)
}

func TestToggleLike_RemovesExisting(t *testing.T) {
	confessionRepo := new(mockConfessionRepo)
	likeRepo := new(mockLikeRepo)
	svc := newConfessionService(confessionRepo, likeRepo, new(mockCommentRepo), new(mockUserRepo))

	confessionRepo.On("FindByID", "conf-1").Return(&domain.Confession{ID: "conf-1"}, nil)
	likeRepo.On("Has", "user-1", "conf-1").Return(true, nil)
	likeRepo.On("Remove", "user-1", "conf-1").Return(nil)
	likeRepo.On("CountByConfession", "conf-1").Return(int64(4), nil)

	result, err := svc.ToggleLike("conf-1", "user-1")

	assert.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(4), result.Likes)
}

func TestFeed_DerivesViewerPerspective(t *testing.T) {
	confessionRepo := new(mockConfessionRepo)
	likeRepo := new(mockLikeRepo)
	commentRepo := new(mockCommentRepo)
	svc := newConfessionService(confessionRepo, likeRepo, commentRepo, new(mockUserRepo))

	target := "viewer-1"
	senderName := "Sam"
	confessions := []domain.Confession{
		{
			ID:           "conf-1",
			Content:      "hello",
			Visibility:   domain.VisibilityPublic,
			SenderID:     "sender-1",
			TargetUserID: &target,
			Status:       domain.ConfessionActive,
			Sender:       &domain.User{ID: "sender-1", DisplayName: &senderName},
		},
		{
			ID:         "conf-2",
			Content:    "mine",
			Visibility: domain.VisibilityPublic,
			SenderID:   "viewer-1",
			Status:     domain.ConfessionActive,
		},
	}

	confessionRepo.On("FindFeed", "viewer-1", "all", "").Return(confessions, nil)
	likeRepo.On("CountByConfessionIDs", []string{"conf-1", "conf-2"}).
		Return(map[string]int64{"conf-1": 3}, nil)
	commentRepo.On("CountByConfessionIDs", []string{"conf-1", "conf-2"}).
		Return(map[string]int64{"conf-1": 2}, nil)
	likeRepo.On("LikedConfessionIDs", "viewer-1").
		Return(map[string]bool{"conf-1": true}, nil)

	result, err := svc.Feed("viewer-1", "all", "")

	assert.NoError(t, err)
	assert.Len(t, result, 2)

	assert.True(t, result[0].IsReceiver)
	assert.False(t, result[0].IsSender)
	assert.Equal(t, "Sam", result[0].SenderName)
	assert.Equal(t, int64(3), result[0].Likes)
	assert.Equal(t, int64(2), result[0].Comments)
	assert.True(t, result[0].HasLiked)

	assert.True(t, result[1].IsSender)
	assert.Equal(t, "You", result[1].SenderName)
	assert.Equal(t, int64(0), result[1].Likes)
	assert.False(t, result[1].HasLiked)
}

func TestFeed_ChatChannelHiddenUntilMutual(t *testing.T) {
	confessionRepo := new(mockConfessionRepo)
	likeRepo := new(mockLikeRepo)
	commentRepo := new(mockCommentRepo)
	svc := newConfessionService(confessionRepo, likeRepo, commentRepo, new(mockUserRepo))

	channel := "chan-1"
	target := "viewer-1"
	confessions := []domain.Confession{
		{
			ID:             "conf-1",
			SenderID:       "sender-1",
			TargetUserID:   &target,
			Status:         domain.ConfessionRevealed,
			SenderRevealed: true,
			ChatChannelID:  &channel,
		},
		{
			ID:               "conf-2",
			SenderID:         "sender-1",
			TargetUserID:     &target,
			Status:           domain.ConfessionConnected,
			SenderRevealed:   true,
			ReceiverRevealed: true,
			ChatChannelID:    &channel,
		},
	}

	confessionRepo.On("FindFeed", "viewer-1", "all", "").Return(confessions, nil)
	likeRepo.On("CountByConfessionIDs", mock.Anything).Return(map[string]int64{}, nil)
	commentRepo.On("CountByConfessionIDs", mock.Anything).Return(map[string]int64{}, nil)
	likeRepo.On("LikedConfessionIDs", "viewer-1").Return(map[string]bool{}, nil)

	result, err := svc.Feed("viewer-1", "all", "")

	assert.NoError(t, err)
	assert.Nil(t, result[0].ChatChannelID, "one-sided reveal must not expose the chat channel")
	assert.NotNil(t, result[1].ChatChannelID)
	assert.Equal(t, "chan-1", *result[1].ChatChannelID)
}
