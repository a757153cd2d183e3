package service

import (
	"testing"
	"time"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestExtractMentions(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{"none", "no handles here", []string{}},
		{"single", "hey @amna look at this", []string{"amna"}},
		{"multiple", "@ali meet @sara", []string{"ali", "sara"}},
		{"repeated", "@ali and @ali again", []string{"ali", "ali"}},
		{"punctuation boundary", "thanks @omer!", []string{"omer"}},
		{"bare at", "email me @ noon", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractMentions(tc.content))
		})
	}
}

func TestCreateComment_TopLevel(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	confessionRepo := new(mockConfessionRepo)
	userRepo := new(mockUserRepo)
	svc := NewCommentService(commentRepo, confessionRepo, userRepo)

	confessionRepo.On("FindByID", "conf-1").Return(&domain.Confession{ID: "conf-1"}, nil)
	commentRepo.On("Create", mock.MatchedBy(func(cm *domain.Comment) bool {
		return cm.ConfessionID == "conf-1" && cm.UserID == "user-1" && cm.ParentCommentID == nil
	})).Return(nil)
	userRepo.On("FindByID", "user-1").Return(&domain.User{ID: "user-1", DisplayName: strPtr("Ali")}, nil)

	resp, err := svc.CreateComment("conf-1", "user-1", "nice one @sara", nil)

	assert.NoError(t, err)
	assert.Equal(t, []string{"sara"}, resp.Mentions)
	assert.Equal(t, "Anonymous", resp.User.DisplayName)
	assert.NotNil(t, resp.Replies)
	assert.Empty(t, resp.Replies)
	commentRepo.AssertExpectations(t)
}

func TestCreateComment_ParentNotFound(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	confessionRepo := new(mockConfessionRepo)
	svc := NewCommentService(commentRepo, confessionRepo, new(mockUserRepo))

	confessionRepo.On("FindByID", "conf-1").Return(&domain.Confession{ID: "conf-1"}, nil)
	commentRepo.On("FindByID", "missing").Return(nil, common.ErrCommentNotFound)

	resp, err := svc.CreateComment("conf-1", "user-1", "reply", strPtr("missing"))

	assert.ErrorIs(t, err, common.ErrParentNotFound)
	assert.Nil(t, resp)
	commentRepo.AssertNotCalled(t, "Create")
}

func TestCreateComment_ParentOnDifferentConfession(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	confessionRepo := new(mockConfessionRepo)
	svc := NewCommentService(commentRepo, confessionRepo, new(mockUserRepo))

	confessionRepo.On("FindByID", "conf-1").Return(&domain.Confession{ID: "conf-1"}, nil)
	commentRepo.On("FindByID", "cm-other").Return(&domain.Comment{ID: "cm-other", ConfessionID: "conf-2"}, nil)

	_, err := svc.CreateComment("conf-1", "user-1", "reply", strPtr("cm-other"))

	assert.ErrorIs(t, err, common.ErrParentMismatch)
}

func TestCreateComment_ReplyToReplyRejected(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	confessionRepo := new(mockConfessionRepo)
	svc := NewCommentService(commentRepo, confessionRepo, new(mockUserRepo))

	confessionRepo.On("FindByID", "conf-1").Return(&domain.Confession{ID: "conf-1"}, nil)
	commentRepo.On("FindByID", "cm-reply").Return(&domain.Comment{
		ID: "cm-reply", ConfessionID: "conf-1", ParentCommentID: strPtr("cm-top"),
	}, nil)

	_, err := svc.CreateComment("conf-1", "user-1", "too deep", strPtr("cm-reply"))

	assert.ErrorIs(t, err, common.ErrReplyDepth)
	commentRepo.AssertNotCalled(t, "Create")
}

func TestListComments_AnonymizesUntilRevealApproved(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	confessionRepo := new(mockConfessionRepo)
	svc := NewCommentService(commentRepo, confessionRepo, new(mockUserRepo))

	now := time.Now()
	hidden := domain.Comment{
		ID: "cm-1", Content: "so true", ConfessionID: "conf-1", UserID: "user-1",
		CreatedAt: now,
		User:      &domain.User{ID: "user-1", DisplayName: strPtr("Ali")},
	}
	revealed := domain.Comment{
		ID: "cm-2", Content: "it was me @ali", ConfessionID: "conf-1", UserID: "user-2",
		CreatedAt: now, RevealRequested: true, RevealApproved: true,
		User: &domain.User{ID: "user-2", DisplayName: strPtr("Sara")},
	}

	confessionRepo.On("FindByID", "conf-1").Return(&domain.Confession{ID: "conf-1"}, nil)
	commentRepo.On("FindTopLevelWithReplies", "conf-1").Return([]domain.Comment{hidden, revealed}, nil)
	commentRepo.On("CountLikesByCommentIDs", []string{"cm-1", "cm-2"}).
		Return(map[string]int64{"cm-2": 3}, nil)
	commentRepo.On("LikedCommentIDs", "viewer-1", []string{"cm-1", "cm-2"}).
		Return(map[string]bool{"cm-2": true}, nil)

	resp, err := svc.ListComments("conf-1", "viewer-1")

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "Anonymous", resp[0].User.DisplayName)
	assert.Equal(t, int64(0), resp[0].Likes)
	assert.Equal(t, "Sara", resp[1].User.DisplayName)
	assert.Equal(t, int64(3), resp[1].Likes)
	assert.True(t, resp[1].UserLiked)
	assert.Equal(t, []string{"ali"}, resp[1].Mentions)
}

func TestListComments_RepliesCarryViewerState(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	confessionRepo := new(mockConfessionRepo)
	svc := NewCommentService(commentRepo, confessionRepo, new(mockUserRepo))

	now := time.Now()
	top := domain.Comment{
		ID: "cm-1", Content: "top", ConfessionID: "conf-1", UserID: "user-1",
		CreatedAt: now,
		Replies: []domain.Comment{
			{
				ID: "cm-2", Content: "reply", ConfessionID: "conf-1", UserID: "user-2",
				ParentCommentID: strPtr("cm-1"), CreatedAt: now,
			},
		},
	}

	confessionRepo.On("FindByID", "conf-1").Return(&domain.Confession{ID: "conf-1"}, nil)
	commentRepo.On("FindTopLevelWithReplies", "conf-1").Return([]domain.Comment{top}, nil)
	commentRepo.On("CountLikesByCommentIDs", []string{"cm-1", "cm-2"}).
		Return(map[string]int64{"cm-1": 1, "cm-2": 2}, nil)
	commentRepo.On("LikedCommentIDs", "viewer-1", []string{"cm-1", "cm-2"}).
		Return(map[string]bool{"cm-1": true}, nil)

	resp, err := svc.ListComments("conf-1", "viewer-1")

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.True(t, resp[0].UserLiked)
	assert.Len(t, resp[0].Replies, 1)
	assert.Equal(t, int64(2), resp[0].Replies[0].Likes)
	assert.False(t, resp[0].Replies[0].UserLiked)
	assert.Empty(t, resp[0].Replies[0].Replies)
}

func TestCommentToggleLike_AddsThenRemoves(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	svc := NewCommentService(commentRepo, new(mockConfessionRepo), new(mockUserRepo))

	commentRepo.On("FindByID", "cm-1").Return(&domain.Comment{ID: "cm-1"}, nil)
	commentRepo.On("HasLike", "user-1", "cm-1").Return(false, nil).Once()
	commentRepo.On("AddLike", "user-1", "cm-1").Return(nil).Once()
	commentRepo.On("CountLikes", "cm-1").Return(int64(1), nil).Once()

	resp, err := svc.ToggleLike("cm-1", "user-1")
	assert.NoError(t, err)
	assert.True(t, resp.Liked)
	assert.Equal(t, int64(1), resp.Likes)

	commentRepo.On("HasLike", "user-1", "cm-1").Return(true, nil).Once()
	commentRepo.On("RemoveLike", "user-1", "cm-1").Return(nil).Once()
	commentRepo.On("CountLikes", "cm-1").Return(int64(0), nil).Once()

	resp, err = svc.ToggleLike("cm-1", "user-1")
	assert.NoError(t, err)
	assert.False(t, resp.Liked)
	assert.Equal(t, int64(0), resp.Likes)
	commentRepo.AssertExpectations(t)
}
