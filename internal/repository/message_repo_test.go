package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func TestMessageRepository_Create(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `messages`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewMessageRepository(db)
	err := repo.Create(&domain.Message{
		ConversationID: "conv-1",
		SenderID:       "user-1",
		Content:        "hello",
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_FindByConversation_OldestFirst(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Now().Add(-time.Hour)
	rows := sqlmock.NewRows([]string{
		"id", "conversation_id", "sender_id", "content", "timestamp", "read_status",
	}).
		AddRow("msg-1", "conv-1", "user-1", "first", base, true).
		AddRow("msg-2", "conv-1", "user-2", "second", base.Add(time.Minute), false)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `messages` WHERE conversation_id = ? ORDER BY timestamp ASC")).
		WithArgs("conv-1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name"}).
			AddRow("user-1", "Ali").
			AddRow("user-2", "Sara"))

	repo := NewMessageRepository(db)
	messages, err := repo.FindByConversation("conv-1")

	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_FindLastByConversation_Empty(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `messages` WHERE conversation_id = ?")).
		WithArgs("conv-empty", 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "conversation_id", "sender_id", "content", "timestamp", "read_status",
		}))

	repo := NewMessageRepository(db)
	message, err := repo.FindLastByConversation("conv-empty")

	assert.NoError(t, err)
	assert.Nil(t, message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_CountUnread(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT count(*) FROM `messages` WHERE conversation_id = ? AND sender_id <> ? AND read_status = ?")).
		WithArgs("conv-1", "user-1", false).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	repo := NewMessageRepository(db)
	count, err := repo.CountUnread("conv-1", "user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_CountUnreadIn_NoConversations(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db)
	count, err := repo.CountUnreadIn(nil, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMessageRepository_MarkConversationRead(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `messages` SET `read_status`=?")).
		WithArgs(true, "conv-1", "user-1", false).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := NewMessageRepository(db)
	err := repo.MarkConversationRead("conv-1", "user-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
