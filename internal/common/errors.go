package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailDomain        = errors.New("email domain not allowed")

	// Confession errors
	ErrConfessionNotFound = errors.New("confession not found")
	ErrTargetNotFound     = errors.New("target user not found")
	ErrPrivateNeedsTarget = errors.New("private confessions must have a target user")
	ErrSelfReveal         = errors.New("cannot reveal interest in your own confession")
	ErrNotConfessionParty = errors.New("not a sender or target of this confession")

	// Comment errors
	ErrCommentNotFound = errors.New("comment not found")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrParentMismatch  = errors.New("parent comment does not belong to this confession")
	ErrReplyDepth      = errors.New("replies cannot be nested further")
	ErrNoRevealRequest = errors.New("no pending reveal request")

	// Conversation errors
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
	ErrSelfConversation     = errors.New("cannot create a conversation with yourself")
	ErrConversationBlocked  = errors.New("conversation is blocked")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
