// Package domain holds shared domain types and sentinel errors.
package domain

import "errors"

var (
	// ErrUserNotFound signals a missing user profile.
	ErrUserNotFound = errors.New("user not found")
	// ErrEventNotFound signals a missing event.
	ErrEventNotFound = errors.New("event not found")
	// ErrChatNotFound signals a missing chat.
	ErrChatNotFound = errors.New("chat not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput signals a malformed or incomplete request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownTag signals a tag outside the fixed vocabulary.
	ErrUnknownTag = errors.New("unknown tag")
	// ErrNoSession signals that no discovery session exists for the user.
	ErrNoSession = errors.New("no discovery session")
	// ErrSessionExhausted signals a decision against an exhausted session.
	ErrSessionExhausted = errors.New("discovery session exhausted")
	// ErrNotParticipant signals a sender outside the chat's participants.
	ErrNotParticipant = errors.New("sender is not a chat participant")
)
