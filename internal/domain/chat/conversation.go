package chat

import (
	"context"
	"errors"
	"time"

	"lms-server/internal/utils/idgen"
)

// Channel identifies who answers a conversation.
type Channel string

const (
	ChannelAssistant  Channel = "assistant"
	ChannelAdmin      Channel = "admin"
	ChannelInstructor Channel = "instructor"
)

// Valid reports whether ch is one of the known channels.
func (ch Channel) Valid() bool {
	switch ch {
	case ChannelAssistant, ChannelAdmin, ChannelInstructor:
		return true
	}
	return false
}

// Status of a conversation. Resolved is terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
)

// MessageRole identifies the capacity a message was written in.
type MessageRole string

const (
	RoleUser       MessageRole = "user"
	RoleAdmin      MessageRole = "admin"
	RoleInstructor MessageRole = "instructor"
	RoleAssistant  MessageRole = "assistant"
)

// Message is one append-only entry in a conversation ledger. Messages are
// never updated or deleted.
type Message struct {
	ID             uint
	PublicID       string
	ConversationID uint
	Role           MessageRole
	Text           string
	CreatedAt      time.Time
}

// Conversation is a support session between one user and one channel.
// InstructorID nil on the instructor channel means the assignment is still
// open and falls back to the creator of CourseID. Version guards concurrent
// routing updates.
type Conversation struct {
	ID           uint
	PublicID     string
	UserID       uint
	Channel      Channel
	InstructorID *uint
	CourseID     *uint
	Status       Status
	Version      uint
	Messages     []Message
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewConversation builds a fresh pending conversation on the assistant
// channel for the given owner, with a generated public ID and the opening
// greeting already in the ledger.
func NewConversation(ownerID uint) (*Conversation, error) {
	publicID, err := idgen.GenerateSecureID("conv", 16)
	if err != nil {
		return nil, err
	}
	greeting, err := NewMessage(RoleAssistant, GreetingText)
	if err != nil {
		return nil, err
	}

	return &Conversation{
		PublicID: publicID,
		UserID:   ownerID,
		Channel:  ChannelAssistant,
		Status:   StatusPending,
		Version:  1,
		Messages: []Message{*greeting},
	}, nil
}

// NewMessage builds a ledger entry with a generated public ID.
func NewMessage(role MessageRole, text string) (*Message, error) {
	publicID, err := idgen.GenerateSecureID("msg", 16)
	if err != nil {
		return nil, err
	}
	return &Message{
		PublicID:  publicID,
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (c *Conversation) IsResolved() bool {
	return c.Status == StatusResolved
}

func (c *Conversation) IsOwnedBy(userID uint) bool {
	return c.UserID == userID
}

// GreetingText opens every new conversation.
const GreetingText = "Hi! How can we help you today? You can chat with our assistant right away, or switch to admin or instructor support at any time."

var (
	// ErrPendingExists is returned by Repository.Create when the owner
	// already has a pending conversation. The lifecycle manager re-fetches
	// instead of failing the request.
	ErrPendingExists = errors.New("a pending conversation already exists for this user")

	// ErrStaleConversation is returned by Repository.Update when the stored
	// version no longer matches the one the caller read.
	ErrStaleConversation = errors.New("conversation was modified concurrently")
)

/// InstructorScope limits a listing to conversations an instructor may see:
// those assigned to them, plus unassigned ones attached to a course they
// created.
type InstructorScope struct {
	InstructorID uint
	CourseIDs    []uint
}

// Filter selects conversations for listing.
type Filter struct {
	UserID          *uint
	Channel         *Channel
	InstructorScope *InstructorScope
}

// Repository persists conversations and their message ledgers. A partial
// unique index on (user_id) where status is pending backs the
// one-pending-per-owner invariant at the storage layer.
type Repository interface {
	// Create inserts the aggregate including any seeded messages. Returns
	// ErrPendingExists when the unique pending index rejects the insert.
	Create(ctx context.Context, conv *Conversation) error

	// FindPendingByUserID returns (nil, nil) when the user has no pending
	// conversation.
	FindPendingByUserID(ctx context.Context, userID uint) (*Conversation, error)
	FindByID(ctx context.Context, id uint) (*Conversation, error)
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Conversation, error)

	// Update writes channel, assignment and status conditional on the
	// version the caller read, bumping it by one. Returns
	// ErrStaleConversation when the row moved on.
	Update(ctx context.Context, conv *Conversation) error

	// UpdateWithMessage is Update plus one appended message, atomically.
	UpdateWithMessage(ctx context.Context, conv *Conversation, msg *Message) error

	// AppendMessage inserts one ledger entry and touches the conversation.
	AppendMessage(ctx context.Context, conv *Conversation, msg *Message) error
}
