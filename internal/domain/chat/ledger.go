package chat

import (
	"context"
	"errors"
	"strings"

	"lms-server/internal/domain/user"
	"lms-server/internal/utils/platformerrors"
)

// ErrConversationResolved is returned when someone tries to change a
// conversation that has already been resolved.
var ErrConversationResolved = errors.New("conversation is resolved")

// Ledger appends messages to a conversation. Entries are immutable once
// written.
type Ledger struct {
	repo       Repository
	authorizer *Authorizer
}

func NewLedger(repo Repository, authorizer *Authorizer) *Ledger {
	return &Ledger{repo: repo, authorizer: authorizer}
}

// Append writes one message from the principal to conv. The role is derived
// from the principal's capacity relative to the conversation, never from the
// request.
func (l *Ledger) Append(ctx context.Context, principal *user.User, conv *Conversation, text string) (*Message, error) {
	if err := l.authorizer.CanAccess(ctx, principal, conv, ActionWrite); err != nil {
		return nil, err
	}

	role := RoleUser
	if !conv.IsOwnedBy(principal.ID) {
		switch {
		case principal.IsAdmin():
			role = RoleAdmin
		case principal.IsInstructor():
			role = RoleInstructor
		}
	}

	return l.append(ctx, conv, role, text)
}

// AppendAssistant writes an assistant-authored message, used for automated
// replies and their fallback. No principal is involved.
func (l *Ledger) AppendAssistant(ctx context.Context, conv *Conversation, text string) (*Message, error) {
	return l.append(ctx, conv, RoleAssistant, text)
}

func (l *Ledger) append(ctx context.Context, conv *Conversation, role MessageRole, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message text must not be empty", nil, "3b9e1d70-48c5-4f26-a0b3-d51e827c9f06")
	}

	if conv.IsResolved() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"conversation is resolved, start a new one to continue", ErrConversationResolved, "c04d7f21-9a38-4e65-b1c8-62f5a09d3e87")
	}

	msg, err := NewMessage(role, text)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to build message")
	}

	if err := l.repo.AppendMessage(ctx, conv, msg); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to append message")
	}

	return msg, nil
}
