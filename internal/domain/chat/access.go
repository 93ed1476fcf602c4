package chat

import (
	"context"

	"lms-server/internal/domain/course"
	"lms-server/internal/domain/user"
	"lms-server/internal/utils/platformerrors"
)

// Action is what a principal wants to do with a conversation.
type Action string

const (
	ActionRead          Action = "read"
	ActionWrite         Action = "write"
	ActionChangeChannel Action = "change_channel"
	ActionResolve       Action = "resolve"
)

// Authorizer is the single place that decides who may touch a conversation.
// Precedence: owner, then admin, then instructor on the instructor channel.
// Only the owner may re-route their own conversation.
type Authorizer struct {
	courses *course.Directory
}

func NewAuthorizer(courses *course.Directory) *Authorizer {
	return &Authorizer{courses: courses}
}

// CanAccess returns nil when the principal may perform action on conv, or a
// forbidden error otherwise. The denial is deliberately generic so callers
// cannot probe for conversation existence.
func (a *Authorizer) CanAccess(ctx context.Context, principal *user.User, conv *Conversation, action Action) error {
	allowed, err := a.allows(ctx, principal, conv, action)
	if err != nil {
		return err
	}
	if !allowed {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"you do not have access to this conversation", nil, "e7a93c50-1f82-4b6d-a4c7-06d1b9e82f35")
	}
	return nil
}

func (a *Authorizer) allows(ctx context.Context, principal *user.User, conv *Conversation, action Action) (bool, error) {
	if principal == nil || conv == nil {
		return false, nil
	}

	if conv.IsOwnedBy(principal.ID) {
		return true, nil
	}

	// Re-routing is reserved for the owner regardless of role.
	if action == ActionChangeChannel {
		return false, nil
	}

	if principal.IsAdmin() {
		return true, nil
	}

	if principal.IsInstructor() && conv.Channel == ChannelInstructor {
		if conv.InstructorID != nil {
			return *conv.InstructorID == principal.ID, nil
		}
		// Unassigned: the creator of the attached course answers.
		if conv.CourseID == nil {
			return false, nil
		}
		creatorID, err := a.courses.CreatorOf(ctx, *conv.CourseID)
		if err != nil {
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
				return false, nil
			}
			return false, err
		}
		return creatorID == principal.ID, nil
	}

	return false, nil
}
