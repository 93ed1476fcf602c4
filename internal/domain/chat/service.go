package chat

import (
	"context"
	"errors"

	"lms-server/internal/domain/course"
	"lms-server/internal/domain/user"
	"lms-server/internal/utils/functional"
	"lms-server/internal/utils/platformerrors"
)

const resolvedAnnouncement = "This support request has been marked as complete. Start a new conversation any time you need more help."

// createRetries bounds the create/re-fetch loop used to close the race
// between two concurrent first requests from the same owner.
const createRetries = 2

// Service manages the conversation lifecycle: at most one pending
// conversation per owner, created on demand and closed by resolution.
type Service struct {
	repo       Repository
	authorizer *Authorizer
	courses    *course.Directory
}

func NewService(repo Repository, authorizer *Authorizer, courses *course.Directory) *Service {
	return &Service{repo: repo, authorizer: authorizer, courses: courses}
}

// GetOrCreateCurrent returns the owner's pending conversation, creating a
// fresh assistant-channel one when none exists. The second return value
// reports whether a conversation was created. Two racing calls converge on
// the same conversation: the storage layer rejects the second insert and the
// loser re-fetches the winner's row.
func (s *Service) GetOrCreateCurrent(ctx context.Context, owner *user.User) (*Conversation, bool, error) {
	pending, err := s.repo.FindPendingByUserID(ctx, owner.ID)
	if err != nil {
		return nil, false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load pending conversation")
	}
	if pending != nil {
		return pending, false, nil
	}
	conv, err := s.createForOwner(ctx, owner.ID)
	if err != nil {
		return nil, false, err
	}
	return conv, true, nil
}

// StartNew resolves the owner's pending conversation, if any, and opens a
// fresh one.
func (s *Service) StartNew(ctx context.Context, owner *user.User) (*Conversation, error) {
	pending, err := s.repo.FindPendingByUserID(ctx, owner.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load pending conversation")
	}
	if pending != nil {
		if _, err := s.Resolve(ctx, owner, pending); err != nil {
			return nil, err
		}
	}
	return s.createForOwner(ctx, owner.ID)
}

// Resolve marks conv resolved and announces it in the ledger. Resolving an
// already resolved conversation is a success no-op so retried requests do not
// stack completion messages.
func (s *Service) Resolve(ctx context.Context, principal *user.User, conv *Conversation) (*Conversation, error) {
	if err := s.authorizer.CanAccess(ctx, principal, conv, ActionResolve); err != nil {
		return nil, err
	}

	if conv.IsResolved() {
		return conv, nil
	}

	msg, err := NewMessage(RoleAssistant, resolvedAnnouncement)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to build resolution message")
	}

	conv.Status = StatusResolved
	if err := s.repo.UpdateWithMessage(ctx, conv, msg); err != nil {
		conv.Status = StatusPending
		if errors.Is(err, ErrStaleConversation) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
				"conversation was updated by someone else, reload and retry", err, "7e2a9c64-0b15-4d83-a6f9-c47d018e3b52")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve conversation")
	}

	return conv, nil
}

// GetByPublicID loads a conversation and checks the principal may read it.
func (s *Service) GetByPublicID(ctx context.Context, principal *user.User, publicID string) (*Conversation, error) {
	conv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}
	if conv == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"conversation not found", nil, "1d6f4b28-93c0-4a75-b8e2-5a09c3d7f614")
	}
	if err := s.authorizer.CanAccess(ctx, principal, conv, ActionRead); err != nil {
		return nil, err
	}
	return conv, nil
}

// List returns the conversations the principal may see, newest activity
// first. Admins see everything, optionally narrowed to one channel.
// Instructors see the instructor-channel conversations assigned to them plus
// unassigned ones on their own courses. Everyone else sees their own history.
func (s *Service) List(ctx context.Context, principal *user.User, channel *Channel) ([]*Conversation, error) {
	var filter Filter

	switch {
	case principal.IsAdmin():
		filter.Channel = channel

	case principal.IsInstructor():
		owned, err := s.courses.ListByCreator(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		filter.InstructorScope = &InstructorScope{
			InstructorID: principal.ID,
			CourseIDs:    functional.Map(owned, func(c *course.Course) uint { return c.ID }),
		}

	default:
		filter.UserID = &principal.ID
		filter.Channel = channel
	}

	conversations, err := s.repo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}
	return conversations, nil
}

func (s *Service) createForOwner(ctx context.Context, ownerID uint) (*Conversation, error) {
	for attempt := 0; attempt < createRetries; attempt++ {
		conv, err := NewConversation(ownerID)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to build conversation")
		}

		err = s.repo.Create(ctx, conv)
		if err == nil {
			return conv, nil
		}
		if !errors.Is(err, ErrPendingExists) {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
		}

		// Lost the race: somebody created the pending conversation first.
		pending, findErr := s.repo.FindPendingByUserID(ctx, ownerID)
		if findErr != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, findErr, "failed to load pending conversation")
		}
		if pending != nil {
			return pending, nil
		}
		// The racer resolved theirs already; try the insert again.
	}

	return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
		"could not settle on a pending conversation, retry", nil, "4a0c8e15-72d6-4f39-b5a1-e86d290c7f43")
}
