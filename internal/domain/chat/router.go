package chat

import (
	"context"
	"errors"
	"fmt"

	"lms-server/internal/domain/course"
	"lms-server/internal/domain/purchase"
	"lms-server/internal/domain/user"
	"lms-server/internal/utils/platformerrors"
)

var (
	// ErrMissingParameters is returned when a switch to the instructor
	// channel does not name a course.
	ErrMissingParameters = errors.New("instructor support requires a course")

	// ErrMissingPurchase is returned when the owner has no completed
	// purchase for the course they want instructor support on.
	ErrMissingPurchase = errors.New("no completed purchase for this course")

	// ErrInvalidAssignment is returned when the named instructor did not
	// create the named course.
	ErrInvalidAssignment = errors.New("instructor does not teach this course")
)

const (
	assistantAnnouncement = "You are now chatting with the automated assistant. Ask anything about our courses."
	adminAnnouncement     = "You have been transferred to admin support. Our team will reply here shortly."
)

// Router moves a conversation between channels, enforcing the entitlement
// and assignment rules of the instructor channel. Every successful switch is
// announced in the ledger; a failed switch leaves the conversation untouched.
type Router struct {
	repo       Repository
	authorizer *Authorizer
	purchases  *purchase.Ledger
	courses    *course.Directory
	users      *user.Service
}

func NewRouter(repo Repository, authorizer *Authorizer, purchases *purchase.Ledger, courses *course.Directory, users *user.Service) *Router {
	return &Router{
		repo:       repo,
		authorizer: authorizer,
		purchases:  purchases,
		courses:    courses,
		users:      users,
	}
}

// SwitchChannel re-routes conv to the requested channel. For the instructor
// channel courseID is mandatory and instructorID is optional: nil keeps the
// assignment open so the course creator answers by default.
func (r *Router) SwitchChannel(ctx context.Context, principal *user.User, conv *Conversation, requested Channel, instructorID, courseID *uint) (*Conversation, error) {
	if err := r.authorizer.CanAccess(ctx, principal, conv, ActionChangeChannel); err != nil {
		return nil, err
	}

	if conv.IsResolved() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"conversation is already resolved", ErrConversationResolved, "a1c5e832-09d7-4f41-b6a8-3e92c07d5f18")
	}

	if !requested.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown channel %q", requested), nil, "6f0b2d94-c3a1-4e87-92d5-8b14f7a0c362")
	}

	var announcement string
	switch requested {
	case ChannelAssistant:
		conv.Channel = ChannelAssistant
		conv.InstructorID = nil
		conv.CourseID = nil
		announcement = assistantAnnouncement

	case ChannelAdmin:
		conv.Channel = ChannelAdmin
		conv.InstructorID = nil
		conv.CourseID = nil
		announcement = adminAnnouncement

	case ChannelInstructor:
		text, err := r.routeToInstructor(ctx, conv, instructorID, courseID)
		if err != nil {
			return nil, err
		}
		announcement = text
	}

	msg, err := NewMessage(RoleAssistant, announcement)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to build announcement")
	}

	if err := r.repo.UpdateWithMessage(ctx, conv, msg); err != nil {
		if errors.Is(err, ErrStaleConversation) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
				"conversation was updated by someone else, reload and retry", err, "b8d4f216-5a90-4c3e-87b1-f29e0d6a4c75")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to switch channel")
	}

	return conv, nil
}

// routeToInstructor validates entitlement and assignment, mutates conv and
// returns the announcement text. conv is only mutated once every check has
// passed.
func (r *Router) routeToInstructor(ctx context.Context, conv *Conversation, instructorID, courseID *uint) (string, error) {
	if courseID == nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"instructor support requires a course", ErrMissingParameters, "2c7e9a41-6d58-4b03-9f2c-e81a5d30b694")
	}

	target, err := r.courses.Get(ctx, *courseID)
	if err != nil {
		return "", err
	}

	owned, err := r.purchases.HasCompletedPurchase(ctx, conv.UserID, target.ID)
	if err != nil {
		return "", err
	}
	if !owned {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"you need a completed purchase of this course to contact its instructor", ErrMissingPurchase, "d95b3c08-1e74-4a62-b0d9-7f28c4e1a053")
	}

	if instructorID != nil && *instructorID != target.CreatorID {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"the selected instructor does not teach this course", ErrInvalidAssignment, "f3a8d627-4c01-4e95-a2b6-09e7d5c18f42")
	}

	conv.Channel = ChannelInstructor
	conv.InstructorID = instructorID
	conv.CourseID = &target.ID

	if instructorID == nil {
		return fmt.Sprintf("You are now receiving instructor support for %q. The course instructor will reply here.", target.Title), nil
	}

	instructor, err := r.users.GetByID(ctx, *instructorID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("You are now receiving support from %s for %q. They will reply here.", instructor.Name, target.Title), nil
}
