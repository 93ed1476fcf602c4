package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lms-server/internal/domain/chat"
	"lms-server/internal/domain/course"
	"lms-server/internal/domain/purchase"
	"lms-server/internal/domain/user"
	"lms-server/internal/utils/platformerrors"
)

type routerFixture struct {
	repo      *mockConversationRepo
	purchases *mockPurchaseRepo
	router    *chat.Router
	owner     *user.User
	conv      *chat.Conversation
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	repo := newMockConversationRepo()
	courses := newMockCourseRepo(
		&course.Course{ID: 10, PublicID: "course_gobasics", Title: "Go Basics", CreatorID: 3, Published: true},
		&course.Course{ID: 11, PublicID: "course_sqldeep", Title: "SQL Deep Dive", CreatorID: 4, Published: true},
	)
	purchases := newMockPurchaseRepo()
	users := user.NewService(newMockUserRepo(
		instructor(3, "Ada"),
		instructor(4, "Grace"),
	))

	directory := course.NewDirectory(courses)
	authorizer := chat.NewAuthorizer(directory)
	router := chat.NewRouter(repo, authorizer, purchase.NewLedger(purchases), directory, users)

	owner := student(1)
	conv, err := chat.NewConversation(owner.ID)
	if err != nil {
		t.Fatalf("NewConversation() error = %v", err)
	}
	repo.seed(conv)

	return &routerFixture{repo: repo, purchases: purchases, router: router, owner: owner, conv: conv}
}

func TestSwitchChannel_ToAdmin(t *testing.T) {
	f := newRouterFixture(t)

	got, err := f.router.SwitchChannel(context.Background(), f.owner, f.conv, chat.ChannelAdmin, nil, nil)
	if err != nil {
		t.Fatalf("SwitchChannel() error = %v", err)
	}
	if got.Channel != chat.ChannelAdmin {
		t.Errorf("Channel = %q, want admin", got.Channel)
	}
	if got.InstructorID != nil || got.CourseID != nil {
		t.Error("admin channel should clear instructor and course")
	}

	last := got.Messages[len(got.Messages)-1]
	if last.Role != chat.RoleAssistant {
		t.Errorf("announcement role = %q, want assistant", last.Role)
	}
	if !strings.Contains(last.Text, "admin support") {
		t.Errorf("announcement = %q, want admin transfer notice", last.Text)
	}
}

func TestSwitchChannel_ToInstructorUnassigned(t *testing.T) {
	f := newRouterFixture(t)
	f.purchases.grant(f.owner.ID, 10)

	got, err := f.router.SwitchChannel(context.Background(), f.owner, f.conv, chat.ChannelInstructor, nil, uintPtr(10))
	if err != nil {
		t.Fatalf("SwitchChannel() error = %v", err)
	}
	if got.Channel != chat.ChannelInstructor {
		t.Errorf("Channel = %q, want instructor", got.Channel)
	}
	if got.InstructorID != nil {
		t.Errorf("InstructorID = %v, want nil (open assignment)", *got.InstructorID)
	}
	if got.CourseID == nil || *got.CourseID != 10 {
		t.Errorf("CourseID = %v, want 10", got.CourseID)
	}

	last := got.Messages[len(got.Messages)-1]
	if !strings.Contains(last.Text, "Go Basics") {
		t.Errorf("announcement = %q, want course title", last.Text)
	}
}

func TestSwitchChannel_ToInstructorAssigned(t *testing.T) {
	f := newRouterFixture(t)
	f.purchases.grant(f.owner.ID, 10)

	got, err := f.router.SwitchChannel(context.Background(), f.owner, f.conv, chat.ChannelInstructor, uintPtr(3), uintPtr(10))
	if err != nil {
		t.Fatalf("SwitchChannel() error = %v", err)
	}
	if got.InstructorID == nil || *got.InstructorID != 3 {
		t.Errorf("InstructorID = %v, want 3", got.InstructorID)
	}

	last := got.Messages[len(got.Messages)-1]
	if !strings.Contains(last.Text, "Ada") || !strings.Contains(last.Text, "Go Basics") {
		t.Errorf("announcement = %q, want instructor name and course title", last.Text)
	}
}

func TestSwitchChannel_BackToAssistantClearsRouting(t *testing.T) {
	f := newRouterFixture(t)
	f.purchases.grant(f.owner.ID, 10)

	if _, err := f.router.SwitchChannel(context.Background(), f.owner, f.conv, chat.ChannelInstructor, uintPtr(3), uintPtr(10)); err != nil {
		t.Fatalf("switch to instructor error = %v", err)
	}
	got, err := f.router.SwitchChannel(context.Background(), f.owner, f.conv, chat.ChannelAssistant, nil, nil)
	if err != nil {
		t.Fatalf("switch back error = %v", err)
	}
	if got.Channel != chat.ChannelAssistant {
		t.Errorf("Channel = %q, want assistant", got.Channel)
	}
	if got.InstructorID != nil || got.CourseID != nil {
		t.Error("assistant channel should clear instructor and course")
	}
}

func TestSwitchChannel_InstructorValidation(t *testing.T) {
	tests := []struct {
		name         string
		instructorID *uint
		courseID     *uint
		grant        bool
		sentinel     error
	}{
		{"missing course", nil, nil, false, chat.ErrMissingParameters},
		{"no completed purchase", nil, uintPtr(10), false, chat.ErrMissingPurchase},
		{"instructor does not teach course", uintPtr(4), uintPtr(10), true, chat.ErrInvalidAssignment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			if tt.grant {
				f.purchases.grant(f.owner.ID, 10)
			}
			before := len(f.conv.Messages)

			_, err := f.router.SwitchChannel(context.Background(), f.owner, f.conv, chat.ChannelInstructor, tt.instructorID, tt.courseID)
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("SwitchChannel() = %v, want %v", err, tt.sentinel)
			}

			// A failed switch leaves the conversation untouched.
			if f.conv.Channel != chat.ChannelAssistant {
				t.Errorf("Channel = %q after failed switch, want assistant", f.conv.Channel)
			}
			if f.conv.CourseID != nil || f.conv.InstructorID != nil {
				t.Error("failed switch mutated routing fields")
			}
			if len(f.conv.Messages) != before {
				t.Error("failed switch appended a message")
			}
		})
	}
}

func TestSwitchChannel_UnknownChannel(t *testing.T) {
	f := newRouterFixture(t)

	_, err := f.router.SwitchChannel(context.Background(), f.owner, f.conv, chat.Channel("carrier-pigeon"), nil, nil)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("SwitchChannel() = %v, want validation error", err)
	}
}

func TestSwitchChannel_ResolvedConversation(t *testing.T) {
	f := newRouterFixture(t)
	f.conv.Status = chat.StatusResolved

	_, err := f.router.SwitchChannel(context.Background(), f.owner, f.conv, chat.ChannelAdmin, nil, nil)
	if !errors.Is(err, chat.ErrConversationResolved) {
		t.Fatalf("SwitchChannel() = %v, want resolved sentinel", err)
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
		t.Errorf("error type = %v, want conflict", err)
	}
}

func TestSwitchChannel_OnlyOwnerMayReroute(t *testing.T) {
	f := newRouterFixture(t)

	for _, principal := range []*user.User{admin(9), instructor(3, "Ada"), student(2)} {
		_, err := f.router.SwitchChannel(context.Background(), principal, f.conv, chat.ChannelAdmin, nil, nil)
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
			t.Errorf("SwitchChannel() by %s = %v, want forbidden", principal.Role, err)
		}
	}
}

func TestSwitchChannel_StaleVersionConflicts(t *testing.T) {
	f := newRouterFixture(t)

	stale := *f.conv
	stale.Version = f.conv.Version - 1

	_, err := f.router.SwitchChannel(context.Background(), f.owner, &stale, chat.ChannelAdmin, nil, nil)
	if !errors.Is(err, chat.ErrStaleConversation) {
		t.Fatalf("SwitchChannel() = %v, want stale sentinel", err)
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
		t.Errorf("error type = %v, want conflict", err)
	}
}
