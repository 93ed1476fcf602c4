package chat_test

import (
	"context"
	"errors"
	"testing"

	"lms-server/internal/domain/chat"
	"lms-server/internal/domain/course"
	"lms-server/internal/domain/user"
	"lms-server/internal/utils/platformerrors"
)

func newLedgerFixture(t *testing.T) (*chat.Ledger, *chat.Conversation, *user.User) {
	t.Helper()

	repo := newMockConversationRepo()
	courses := newMockCourseRepo(
		&course.Course{ID: 10, Title: "Go Basics", CreatorID: 3, Published: true},
	)
	ledger := chat.NewLedger(repo, chat.NewAuthorizer(course.NewDirectory(courses)))

	owner := student(1)
	conv, err := chat.NewConversation(owner.ID)
	if err != nil {
		t.Fatalf("NewConversation() error = %v", err)
	}
	repo.seed(conv)

	return ledger, conv, owner
}

func TestAppend_DerivesRoleFromPrincipal(t *testing.T) {
	ledger, conv, owner := newLedgerFixture(t)
	conv.Channel = chat.ChannelInstructor
	conv.InstructorID = uintPtr(3)
	conv.CourseID = uintPtr(10)

	tests := []struct {
		name      string
		principal *user.User
		want      chat.MessageRole
	}{
		{"owner writes as user", owner, chat.RoleUser},
		{"admin writes as admin", admin(9), chat.RoleAdmin},
		{"instructor writes as instructor", instructor(3, "Ada"), chat.RoleInstructor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ledger.Append(context.Background(), tt.principal, conv, "hello")
			if err != nil {
				t.Fatalf("Append() error = %v", err)
			}
			if msg.Role != tt.want {
				t.Errorf("role = %q, want %q", msg.Role, tt.want)
			}
		})
	}
}

func TestAppend_AdminOwnerWritesAsUser(t *testing.T) {
	repo := newMockConversationRepo()
	ledger := chat.NewLedger(repo, chat.NewAuthorizer(course.NewDirectory(newMockCourseRepo())))

	// An admin asking for help in their own conversation is a user there.
	owner := admin(9)
	conv, err := chat.NewConversation(owner.ID)
	if err != nil {
		t.Fatalf("NewConversation() error = %v", err)
	}
	repo.seed(conv)

	msg, err := ledger.Append(context.Background(), owner, conv, "help me")
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if msg.Role != chat.RoleUser {
		t.Errorf("role = %q, want user", msg.Role)
	}
}

func TestAppend_PersistsToLedger(t *testing.T) {
	ledger, conv, owner := newLedgerFixture(t)
	before := len(conv.Messages)

	msg, err := ledger.Append(context.Background(), owner, conv, "  does this course cover generics?  ")
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if msg.Text != "does this course cover generics?" {
		t.Errorf("text = %q, want trimmed", msg.Text)
	}
	if len(conv.Messages) != before+1 {
		t.Errorf("ledger length = %d, want %d", len(conv.Messages), before+1)
	}
	if conv.Messages[len(conv.Messages)-1].PublicID != msg.PublicID {
		t.Error("appended message is not the last ledger entry")
	}
}

func TestAppend_RejectsEmptyText(t *testing.T) {
	ledger, conv, owner := newLedgerFixture(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := ledger.Append(context.Background(), owner, conv, text)
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
			t.Errorf("Append(%q) = %v, want validation error", text, err)
		}
	}
}

func TestAppend_RejectsResolvedConversation(t *testing.T) {
	ledger, conv, owner := newLedgerFixture(t)
	conv.Status = chat.StatusResolved
	before := len(conv.Messages)

	_, err := ledger.Append(context.Background(), owner, conv, "one more thing")
	if !errors.Is(err, chat.ErrConversationResolved) {
		t.Fatalf("Append() = %v, want resolved sentinel", err)
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
		t.Errorf("error type = %v, want conflict", err)
	}
	if len(conv.Messages) != before {
		t.Error("resolved conversation accepted a message")
	}
}

func TestAppend_StrangerForbidden(t *testing.T) {
	ledger, conv, _ := newLedgerFixture(t)

	_, err := ledger.Append(context.Background(), student(2), conv, "hi")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		t.Errorf("Append() by stranger = %v, want forbidden", err)
	}
}

func TestAppendAssistant(t *testing.T) {
	ledger, conv, _ := newLedgerFixture(t)

	msg, err := ledger.AppendAssistant(context.Background(), conv, "We offer three Go courses.")
	if err != nil {
		t.Fatalf("AppendAssistant() error = %v", err)
	}
	if msg.Role != chat.RoleAssistant {
		t.Errorf("role = %q, want assistant", msg.Role)
	}
}
