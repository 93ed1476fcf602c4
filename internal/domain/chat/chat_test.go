package chat_test

import (
	"context"

	"lms-server/internal/domain/chat"
	"lms-server/internal/domain/course"
	"lms-server/internal/domain/purchase"
	"lms-server/internal/domain/user"
)

// mockConversationRepo is an in-memory implementation of chat.Repository. It
// mirrors the storage-level guarantees of the real repository: at most one
// pending conversation per user and version-conditional updates.
type mockConversationRepo struct {
	nextID        uint
	conversations map[uint]*chat.Conversation

	// createErrs is drained one error per Create call, simulating insert
	// failures such as the unique pending index rejecting a racer.
	createErrs []error

	// missPendingLookups makes FindPendingByUserID report no pending row
	// that many times, simulating a racer inserting between the caller's
	// lookup and insert.
	missPendingLookups int
}

func newMockConversationRepo() *mockConversationRepo {
	return &mockConversationRepo{conversations: make(map[uint]*chat.Conversation)}
}

func (m *mockConversationRepo) seed(conv *chat.Conversation) *chat.Conversation {
	m.nextID++
	conv.ID = m.nextID
	m.conversations[conv.ID] = conv
	return conv
}

func (m *mockConversationRepo) Create(ctx context.Context, conv *chat.Conversation) error {
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, existing := range m.conversations {
		if existing.UserID == conv.UserID && existing.Status == chat.StatusPending {
			return chat.ErrPendingExists
		}
	}
	m.seed(conv)
	return nil
}

func (m *mockConversationRepo) FindPendingByUserID(ctx context.Context, userID uint) (*chat.Conversation, error) {
	if m.missPendingLookups > 0 {
		m.missPendingLookups--
		return nil, nil
	}
	for _, conv := range m.conversations {
		if conv.UserID == userID && conv.Status == chat.StatusPending {
			return conv, nil
		}
	}
	return nil, nil
}

func (m *mockConversationRepo) FindByID(ctx context.Context, id uint) (*chat.Conversation, error) {
	return m.conversations[id], nil
}

func (m *mockConversationRepo) FindByPublicID(ctx context.Context, publicID string) (*chat.Conversation, error) {
	for _, conv := range m.conversations {
		if conv.PublicID == publicID {
			return conv, nil
		}
	}
	return nil, nil
}

func (m *mockConversationRepo) FindByFilter(ctx context.Context, filter chat.Filter) ([]*chat.Conversation, error) {
	var out []*chat.Conversation
	for _, conv := range m.conversations {
		if filter.UserID != nil && conv.UserID != *filter.UserID {
			continue
		}
		if filter.Channel != nil && conv.Channel != *filter.Channel {
			continue
		}
		if scope := filter.InstructorScope; scope != nil {
			if conv.Channel != chat.ChannelInstructor {
				continue
			}
			if conv.InstructorID != nil {
				if *conv.InstructorID != scope.InstructorID {
					continue
				}
			} else {
				if conv.CourseID == nil || !containsUint(scope.CourseIDs, *conv.CourseID) {
					continue
				}
			}
		}
		out = append(out, conv)
	}
	return out, nil
}

func (m *mockConversationRepo) Update(ctx context.Context, conv *chat.Conversation) error {
	stored, ok := m.conversations[conv.ID]
	if !ok || stored.Version != conv.Version {
		return chat.ErrStaleConversation
	}
	conv.Version++
	m.conversations[conv.ID] = conv
	return nil
}

func (m *mockConversationRepo) UpdateWithMessage(ctx context.Context, conv *chat.Conversation, msg *chat.Message) error {
	if err := m.Update(ctx, conv); err != nil {
		return err
	}
	msg.ConversationID = conv.ID
	conv.Messages = append(conv.Messages, *msg)
	return nil
}

func (m *mockConversationRepo) AppendMessage(ctx context.Context, conv *chat.Conversation, msg *chat.Message) error {
	msg.ConversationID = conv.ID
	conv.Messages = append(conv.Messages, *msg)
	return nil
}

type mockCourseRepo struct {
	courses map[uint]*course.Course
}

func newMockCourseRepo(courses ...*course.Course) *mockCourseRepo {
	m := &mockCourseRepo{courses: make(map[uint]*course.Course)}
	for _, c := range courses {
		m.courses[c.ID] = c
	}
	return m
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id uint) (*course.Course, error) {
	return m.courses[id], nil
}

func (m *mockCourseRepo) FindByPublicID(ctx context.Context, publicID string) (*course.Course, error) {
	for _, c := range m.courses {
		if c.PublicID == publicID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCourseRepo) ListByCreator(ctx context.Context, creatorID uint) ([]*course.Course, error) {
	var out []*course.Course
	for _, c := range m.courses {
		if c.CreatorID == creatorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) ListPublished(ctx context.Context) ([]*course.Course, error) {
	var out []*course.Course
	for _, c := range m.courses {
		if c.Published {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockPurchaseRepo struct {
	completed map[[2]uint]*purchase.Purchase
}

func newMockPurchaseRepo() *mockPurchaseRepo {
	return &mockPurchaseRepo{completed: make(map[[2]uint]*purchase.Purchase)}
}

func (m *mockPurchaseRepo) grant(userID, courseID uint) {
	m.completed[[2]uint{userID, courseID}] = &purchase.Purchase{
		UserID:   userID,
		CourseID: courseID,
		Status:   purchase.StatusCompleted,
	}
}

func (m *mockPurchaseRepo) FindCompleted(ctx context.Context, userID, courseID uint) (*purchase.Purchase, error) {
	return m.completed[[2]uint{userID, courseID}], nil
}

func (m *mockPurchaseRepo) ListCompletedByUser(ctx context.Context, userID uint) ([]*purchase.Purchase, error) {
	var out []*purchase.Purchase
	for _, p := range m.completed {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockUserRepo struct {
	users map[uint]*user.User
}

func newMockUserRepo(users ...*user.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uint]*user.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) FindByPublicID(ctx context.Context, publicID string) (*user.User, error) {
	for _, u := range m.users {
		if u.PublicID == publicID {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByIdentity(ctx context.Context, issuer, subject string) (*user.User, error) {
	for _, u := range m.users {
		if u.Issuer == issuer && u.Subject == subject {
			return u, nil
		}
	}
	return nil, nil
}

func containsUint(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func uintPtr(v uint) *uint { return &v }

func student(id uint) *user.User {
	return &user.User{ID: id, Role: user.RoleStudent, Name: "Student"}
}

func admin(id uint) *user.User {
	return &user.User{ID: id, Role: user.RoleAdmin, Name: "Admin"}
}

func instructor(id uint, name string) *user.User {
	return &user.User{ID: id, Role: user.RoleInstructor, Name: name}
}
