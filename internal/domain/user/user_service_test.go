package user_test

import (
	"context"
	"strings"
	"testing"

	"lms-server/internal/domain/user"
	"lms-server/internal/utils/platformerrors"
)

type mockUserRepo struct {
	nextID uint
	users  map[uint]*user.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*user.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	m.nextID++
	u.ID = m.nextID
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

var identity = user.Identity{
	Issuer:  "https://auth.example.com/realms/lms",
	Subject: "4f2c1a",
	Name:    "Sam Rivera",
	Email:   "sam@example.com",
}

func TestEnsureUser_CreatesStudentOnFirstSight(t *testing.T) {
	svc := user.NewService(newMockUserRepo())

	u, err := svc.EnsureUser(context.Background(), identity)
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	if u.Role != user.RoleStudent {
		t.Errorf("role = %q, want student", u.Role)
	}
	if !strings.HasPrefix(u.PublicID, "user_") {
		t.Errorf("PublicID = %q, want user_ prefix", u.PublicID)
	}
	if u.Name != identity.Name || u.Email != identity.Email {
		t.Errorf("profile = %q/%q, want claims carried over", u.Name, u.Email)
	}
}

func TestEnsureUser_RefreshesProfileKeepsRole(t *testing.T) {
	repo := newMockUserRepo()
	svc := user.NewService(repo)

	first, err := svc.EnsureUser(context.Background(), identity)
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}

	// Role changes happen out of band and must survive later logins.
	first.Role = user.RoleInstructor
	if err := repo.Update(context.Background(), first); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	renamed := identity
	renamed.Name = "Sam R."
	again, err := svc.EnsureUser(context.Background(), renamed)
	if err != nil {
		t.Fatalf("second EnsureUser() error = %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("second login created user %d, want %d", again.ID, first.ID)
	}
	if again.Name != "Sam R." {
		t.Errorf("name = %q, want refreshed", again.Name)
	}
	if again.Role != user.RoleInstructor {
		t.Errorf("role = %q, want instructor preserved", again.Role)
	}
}

func TestEnsureUser_RejectsIncompleteIdentity(t *testing.T) {
	svc := user.NewService(newMockUserRepo())

	_, err := svc.EnsureUser(context.Background(), user.Identity{Subject: "4f2c1a"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
		t.Errorf("EnsureUser() = %v, want unauthorized", err)
	}
}

func TestEnsureAdmin_PromotesExistingAccount(t *testing.T) {
	repo := newMockUserRepo()
	svc := user.NewService(repo)

	existing, err := svc.EnsureUser(context.Background(), identity)
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}

	promoted, err := svc.EnsureAdmin(context.Background(), identity)
	if err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}
	if promoted.ID != existing.ID {
		t.Errorf("EnsureAdmin created user %d, want %d", promoted.ID, existing.ID)
	}
	if promoted.Role != user.RoleAdmin {
		t.Errorf("role = %q, want admin", promoted.Role)
	}
}
