package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminRequired      = errors.New("administrator role required")
	ErrSelfManagement     = errors.New("cannot modify your own account")
	ErrPrimaryAdmin       = errors.New("the primary administrator cannot be modified by other members")
)

// WorkspaceDirectory resolves tenant names to workspace ids. Implemented by
// the workspace service; registration creates the workspace on first use.
type WorkspaceDirectory interface {
	EnsureWorkspace(ctx context.Context, name string) (uuid.UUID, error)
	LookupWorkspace(ctx context.Context, name string) (uuid.UUID, error)
}

type UserService interface {
	Register(ctx context.Context, workspaceName, username, fullName, password string) (Users, error)
	Login(ctx context.Context, workspaceName, username, password string) (Users, Claims, error)
	Profile(ctx context.Context, p Principal) (Users, error)
	ListMembers(ctx context.Context, p Principal) ([]Users, error)
	ChangeRole(ctx context.Context, p Principal, userID uuid.UUID, role Role) error
	RemoveMember(ctx context.Context, p Principal, userID uuid.UUID) error
}

type userService struct {
	repo          UserRepository
	workspaces    WorkspaceDirectory
	jwtTTLSeconds int64
}

func NewUserService(repo UserRepository, workspaces WorkspaceDirectory, jwtTTLSeconds int64) UserService {
	return &userService{
		repo:          repo,
		workspaces:    workspaces,
		jwtTTLSeconds: jwtTTLSeconds,
	}
}

// Register creates the workspace on first use. The first member of a
// workspace becomes Admin, everyone after that a regular User.
func (s *userService) Register(ctx context.Context, workspaceName, username, fullName, password string) (Users, error) {
	workspaceID, err := s.workspaces.EnsureWorkspace(ctx, workspaceName)
	if err != nil {
		return Users{}, err
	}

	if _, err := s.repo.GetUserByUsername(ctx, workspaceID, username); err == nil {
		return Users{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Users{}, err
	}

	count, err := s.repo.CountUsers(ctx, workspaceID)
	if err != nil {
		return Users{}, err
	}
	role := RoleUser
	if count == 0 {
		role = RoleAdmin
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return Users{}, err
	}

	user := Users{
		ID:           uuid.New(),
		Username:     username,
		FullName:     fullName,
		PasswordHash: hashed,
		Role:         role,
		WorkspaceID:  workspaceID,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return Users{}, err
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, workspaceName, username, password string) (Users, Claims, error) {
	workspaceID, err := s.workspaces.LookupWorkspace(ctx, workspaceName)
	if err != nil {
		return Users{}, Claims{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByUsername(ctx, workspaceID, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Users{}, Claims{}, ErrInvalidCredentials
		}
		return Users{}, Claims{}, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return Users{}, Claims{}, ErrInvalidCredentials
	}

	claims := BuildJWTClaims(user, s.jwtTTLSeconds)
	return user, claims, nil
}

func (s *userService) Profile(ctx context.Context, p Principal) (Users, error) {
	user, err := s.repo.GetUserByID(ctx, p.WorkspaceID, p.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Users{}, ErrUserNotFound
		}
		return Users{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) ListMembers(ctx context.Context, p Principal) ([]Users, error) {
	if !p.IsAdmin() {
		return nil, ErrAdminRequired
	}
	users, err := s.repo.ListUsers(ctx, p.WorkspaceID)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// ChangeRole applies the member protection rules: a principal never changes
// their own role, and nobody but the primary admin touches the primary
// admin's record. The primary admin is the earliest Admin in the workspace.
func (s *userService) ChangeRole(ctx context.Context, p Principal, userID uuid.UUID, role Role) error {
	if err := s.guardMemberMutation(ctx, p, userID); err != nil {
		return err
	}
	return s.repo.UpdateRole(ctx, p.WorkspaceID, userID, role)
}

func (s *userService) RemoveMember(ctx context.Context, p Principal, userID uuid.UUID) error {
	if err := s.guardMemberMutation(ctx, p, userID); err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, p.WorkspaceID, userID)
}

func (s *userService) guardMemberMutation(ctx context.Context, p Principal, userID uuid.UUID) error {
	if !p.IsAdmin() {
		return ErrAdminRequired
	}
	if userID == p.ID {
		return ErrSelfManagement
	}

	if _, err := s.repo.GetUserByID(ctx, p.WorkspaceID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	primary, err := s.repo.FirstAdmin(ctx, p.WorkspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if primary.ID == userID && p.ID != primary.ID {
		return ErrPrimaryAdmin
	}
	return nil
}
