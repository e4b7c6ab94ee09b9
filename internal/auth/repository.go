package auth

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u Users) error
	GetUserByID(ctx context.Context, workspaceID, id uuid.UUID) (Users, error)
	GetUserByUsername(ctx context.Context, workspaceID uuid.UUID, username string) (Users, error)
	ListUsers(ctx context.Context, workspaceID uuid.UUID) ([]Users, error)
	CountUsers(ctx context.Context, workspaceID uuid.UUID) (int64, error)
	FirstAdmin(ctx context.Context, workspaceID uuid.UUID) (Users, error)
	UpdateRole(ctx context.Context, workspaceID, id uuid.UUID, role Role) error
	DeleteUser(ctx context.Context, workspaceID, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, u Users) error {
	// Username uniqueness per workspace is a DB constraint; propagate error
	return r.db.WithContext(ctx).Create(&u).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, workspaceID, id uuid.UUID) (Users, error) {
	var user Users
	err := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&user).Error
	return user, err
}

func (r *userRepository) GetUserByUsername(ctx context.Context, workspaceID uuid.UUID, username string) (Users, error) {
	var user Users
	err := r.db.WithContext(ctx).
		Where("username = ? AND workspace_id = ?", username, workspaceID).
		First(&user).Error
	return user, err
}

func (r *userRepository) ListUsers(ctx context.Context, workspaceID uuid.UUID) ([]Users, error) {
	var users []Users
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) CountUsers(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Users{}).
		Where("workspace_id = ?", workspaceID).
		Count(&count).Error
	return count, err
}

func (r *userRepository) FirstAdmin(ctx context.Context, workspaceID uuid.UUID) (Users, error) {
	var user Users
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND role = ?", workspaceID, RoleAdmin).
		Order("created_at ASC").
		First(&user).Error
	return user, err
}

func (r *userRepository) UpdateRole(ctx context.Context, workspaceID, id uuid.UUID, role Role) error {
	return r.db.WithContext(ctx).Model(&Users{}).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Update("role", role).Error
}

func (r *userRepository) DeleteUser(ctx context.Context, workspaceID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Delete(&Users{}).Error
}
