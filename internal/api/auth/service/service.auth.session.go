// Package authsvc - service xác thực session và quản lý người dùng (profiles).
package authsvc

import (
	"context"
	"errors"
	"fmt"

	models "jammshop/internal/api/auth/models"
	basesvc "jammshop/internal/api/base/service"
	"jammshop/internal/common"
	"jammshop/internal/global"
	"jammshop/internal/utility"
)

// SessionVerifier xác minh token session với dịch vụ xác thực bên ngoài
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*utility.SessionClaims, error)
}

// SessionService chuyển token thành Actor. Token được xác minh ở mọi request, vai trò đọc mới từ profiles.
type SessionService struct {
	verifier SessionVerifier
	profiles basesvc.Repository[models.Profile]
}

// NewSessionService tạo SessionService trên collection profiles đã đăng ký
func NewSessionService(verifier SessionVerifier) (*SessionService, error) {
	profileCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Profiles)
	if !exist {
		return nil, fmt.Errorf("failed to get profiles collection: %v", common.ErrNotFound)
	}
	return NewSessionServiceWith(
		verifier,
		basesvc.NewBaseServiceMongo[models.Profile](profileCollection),
	), nil
}

// NewSessionServiceWith tạo SessionService từ các thành phần có sẵn
func NewSessionServiceWith(verifier SessionVerifier, profiles basesvc.Repository[models.Profile]) *SessionService {
	return &SessionService{verifier: verifier, profiles: profiles}
}

// Resolve xác minh token và trả về Actor. Người dùng chưa có profile có vai trò user.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Actor, error) {
	if token == "" || s.verifier == nil {
		return nil, common.ErrUnauthorized
	}

	claims, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	actor := &models.Actor{ID: claims.UID, Email: claims.Email, Name: claims.Name, Role: models.RoleUser}
	profile, err := s.profiles.FindOneById(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return actor, nil
		}
		return nil, err
	}
	if profile.Role.Valid() {
		actor.Role = profile.Role
	}
	if profile.Email != "" {
		actor.Email = profile.Email
	}
	if profile.FullName != "" {
		actor.Name = profile.FullName
	}
	return actor, nil
}
