package authsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	models "jammshop/internal/api/auth/models"
	basequery "jammshop/internal/api/base/query"
	basesvc "jammshop/internal/api/base/service"
	"jammshop/internal/common"
	"jammshop/internal/global"

	"go.mongodb.org/mongo-driver/bson"
)

// UserSortFields là các field được phép sort khi liệt kê người dùng
var UserSortFields = []string{"created_at", "email", "full_name", "role"}

// UserService quản lý hồ sơ và vai trò người dùng
type UserService struct {
	profiles basesvc.Repository[models.Profile]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	profileCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Profiles)
	if !exist {
		return nil, fmt.Errorf("failed to get profiles collection: %v", common.ErrNotFound)
	}
	return NewUserServiceWith(basesvc.NewBaseServiceMongo[models.Profile](profileCollection)), nil
}

// NewUserServiceWith tạo UserService trên repository có sẵn
func NewUserServiceWith(profiles basesvc.Repository[models.Profile]) *UserService {
	return &UserService{profiles: profiles}
}

// UserListParams tham số liệt kê người dùng
type UserListParams struct {
	Search string
	Role   string
	Page   basequery.PageSpec
	Sort   basequery.SortSpec
}

// List liệt kê profile theo tìm kiếm tên/email và lọc vai trò
func (s *UserService) List(ctx context.Context, p UserListParams) (*basequery.Envelope[models.Profile], error) {
	filter := basequery.NewFilter().
		Search(p.Search, "full_name", "email").
		Eq("role", p.Role)
	return s.profiles.FindWithPagination(ctx, filter.Bson(), p.Page, p.Sort)
}

// Get lấy một profile theo id
func (s *UserService) Get(ctx context.Context, id string) (models.Profile, error) {
	return s.profiles.FindOneById(ctx, id)
}

// UpdateRole đổi vai trò của một người dùng.
// Vai trò ngoài tập cho phép -> 400, cấp super_admin khi không phải super_admin -> 403,
// cả hai đều bị từ chối trước khi chạm tới store.
func (s *UserService) UpdateRole(ctx context.Context, caller *models.Actor, id string, role string) (models.Profile, error) {
	var zero models.Profile
	if caller == nil {
		return zero, common.ErrUnauthorized
	}
	target := models.Role(strings.TrimSpace(role))
	if !target.Valid() {
		return zero, common.ValidationError(fmt.Sprintf("role must be one of: %s", strings.Join(models.Roles, ", ")), nil)
	}
	if !models.CanAssignRole(caller.Role, target) {
		return zero, common.ErrForbidden
	}

	// Admin không được hạ cấp super_admin
	if caller.Role != models.RoleSuperAdmin {
		current, err := s.profiles.FindOneById(ctx, id)
		if err != nil {
			return zero, err
		}
		if current.Role == models.RoleSuperAdmin {
			return zero, common.ErrForbidden
		}
	}

	return s.profiles.UpdateById(ctx, id, bson.M{"role": target})
}

// Me trả về profile của Actor, nil nếu chưa có profile
func (s *UserService) Me(ctx context.Context, actor *models.Actor) (*models.Profile, error) {
	if actor == nil {
		return nil, common.ErrUnauthorized
	}
	profile, err := s.profiles.FindOneById(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// EnsureSuperAdmin đảm bảo UID cấu hình có vai trò super_admin (chạy lúc khởi động)
func (s *UserService) EnsureSuperAdmin(ctx context.Context, uid, email string) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil
	}
	current, err := s.profiles.FindOneById(ctx, uid)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}
		_, err = s.profiles.InsertOne(ctx, models.Profile{ID: uid, Email: email, Role: models.RoleSuperAdmin})
		return err
	}
	if current.Role == models.RoleSuperAdmin {
		return nil
	}
	_, err = s.profiles.UpdateById(ctx, uid, bson.M{"role": models.RoleSuperAdmin})
	return err
}
