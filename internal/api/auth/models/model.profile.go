// Package models - hồ sơ người dùng (Profile), vai trò và Actor thuộc domain auth.
package models

// Role là vai trò của người dùng, có thứ bậc user < admin < super_admin
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Roles là tập vai trò hợp lệ theo thứ tự tăng dần
var Roles = []string{string(RoleUser), string(RoleAdmin), string(RoleSuperAdmin)}

// Rank trả về thứ bậc của vai trò, 0 với vai trò không hợp lệ
func (r Role) Rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperAdmin:
		return 3
	}
	return 0
}

// Valid kiểm tra vai trò thuộc tập cho phép
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// AtLeast kiểm tra vai trò có thứ bậc >= min
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && r.Rank() >= min.Rank()
}

// CanAssignRole: chỉ admin trở lên được đổi vai trò, chỉ super_admin được cấp super_admin
func CanAssignRole(caller, target Role) bool {
	if !caller.AtLeast(RoleAdmin) || !target.Valid() {
		return false
	}
	if target == RoleSuperAdmin {
		return caller == RoleSuperAdmin
	}
	return true
}

// Profile là hồ sơ người dùng, _id là UID của dịch vụ xác thực
type Profile struct {
	ID        string `json:"id" bson:"_id"`
	Email     string `json:"email" bson:"email" index:"single"`
	FullName  string `json:"full_name" bson:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Role      Role   `json:"role" bson:"role" index:"single"`
	CreatedAt int64  `json:"created_at" bson:"created_at" index:"single,order:-1"`
	UpdatedAt int64  `json:"updated_at" bson:"updated_at"`
}

// Actor là người dùng của request hiện tại sau khi xác thực session
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}
