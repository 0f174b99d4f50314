package authdto

// UserRoleUpdateInput đầu vào đổi vai trò người dùng (PATCH /admin/users/:id)
type UserRoleUpdateInput struct {
	Role string `json:"role" validate:"required,role"`
}

// MeOutput thông tin người dùng hiện tại, Profile nil khi chưa có hồ sơ
type MeOutput struct {
	ID      string      `json:"id"`
	Email   string      `json:"email"`
	Name    string      `json:"name"`
	Role    string      `json:"role"`
	IsAdmin bool        `json:"is_admin"`
	Profile interface{} `json:"profile"`
}
