package user

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookbazar/pkg/errors"
)

// RegisterInput 注册/创建用户输入
type RegisterInput struct {
	Username        string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

// UpdateInput 用户管理更新输入
type UpdateInput struct {
	Username    string
	Email       string
	PhoneNumber string
	Role        string
}

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（表单校验、密码加密、首位管理员规则）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. 校验错误按字段收集，一次性返回给前端逐字段展示
type Service interface {
	// Register 用户注册
	// 业务规则：系统中第一个注册的用户自动成为Admin，之后默认Member
	Register(ctx context.Context, input RegisterInput) (*User, error)

	// CreateMember 管理员创建会员账号(角色固定Member)
	CreateMember(ctx context.Context, input RegisterInput) (*User, error)

	// Login 用户登录(用户名+密码)
	Login(ctx context.Context, username, password string) (*User, error)

	// GetByID 根据ID获取用户
	GetByID(ctx context.Context, id uint) (*User, error)

	// UpdateUser 用户管理更新
	// 业务规则：管理员账号不可修改；角色只能是Member/Staff
	UpdateUser(ctx context.Context, id uint, input UpdateInput) (*User, error)

	// DeleteUser 用户管理删除
	// 业务规则：管理员账号不可删除
	DeleteUser(ctx context.Context, id uint) error

	// ListManagedUsers 用户管理列表(不含管理员)
	ListManagedUsers(ctx context.Context) ([]*User, error)

	// ListAllUsers 全量用户列表(管理员总览)
	ListAllUsers(ctx context.Context) ([]*User, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if err := s.validateRegistration(ctx, input); err != nil {
		return nil, err
	}

	// 首个注册用户自动成为管理员
	role := RoleMember
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		role = RoleAdmin
	}

	return s.create(ctx, input, role)
}

// CreateMember 管理员创建会员账号
func (s *service) CreateMember(ctx context.Context, input RegisterInput) (*User, error) {
	if err := s.validateRegistration(ctx, input); err != nil {
		return nil, err
	}
	return s.create(ctx, input, RoleMember)
}

func (s *service) create(ctx context.Context, input RegisterInput, role Role) (*User, error) {
	// bcrypt自动加盐，cost=12平衡安全性与性能
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(input.Username, input.Email, input.PhoneNumber, string(hashedPassword), role)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 用户登录
// 安全说明：用户不存在与密码错误返回同一个错误，避免用户名枚举
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByName(ctx, username)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return nil, ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "密码验证失败")
	}

	return u, nil
}

// GetByID 根据ID获取用户
func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateUser 用户管理更新
func (s *service) UpdateUser(ctx context.Context, id uint, input UpdateInput) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 管理员账号不可修改
	if u.IsAdmin() {
		return nil, ErrAdminImmutable
	}

	if err := s.validateUpdate(ctx, id, input); err != nil {
		return nil, err
	}

	role, err := ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateProfile(input.Username, input.Email, input.PhoneNumber, role); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser 用户管理删除
func (s *service) DeleteUser(ctx context.Context, id uint) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 管理员账号不可删除
	if u.IsAdmin() {
		return ErrAdminImmutable
	}

	return s.repo.Delete(ctx, id)
}

// ListManagedUsers 用户管理列表
func (s *service) ListManagedUsers(ctx context.Context) ([]*User, error) {
	return s.repo.ListNonAdmin(ctx)
}

// ListAllUsers 全量用户列表
func (s *service) ListAllUsers(ctx context.Context) ([]*User, error) {
	return s.repo.ListAll(ctx)
}

// =========================================
// 表单校验：按字段收集错误
// =========================================

// validateRegistration 注册表单校验
// 规则：用户名/邮箱/手机号必填且唯一，密码至少6位且两次输入一致
func (s *service) validateRegistration(ctx context.Context, input RegisterInput) error {
	fields := map[string]string{}

	if strings.TrimSpace(input.Username) == "" {
		fields["username"] = "用户名不能为空"
	} else if exists, err := s.repo.ExistsByName(ctx, input.Username, 0); err != nil {
		return err
	} else if exists {
		fields["username"] = "用户名已被占用"
	}

	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "邮箱不能为空"
	} else if !isValidEmail(input.Email) {
		fields["email"] = "邮箱格式不正确"
	} else if exists, err := s.repo.ExistsByEmail(ctx, input.Email, 0); err != nil {
		return err
	} else if exists {
		fields["email"] = "邮箱已被注册"
	}

	if strings.TrimSpace(input.Password) == "" {
		fields["password"] = "密码不能为空"
	} else if len(input.Password) < 6 {
		fields["password"] = "密码至少6个字符"
	}

	if input.Password != input.ConfirmPassword {
		fields["confirm_password"] = "两次输入的密码不一致"
	}

	if strings.TrimSpace(input.PhoneNumber) == "" {
		fields["phone_number"] = "手机号不能为空"
	} else if exists, err := s.repo.ExistsByPhone(ctx, input.PhoneNumber, 0); err != nil {
		return err
	} else if exists {
		fields["phone_number"] = "手机号已被注册"
	}

	if len(fields) > 0 {
		return apperrors.NewValidation("校验失败", fields)
	}
	return nil
}

// validateUpdate 用户管理更新表单校验(唯一性排除自身)
func (s *service) validateUpdate(ctx context.Context, id uint, input UpdateInput) error {
	fields := map[string]string{}

	if strings.TrimSpace(input.Username) == "" {
		fields["username"] = "用户名不能为空"
	} else if exists, err := s.repo.ExistsByName(ctx, input.Username, id); err != nil {
		return err
	} else if exists {
		fields["username"] = "用户名已被占用"
	}

	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "邮箱不能为空"
	} else if !isValidEmail(input.Email) {
		fields["email"] = "邮箱格式不正确"
	} else if exists, err := s.repo.ExistsByEmail(ctx, input.Email, id); err != nil {
		return err
	} else if exists {
		fields["email"] = "邮箱已被注册"
	}

	if strings.TrimSpace(input.PhoneNumber) == "" {
		fields["phone_number"] = "手机号不能为空"
	} else if exists, err := s.repo.ExistsByPhone(ctx, input.PhoneNumber, id); err != nil {
		return err
	} else if exists {
		fields["phone_number"] = "手机号已被注册"
	}

	if strings.TrimSpace(input.Role) == "" {
		fields["role"] = "角色不能为空"
	} else if r, err := ParseRole(input.Role); err != nil || r == RoleAdmin {
		fields["role"] = "角色只能是Member或Staff"
	}

	if len(fields) > 0 {
		return apperrors.NewValidation("校验失败", fields)
	}
	return nil
}

// isValidEmail 邮箱格式校验
// 简单的正则校验，生产环境可使用更严格的RFC 5322标准
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}
