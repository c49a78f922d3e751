package user

import (
	"time"

	"github.com/google/uuid"
)

// Role 用户角色（封闭枚举）
// 设计说明:
// 1. 不使用裸字符串比较角色,解析/校验集中在ParseRole
// 2. 新增或改名角色时,编译器会把所有switch分支暴露出来
type Role string

const (
	RoleMember Role = "Member" // 普通会员
	RoleStaff  Role = "Staff"  // 门店员工(核销取货订单)
	RoleAdmin  Role = "Admin"  // 管理员
)

// ParseRole 解析角色字符串
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember:
		return RoleMember, nil
	case RoleStaff:
		return RoleStaff, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// Valid 角色是否合法
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// String 实现Stringer接口
func (r Role) String() string {
	return string(r)
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. 密码已加密存储（bcrypt），不暴露明文
// 2. MembershipId是对外展示的会员号（UUID），与自增主键解耦
// 3. SuccessfulOrders在订单核销成功时+1，用于会员折扣运营
// 4. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID                 uint
	Name               string
	Email              string
	PhoneNumber        string
	PasswordHash       string // bcrypt哈希值
	Role               Role
	MembershipID       uuid.UUID
	MembershipDate     time.Time
	SuccessfulOrders   int
	HasActiveDiscount  bool
	DiscountPercentage int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(name, email, phoneNumber, hashedPassword string, role Role) *User {
	now := time.Now()
	return &User{
		Name:           name,
		Email:          email,
		PhoneNumber:    phoneNumber,
		PasswordHash:   hashedPassword,
		Role:           role,
		MembershipID:   uuid.New(),
		MembershipDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsAdmin 是否管理员
// 业务规则：管理员账号一经创建不可通过用户管理接口修改或删除
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RecordSuccessfulOrder 记录一次成功核销的订单
func (u *User) RecordSuccessfulOrder() {
	u.SuccessfulOrders++
	u.UpdatedAt = time.Now()
}

// UpdateProfile 更新用户资料（用户管理路径）
// 角色只允许Member/Staff，管理员账号由调用方先行拦截
func (u *User) UpdateProfile(name, email, phoneNumber string, role Role) error {
	if role != RoleMember && role != RoleStaff {
		return ErrInvalidRole
	}
	u.Name = name
	u.Email = email
	u.PhoneNumber = phoneNumber
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}
