package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookbazar/internal/domain/user"
	"github.com/xiebiao/bookbazar/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookbazar/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 验证用户名密码
// 2. 生成JWT Token
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证用户名密码（调用领域服务）
	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token
	token, err := uc.jwtManager.GenerateToken(u.ID, u.Name, u.Email, u.Role.String())
	if err != nil {
		return nil, err
	}

	// 3. 保存会话到Redis
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"username": u.Name,
		"role":     u.Role.String(),
		"login_at": time.Now().Unix(),
	}

	// 会话有效期与Token一致；会话保存失败不影响登录结果
	_ = uc.sessionStore.SaveSession(ctx, u.ID, sessionData, uc.jwtManager.TokenExpire())

	// 4. 返回登录响应
	return &LoginResponse{
		User: UserInfo{
			ID:           u.ID,
			Username:     u.Name,
			Email:        u.Email,
			Role:         u.Role.String(),
			MembershipID: u.MembershipID.String(),
		},
		AccessToken: token,
		ExpiresIn:   int64(uc.jwtManager.TokenExpire().Seconds()),
	}, nil
}

// LogoutUseCase 用户登出用例
// 设计说明：
// 1. JWT本身无状态，登出通过Redis黑名单实现
// 2. 黑名单TTL取Token剩余有效期即可，过期Token天然失效
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, token string) error {
	// 1. Token加入黑名单
	if err := uc.sessionStore.AddToBlacklist(ctx, token, uc.jwtManager.TokenExpire()); err != nil {
		return err
	}

	// 2. 删除会话
	return uc.sessionStore.DeleteSession(ctx, userID)
}

// =========================================
// 应用层DTO
// =========================================

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
}

// UserInfo 用户信息
type UserInfo struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	MembershipID string `json:"membership_id"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User        UserInfo `json:"user"`
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"` // 秒
}
