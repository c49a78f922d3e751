package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookbazar/internal/domain/user"
)

func seedUser(t *testing.T, repo user.Repository, name, email, phone string, role user.Role) *user.User {
	t.Helper()
	u := user.NewUser(name, email, phone, "$2a$12$hash", role)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// TestUserRepository_UniqueConstraints 用户名/邮箱/手机号唯一
func TestUserRepository_UniqueConstraints(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	seedUser(t, repo, "alice", "alice@example.com", "13800000001", user.RoleMember)

	err := repo.Create(context.Background(), user.NewUser("alice", "other@example.com", "13800000002", "$2a$12$hash", user.RoleMember))
	assert.Error(t, err)

	exists, err := repo.ExistsByEmail(context.Background(), "alice@example.com", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// 更新场景排除自身
	u, err := repo.FindByName(context.Background(), "alice")
	require.NoError(t, err)
	exists, err = repo.ExistsByEmail(context.Background(), "alice@example.com", u.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestUserRepository_CountAndLists 计数与角色过滤列表
func TestUserRepository_CountAndLists(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total, "空库计数为零,首个注册用户将成为管理员")

	seedUser(t, repo, "admin", "admin@example.com", "13800000001", user.RoleAdmin)
	seedUser(t, repo, "staff", "staff@example.com", "13800000002", user.RoleStaff)
	seedUser(t, repo, "member", "member@example.com", "13800000003", user.RoleMember)

	total, err = repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	nonAdmin, err := repo.ListNonAdmin(context.Background())
	require.NoError(t, err)
	require.Len(t, nonAdmin, 2)
	for _, u := range nonAdmin {
		assert.NotEqual(t, user.RoleAdmin, u.Role)
	}

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// TestUserRepository_RoundTrip 会员号等字段的存取一致性
func TestUserRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	u := seedUser(t, repo, "bob", "bob@example.com", "13800000009", user.RoleMember)

	got, err := repo.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.MembershipID, got.MembershipID)
	assert.Equal(t, user.RoleMember, got.Role)

	got.SuccessfulOrders = 3
	require.NoError(t, repo.Update(context.Background(), got))

	again, err := repo.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, again.SuccessfulOrders)
}
