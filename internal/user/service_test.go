package user

import (
	"context"
	"errors"
	"testing"

	"caiary/internal/testutils"
	"caiary/packages/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func TestResolveOrCreate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	// 首次登录创建用户
	created, err := svc.ResolveOrCreate(ctx, "hana@example.com", "hana", strPtr("https://img/a.png"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "hana", created.Username)

	// 再次登录，头像变化时更新，用户名不变
	again, err := svc.ResolveOrCreate(ctx, "hana@example.com", "other-name", strPtr("https://img/b.png"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "hana", again.Username)
	require.NotNil(t, again.ProfileImageURL)
	assert.Equal(t, "https://img/b.png", *again.ProfileImageURL)

	stored, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img/b.png", *stored.ProfileImageURL)

	_, err = svc.ResolveOrCreate(ctx, "", "x", nil)
	assert.True(t, response.HasCode(err, response.InvalidParameter))
}

func TestResolveOrCreate_UpdateFailureIsReported(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	existing := testutils.CreateTestUser(db, testutils.WithEmail("mina@example.com"), testutils.WithProfileImage("https://img/old.png"))

	errDisk := errors.New("disk full")
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_update", func(tx *gorm.DB) {
		_ = tx.AddError(errDisk)
	}))

	// 头像更新失败不能被当作并发创建吞掉
	_, err := svc.ResolveOrCreate(ctx, existing.Email, "mina", strPtr("https://img/new.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisk)
}

func TestFindByIDAndEmail(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	u := testutils.CreateTestUser(db, testutils.WithEmail("seo@example.com"))

	found, err := svc.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, found.Email)

	_, err = svc.FindByID(ctx, u.ID+100)
	assert.True(t, response.HasCode(err, response.NotFound))

	found, err = svc.FindByEmail(ctx, "seo@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = svc.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, response.HasCode(err, response.NotFound))

	_, err = svc.FindByEmail(ctx, "  ")
	assert.True(t, response.HasCode(err, response.InvalidParameter))
}

func TestSearchByUsername(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	longer := testutils.CreateTestUser(db, testutils.WithUsername("kim_minsu"))
	exact := testutils.CreateTestUser(db, testutils.WithUsername("kim"))
	testutils.CreateTestUser(db, testutils.WithUsername("lee"))
	wildcard := testutils.CreateTestUser(db, testutils.WithUsername("k%m"))

	t.Run("exact match first", func(t *testing.T) {
		users, err := svc.SearchByUsername(ctx, "kim")
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, exact.ID, users[0].ID)
		assert.Equal(t, longer.ID, users[1].ID)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		users, err := svc.SearchByUsername(ctx, "k%")
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, wildcard.ID, users[0].ID)
	})

	t.Run("no match", func(t *testing.T) {
		users, err := svc.SearchByUsername(ctx, "park")
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("empty query is invalid", func(t *testing.T) {
		for _, q := range []string{"", "   "} {
			_, err := svc.SearchByUsername(ctx, q)
			assert.True(t, response.HasCode(err, response.InvalidParameter))
		}
	})
}

func TestFindByIDs(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	a := testutils.CreateTestUser(db)
	b := testutils.CreateTestUser(db)

	users, err := svc.FindByIDs(ctx, []uint{b.ID, 9999, a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, b.ID, users[0].ID)
	assert.Equal(t, a.ID, users[1].ID)

	_, err = svc.FindByIDs(ctx, nil)
	assert.True(t, response.HasCode(err, response.InvalidParameter))
}

func TestUpdateUsername(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	owner := testutils.CreateTestUser(db, testutils.WithUsername("before"))
	other := testutils.CreateTestUser(db)

	updated, err := svc.UpdateUsername(ctx, owner.ID, owner.ID, "  after ")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Username)

	stored, err := svc.FindByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", stored.Username)

	_, err = svc.UpdateUsername(ctx, other.ID, owner.ID, "hijack")
	assert.True(t, response.HasCode(err, response.Forbidden))

	_, err = svc.UpdateUsername(ctx, owner.ID, 9999, "ghost")
	assert.True(t, response.HasCode(err, response.NotFound))

	_, err = svc.UpdateUsername(ctx, owner.ID, owner.ID, " ")
	assert.True(t, response.HasCode(err, response.InvalidParameter))

	stored, err = svc.FindByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", stored.Username)
}

func TestGetProfile_FollowLists(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	a := testutils.CreateTestUser(db)
	b := testutils.CreateTestUser(db)
	c := testutils.CreateTestUser(db)

	testutils.Follow(db, a.ID, b.ID)
	testutils.Follow(db, c.ID, b.ID)
	testutils.Follow(db, b.ID, a.ID)

	profile, err := svc.GetProfile(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, c.ID}, profile.Followers)
	assert.Equal(t, []uint{a.ID}, profile.Followings)

	profile, err = svc.GetProfile(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Followers)
	assert.NotNil(t, profile.Followers)
	assert.Equal(t, []uint{b.ID}, profile.Followings)

	followers, err := svc.FollowerIDs(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, c.ID}, followers)

	_, err = svc.FollowingIDs(ctx, 9999)
	assert.True(t, response.HasCode(err, response.NotFound))
}
