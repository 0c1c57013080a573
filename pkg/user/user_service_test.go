package user_test

import (
	"context"
	"testing"
	"time"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/testutil"
	"Meal-Preorder-Backend/pkg/jwt"
	"Meal-Preorder-Backend/pkg/user"
	"Meal-Preorder-Backend/pkg/userpackage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type userFixture struct {
	db       *gorm.DB
	clock    *testutil.FixedClock
	notifier *testutil.FakeNotifier
	jwt      jwt.JWTService
	service  user.UserService
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	db := testutil.NewDB(t)
	clock := testutil.NewFixedClock(time.Now())
	notifier := testutil.NewFakeNotifier()
	jwtService := jwt.NewJWTServiceWithSecret("test-secret", time.Hour)

	return &userFixture{
		db:       db,
		clock:    clock,
		notifier: notifier,
		jwt:      jwtService,
		service: user.NewUserService(
			user.NewUserRepository(db),
			userpackage.NewUserPackageRepository(db),
			jwtService,
			notifier,
			clock,
		),
	}
}

func (f *userFixture) register(t *testing.T, email string) string {
	t.Helper()
	res, err := f.service.Register(context.Background(), domain.RegisterRequest{
		Name:     "Lan",
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.True(t, res.RequiresOTP)
	f.notifier.Wait(t, 1)
	return f.notifier.LastOTP().OTP
}

func TestRegisterVerifyLogin(t *testing.T) {
	f := newUserFixture(t)
	otp := f.register(t, "  Lan@Example.com ")
	assert.Len(t, otp, 6)
	assert.Equal(t, "lan@example.com", f.notifier.LastOTP().Email)

	_, err := f.service.Login(context.Background(), domain.LoginRequest{Email: "lan@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrUserNotVerified)

	wrong := "000000"
	if otp == wrong {
		wrong = "111111"
	}
	_, err = f.service.VerifyOTP(context.Background(), domain.VerifyOTPRequest{Email: "lan@example.com", OTP: wrong})
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)

	verified, err := f.service.VerifyOTP(context.Background(), domain.VerifyOTPRequest{Email: "lan@example.com", OTP: otp})
	require.NoError(t, err)
	assert.True(t, verified.User.IsVerified)
	assert.Equal(t, domain.RoleUser, verified.User.Role)

	userID, role, err := f.jwt.GetUserIDByToken(verified.Token)
	require.NoError(t, err)
	assert.Equal(t, verified.User.ID, userID)
	assert.Equal(t, domain.RoleUser, role)

	logged, err := f.service.Login(context.Background(), domain.LoginRequest{Email: "LAN@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, verified.User.ID, logged.User.ID)

	_, err = f.service.Login(context.Background(), domain.LoginRequest{Email: "lan@example.com", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.service.Login(context.Background(), domain.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newUserFixture(t)
	f.register(t, "lan@example.com")

	_, err := f.service.Register(context.Background(), domain.RegisterRequest{
		Name:     "Other",
		Email:    "LAN@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestVerifyOTP_Expired(t *testing.T) {
	f := newUserFixture(t)
	otp := f.register(t, "lan@example.com")

	f.clock.Advance(11 * time.Minute)
	_, err := f.service.VerifyOTP(context.Background(), domain.VerifyOTPRequest{Email: "lan@example.com", OTP: otp})
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)

	alreadyVerified, err := f.service.ResendOTP(context.Background(), domain.ResendOTPRequest{Email: "lan@example.com"})
	require.NoError(t, err)
	assert.False(t, alreadyVerified)
	f.notifier.Wait(t, 1)

	fresh := f.notifier.LastOTP().OTP
	_, err = f.service.VerifyOTP(context.Background(), domain.VerifyOTPRequest{Email: "lan@example.com", OTP: fresh})
	require.NoError(t, err)

	alreadyVerified, err = f.service.ResendOTP(context.Background(), domain.ResendOTPRequest{Email: "lan@example.com"})
	require.NoError(t, err)
	assert.True(t, alreadyVerified)

	_, err = f.service.ResendOTP(context.Background(), domain.ResendOTPRequest{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestBlockUser(t *testing.T) {
	f := newUserFixture(t)
	admin := testutil.CreateUser(t, f.db, domain.RoleAdmin)
	member := testutil.CreateUser(t, f.db, domain.RoleUser)

	res, err := f.service.BlockUser(context.Background(), member.ID.String())
	require.NoError(t, err)
	assert.True(t, res.IsBlocked)

	blocked, err := f.service.IsBlocked(context.Background(), member.ID.String())
	require.NoError(t, err)
	assert.True(t, blocked)

	_, err = f.service.BlockUser(context.Background(), admin.ID.String())
	assert.ErrorIs(t, err, domain.ErrCannotBlockAdmin)

	res, err = f.service.UnblockUser(context.Background(), member.ID.String())
	require.NoError(t, err)
	assert.False(t, res.IsBlocked)

	_, err = f.service.BlockUser(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_BlockedUser(t *testing.T) {
	f := newUserFixture(t)
	hashed, err := user.HashPassword("secret123")
	require.NoError(t, err)
	member := testutil.CreateUser(t, f.db, domain.RoleUser)
	require.NoError(t, f.db.Model(member).Updates(map[string]any{"password": hashed, "is_blocked": true}).Error)

	_, err = f.service.Login(context.Background(), domain.LoginRequest{Email: member.Email, Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrUserBlocked)
}

func TestMeAndGetUser_IncludeActivePackage(t *testing.T) {
	f := newUserFixture(t)
	now := f.clock.Now()
	member := testutil.CreateUser(t, f.db, domain.RoleUser)

	me, err := f.service.Me(context.Background(), member.ID.String())
	require.NoError(t, err)
	assert.Nil(t, me.ActivePackage)

	p := testutil.CreateUserPackage(t, f.db, member.ID, entities.PackageTypeNormal, 5, now, now.AddDate(0, 0, 10))
	testutil.CreateUserPackage(t, f.db, member.ID, entities.PackageTypeNoRice, 5, now.Add(-time.Hour), now.AddDate(0, 0, 10))
	require.NoError(t, f.db.Model(member).Update("active_package_id", p.ID).Error)

	me, err = f.service.Me(context.Background(), member.ID.String())
	require.NoError(t, err)
	require.NotNil(t, me.ActivePackage)
	assert.Equal(t, p.ID.String(), me.ActivePackage.ID)
	assert.True(t, me.ActivePackage.IsUsable)

	detail, err := f.service.GetUser(context.Background(), member.ID.String())
	require.NoError(t, err)
	assert.Len(t, detail.Packages, 2)
	assert.Equal(t, p.ID.String(), detail.Packages[0].ID)
}

func TestGetUsers_Filters(t *testing.T) {
	f := newUserFixture(t)
	testutil.CreateUser(t, f.db, domain.RoleAdmin)
	member := testutil.CreateUser(t, f.db, domain.RoleUser)
	blocked := testutil.CreateUser(t, f.db, domain.RoleUser)
	require.NoError(t, f.db.Model(blocked).Update("is_blocked", true).Error)

	users, err := f.service.GetUsers(context.Background(), domain.ListUsersRequest{Role: domain.RoleUser})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	isBlocked := true
	users, err = f.service.GetUsers(context.Background(), domain.ListUsersRequest{IsBlocked: &isBlocked})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, blocked.ID.String(), users[0].ID)

	users, err = f.service.GetUsers(context.Background(), domain.ListUsersRequest{Search: member.Email[:8]})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, member.ID.String(), users[0].ID)
}
