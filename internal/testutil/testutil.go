// Package testutil provides an in-memory database and fixtures for service tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"Meal-Preorder-Backend/cmd/config"
	migration "Meal-Preorder-Backend/cmd/database/migrate"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/utils"
	"Meal-Preorder-Backend/internal/utils/mailing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory sqlite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.ConnectMemoryDB(uuid.NewString())
	require.NoError(t, err)
	db.Logger = logger.Default.LogMode(logger.Silent)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

// CivilAt returns the instant of the given UTC+7 wall clock time.
func CivilAt(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, utils.CivilZone).UTC()
}

type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now.UTC()
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type (
	SentOTP struct {
		Email string
		Name  string
		OTP   string
	}

	// FakeNotifier records notifications and can be told to fail.
	FakeNotifier struct {
		mu        sync.Mutex
		Err       error
		OTPs      []SentOTP
		Approvals []mailing.PurchaseApprovedMail
		sent      chan struct{}
	}
)

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{sent: make(chan struct{}, 64)}
}

func (n *FakeNotifier) SendOTP(_ context.Context, toEmail, name, otp string) error {
	n.mu.Lock()
	n.OTPs = append(n.OTPs, SentOTP{Email: toEmail, Name: name, OTP: otp})
	err := n.Err
	n.mu.Unlock()
	n.sent <- struct{}{}
	return err
}

func (n *FakeNotifier) NotifyPurchaseApproved(_ context.Context, mail mailing.PurchaseApprovedMail) error {
	n.mu.Lock()
	n.Approvals = append(n.Approvals, mail)
	err := n.Err
	n.mu.Unlock()
	n.sent <- struct{}{}
	return err
}

// Wait blocks until count notifications were delivered or fails t after a second.
func (n *FakeNotifier) Wait(t *testing.T, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		select {
		case <-n.sent:
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for notification %d", i+1)
		}
	}
}

func (n *FakeNotifier) LastOTP() SentOTP {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.OTPs) == 0 {
		return SentOTP{}
	}
	return n.OTPs[len(n.OTPs)-1]
}

func (n *FakeNotifier) ApprovalCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Approvals)
}

func CreateUser(t *testing.T, db *gorm.DB, role string) *entities.User {
	t.Helper()
	id := uuid.New()
	u := &entities.User{
		ID:         id,
		Name:       "User " + id.String()[:8],
		Email:      id.String()[:8] + "@example.com",
		Password:   "not-a-hash",
		Role:       role,
		IsVerified: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateMealPackage(t *testing.T, db *gorm.DB, packageType string, turns, validDays int, price int64) *entities.MealPackage {
	t.Helper()
	p := &entities.MealPackage{
		ID:          uuid.New(),
		Name:        fmt.Sprintf("%d turns %s", turns, packageType),
		Turns:       turns,
		Price:       decimal.NewFromInt(price),
		ValidDays:   validDays,
		PackageType: packageType,
		IsActive:    true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreateUserPackage issues a ledger entry for userID from a fresh template.
func CreateUserPackage(t *testing.T, db *gorm.DB, userID uuid.UUID, packageType string, turns int, purchasedAt, expiresAt time.Time) *entities.UserPackage {
	t.Helper()
	template := CreateMealPackage(t, db, packageType, turns, 30, 100000)
	p := &entities.UserPackage{
		ID:             uuid.New(),
		UserID:         userID,
		MealPackageID:  template.ID,
		PackageType:    packageType,
		RemainingTurns: turns,
		PurchasedAt:    purchasedAt.UTC(),
		ExpiresAt:      expiresAt.UTC(),
		IsActive:       true,
	}
	require.NoError(t, db.Omit("User", "MealPackage").Create(p).Error)
	return p
}

// CreateMenu stores a menu for the civil day containing day with one item per name.
func CreateMenu(t *testing.T, db *gorm.DB, creatorID uuid.UUID, day time.Time, beginAt, endAt string, names ...string) *entities.DailyMenu {
	t.Helper()
	m := &entities.DailyMenu{
		ID:         uuid.New(),
		MenuDate:   utils.StartOfDay(day).UTC(),
		RawContent: "test menu",
		BeginAt:    beginAt,
		EndAt:      endAt,
		CreatedBy:  creatorID,
	}
	require.NoError(t, db.Omit("Creator", "MenuItems").Create(m).Error)

	for i, name := range names {
		item := &entities.MenuItem{
			ID:          uuid.New(),
			DailyMenuID: m.ID,
			Name:        name,
			Category:    entities.MenuCategoryDaily,
			Position:    i,
		}
		require.NoError(t, db.Create(item).Error)
		m.MenuItems = append(m.MenuItems, item)
	}
	return m
}
