package ledger

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gobudget/models"
)

// openTestDB returns an isolated in-memory database, migrated and named
// after the test so parallel tests never share state.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func makeUser(t *testing.T, db *gorm.DB, name string, super bool) *models.User {
	t.Helper()
	u := models.User{Username: name, HashedPassword: []byte("x"), IsSuperuser: super}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return &u
}

func makeBudget(t *testing.T, db *gorm.DB, name string, owner *models.User) *models.Budget {
	t.Helper()
	b := models.Budget{Name: name}
	if owner != nil {
		b.OwnerID = &owner.ID
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("create budget %s: %v", name, err)
	}
	return &b
}

func makeAccount(t *testing.T, db *gorm.DB, budget *models.Budget, name, start string, locked bool) *models.Account {
	t.Helper()
	a := models.Account{Name: name, BudgetID: budget.ID, StartBalance: dec(t, start), Locked: locked}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("create account %s: %v", name, err)
	}
	return &a
}

func makeExpense(t *testing.T, db *gorm.DB, budget *models.Budget, account *models.Account, name, amount string, created time.Time) *models.Expense {
	t.Helper()
	e := models.Expense{
		Name:     name,
		BudgetID: budget.ID,
		Created:  created,
		Amount:   dec(t, amount),
	}
	if account != nil {
		e.AccountID = &account.ID
	}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("create expense %s: %v", name, err)
	}
	return &e
}

func makeCategory(t *testing.T, db *gorm.DB, budget *models.Budget, name string, parent *models.Category) *models.Category {
	t.Helper()
	c := models.Category{Name: name, BudgetID: budget.ID}
	if parent != nil {
		c.ParentID = &parent.ID
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return &c
}
