package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gobudget/models"
)

// Seeds a demo budget with two accounts, a small category tree and a week of
// expenses. Run against a migrated database.
func main() {
	db, err := openDB()
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	hpw, _ := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	demo := models.User{Username: "demo", HashedPassword: hpw}
	if err := db.Where("username = ?", "demo").FirstOrCreate(&demo).Error; err != nil {
		log.Fatalf("seed user: %v", err)
	}

	var euro models.Currency
	if err := db.Where("name = ?", "Euro").First(&euro).Error; err != nil {
		log.Fatalf("currency Euro missing, run migrate first: %v", err)
	}

	ownerID := demo.ID
	currencyID := euro.ID
	budget := models.Budget{Name: "Demo Budget", OwnerID: &ownerID, CurrencyID: &currencyID, Note: "seeded demo data"}
	if err := db.Where("name = ?", budget.Name).FirstOrCreate(&budget).Error; err != nil {
		log.Fatalf("seed budget: %v", err)
	}

	checking := seedAccount(db, budget.ID, "Checking", "1200.00")
	seedAccount(db, budget.ID, "Cash", "150.00")

	groceries := seedCategory(db, budget.ID, "Groceries", nil)
	seedCategory(db, budget.ID, "Vegetables", &groceries.ID)
	household := seedCategory(db, budget.ID, "Household", nil)

	day := time.Now().AddDate(0, 0, -7)
	amounts := []string{"23.40", "8.99", "54.10", "12.00", "31.75"}
	names := []string{"Supermarket", "Bakery", "Weekly shop", "Cleaning supplies", "Market"}
	cats := []uint{groceries.ID, groceries.ID, groceries.ID, household.ID, groceries.ID}
	for i := range amounts {
		amount, _ := decimal.NewFromString(amounts[i])
		accountID := checking.ID
		categoryID := cats[i]
		userID := demo.ID
		e := models.Expense{
			Name:        names[i],
			BudgetID:    budget.ID,
			CategoryID:  &categoryID,
			Created:     day.AddDate(0, 0, i),
			Amount:      amount,
			AuthorID:    &userID,
			UpdatedByID: &userID,
			AccountID:   &accountID,
		}
		var cnt int64
		db.Model(&models.Expense{}).Where("budget_id = ? AND name = ?", budget.ID, e.Name).Count(&cnt)
		if cnt == 0 {
			if err := db.Create(&e).Error; err != nil {
				log.Printf("seed expense %s: %v", e.Name, err)
			}
		}
	}
	fmt.Println("demo data seeded: user=demo password=demo123 budget=Demo Budget")
}

func seedAccount(db *gorm.DB, budgetID uint, name, balance string) *models.Account {
	start, _ := decimal.NewFromString(balance)
	a := models.Account{Name: name, BudgetID: budgetID, StartBalance: start}
	if err := db.Where("budget_id = ? AND name = ?", budgetID, name).FirstOrCreate(&a).Error; err != nil {
		log.Fatalf("seed account %s: %v", name, err)
	}
	return &a
}

func seedCategory(db *gorm.DB, budgetID uint, name string, parentID *uint) *models.Category {
	cat := models.Category{Name: name, BudgetID: budgetID, ParentID: parentID}
	if err := db.Where("budget_id = ? AND name = ?", budgetID, name).FirstOrCreate(&cat).Error; err != nil {
		log.Fatalf("seed category %s: %v", name, err)
	}
	return &cat
}

func openDB() (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "gobudget.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN not set in environment")
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}
