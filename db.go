package main

import (
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gobudget/models"
)

var db *gorm.DB

func initDB() {
	var err error
	switch os.Getenv("DB_DRIVER") {
	case "sqlite":
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "gobudget.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			log.Fatal("failed to open sqlite database:", err)
		}
		if sqlDB, derr := db.DB(); derr == nil {
			_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")
		}
	default:
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			log.Fatal("DB_DSN is not set. Provide a Postgres DSN in DB_DSN or set DB_DRIVER=sqlite.")
		}
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatal("failed to connect postgres database:", err)
		}
	}

	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		for _, m := range models.All() {
			if err := db.AutoMigrate(m); err != nil {
				log.Printf("migration warning (%T): %v", m, err)
			}
		}
	}
	seedDB()
}

func seedDB() {
	// Reference currencies
	currencies := []models.Currency{
		{Name: "Euro", Symbol: "€"},
		{Name: "US Dollar", Symbol: "$"},
	}
	for _, cur := range currencies {
		var cnt int64
		db.Model(&models.Currency{}).Where("name = ?", cur.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&cur)
		}
	}

	// Label/message translations used by the API
	for _, tr := range defaultTranslations {
		var cnt int64
		db.Model(&models.TranslationEntry{}).
			Where("name = ? AND lang = ?", tr.Name, tr.Lang).Count(&cnt)
		if cnt == 0 {
			db.Create(&tr)
		}
	}

	// Seed an initial superuser when no user exists yet
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin := models.User{
			Username:       "admin",
			HashedPassword: hashedPassword,
			IsSuperuser:    true,
		}
		db.Create(&admin)
		log.Println("Seeded admin user: username=admin, password=admin123")
	}
}

var defaultTranslations = []models.TranslationEntry{
	{Name: "EXPENSES", Text: "Expenses", Lang: "en"},
	{Name: "EXPENSES", Text: "Ausgaben", Lang: "de"},
	{Name: "BALANCE", Text: "Balance", Lang: "en"},
	{Name: "BALANCE", Text: "Kontostand", Lang: "de"},
	{Name: "PERMISSION_DENIED", Text: "Permission denied", Lang: "en"},
	{Name: "PERMISSION_DENIED", Text: "Zugriff verweigert", Lang: "de"},
	{Name: "NOT_ENOUGH_MONEY", Text: "Not enough money", Lang: "en"},
	{Name: "NOT_ENOUGH_MONEY", Text: "Nicht genug Geld", Lang: "de"},
	{Name: "NAME_ALREADY_IN_USE", Text: "Name already in use", Lang: "en"},
	{Name: "NAME_ALREADY_IN_USE", Text: "Name bereits vergeben", Lang: "de"},
	{Name: "ACCOUNT_CREATED", Text: "Account created", Lang: "en"},
	{Name: "ACCOUNT_CREATED", Text: "Konto angelegt", Lang: "de"},
	{Name: "ACCOUNT_UPDATED", Text: "Account updated", Lang: "en"},
	{Name: "ACCOUNT_UPDATED", Text: "Konto aktualisiert", Lang: "de"},
	{Name: "ACCOUNT_DELETED", Text: "Account deleted", Lang: "en"},
	{Name: "ACCOUNT_DELETED", Text: "Konto gelöscht", Lang: "de"},
	{Name: "CATEGORY_CREATED", Text: "Category created", Lang: "en"},
	{Name: "CATEGORY_CREATED", Text: "Kategorie angelegt", Lang: "de"},
	{Name: "CATEGORY_UPDATED", Text: "Category updated", Lang: "en"},
	{Name: "CATEGORY_UPDATED", Text: "Kategorie aktualisiert", Lang: "de"},
	{Name: "CATEGORY_DELETED", Text: "Category deleted", Lang: "en"},
	{Name: "CATEGORY_DELETED", Text: "Kategorie gelöscht", Lang: "de"},
	{Name: "EXPENSE_CREATED", Text: "Expense created", Lang: "en"},
	{Name: "EXPENSE_CREATED", Text: "Ausgabe angelegt", Lang: "de"},
	{Name: "EXPENSE_UPDATED", Text: "Expense updated", Lang: "en"},
	{Name: "EXPENSE_UPDATED", Text: "Ausgabe aktualisiert", Lang: "de"},
	{Name: "EXPENSE_DELETED", Text: "Expense deleted", Lang: "en"},
	{Name: "EXPENSE_DELETED", Text: "Ausgabe gelöscht", Lang: "de"},
	{Name: "BUDGET_UPDATED", Text: "Budget updated", Lang: "en"},
	{Name: "BUDGET_UPDATED", Text: "Budget aktualisiert", Lang: "de"},
	{Name: "NOT_FOUND", Text: "Not found", Lang: "en"},
	{Name: "NOT_FOUND", Text: "Nicht gefunden", Lang: "de"},
	{Name: "HISTORY", Text: "History", Lang: "en"},
	{Name: "HISTORY", Text: "Verlauf", Lang: "de"},
}
