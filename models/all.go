package models

// All returns every model in migration-safe order: referenced tables first
// so foreign keys can be applied as each table is created.
func All() []any {
	return []any{
		&User{},
		&RefreshToken{},
		&Currency{},
		&Budget{},
		&Category{},
		&Account{},
		&Expense{},
		&ExpenseModification{},
		&TranslationEntry{},
	}
}
