package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gobudget/models"
)

// BalanceAt computes the account's balance as of ref: the start balance minus
// the sum of every expense on the account dated on or before ref. The
// comparison is inclusive, so an expense dated exactly on the reference day
// counts. An account without expenses yields its start balance unchanged.
//
// The sum is taken in decimal space in Go rather than via SQL SUM so the
// arithmetic stays exact on every supported database.
func BalanceAt(db *gorm.DB, account *models.Account, ref time.Time) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := db.Model(&models.Expense{}).
		Where("account_id = ? AND created <= ?", account.ID, ref).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}
	spent := decimal.Zero
	for _, a := range amounts {
		spent = spent.Add(a)
	}
	return account.StartBalance.Sub(spent), nil
}

// CurrentBalance is BalanceAt with the current time as reference.
func CurrentBalance(db *gorm.DB, account *models.Account) (decimal.Decimal, error) {
	return BalanceAt(db, account, time.Now())
}

// SpentOn returns the lifetime total of all expenses ever booked against the
// account, regardless of date.
func SpentOn(db *gorm.DB, account *models.Account) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := db.Model(&models.Expense{}).
		Where("account_id = ?", account.ID).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}
