package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gobudget/models"
)

// Stats are the dashboard headline numbers. Monetary values are preformatted
// strings with exactly two fraction digits in the active locale.
type Stats struct {
	Expenses        string `json:"expenses"`
	RemainingBudget string `json:"remaining_budget"`
	TotalBudget     string `json:"total_budget"`
	NumAccounts     int    `json:"num_accounts"`
}

// History is the chronological chart series: one point per expense, each
// point carrying the expense amount plus the balance of every unlocked
// account as of that expense's date.
type History struct {
	Series []map[string]any `json:"series"`
	YKeys  []string         `json:"ykeys"`
	Labels []string         `json:"labels"`
	Lang   string           `json:"lang"`
}

// Charts bundles the dashboard chart payloads. Distribution is a category
// breakdown that is not populated yet; the key stays in the shape so clients
// can rely on it.
type Charts struct {
	History      History          `json:"history"`
	Distribution []map[string]any `json:"distribution"`
}

// Dashboard is the full payload of the dashboard data endpoint.
type Dashboard struct {
	Stats  Stats  `json:"stats"`
	Charts Charts `json:"charts"`
}

// ComputeDashboard aggregates a budget's unlocked accounts into headline
// stats and the history chart series. Locked accounts are excluded entirely;
// their balances and expenses appear nowhere in the result. The computation
// is read-only.
//
// Stats count lifetime expense totals, not balances as of today: the
// remaining budget is what is left of the summed start balances after every
// expense ever booked against an unlocked account.
func ComputeDashboard(db *gorm.DB, budget *models.Budget, lang string) (*Dashboard, error) {
	var accounts []models.Account
	err := db.Where("budget_id = ? AND locked = ?", budget.ID, false).
		Order("id").Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	accountIDs := make([]uint, 0, len(accounts))
	totalBudget := decimal.Zero
	for _, a := range accounts {
		accountIDs = append(accountIDs, a.ID)
		totalBudget = totalBudget.Add(a.StartBalance)
	}

	var expenses []models.Expense
	if len(accountIDs) > 0 {
		err = db.Where("account_id IN ?", accountIDs).
			Order("created, id").Find(&expenses).Error
		if err != nil {
			return nil, err
		}
	}

	spent := decimal.Zero
	for _, e := range expenses {
		spent = spent.Add(e.Amount)
	}

	series := make([]map[string]any, 0, len(expenses))
	for _, e := range expenses {
		point := map[string]any{
			"x":       e.Created.Format("2006/01/02"),
			"expense": e.Amount.InexactFloat64(),
		}
		for i := range accounts {
			balance, err := BalanceAt(db, &accounts[i], e.Created)
			if err != nil {
				return nil, err
			}
			point[accountKey(accounts[i].ID)] = balance.InexactFloat64()
		}
		series = append(series, point)
	}

	ykeys := []string{"expense"}
	labels := []string{Translate(db, "EXPENSES", lang)}
	for _, a := range accounts {
		ykeys = append(ykeys, accountKey(a.ID))
		labels = append(labels, a.Name)
	}

	return &Dashboard{
		Stats: Stats{
			Expenses:        FormatAmount(spent, lang),
			RemainingBudget: FormatAmount(totalBudget.Sub(spent), lang),
			TotalBudget:     FormatAmount(totalBudget, lang),
			NumAccounts:     len(accounts),
		},
		Charts: Charts{
			History: History{
				Series: series,
				YKeys:  ykeys,
				Labels: labels,
				Lang:   lang,
			},
			Distribution: []map[string]any{},
		},
	}, nil
}

func accountKey(id uint) string {
	return fmt.Sprintf("acc_%d", id)
}
