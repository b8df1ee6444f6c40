package ledger

import "gobudget/models"

// CanRead reports whether user may view the budget: superusers always, the
// owner always, and anyone on the read access list. The budget must be
// loaded with its access associations.
func CanRead(budget *models.Budget, user *models.User) bool {
	return user.IsSuperuser || isOwner(budget, user) || containsUser(budget.ReadAccess, user.ID)
}

// CanWrite reports whether user may change the budget's contents: superusers
// always, the owner always, and anyone on the write access list. Write
// permission does not imply read permission; the lists are independent.
func CanWrite(budget *models.Budget, user *models.User) bool {
	return user.IsSuperuser || isOwner(budget, user) || containsUser(budget.WriteAccess, user.ID)
}

func isOwner(budget *models.Budget, user *models.User) bool {
	return budget.OwnerID != nil && *budget.OwnerID == user.ID
}

func containsUser(users []models.User, id uint) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}
