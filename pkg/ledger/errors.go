package ledger

import "errors"

// ErrNotEnoughMoney is returned when an expense would push its account's
// balance at the expense date below zero.
var ErrNotEnoughMoney = errors.New("not enough money")
