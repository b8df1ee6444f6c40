package ledger

import (
	"testing"

	"gobudget/models"
)

func TestAccessStranger(t *testing.T) {
	db := openTestDB(t)
	owner := makeUser(t, db, "owner", false)
	stranger := makeUser(t, db, "stranger", false)
	budget := makeBudget(t, db, "b", owner)

	if CanRead(budget, stranger) {
		t.Fatal("stranger must not read")
	}
	if CanWrite(budget, stranger) {
		t.Fatal("stranger must not write")
	}
}

func TestAccessOwner(t *testing.T) {
	db := openTestDB(t)
	owner := makeUser(t, db, "owner", false)
	budget := makeBudget(t, db, "b", owner)

	if !CanRead(budget, owner) || !CanWrite(budget, owner) {
		t.Fatal("owner must read and write")
	}
}

func TestAccessSuperuser(t *testing.T) {
	db := openTestDB(t)
	owner := makeUser(t, db, "owner", false)
	admin := makeUser(t, db, "admin", true)
	budget := makeBudget(t, db, "b", owner)

	if !CanRead(budget, admin) || !CanWrite(budget, admin) {
		t.Fatal("superuser must read and write every budget")
	}
}

func TestAccessReadListGrantsReadOnly(t *testing.T) {
	db := openTestDB(t)
	owner := makeUser(t, db, "owner", false)
	viewer := makeUser(t, db, "viewer", false)
	budget := makeBudget(t, db, "b", owner)

	budget.ReadAccess = []models.User{*viewer}

	if !CanRead(budget, viewer) {
		t.Fatal("read access list member must read")
	}
	if CanWrite(budget, viewer) {
		t.Fatal("read access alone must not grant write")
	}
}

func TestAccessWriteListGrantsWriteOnly(t *testing.T) {
	db := openTestDB(t)
	owner := makeUser(t, db, "owner", false)
	editor := makeUser(t, db, "editor", false)
	budget := makeBudget(t, db, "b", owner)

	budget.WriteAccess = []models.User{*editor}

	if CanRead(budget, editor) {
		t.Fatal("write access alone must not grant read; the lists are independent")
	}
	if !CanWrite(budget, editor) {
		t.Fatal("write access list member must write")
	}
}

func TestAccessOwnerlessBudget(t *testing.T) {
	db := openTestDB(t)
	user := makeUser(t, db, "someone", false)
	budget := makeBudget(t, db, "orphaned", nil)

	if CanRead(budget, user) || CanWrite(budget, user) {
		t.Fatal("a budget without owner grants nothing to regular users")
	}
}
