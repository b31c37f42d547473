package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func lineItem(total string) LineItem {
	lt, _ := decimal.NewFromString(total)
	return LineItem{
		ProductID: uuid.New(),
		Name:      "Termo Matterhorn 400ml",
		Quantity:  50,
		LineTotal: lt,
	}
}

func TestCartAddAssignsFreshIDs(t *testing.T) {
	var cart Cart

	first := cart.Add(lineItem("100"))
	second := cart.Add(lineItem("200"))

	if first == uuid.Nil || second == uuid.Nil {
		t.Fatal("expected non-nil cart ids")
	}
	if first == second {
		t.Fatal("expected distinct cart ids for each add")
	}
	if cart.Size() != 2 {
		t.Fatalf("expected 2 items, got %d", cart.Size())
	}
	if cart.Items[0].CartID != first || cart.Items[1].CartID != second {
		t.Fatal("expected insertion order to be preserved")
	}
}

func TestCartRemoveIsIdempotent(t *testing.T) {
	var cart Cart
	id := cart.Add(lineItem("100"))
	cart.Add(lineItem("200"))

	cart.Remove(id)
	if cart.Size() != 1 {
		t.Fatalf("expected 1 item after remove, got %d", cart.Size())
	}

	cart.Remove(id)
	cart.Remove(uuid.New())
	if cart.Size() != 1 {
		t.Fatalf("expected repeat removes to be no-ops, got %d items", cart.Size())
	}
}

func TestCartGrandTotalIsDerived(t *testing.T) {
	var cart Cart

	if !cart.GrandTotal().IsZero() {
		t.Fatalf("expected empty cart total 0, got %s", cart.GrandTotal())
	}

	cart.Add(lineItem("1785.00"))
	id := cart.Add(lineItem("214.50"))

	if got := cart.GrandTotal().StringFixed(2); got != "1999.50" {
		t.Fatalf("expected total 1999.50, got %s", got)
	}

	cart.Remove(id)
	if got := cart.GrandTotal().StringFixed(2); got != "1785.00" {
		t.Fatalf("expected total 1785.00 after remove, got %s", got)
	}
}

func TestCartSnapshotIsACopy(t *testing.T) {
	var cart Cart
	cart.Add(lineItem("100"))

	snap := cart.Snapshot()
	snap[0].Name = "changed"

	if cart.Items[0].Name == "changed" {
		t.Fatal("expected snapshot mutation not to affect the cart")
	}
}
