package domain

import (
	"context"
	"testing"
)

func TestIsEntitledEmptyRef(t *testing.T) {
	ledger := newMockLedger()
	// a row with an empty-ish reference must never be reachable
	svc := NewEntitlementService(ledger)

	ok, err := svc.IsEntitled(context.Background(), "abc", "")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("empty paymentRef reported entitled")
	}
}

func TestIsEntitledNoPurchase(t *testing.T) {
	svc := NewEntitlementService(newMockLedger())

	ok, err := svc.IsEntitled(context.Background(), "abc", "pi_unknown")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("entitled without a purchase row")
	}
}

func TestIsEntitledAfterReconcile(t *testing.T) {
	ledger := newMockLedger()
	if err := ledger.RecordIfAbsent(context.Background(), "abc", "pi_1", nil, 2.99); err != nil {
		t.Fatal(err)
	}
	svc := NewEntitlementService(ledger)

	ok, err := svc.IsEntitled(context.Background(), "abc", "pi_1")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("not entitled after recorded purchase")
	}

	// the same reference does not entitle a different track
	ok, err = svc.IsEntitled(context.Background(), "other", "pi_1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("reference entitled the wrong track")
	}
}
