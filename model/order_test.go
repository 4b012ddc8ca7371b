package model

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPending, OrderShipped, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderDelivered, false},
		{OrderPending, OrderReturned, false},

		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderReturned, true},
		{OrderShipped, OrderCancelled, true},
		{OrderShipped, OrderPending, false},

		{OrderDelivered, OrderReturned, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderReturned, OrderCancelled, false},
		{OrderReturned, OrderShipped, false},
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderShipped, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v; want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []OrderStatus{OrderDelivered, OrderReturned, OrderCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []OrderStatus{OrderPending, OrderShipped} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestReleasesStock(t *testing.T) {
	if !OrderCancelled.ReleasesStock() || !OrderReturned.ReleasesStock() {
		t.Fatal("Cancelled and Returned must release stock")
	}
	if OrderDelivered.ReleasesStock() || OrderShipped.ReleasesStock() || OrderPending.ReleasesStock() {
		t.Fatal("only Cancelled and Returned release stock")
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, tok := range []string{"Pending", "Shipped", "Delivered", "Returned", "Cancelled"} {
		got, ok := ParseOrderStatus(tok)
		if !ok || string(got) != tok {
			t.Errorf("ParseOrderStatus(%q) = %q, %v", tok, got, ok)
		}
	}
	for _, tok := range []string{"", "pending", "SHIPPED", "Refunded"} {
		if _, ok := ParseOrderStatus(tok); ok {
			t.Errorf("ParseOrderStatus(%q) should fail", tok)
		}
	}
}
