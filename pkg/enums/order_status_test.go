package enums

import "testing"

func TestOrderStatusNext(t *testing.T) {
	cases := []struct {
		from OrderStatus
		want OrderStatus
		ok   bool
	}{
		{OrderStatusNew, OrderStatusInProgress, true},
		{OrderStatusInProgress, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusReady, OrderStatusReady, false},
	}

	for _, tc := range cases {
		got, ok := tc.from.Next()
		if got != tc.want || ok != tc.ok {
			t.Errorf("Next(%s) = (%s, %v), want (%s, %v)", tc.from, got, ok, tc.want, tc.ok)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	for _, status := range AllOrderStatuses() {
		if status == OrderStatusReady {
			if !status.IsTerminal() {
				t.Errorf("%s should be terminal", status)
			}
			continue
		}
		if status.IsTerminal() {
			t.Errorf("%s should not be terminal", status)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, err := ParseOrderStatus("PREPARING"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseOrderStatus("CANCELLED"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
