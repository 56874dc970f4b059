package query

import (
	"errors"
	"testing"

	"ai-recorddesk-be/pkg/schema"
	"ai-recorddesk-be/pkg/store"
)

func lookup(t *testing.T, name string) *schema.CollectionSchema {
	t.Helper()
	s, err := schema.Default().Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", name, err)
	}
	return s
}

func TestTranslateIdentifierShortCircuit(t *testing.T) {
	s := lookup(t, "purchase_order")
	q, err := Translate(s, "show me 507f1f77bcf86cd799439011 please")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	cond, ok := q.Filter["_id"]
	if !ok {
		t.Fatalf("filter = %v, want _id condition", q.Filter)
	}
	if cond.Value != "507f1f77bcf86cd799439011" {
		t.Errorf("_id = %q", cond.Value)
	}
	if q.Limit != 1 {
		t.Errorf("Limit = %d, want 1", q.Limit)
	}
}

func TestTranslateFieldFilters(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		text       string
		wantField  string
		wantValue  string
	}{
		{"explicit pair", "purchase_order", "purchase orders with vendor_id: V-88", "vendor_id", "V-88"},
		{"is form", "order_tracking", "orders where current_status is shipped", "current_status", "shipped"},
		{"email shape", "user_registration", "find the user priya@acme.com", "email", "priya@acme.com"},
		{"employee id shape", "employee_leave_request", "leave requests for EMP042", "employee_id", "EMP042"},
		{"customer id shape", "customer_support_ticket", "tickets raised by cust77", "customer_id", "CUST77"},
		{"single date field binds", "training_registration", "trainings on 2025-03-10", "date", "2025-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := lookup(t, tt.collection)
			q, err := Translate(s, tt.text)
			if err != nil {
				t.Fatalf("Translate failed: %v", err)
			}

			cond, ok := q.Filter[tt.wantField]
			if !ok {
				t.Fatalf("filter = %v, want %s", q.Filter, tt.wantField)
			}
			if cond.Op != store.OpEquals || cond.Value != tt.wantValue {
				t.Errorf("condition = %+v, want eq %q", cond, tt.wantValue)
			}
			if q.Limit <= 0 || q.Limit > store.DefaultQueryLimit {
				t.Errorf("Limit = %d, want within (0, %d]", q.Limit, store.DefaultQueryLimit)
			}
		})
	}
}

func TestTranslateAmbiguousDateNotGuessed(t *testing.T) {
	// employee_leave_request has start_date and end_date; a bare date must
	// not be assigned to either.
	s := lookup(t, "employee_leave_request")
	_, err := Translate(s, "leave around 2025-06-01")
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("err = %v, want ErrAmbiguous", err)
	}
}

func TestTranslateListing(t *testing.T) {
	s := lookup(t, "meeting_scheduler")
	q, err := Translate(s, "list all meetings")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if len(q.Filter) != 0 {
		t.Errorf("filter = %v, want empty", q.Filter)
	}
	if q.Sort == nil || q.Sort.Field != "created_at" || !q.Sort.Desc {
		t.Errorf("sort = %+v, want created_at desc", q.Sort)
	}
	if q.Limit != store.DefaultQueryLimit {
		t.Errorf("Limit = %d, want %d", q.Limit, store.DefaultQueryLimit)
	}
}

func TestTranslateAmbiguous(t *testing.T) {
	s := lookup(t, "purchase_order")
	_, err := Translate(s, "hmm what about the thing from before")
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("err = %v, want ErrAmbiguous", err)
	}
}

func TestTranslateUndeclaredFieldIgnored(t *testing.T) {
	s := lookup(t, "faq_management")
	_, err := Translate(s, "favorite_color: blue")
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("err = %v, want ErrAmbiguous", err)
	}
}

func TestIdentifierToken(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"507f1f77bcf86cd799439011", "507f1f77bcf86cd799439011", true},
		{"record 65a1b2c3d4e5f6a7b8c9d0e1 please", "65a1b2c3d4e5f6a7b8c9d0e1", true},
		{"507f1f77bcf86cd79943901", "", false},  // 23 chars
		{"zzzf1f77bcf86cd799439011", "", false}, // not hex
		{"no id here", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := IdentifierToken(tt.text)
			if got != tt.want || ok != tt.ok {
				t.Errorf("IdentifierToken(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}
