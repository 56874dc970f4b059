package schema

import (
	"errors"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	r := Default()

	names := r.Names()
	if len(names) != 49 {
		t.Fatalf("catalog size = %d, want 49", len(names))
	}

	// Every entry must be resolvable and carry at least one required field.
	for _, n := range names {
		s, err := r.Lookup(n)
		if err != nil {
			t.Errorf("Lookup(%q) failed: %v", n, err)
			continue
		}
		if len(s.Required) == 0 {
			t.Errorf("%q has no required fields", n)
		}
		if s.Tier == "" {
			t.Errorf("%q has empty tier", n)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	r := Default()
	_, err := r.Lookup("time_travel_booking")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup unknown = %v, want ErrNotFound", err)
	}
}

func TestSensitive(t *testing.T) {
	tests := []struct {
		collection string
		want       bool
	}{
		{"payroll_management", true},
		{"performance_review", true},
		{"user_registration", true},
		{"payment_processing", true},
		{"purchase_order", true},
		{"customer_support_ticket", false},
		{"meeting_scheduler", false},
		{"faq_management", false},
	}

	r := Default()
	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			s, err := r.Lookup(tt.collection)
			if err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}
			if got := s.Sensitive(); got != tt.want {
				t.Errorf("Sensitive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissingRequired(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		collected  map[string]string
		want       []string
	}{
		{
			name:       "nothing collected",
			collection: "employee_leave_request",
			collected:  map[string]string{},
			want:       []string{"employee_id", "leave_type", "start_date", "end_date"},
		},
		{
			name:       "partially collected",
			collection: "employee_leave_request",
			collected:  map[string]string{"employee_id": "EMP001", "leave_type": "sick"},
			want:       []string{"start_date", "end_date"},
		},
		{
			name:       "empty value counts as missing",
			collection: "employee_leave_request",
			collected:  map[string]string{"employee_id": "", "leave_type": "sick", "start_date": "2025-06-01", "end_date": "2025-06-03"},
			want:       []string{"employee_id"},
		},
		{
			name:       "complete",
			collection: "employee_leave_request",
			collected:  map[string]string{"employee_id": "EMP001", "leave_type": "sick", "start_date": "2025-06-01", "end_date": "2025-06-03"},
			want:       nil,
		},
		{
			name:       "derived identifier never asked",
			collection: "purchase_order",
			collected:  map[string]string{},
			want:       []string{"vendor_id", "product", "quantity"},
		},
	}

	r := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.MissingRequired(tt.collection, tt.collected)
			if err != nil {
				t.Fatalf("MissingRequired failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("missing = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("missing[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		field      string
		value      string
		wantErr    bool
	}{
		{"valid email", "user_registration", "email", "jane.doe@acme.com", false},
		{"invalid email", "user_registration", "email", "not-an-email", true},
		{"valid mobile", "user_registration", "mobile", "+1 415 555 0137", false},
		{"invalid mobile", "user_registration", "mobile", "call me", true},
		{"valid date", "employee_leave_request", "start_date", "2025-06-01", false},
		{"valid slash date", "employee_leave_request", "start_date", "01/06/2025", false},
		{"invalid date", "employee_leave_request", "start_date", "next tuesday", true},
		{"valid amount", "expense_reimbursement", "amount", "$1,250.50", false},
		{"invalid amount", "expense_reimbursement", "amount", "a lot", true},
		{"valid rating", "performance_review", "rating", "4", false},
		{"rating out of range", "performance_review", "rating", "9", true},
		{"plain text accepted", "employee_leave_request", "reason", "family event", false},
		{"empty value rejected", "employee_leave_request", "reason", "   ", true},
		{"unknown field rejected", "employee_leave_request", "favorite_color", "blue", true},
	}

	r := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ValidateField(tt.collection, tt.field, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateField(%q, %q, %q) err = %v, wantErr %v", tt.collection, tt.field, tt.value, err, tt.wantErr)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("error type = %T, want *ValidationError", err)
				} else if ve.Hint == "" {
					t.Error("validation error carries no hint")
				}
			}
		})
	}
}
