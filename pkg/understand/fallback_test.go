package understand

import (
	"testing"

	"ai-recorddesk-be/pkg/schema"
	"ai-recorddesk-be/pkg/store"
)

func TestFallbackClassify(t *testing.T) {
	tests := []struct {
		name           string
		utterance      string
		wantOperation  string
		wantCollection string
		wantAmbiguous  bool
	}{
		{
			name:           "create verb plus alias",
			utterance:      "I need to raise a complaint about my manager",
			wantOperation:  store.OperationCreate,
			wantCollection: "grievance_management",
		},
		{
			name:           "read verb plus name words",
			utterance:      "show my purchase orders",
			wantOperation:  store.OperationRead,
			wantCollection: "purchase_order",
		},
		{
			name:          "identifier token forces read",
			utterance:     "507f1f77bcf86cd799439011",
			wantOperation: store.OperationRead,
			wantAmbiguous: true,
		},
		{
			name:          "no signal at all",
			utterance:     "hello there",
			wantOperation: store.OperationRead,
			wantAmbiguous: true,
		},
		{
			name:           "schedule an interview",
			utterance:      "schedule an interview for candidate C-12",
			wantOperation:  store.OperationCreate,
			wantCollection: "interview_scheduling",
		},
		{
			name:           "verb inflection matches name part",
			utterance:      "register a training for EMP042, training_name: Go 101, date: 2025-09-01",
			wantOperation:  store.OperationCreate,
			wantCollection: "training_registration",
		},
		{
			name:           "track an order",
			utterance:      "track order status for today",
			wantOperation:  store.OperationRead,
			wantCollection: "order_tracking",
		},
	}

	registry := schema.Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackClassify(registry, tt.utterance)

			if got.Operation != tt.wantOperation {
				t.Errorf("Operation = %q, want %q", got.Operation, tt.wantOperation)
			}
			if got.Collection != tt.wantCollection {
				t.Errorf("Collection = %q, want %q", got.Collection, tt.wantCollection)
			}
			if got.Ambiguous != tt.wantAmbiguous {
				t.Errorf("Ambiguous = %v, want %v", got.Ambiguous, tt.wantAmbiguous)
			}
			if got.Source != "fallback" {
				t.Errorf("Source = %q, want fallback", got.Source)
			}
		})
	}
}

func TestFallbackClassifyTieListsCandidates(t *testing.T) {
	registry := schema.Default()
	got := FallbackClassify(registry, "order")

	if !got.Ambiguous {
		t.Fatalf("tied score should be ambiguous, got collection %q", got.Collection)
	}
	if len(got.Candidates) < 2 {
		t.Errorf("candidates = %v, want at least the tied collections", got.Candidates)
	}
}

func TestFallbackExtract(t *testing.T) {
	registry := schema.Default()

	t.Run("user registration", func(t *testing.T) {
		s, err := registry.Lookup("user_registration")
		if err != nil {
			t.Fatal(err)
		}
		got := FallbackExtract(s, "My name is Priya Sharma, email priya.sharma@acme.com, mobile (415) 555-0137, employee EMP007")

		want := map[string]string{
			"first_name":  "Priya",
			"last_name":   "Sharma",
			"email":       "priya.sharma@acme.com",
			"mobile":      "(415) 555-0137",
			"employee_id": "EMP007",
		}
		for k, v := range want {
			if got[k] != v {
				t.Errorf("%s = %q, want %q", k, got[k], v)
			}
		}
	})

	t.Run("expense with amount and date", func(t *testing.T) {
		s, err := registry.Lookup("expense_reimbursement")
		if err != nil {
			t.Fatal(err)
		}
		got := FallbackExtract(s, "claim $1,250.00 for travel on 2025-06-15 for EMP007")

		if got["amount"] != "$1,250.00" {
			t.Errorf("amount = %q", got["amount"])
		}
		if got["date"] != "2025-06-15" {
			t.Errorf("date = %q", got["date"])
		}
		if got["employee_id"] != "EMP007" {
			t.Errorf("employee_id = %q", got["employee_id"])
		}
	})

	t.Run("explicit pairs override guesses", func(t *testing.T) {
		s, err := registry.Lookup("employee_leave_request")
		if err != nil {
			t.Fatal(err)
		}
		got := FallbackExtract(s, "leave_type: casual, reason: family event")

		if got["leave_type"] != "casual" {
			t.Errorf("leave_type = %q", got["leave_type"])
		}
		if got["reason"] != "family event" {
			t.Errorf("reason = %q", got["reason"])
		}
	})

	t.Run("undeclared fields are dropped", func(t *testing.T) {
		s, err := registry.Lookup("faq_management")
		if err != nil {
			t.Fatal(err)
		}
		got := FallbackExtract(s, "email someone@somewhere.com amount $99")

		if len(got) != 0 {
			t.Errorf("extracted = %v, want empty", got)
		}
	})
}
