package authz

import (
	"context"
	"testing"

	"ai-recorddesk-be/pkg/schema"
	"ai-recorddesk-be/pkg/store"
)

type staticResolver struct {
	identities map[string]*Identity
}

func (r *staticResolver) Resolve(_ context.Context, actorID string) (*Identity, error) {
	id, ok := r.identities[actorID]
	if !ok {
		return nil, ErrUnknownActor
	}
	return id, nil
}

func newTestEngine() *Engine {
	return NewEngine(schema.Default(), &staticResolver{identities: map[string]*Identity{
		"EMP001": {ActorID: "EMP001", Role: RoleAdmin, Department: "Administration", Active: true},
		"EMP100": {ActorID: "EMP100", Role: RoleHRStaff, Department: "HR", Active: true},
		"EMP200": {ActorID: "EMP200", Role: RoleFinanceStaff, Department: "Finance", Active: true},
		"EMP300": {ActorID: "EMP300", Role: RoleEmployee, Department: "Engineering", Active: true},
		"EMP400": {ActorID: "EMP400", Role: RoleManager, Department: "Operations", Active: false},
	}})
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name        string
		actorID     string
		collection  string
		op          string
		wantAllowed bool
	}{
		{"admin writes payroll", "EMP001", "payroll_management", store.OperationCreate, true},
		{"hr staff writes leave request", "EMP100", "employee_leave_request", store.OperationCreate, true},
		{"hr staff denied payroll", "EMP100", "payroll_management", store.OperationCreate, false},
		{"finance staff writes invoices", "EMP200", "invoice_management", store.OperationCreate, true},
		{"finance staff denied hr collection", "EMP200", "recruitment_portal", store.OperationCreate, false},
		{"plain employee writes meeting", "EMP300", "meeting_scheduler", store.OperationCreate, true},
		{"plain employee writes support ticket", "EMP300", "customer_support_ticket", store.OperationCreate, true},
		{"plain employee denied purchase order", "EMP300", "purchase_order", store.OperationCreate, false},
		{"plain employee reads sensitive denied", "EMP300", "payroll_management", store.OperationRead, false},
		{"inactive manager denied everywhere", "EMP400", "meeting_scheduler", store.OperationCreate, false},
		{"anonymous reads faq", "", "faq_management", store.OperationRead, true},
		{"anonymous denied write", "", "faq_management", store.OperationCreate, false},
		{"anonymous denied sensitive read", "", "attendance_tracking", store.OperationRead, false},
		{"unknown actor denied", "EMP999", "meeting_scheduler", store.OperationCreate, false},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := e.Authorize(context.Background(), tt.actorID, tt.collection, tt.op)
			if err != nil {
				t.Fatalf("Authorize failed: %v", err)
			}
			if d.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", d.Allowed, tt.wantAllowed, d.Reason)
			}
			if !d.Allowed && d.Reason == "" {
				t.Error("denial carries no reason")
			}
		})
	}
}

func TestAuthorizeUnknownCollection(t *testing.T) {
	e := newTestEngine()
	_, err := e.Authorize(context.Background(), "EMP001", "no_such_collection", store.OperationRead)
	if err == nil {
		t.Fatal("expected error for unknown collection")
	}
}

func TestDecisionNotCached(t *testing.T) {
	resolver := &staticResolver{identities: map[string]*Identity{
		"EMP500": {ActorID: "EMP500", Role: RoleEmployee, Active: true},
	}}
	e := NewEngine(schema.Default(), resolver)

	d, err := e.Authorize(context.Background(), "EMP500", "payroll_management", store.OperationRead)
	if err != nil || d.Allowed {
		t.Fatalf("employee should be denied payroll read, got allowed=%v err=%v", d.Allowed, err)
	}

	// Promote the actor; the very next decision must observe the new role.
	resolver.identities["EMP500"].Role = RoleAdmin
	d, err = e.Authorize(context.Background(), "EMP500", "payroll_management", store.OperationRead)
	if err != nil || !d.Allowed {
		t.Fatalf("admin should be allowed payroll read, got allowed=%v err=%v", d.Allowed, err)
	}
}
