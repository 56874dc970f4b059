package conversation

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"testing"

	"ai-recorddesk-be/pkg/authz"
	"ai-recorddesk-be/pkg/llm"
	"ai-recorddesk-be/pkg/schema"
	"ai-recorddesk-be/pkg/store"
	"ai-recorddesk-be/pkg/understand"
)

type memorySessions struct {
	byID map[string]*store.Session
}

func (s *memorySessions) Get(_ context.Context, id string) (*store.Session, error) {
	return s.byID[id], nil
}

func (s *memorySessions) Save(_ context.Context, sess *store.Session) error {
	s.byID[sess.ID] = sess
	return nil
}

type insertCall struct {
	collection string
	fields     map[string]string
}

type fakeGateway struct {
	insertErr error
	queryErr  error
	docs      []store.Document

	inserted  []insertCall
	lastQuery *store.StructuredQuery
}

func (g *fakeGateway) Insert(_ context.Context, collection string, fields map[string]string) (string, error) {
	if g.insertErr != nil {
		return "", g.insertErr
	}
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	g.inserted = append(g.inserted, insertCall{collection: collection, fields: copied})
	return fmt.Sprintf("65a1b2c3d4e5f6a7b8c9d%03d", len(g.inserted)), nil
}

func (g *fakeGateway) Query(_ context.Context, _ string, q *store.StructuredQuery) ([]store.Document, error) {
	if g.queryErr != nil {
		return nil, g.queryErr
	}
	g.lastQuery = q
	return g.docs, nil
}

type actorDirectory struct {
	byID map[string]*authz.Identity
}

func (d *actorDirectory) Resolve(_ context.Context, actorID string) (*authz.Identity, error) {
	id, ok := d.byID[actorID]
	if !ok {
		return nil, authz.ErrUnknownActor
	}
	return id, nil
}

// cannedProvider answers every model call with the same text.
type cannedProvider struct {
	response string
}

func (p *cannedProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return p.response, nil
}

func (p *cannedProvider) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return p.response, nil
}

func newTestMachine(gw store.Gateway) *Machine {
	// nil provider forces the deterministic fallback path, which keeps
	// these tests hermetic.
	return newTestMachineWith(gw, nil)
}

func newTestMachineWith(gw store.Gateway, provider llm.LLMProvider) *Machine {
	registry := schema.Default()
	logger := log.New(io.Discard, "", 0)
	directory := &actorDirectory{byID: map[string]*authz.Identity{
		"EMP001": {ActorID: "EMP001", Role: authz.RoleAdmin, Active: true},
		"EMP100": {ActorID: "EMP100", Role: authz.RoleHRStaff, Active: true},
		"EMP300": {ActorID: "EMP300", Role: authz.RoleEmployee, Active: true},
	}}
	adapter := understand.NewAdapter(provider, registry, logger)
	return NewMachine(registry, authz.NewEngine(registry, directory), adapter,
		&memorySessions{byID: map[string]*store.Session{}}, gw, logger)
}

func turn(t *testing.T, m *Machine, session, actor, text string) *Reply {
	t.Helper()
	r, err := m.HandleTurn(context.Background(), session, actor, text)
	if err != nil {
		t.Fatalf("HandleTurn(%q) failed: %v", text, err)
	}
	return r
}

func TestCreateSlotFillingFlow(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestMachine(gw)

	r := turn(t, m, "s1", "EMP100", "I want to request leave for EMP042")
	if r.State != store.StateCollectingFields {
		t.Fatalf("state = %s, want COLLECTING_FIELDS (reply %q)", r.State, r.Text)
	}
	if !strings.Contains(r.Text, "leave type") {
		t.Errorf("should ask for leave type, got %q", r.Text)
	}

	r = turn(t, m, "s1", "EMP100", "leave_type: sick")
	if r.State != store.StateCollectingFields || !strings.Contains(r.Text, "start date") {
		t.Fatalf("should ask for start date, got state %s reply %q", r.State, r.Text)
	}

	r = turn(t, m, "s1", "EMP100", "2025-07-01")
	if !strings.Contains(r.Text, "end date") {
		t.Fatalf("should ask for end date, got %q", r.Text)
	}

	r = turn(t, m, "s1", "EMP100", "2025-07-03")
	if r.State != store.StateConfirmingCreate {
		t.Fatalf("state = %s, want CONFIRMING_CREATE (reply %q)", r.State, r.Text)
	}
	if !strings.Contains(r.Text, "sick") || !strings.Contains(r.Text, "EMP042") {
		t.Errorf("summary should show collected values, got %q", r.Text)
	}

	r = turn(t, m, "s1", "EMP100", "yes")
	if r.RecordID == "" {
		t.Fatalf("save should return a record id, got %q", r.Text)
	}
	if r.State != store.StateTerminal {
		t.Errorf("state after save = %s, want TERMINAL", r.State)
	}

	if len(gw.inserted) != 1 {
		t.Fatalf("inserted %d records, want 1", len(gw.inserted))
	}
	got := gw.inserted[0]
	if got.collection != "employee_leave_request" {
		t.Errorf("collection = %s", got.collection)
	}
	want := map[string]string{
		"employee_id": "EMP042",
		"leave_type":  "sick",
		"start_date":  "2025-07-01",
		"end_date":    "2025-07-03",
	}
	for k, v := range want {
		if got.fields[k] != v {
			t.Errorf("%s = %q, want %q", k, got.fields[k], v)
		}
	}
}

func TestCreateCancelled(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestMachine(gw)

	turn(t, m, "s1", "EMP100", "register a new training for EMP042, training_name: Go 101, date: 2025-09-01")
	r := turn(t, m, "s1", "EMP100", "no")

	if r.State != store.StateTerminal {
		t.Errorf("state = %s, want TERMINAL", r.State)
	}
	if len(gw.inserted) != 0 {
		t.Errorf("nothing should be saved on cancel, got %d inserts", len(gw.inserted))
	}

	// The collected fields must be gone from the session.
	sess, _ := m.sessions.Get(context.Background(), "s1")
	if len(sess.CollectedFields) != 0 {
		t.Errorf("collected fields survived cancel: %v", sess.CollectedFields)
	}
}

func TestInvalidFieldValueReprompted(t *testing.T) {
	m := newTestMachine(&fakeGateway{})

	turn(t, m, "s1", "EMP100", "request leave for EMP042, leave_type: casual, start_date: 2025-07-01")
	r := turn(t, m, "s1", "EMP100", "whenever works")

	if r.State != store.StateCollectingFields {
		t.Fatalf("state = %s, want COLLECTING_FIELDS", r.State)
	}
	if !strings.Contains(r.Text, "does not look right") {
		t.Errorf("should explain the rejection, got %q", r.Text)
	}

	r = turn(t, m, "s1", "EMP100", "2025-07-05")
	if r.State != store.StateConfirmingCreate {
		t.Errorf("valid retry should advance, got state %s reply %q", r.State, r.Text)
	}
}

func TestQueryWithFilter(t *testing.T) {
	gw := &fakeGateway{docs: []store.Document{
		{ID: "65a000000000000000000001", Collection: "purchase_order", Fields: map[string]string{"quantity": "10"}},
	}}
	m := newTestMachine(gw)

	r := turn(t, m, "s1", "EMP001", "show purchase orders where quantity is 10")

	if r.State != store.StateTerminal {
		t.Fatalf("state = %s, want TERMINAL (reply %q)", r.State, r.Text)
	}
	if len(r.Documents) != 1 {
		t.Fatalf("documents = %d, want 1", len(r.Documents))
	}
	if gw.lastQuery == nil {
		t.Fatal("gateway never queried")
	}
	cond, ok := gw.lastQuery.Filter["quantity"]
	if !ok || cond.Value != "10" {
		t.Errorf("filter = %v, want quantity eq 10", gw.lastQuery.Filter)
	}
	if gw.lastQuery.Limit <= 0 || gw.lastQuery.Limit > store.DefaultQueryLimit {
		t.Errorf("Limit = %d, want bounded", gw.lastQuery.Limit)
	}
}

func TestQueryByIdentifier(t *testing.T) {
	gw := &fakeGateway{docs: []store.Document{
		{ID: "507f1f77bcf86cd799439011", Collection: "purchase_order", Fields: map[string]string{"product": "chairs"}},
	}}
	m := newTestMachine(gw)

	turn(t, m, "s1", "EMP001", "check purchase order 507f1f77bcf86cd799439011")

	if gw.lastQuery == nil {
		t.Fatal("gateway never queried")
	}
	if gw.lastQuery.Limit != 1 {
		t.Errorf("Limit = %d, want 1 for identifier lookup", gw.lastQuery.Limit)
	}
	if gw.lastQuery.Filter["_id"].Value != "507f1f77bcf86cd799439011" {
		t.Errorf("filter = %v", gw.lastQuery.Filter)
	}
}

func TestIdentifierInMessageForcesLookup(t *testing.T) {
	gw := &fakeGateway{docs: []store.Document{
		{ID: "507f1f77bcf86cd799439011", Collection: "purchase_order", Fields: map[string]string{"product": "chairs"}},
	}}
	// The model misreads the intent as a create even though the message
	// carries a record identifier.
	m := newTestMachineWith(gw, &cannedProvider{
		response: `{"operation":"CREATE","collection":"purchase_order","confidence":0.95}`,
	})

	r := turn(t, m, "s1", "EMP001", "create purchase order 507f1f77bcf86cd799439011")

	if len(gw.inserted) != 0 {
		t.Errorf("an id-bearing message must never insert, got %d inserts", len(gw.inserted))
	}
	if gw.lastQuery == nil {
		t.Fatalf("expected a lookup, got reply %q", r.Text)
	}
	if gw.lastQuery.Filter["_id"].Value != "507f1f77bcf86cd799439011" {
		t.Errorf("filter = %v, want _id lookup", gw.lastQuery.Filter)
	}
	if gw.lastQuery.Limit != 1 {
		t.Errorf("Limit = %d, want 1", gw.lastQuery.Limit)
	}
}

func TestAmbiguousQueryFallsBackToRecentListing(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestMachine(gw)

	r := turn(t, m, "s1", "EMP001", "find purchase orders")
	if r.State != store.StateAwaitingQueryConf {
		t.Fatalf("state = %s, want AWAITING_QUERY_CONFIRMATION (reply %q)", r.State, r.Text)
	}

	r = turn(t, m, "s1", "EMP001", "just whatever you have")
	if r.State != store.StateTerminal {
		t.Fatalf("state = %s, want TERMINAL after fallback", r.State)
	}
	if gw.lastQuery == nil {
		t.Fatal("fallback listing never executed")
	}
	if len(gw.lastQuery.Filter) != 0 || gw.lastQuery.Limit != store.DefaultQueryLimit {
		t.Errorf("fallback query = %+v, want empty filter with default limit", gw.lastQuery)
	}
	if gw.lastQuery.Sort == nil || gw.lastQuery.Sort.Field != "created_at" || !gw.lastQuery.Sort.Desc {
		t.Errorf("fallback sort = %+v, want created_at desc", gw.lastQuery.Sort)
	}
}

func TestUnauthorizedReadDenied(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestMachine(gw)

	r := turn(t, m, "s1", "EMP300", "show payroll for EMP042")

	if r.State != store.StateIdle {
		t.Errorf("state = %s, want IDLE", r.State)
	}
	if !strings.Contains(r.Text, "cannot") {
		t.Errorf("should refuse, got %q", r.Text)
	}
	if gw.lastQuery != nil {
		t.Error("denied read must never reach the gateway")
	}
}

func TestUnauthenticatedWriteDenied(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestMachine(gw)

	r := turn(t, m, "s1", "", "add a faq entry, question: what is the wifi password")

	if !strings.Contains(r.Text, "cannot") {
		t.Errorf("anonymous write should be refused, got %q", r.Text)
	}
	if len(gw.inserted) != 0 {
		t.Error("nothing may be inserted for anonymous users")
	}
}

func TestClarificationCapResetsSession(t *testing.T) {
	m := newTestMachine(&fakeGateway{})

	for i := 0; i < MaxClarifyRounds; i++ {
		r := turn(t, m, "s1", "EMP001", "hmm")
		if r.State != store.StateAwaitingIntent {
			t.Fatalf("round %d: state = %s, want AWAITING_INTENT", i+1, r.State)
		}
	}

	r := turn(t, m, "s1", "EMP001", "hmm")
	if r.State != store.StateTerminal {
		t.Errorf("state after cap = %s, want TERMINAL", r.State)
	}
	if r.Text != msgGaveUp {
		t.Errorf("reply = %q, want give-up message", r.Text)
	}
}

func TestStoreOutageDuringSaveKeepsConfirmation(t *testing.T) {
	gw := &fakeGateway{insertErr: store.ErrUnavailable}
	m := newTestMachine(gw)

	turn(t, m, "s1", "EMP100", "register a training for EMP042, training_name: Go 101, date: 2025-09-01")
	r := turn(t, m, "s1", "EMP100", "yes")

	if r.State != store.StateConfirmingCreate {
		t.Fatalf("state = %s, want CONFIRMING_CREATE preserved", r.State)
	}
	if !strings.Contains(r.Text, "unavailable") {
		t.Errorf("reply = %q, want outage message", r.Text)
	}

	// Store comes back; the same confirmation succeeds.
	gw.insertErr = nil
	r = turn(t, m, "s1", "EMP100", "yes")
	if r.RecordID == "" {
		t.Errorf("retry should save, got %q", r.Text)
	}
}

func TestCorrectionDuringConfirmation(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestMachine(gw)

	turn(t, m, "s1", "EMP100", "register a training for EMP042, training_name: Go 101, date: 2025-09-01")
	r := turn(t, m, "s1", "EMP100", "training_name: Advanced Go")

	if r.State != store.StateConfirmingCreate {
		t.Fatalf("state = %s, want CONFIRMING_CREATE", r.State)
	}
	if !strings.Contains(r.Text, "Advanced Go") {
		t.Errorf("summary should reflect the correction, got %q", r.Text)
	}

	turn(t, m, "s1", "EMP100", "yes")
	if len(gw.inserted) != 1 || gw.inserted[0].fields["training_name"] != "Advanced Go" {
		t.Errorf("saved fields = %v", gw.inserted)
	}
}

func TestSessionLocksStayBounded(t *testing.T) {
	m := newTestMachine(&fakeGateway{})

	seen := map[*sync.Mutex]bool{}
	for i := 0; i < 10*lockStripes; i++ {
		seen[m.sessionLock(fmt.Sprintf("session-%d", i))] = true
	}
	if len(seen) > lockStripes {
		t.Errorf("distinct locks = %d, want at most %d", len(seen), lockStripes)
	}
	if m.sessionLock("s1") != m.sessionLock("s1") {
		t.Error("turns on one session must share a lock")
	}
}

func TestFinishedSessionIsReusable(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestMachine(gw)

	r := turn(t, m, "s1", "EMP001", "show purchase orders where quantity is 10")
	if r.State != store.StateTerminal {
		t.Fatalf("state = %s, want TERMINAL", r.State)
	}

	r = turn(t, m, "s1", "EMP001", "request leave for EMP042")
	if r.State != store.StateCollectingFields {
		t.Errorf("reused session state = %s, want COLLECTING_FIELDS (reply %q)", r.State, r.Text)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	m := newTestMachine(&fakeGateway{})

	r1 := turn(t, m, "s1", "EMP100", "request leave for EMP042")
	r2 := turn(t, m, "s2", "EMP001", "hmm")

	if r1.State != store.StateCollectingFields {
		t.Errorf("s1 state = %s", r1.State)
	}
	if r2.State != store.StateAwaitingIntent {
		t.Errorf("s2 state = %s", r2.State)
	}
}
