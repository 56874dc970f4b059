package conversation

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"sync"

	"ai-recorddesk-be/pkg/authz"
	"ai-recorddesk-be/pkg/query"
	"ai-recorddesk-be/pkg/schema"
	"ai-recorddesk-be/pkg/store"
	"ai-recorddesk-be/pkg/understand"
)

// MaxClarifyRounds caps how many consecutive turns may be spent asking the
// user to clarify before the session resets.
const MaxClarifyRounds = 3

// SessionStore loads and persists conversation sessions. Get returns
// (nil, nil) when the session does not exist or has expired.
type SessionStore interface {
	Get(ctx context.Context, id string) (*store.Session, error)
	Save(ctx context.Context, s *store.Session) error
}

// Reply is what one turn produces for the user. Collection names the target
// of a completed save or read so callers can audit the operation.
type Reply struct {
	Text       string
	State      string
	Documents  []store.Document
	RecordID   string
	Collection string
}

// Machine drives the conversation lifecycle. Exactly one turn per session
// executes at a time; concurrent turns on the same session serialize on a
// striped lock keyed by session id.
type Machine struct {
	registry *schema.Registry
	auth     *authz.Engine
	adapter  *understand.Adapter
	sessions SessionStore
	gateway  store.Gateway
	logger   *log.Logger

	locks [lockStripes]sync.Mutex
}

// lockStripes bounds the lock set. Distinct sessions may share a stripe,
// which costs a little contention but never correctness.
const lockStripes = 64

// NewMachine wires the conversation engine.
func NewMachine(
	registry *schema.Registry,
	auth *authz.Engine,
	adapter *understand.Adapter,
	sessions SessionStore,
	gateway store.Gateway,
	logger *log.Logger,
) *Machine {
	return &Machine{
		registry: registry,
		auth:     auth,
		adapter:  adapter,
		sessions: sessions,
		gateway:  gateway,
		logger:   logger,
	}
}

// HandleTurn processes one user message for a session and returns the reply.
// An expired or unknown session starts fresh at IDLE.
func (m *Machine) HandleTurn(ctx context.Context, sessionID, actorID, text string) (*Reply, error) {
	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if sess == nil {
		sess = store.NewSession(sessionID, actorID)
	}
	// Identity always comes from the caller, never from the cached session.
	sess.ActorID = actorID

	text = strings.TrimSpace(text)
	sess.Remember("user", text)

	reply := m.dispatch(ctx, sess, text)
	reply.State = sess.State

	sess.Remember("assistant", reply.Text)
	if err := m.sessions.Save(ctx, sess); err != nil {
		m.logger.Printf("[WARN] session %s save failed: %v", sessionID, err)
	}
	return reply, nil
}

// finish ends the current operation. The turn reports TERMINAL; the cleared
// collected state means the next message starts over at intent detection.
func (m *Machine) finish(sess *store.Session) {
	sess.Reset()
	sess.State = store.StateTerminal
}

func (m *Machine) sessionLock(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &m.locks[h.Sum32()%lockStripes]
}

func (m *Machine) dispatch(ctx context.Context, sess *store.Session, text string) *Reply {
	if text == "" {
		return &Reply{Text: msgGreeting}
	}

	switch sess.State {
	case store.StateIdle, store.StateAwaitingIntent:
		return m.handleIntent(ctx, sess, text)
	case store.StateTerminal:
		// A finished session is reusable. Start a fresh operation for the
		// same actor.
		sess.Reset()
		return m.handleIntent(ctx, sess, text)
	case store.StateCollectingFields:
		return m.handleFieldAnswer(ctx, sess, text)
	case store.StateConfirmingCreate:
		return m.handleConfirmation(ctx, sess, text)
	case store.StateAwaitingQueryConf:
		return m.handleQueryRetry(ctx, sess, text)
	default:
		sess.Reset()
		return m.handleIntent(ctx, sess, text)
	}
}

// handleIntent classifies a fresh utterance, authorizes it and branches
// into the create or read path.
func (m *Machine) handleIntent(ctx context.Context, sess *store.Session, text string) *Reply {
	res := m.adapter.ClassifyIntent(ctx, text)

	// A record identifier in the message is always a lookup, whatever the
	// classifier decided about the operation.
	if _, ok := query.IdentifierToken(text); ok {
		res.Operation = store.OperationRead
	}

	if res.Ambiguous || res.Collection == "" {
		sess.ClarifyRounds++
		if sess.ClarifyRounds > MaxClarifyRounds {
			m.finish(sess)
			return &Reply{Text: msgGaveUp}
		}
		sess.State = store.StateAwaitingIntent
		return &Reply{Text: clarifyMessage(res.Candidates)}
	}

	decision, err := m.auth.Authorize(ctx, sess.ActorID, res.Collection, res.Operation)
	if err != nil {
		m.logger.Printf("[ERROR] authorize %s on %s: %v", res.Operation, res.Collection, err)
		sess.Reset()
		return &Reply{Text: msgStartOver}
	}
	if !decision.Allowed {
		sess.Reset()
		return &Reply{Text: deniedMessage(decision.Reason)}
	}

	s, err := m.registry.Lookup(res.Collection)
	if err != nil {
		sess.Reset()
		return &Reply{Text: msgStartOver}
	}

	switch res.Operation {
	case store.OperationCreate:
		sess.TargetCollection = s.Name
		sess.OperationKind = store.OperationCreate
		sess.ClarifyRounds = 0
		for k, v := range m.adapter.ExtractFields(ctx, s, text) {
			if m.registry.ValidateField(s.Name, k, v) == nil {
				sess.CollectedFields[k] = v
			}
		}
		return m.advanceCreate(sess, s)

	case store.OperationRead:
		return m.runRead(ctx, sess, s, text)

	default:
		sess.Reset()
		return &Reply{Text: msgStartOver}
	}
}

// advanceCreate asks for the next missing required field, one per turn, or
// moves to confirmation once the record is complete.
func (m *Machine) advanceCreate(sess *store.Session, s *schema.CollectionSchema) *Reply {
	missing, err := m.registry.MissingRequired(s.Name, sess.CollectedFields)
	if err != nil {
		sess.Reset()
		return &Reply{Text: msgStartOver}
	}
	if len(missing) > 0 {
		sess.State = store.StateCollectingFields
		return &Reply{Text: askFieldMessage(s.Name, missing[0])}
	}
	sess.State = store.StateConfirmingCreate
	return &Reply{Text: confirmMessage(s.Name, sess.CollectedFields)}
}

// handleFieldAnswer consumes one answer during slot filling. Extracted
// values never overwrite what is already collected, and a bare answer binds
// to the field that was just asked for.
func (m *Machine) handleFieldAnswer(ctx context.Context, sess *store.Session, text string) *Reply {
	s, err := m.registry.Lookup(sess.TargetCollection)
	if err != nil {
		sess.Reset()
		return &Reply{Text: msgStartOver}
	}

	missing, err := m.registry.MissingRequired(s.Name, sess.CollectedFields)
	if err != nil || len(missing) == 0 {
		return m.advanceCreate(sess, s)
	}
	asked := missing[0]

	for k, v := range m.adapter.ExtractFields(ctx, s, text) {
		if _, taken := sess.CollectedFields[k]; taken {
			continue
		}
		if m.registry.ValidateField(s.Name, k, v) == nil {
			sess.CollectedFields[k] = v
		}
	}

	if _, ok := sess.CollectedFields[asked]; !ok {
		if err := m.registry.ValidateField(s.Name, asked, text); err != nil {
			sess.ClarifyRounds++
			if sess.ClarifyRounds > MaxClarifyRounds {
				m.finish(sess)
				return &Reply{Text: msgGaveUp}
			}
			return &Reply{Text: invalidFieldMessage(asked, validationHint(err))}
		}
		sess.CollectedFields[asked] = text
	}

	sess.ClarifyRounds = 0
	return m.advanceCreate(sess, s)
}

// handleConfirmation finalizes or cancels a pending create. Authorization
// is recomputed at save time so a role change between turns is honored.
func (m *Machine) handleConfirmation(ctx context.Context, sess *store.Session, text string) *Reply {
	s, err := m.registry.Lookup(sess.TargetCollection)
	if err != nil {
		sess.Reset()
		return &Reply{Text: msgStartOver}
	}

	answer := strings.ToLower(text)
	switch {
	case isYes(answer):
		decision, err := m.auth.Authorize(ctx, sess.ActorID, s.Name, store.OperationCreate)
		if err != nil {
			m.logger.Printf("[ERROR] authorize save on %s: %v", s.Name, err)
			sess.Reset()
			return &Reply{Text: msgStartOver}
		}
		if !decision.Allowed {
			sess.Reset()
			return &Reply{Text: deniedMessage(decision.Reason)}
		}

		fields := make(map[string]string, len(sess.CollectedFields)+1)
		for k, v := range sess.CollectedFields {
			fields[k] = v
		}
		if sess.ActorID != "" {
			// Envelope metadata for the gateway, not a document field.
			fields["_created_by"] = sess.ActorID
		}

		id, err := m.gateway.Insert(ctx, s.Name, fields)
		if err != nil {
			m.logger.Printf("[ERROR] insert into %s: %v", s.Name, err)
			// Stay in confirmation so the user can retry the save.
			return &Reply{Text: msgUnavailable}
		}
		collection := s.Name
		m.finish(sess)
		return &Reply{Text: savedMessage(collection, id), RecordID: id, Collection: collection}

	case isNo(answer):
		m.finish(sess)
		return &Reply{Text: msgCancelled}

	default:
		// Allow last-minute corrections before saving.
		changed := false
		for k, v := range m.adapter.ExtractFields(ctx, s, text) {
			if m.registry.ValidateField(s.Name, k, v) == nil {
				sess.CollectedFields[k] = v
				changed = true
			}
		}
		if changed {
			return &Reply{Text: confirmMessage(s.Name, sess.CollectedFields)}
		}
		return &Reply{Text: msgConfirmOrEdit}
	}
}

// runRead translates and executes a read, or parks the session for one
// rephrase when the text is ambiguous.
func (m *Machine) runRead(ctx context.Context, sess *store.Session, s *schema.CollectionSchema, text string) *Reply {
	q, err := query.Translate(s, text)
	if err != nil {
		if !errors.Is(err, query.ErrAmbiguous) {
			m.logger.Printf("[ERROR] translate query on %s: %v", s.Name, err)
		}
		sess.TargetCollection = s.Name
		sess.OperationKind = store.OperationRead
		sess.PendingNaturalQuery = text
		sess.ReQueryRounds = 1
		sess.State = store.StateAwaitingQueryConf
		return &Reply{Text: msgRephraseQuery}
	}
	return m.executeQuery(ctx, sess, s.Name, q, "")
}

// handleQueryRetry takes the rephrased query. A second ambiguous answer
// stops the re-prompt loop and serves the bounded recent listing instead.
func (m *Machine) handleQueryRetry(ctx context.Context, sess *store.Session, text string) *Reply {
	s, err := m.registry.Lookup(sess.TargetCollection)
	if err != nil {
		sess.Reset()
		return &Reply{Text: msgStartOver}
	}

	q, err := query.Translate(s, text)
	if err == nil {
		return m.executeQuery(ctx, sess, s.Name, q, "")
	}

	return m.executeQuery(ctx, sess, s.Name, store.RecentListing(), fallbackListingMessage(s.Name))
}

func (m *Machine) executeQuery(ctx context.Context, sess *store.Session, collection string, q *store.StructuredQuery, preface string) *Reply {
	docs, err := m.gateway.Query(ctx, collection, q)
	if err != nil {
		m.logger.Printf("[ERROR] query %s: %v", collection, err)
		sess.Reset()
		return &Reply{Text: msgUnavailable}
	}

	text := resultsMessage(collection, docs)
	if preface != "" {
		text = preface + "\n" + text
	}
	m.finish(sess)
	return &Reply{Text: text, Documents: docs, Collection: collection}
}

func validationHint(err error) string {
	var ve *schema.ValidationError
	if errors.As(err, &ve) {
		return ve.Hint
	}
	return "a value is required"
}

var yesAnswers = map[string]bool{
	"yes": true, "y": true, "yes please": true, "yep": true, "confirm": true,
	"save": true, "save it": true, "ok": true, "okay": true, "sure": true,
	"go ahead": true, "do it": true,
}

var noAnswers = map[string]bool{
	"no": true, "n": true, "nope": true, "cancel": true, "stop": true,
	"discard": true, "abort": true, "never mind": true, "nevermind": true,
	"don't": true, "do not": true,
}

func isYes(answer string) bool { return yesAnswers[answer] }

func isNo(answer string) bool { return noAnswers[answer] }
