package service

import (
	"context"
	"testing"

	"ai-recorddesk-be/internal/dto"
	"ai-recorddesk-be/pkg/authz"
	"ai-recorddesk-be/pkg/schema"
	"ai-recorddesk-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticDirectory struct {
	byID map[string]*authz.Identity
}

func (d *staticDirectory) Resolve(_ context.Context, actorID string) (*authz.Identity, error) {
	id, ok := d.byID[actorID]
	if !ok {
		return nil, authz.ErrUnknownActor
	}
	return id, nil
}

type recordingGateway struct {
	lastCollection string
	lastFields     map[string]string
	docs           []store.Document
}

func (g *recordingGateway) Insert(_ context.Context, collection string, fields map[string]string) (string, error) {
	g.lastCollection = collection
	g.lastFields = fields
	return "65a1b2c3d4e5f6a7b8c9d001", nil
}

func (g *recordingGateway) Query(_ context.Context, collection string, _ *store.StructuredQuery) ([]store.Document, error) {
	g.lastCollection = collection
	return g.docs, nil
}

type discardPublisher struct{}

func (discardPublisher) Publish(_ context.Context, _ []byte) error { return nil }

type discardLogger struct{}

func (discardLogger) Debug(_, _ string, _ map[string]interface{}) {}
func (discardLogger) Info(_, _ string, _ map[string]interface{})  {}
func (discardLogger) Warn(_, _ string, _ map[string]interface{})  {}
func (discardLogger) Error(_, _ string, _ map[string]interface{}) {}
func (discardLogger) Sync() error                                 { return nil }

func newTestRecordService(gw store.Gateway) IRecordService {
	registry := schema.Default()
	directory := &staticDirectory{byID: map[string]*authz.Identity{
		"EMP100": {ActorID: "EMP100", Role: authz.RoleHRStaff, Active: true},
	}}
	return NewRecordService(registry, authz.NewEngine(registry, directory),
		gw, discardPublisher{}, nil, discardLogger{})
}

func TestRecordCreateRejectsIncompleteFields(t *testing.T) {
	gw := &recordingGateway{}
	svc := newTestRecordService(gw)

	_, err := svc.Create(context.Background(), "EMP100", &dto.CreateRecordRequest{
		Collection: "employee_leave_request",
		Fields:     map[string]string{"employee_id": "EMP042"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
	assert.Empty(t, gw.lastCollection, "an incomplete record must never reach the gateway")
}

func TestRecordCreateStampsCreator(t *testing.T) {
	gw := &recordingGateway{}
	svc := newTestRecordService(gw)

	res, err := svc.Create(context.Background(), "EMP100", &dto.CreateRecordRequest{
		Collection: "employee_leave_request",
		Fields: map[string]string{
			"employee_id": "EMP042",
			"leave_type":  "sick",
			"start_date":  "2025-07-01",
			"end_date":    "2025-07-03",
		},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, res.RecordID)
	assert.Equal(t, "employee_leave_request", gw.lastCollection)
	assert.Equal(t, "EMP100", gw.lastFields["_created_by"])
}

func TestRecordCreateUnknownCollection(t *testing.T) {
	svc := newTestRecordService(&recordingGateway{})

	_, err := svc.Create(context.Background(), "EMP100", &dto.CreateRecordRequest{
		Collection: "unicorn_registry",
		Fields:     map[string]string{"horn_length": "long"},
	})

	require.Error(t, err)
}
