package mapper

import (
	"testing"
	"time"

	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMapperRoundTrip(t *testing.T) {
	m := NewRecordMapper()

	rec := &entity.Record{
		Id:         "65f1a2b3c4d5e6f708192a3b",
		Collection: "order_placement",
		Document: map[string]string{
			"customer_name": "Kim Castle",
			"product":       "standing desk",
			"quantity":      "2",
		},
		CreatedBy: "EMP100",
		CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}

	mdl, err := m.ToModel(rec)
	require.NoError(t, err)
	require.NotNil(t, mdl)
	assert.Equal(t, rec.Id, mdl.Id)
	assert.Equal(t, rec.Collection, mdl.Collection)

	back := m.ToEntity(mdl)
	require.NotNil(t, back)
	assert.Equal(t, rec.Document, back.Document)
	assert.Equal(t, rec.CreatedBy, back.CreatedBy)
}

func TestRecordMapperToEntityCorruptDocument(t *testing.T) {
	m := NewRecordMapper()

	back := m.ToEntity(&model.Record{
		Id:         "65f1a2b3c4d5e6f708192a3b",
		Collection: "order_placement",
		Document:   []byte(`[1,2,3]`),
	})

	require.NotNil(t, back)
	assert.Empty(t, back.Document)
}

func TestRecordMapperNil(t *testing.T) {
	m := NewRecordMapper()

	mdl, err := m.ToModel(nil)
	require.NoError(t, err)
	assert.Nil(t, mdl)
	assert.Nil(t, m.ToEntity(nil))
}
