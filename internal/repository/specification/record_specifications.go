package specification

import "gorm.io/gorm"

// ByRecordID filters records by their 24-hex identifier.
type ByRecordID struct {
	ID string
}

func (s ByRecordID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// BySessionID filters chat turns by their conversation session.
type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByCollection scopes a query to one business collection.
type ByCollection struct {
	Name string
}

func (s ByCollection) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("collection = ?", s.Name)
}

// DocumentField matches an exact value inside the JSONB document body.
type DocumentField struct {
	Field string
	Value string
}

func (s DocumentField) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document ->> ? = ?", s.Field, s.Value)
}
