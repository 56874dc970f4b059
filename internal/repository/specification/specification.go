package specification

import "gorm.io/gorm"

// Specification applies one query predicate to a gorm chain. Repositories
// accept any number of specifications and compose them.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
