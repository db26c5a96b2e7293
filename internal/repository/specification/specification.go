package specification

import "gorm.io/gorm"

// Specification defines the interface for query specifications
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// ScopeOf lifts a plain GORM scope function into a Specification.
type ScopeOf func(db *gorm.DB) *gorm.DB

func (f ScopeOf) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}
