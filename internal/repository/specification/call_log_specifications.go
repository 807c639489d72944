package specification

import (
	"fmt"

	"gorm.io/gorm"
)

// ByUserID filters rows owned by a user identity.
type ByUserID struct {
	UserID string
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// RequestTimeAfter keeps rows strictly newer than the cutoff. Request times
// are stored as sortable strings, so string comparison is chronological.
type RequestTimeAfter struct {
	Cutoff string
}

func (s RequestTimeAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("request_time > ?", s.Cutoff)
}

// ByTurnType filters by the turn type column ("text" or "document").
type ByTurnType struct {
	Type string
}

func (s ByTurnType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}
