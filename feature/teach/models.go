package teach

import (
	"time"

	"teach-sync/core/reconcile"
)

// Record is the stored shape of one question/answer pair.
// ID is assigned on insert and never changes; Question is the natural key.
type Record struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Question  string    `gorm:"column:question;type:varchar(512);not null" json:"question"`
	Answer    string    `gorm:"column:answer;type:text;not null" json:"answer"`
	Tags      []string  `gorm:"column:tags;type:text;serializer:json" json:"tags"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the default collection name.
func (Record) TableName() string {
	return reconcile.DefaultCollection
}

// columns maps schema fields to table columns.
var columns = map[string]string{
	reconcile.FieldQuestion: "question",
	reconcile.FieldAnswer:   "answer",
	reconcile.FieldTags:     "tags",
}

// ImportResponse is the HTTP body of a completed import.
type ImportResponse struct {
	Upserted int                 `json:"upserted"`
	Modified int                 `json:"modified"`
	Matched  int                 `json:"matched"`
	Dropped  int                 `json:"dropped"`
	Failures []reconcile.Failure `json:"failures"`
}

// ErrorResponse is the HTTP body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
