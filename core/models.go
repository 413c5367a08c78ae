package core

import (
	"time"

	"github.com/google/uuid"
)

// Millis is a timestamp in epoch milliseconds, the wire format entities carry
// in their JSON representation. It orders and compares numerically.
type Millis int64

// NowMillis returns the current time as epoch milliseconds.
func NowMillis() Millis {
	return Millis(time.Now().UnixMilli())
}

// MillisOf converts a time.Time to epoch milliseconds.
func MillisOf(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Time converts the timestamp back to a time.Time in UTC.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m)).UTC()
}

// IsZero reports whether the timestamp is unset.
func (m Millis) IsZero() bool {
	return m == 0
}

// Meta carries the fields every stored entity must have. Embed it by value in
// an entity struct; its fields inline into the entity's JSON object.
//
// Invariants maintained by the collection engine:
//   - ID is unique within its collection and immutable after creation
//   - CreateTime is set once, at creation
//   - UpdateTime is set on every mutation and is never before CreateTime
type Meta struct {
	ID         string `json:"id"`
	CreateTime Millis `json:"createTime"`
	UpdateTime Millis `json:"updateTime"`
}

// EntityMeta returns the embedded metadata. It is defined on the pointer
// receiver so that *E satisfies Entity for any struct E embedding Meta.
func (m *Meta) EntityMeta() *Meta {
	return m
}

// Entity is the contract every stored record satisfies through an embedded Meta.
type Entity interface {
	EntityMeta() *Meta
}

// EntityPtr constrains a pointer-to-entity type parameter. It lets generic
// code allocate entity values and reach their metadata without reflection.
type EntityPtr[T any] interface {
	*T
	Entity
}

// NewID returns a fresh entity ID, unique within any collection.
func NewID() string {
	return uuid.NewString()
}
