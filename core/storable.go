package core

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Kind is the variant tag carried by every stored record.
type Kind string

const (
	KindComment    Kind = "comment"
	KindAnnotation Kind = "annotation"
)

// Storable is a domain entity eligible for persistence. An id of 0 means
// the entity has not been persisted yet; backends assign the id on the
// first successful save.
type Storable interface {
	Kind() Kind
	ObjectID() int64
	SetObjectID(id int64)
}

// Object is the embeddable base of every Storable variant. Embedding it
// promotes the id field into the variant's serialized record.
type Object struct {
	ID int64 `json:"id"`
}

func (o *Object) ObjectID() int64      { return o.ID }
func (o *Object) SetObjectID(id int64) { o.ID = id }

// Comment is a storable text note.
type Comment struct {
	Object
	CommentText string `json:"comment_text"`
}

func (*Comment) Kind() Kind { return KindComment }

// Annotation is a storable marker. It carries no fields beyond the id yet.
type Annotation struct {
	Object
}

func (*Annotation) Kind() Kind { return KindAnnotation }

var (
	kindsMu sync.RWMutex
	kinds   = make(map[Kind]func() Storable)
)

// RegisterKind makes a variant decodable by tag. New variants register
// themselves here; backends need no per-variant code.
func RegisterKind(k Kind, newFn func() Storable) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	kinds[k] = newFn
}

func init() {
	RegisterKind(KindComment, func() Storable { return &Comment{} })
	RegisterKind(KindAnnotation, func() Storable { return &Annotation{} })
}

// recordEnvelope carries the tag fields shared by every stored record.
type recordEnvelope struct {
	Type Kind  `json:"type"`
	ID   int64 `json:"id"`
}

// EncodeRecord serializes s into the self-describing record shape
// {"type": <tag>, "id": <integer>, ...variant fields}.
func EncodeRecord(s Storable) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode %s record: %w", s.Kind(), err)
	}
	fields := make(map[string]interface{})
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode %s record: %w", s.Kind(), err)
	}
	fields["type"] = s.Kind()
	return json.Marshal(fields)
}

// DecodeRecord reverses EncodeRecord, dispatching on the record's type tag.
func DecodeRecord(data []byte) (Storable, error) {
	var env recordEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: record has no type tag", ErrDeserialization)
	}
	kindsMu.RLock()
	newFn, ok := kinds[env.Type]
	kindsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown variant %q", ErrDeserialization, env.Type)
	}
	s := newFn()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: decode %s record: %v", ErrDeserialization, env.Type, err)
	}
	return s, nil
}
