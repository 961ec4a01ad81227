package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownKind reports a snapshot envelope whose kind tag has no
// registered decoder.
var ErrUnknownKind = errors.New("scene: unknown object kind")

type envelope struct {
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data"`
}

var (
	registryMu sync.RWMutex
	registry   = map[Kind]func() Object{}
)

// Register installs a decoder factory for the given kind, replacing any
// previous registration. A nil factory removes the registration.
func Register(kind Kind, factory func() Object) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		delete(registry, kind)
		return
	}
	registry[kind] = factory
}

// RegisterDefaults registers factories for all built-in object kinds.
func RegisterDefaults() {
	Register(KindStroke, func() Object { return &Stroke{} })
	Register(KindRect, func() Object { return &Box{} })
	Register(KindCircle, func() Object { return &Circle{} })
	Register(KindArrow, func() Object { return &Arrow{} })
	Register(KindText, func() Object { return &Text{} })
}

func init() {
	RegisterDefaults()
}

// Encode serializes objects as a snapshot. Each object is wrapped in an
// envelope carrying its kind tag.
func Encode(objects []Object) ([]byte, error) {
	envelopes := make([]envelope, 0, len(objects))
	for _, obj := range objects {
		data, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("encode %s object %d: %w", obj.Kind(), obj.ID(), err)
		}
		envelopes = append(envelopes, envelope{Kind: obj.Kind(), Data: data})
	}
	return json.Marshal(envelopes)
}

// Decode parses a snapshot back into objects. An envelope whose kind is
// not registered fails the whole decode with ErrUnknownKind.
func Decode(snapshot []byte) ([]Object, error) {
	var envelopes []envelope
	if err := json.Unmarshal(snapshot, &envelopes); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	objects := make([]Object, 0, len(envelopes))
	for i, env := range envelopes {
		registryMu.RLock()
		factory, ok := registry[env.Kind]
		registryMu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("decode snapshot entry %d: %w: %q", i, ErrUnknownKind, env.Kind)
		}
		obj := factory()
		if err := json.Unmarshal(env.Data, obj); err != nil {
			return nil, fmt.Errorf("decode %s entry %d: %w", env.Kind, i, err)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}
