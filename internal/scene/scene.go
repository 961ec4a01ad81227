package scene

import (
	"image"
)

// ChangeKind distinguishes edits that should be recorded immediately from
// continuous edits that may be coalesced.
type ChangeKind int

const (
	// ChangeDiscrete is a single completed edit: add, remove, finalize.
	ChangeDiscrete ChangeKind = iota
	// ChangeContinuous is one step of an ongoing gesture: dragging an
	// object, adjusting a parameter.
	ChangeContinuous
)

// Change describes a scene mutation for interested listeners.
type Change struct {
	Kind        ChangeKind
	Description string
}

// Scene is the ordered collection of annotation objects. Later objects draw
// over earlier ones. Scene is not safe for concurrent use; the session
// serializes access.
type Scene struct {
	objects  []Object
	nextID   int
	loading  bool
	onChange func(Change)
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{nextID: 1}
}

// SetOnChange installs the change listener. Changes made while a snapshot
// restore is in progress are not reported.
func (s *Scene) SetOnChange(fn func(Change)) {
	s.onChange = fn
}

func (s *Scene) notify(kind ChangeKind, desc string) {
	if s.loading || s.onChange == nil {
		return
	}
	s.onChange(Change{Kind: kind, Description: desc})
}

// NextID reserves and returns a fresh object ID.
func (s *Scene) NextID() int {
	id := s.nextID
	s.nextID++
	return id
}

// Add appends an object to the scene.
func (s *Scene) Add(obj Object, kind ChangeKind) {
	s.objects = append(s.objects, obj)
	s.notify(kind, "add "+string(obj.Kind()))
}

// Remove deletes the object with the given ID. It reports whether the
// object was present.
func (s *Scene) Remove(id int) bool {
	for i, obj := range s.objects {
		if obj.ID() == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			s.notify(ChangeDiscrete, "remove "+string(obj.Kind()))
			return true
		}
	}
	return false
}

// Modify runs fn against the object with the given ID and reports the
// change. It reports whether the object was present.
func (s *Scene) Modify(id int, kind ChangeKind, fn func(Object)) bool {
	for _, obj := range s.objects {
		if obj.ID() == id {
			fn(obj)
			s.notify(kind, "modify "+string(obj.Kind()))
			return true
		}
	}
	return false
}

// Clear removes every object.
func (s *Scene) Clear() {
	if len(s.objects) == 0 {
		return
	}
	s.objects = s.objects[:0]
	s.notify(ChangeDiscrete, "clear")
}

// Len returns the number of objects.
func (s *Scene) Len() int { return len(s.objects) }

// Objects returns the objects in draw order. The slice is shared; callers
// must not mutate it.
func (s *Scene) Objects() []Object { return s.objects }

// Get returns the object with the given ID, or nil.
func (s *Scene) Get(id int) Object {
	for _, obj := range s.objects {
		if obj.ID() == id {
			return obj
		}
	}
	return nil
}

// ObjectAt returns the topmost object whose hit test passes at the given
// display point, or nil.
func (s *Scene) ObjectAt(x, y float64) Object {
	for i := len(s.objects) - 1; i >= 0; i-- {
		if s.objects[i].HitTest(x, y) {
			return s.objects[i]
		}
	}
	return nil
}

// Draw renders every object into dst.
func (s *Scene) Draw(dst *image.RGBA, tr DrawTransform) {
	for _, obj := range s.objects {
		obj.Draw(dst, tr)
	}
}

// Serialize encodes the current objects as a snapshot.
func (s *Scene) Serialize() ([]byte, error) {
	return Encode(s.objects)
}

// Restore replaces the scene contents with the decoded snapshot. Change
// notifications are suppressed for the duration. On decode failure the
// scene is left unchanged.
func (s *Scene) Restore(snapshot []byte) error {
	objects, err := Decode(snapshot)
	if err != nil {
		return err
	}
	s.loading = true
	defer func() { s.loading = false }()
	s.objects = objects
	maxID := 0
	for _, obj := range objects {
		if obj.ID() > maxID {
			maxID = obj.ID()
		}
	}
	s.nextID = maxID + 1
	return nil
}
