package spritesmith

import "fmt"

// FrameElement groups the sprite sequences for one logical animated entity,
// keyed by event name ("walking", "sitting", ...). Each event holds an
// ordered sequence of rasters in playback order; the element never mutates
// a sequence after loading it.
//
// A FrameElement also tracks a single playback cursor shared across events,
// advanced by Advance for cyclic animations.
type FrameElement struct {
	events map[string][]*Raster
	cursor int
}

// NewFrameElement creates an empty FrameElement with the cursor parked one
// step before the start of any sequence.
func NewFrameElement() *FrameElement {
	return &FrameElement{
		events: make(map[string][]*Raster),
		cursor: -1,
	}
}

// AddEvent loads every decodable image in dir, in lexicographic filename
// order, as the sprite sequence for the named event. Lexicographic order is
// authoritative: callers lay out files so it matches playback order.
// Wraps ErrNotFound when dir is missing or contains no loadable images.
func (e *FrameElement) AddEvent(name, dir string) error {
	images, err := loadEventDir(dir)
	if err != nil {
		return err
	}
	e.events[name] = images
	return nil
}

// Sprite returns the raster at index within the named event's sequence.
// Wraps ErrNotFound for an unknown event and ErrInvalidArgument for an
// out-of-range index.
func (e *FrameElement) Sprite(event string, index int) (*Raster, error) {
	seq, ok := e.events[event]
	if !ok {
		return nil, fmt.Errorf("spritesmith: event %q: %w", event, ErrNotFound)
	}
	if index < 0 || index >= len(seq) {
		return nil, fmt.Errorf("spritesmith: event %q index %d out of range [0,%d): %w",
			event, index, len(seq), ErrInvalidArgument)
	}
	return seq[index], nil
}

// EventLength returns the number of sprites in the named event's sequence,
// or 0 for an unknown event. Useful for bounding playback loops.
func (e *FrameElement) EventLength(event string) int {
	return len(e.events[event])
}

// Advance steps the playback cursor for cyclic animation and returns the new
// cursor value, which callers use directly as a sprite index.
//
// The transition is deliberately the historical one and must not be
// "cleaned up": with N sprites and cursor state in [-1, N-1],
//
//	advance(start) = if cursor+start < N-1 then cursor+start+1 else -1
//
// so repeated Advance(event, 0) calls walk the sequence 0..N-1 and then
// yield -1 once before restarting. Downstream cadence relies on the exact
// reset-to-minus-one step.
//
// Wraps ErrNotFound for an unknown event and ErrEmptyInput when the event's
// sequence is empty.
func (e *FrameElement) Advance(event string, start int) (int, error) {
	seq, ok := e.events[event]
	if !ok {
		return 0, fmt.Errorf("spritesmith: event %q: %w", event, ErrNotFound)
	}
	if len(seq) == 0 {
		return 0, fmt.Errorf("spritesmith: event %q has no sprites: %w", event, ErrEmptyInput)
	}
	e.cursor += start
	if e.cursor < len(seq)-1 {
		e.cursor++
	} else {
		e.cursor = -1
	}
	return e.cursor, nil
}
