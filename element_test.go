package spritesmith

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeSpriteFixture writes a 1x1 PNG whose red channel identifies the file.
func writeSpriteFixture(t *testing.T, dir, name string, id uint8) {
	t.Helper()
	require.NoError(t, writePNG(filepath.Join(dir, name), spriteRGB(1, 1, id, 0, 0)))
}

func TestAddEventLoadsLexicographically(t *testing.T) {
	dir := t.TempDir()
	// Written out of order; lexicographic filename order is authoritative.
	writeSpriteFixture(t, dir, "walk_2.png", 30)
	writeSpriteFixture(t, dir, "walk_0.png", 10)
	writeSpriteFixture(t, dir, "walk_1.png", 20)

	e := NewFrameElement()
	require.NoError(t, e.AddEvent("walking", dir))
	require.Equal(t, 3, e.EventLength("walking"))

	for i, want := range []uint8{10, 20, 30} {
		s, err := e.Sprite("walking", i)
		require.NoError(t, err)
		require.Equal(t, want, s.At(0, 0, 0), "sprite %d", i)
	}
}

func TestAddEventSkipsUndecodableFiles(t *testing.T) {
	dir := t.TempDir()
	writeSpriteFixture(t, dir, "a.png", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0o644))

	e := NewFrameElement()
	require.NoError(t, e.AddEvent("exist", dir))
	require.Equal(t, 1, e.EventLength("exist"))
}

func TestAddEventMissingDir(t *testing.T) {
	e := NewFrameElement()
	err := e.AddEvent("exist", filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddEventNoLoadableImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0o644))

	e := NewFrameElement()
	err := e.AddEvent("exist", dir)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSpriteErrors(t *testing.T) {
	dir := t.TempDir()
	writeSpriteFixture(t, dir, "a.png", 1)
	e := NewFrameElement()
	require.NoError(t, e.AddEvent("exist", dir))

	_, err := e.Sprite("missing", 0)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = e.Sprite("exist", 1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.Sprite("exist", -1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// newTestElement builds an element with one event of n sprites without
// touching the filesystem.
func newTestElement(event string, n int) *FrameElement {
	e := NewFrameElement()
	seq := make([]*Raster, n)
	for i := range seq {
		seq[i] = spriteRGB(1, 1, uint8(i), 0, 0)
	}
	e.events[event] = seq
	return e
}

func TestAdvanceWalksSequenceAndResets(t *testing.T) {
	e := newTestElement("sitting", 4)
	// advance(0) cadence over a 4-sprite event: 0 1 2 3 -1 0 1 2 3 -1.
	want := []int{0, 1, 2, 3, -1, 0, 1, 2, 3, -1}
	for i, w := range want {
		got, err := e.Advance("sitting", 0)
		if err != nil {
			t.Fatalf("Advance %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("Advance call %d = %d, want %d", i, got, w)
		}
	}
}

func TestAdvanceWithStartOffset(t *testing.T) {
	e := newTestElement("walking", 4)
	// advance(1): -1+1=0 -> 1, 1+1=2 -> 3, 3+1=4 >= 3 -> -1, repeat.
	want := []int{1, 3, -1, 1, 3, -1}
	for i, w := range want {
		got, err := e.Advance("walking", 1)
		if err != nil {
			t.Fatalf("Advance %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("Advance call %d = %d, want %d", i, got, w)
		}
	}
}

func TestAdvanceAtLastIndexResets(t *testing.T) {
	e := newTestElement("sitting", 3)
	// Jump straight to the last index, then confirm the reset transition:
	// cursor+start >= N-1 always yields -1.
	got, err := e.Advance("sitting", 3)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got != -1 {
		t.Errorf("Advance past end = %d, want -1", got)
	}
}

func TestAdvanceErrors(t *testing.T) {
	e := newTestElement("sitting", 3)
	if _, err := e.Advance("missing", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing event: err = %v, want ErrNotFound", err)
	}

	e.events["empty"] = nil
	if _, err := e.Advance("empty", 0); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty event: err = %v, want ErrEmptyInput", err)
	}
}
