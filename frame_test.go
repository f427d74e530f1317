package spritesmith

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func mustAdd(t *testing.T, f *Frame, img *Raster, pos Point, alpha, rotation float64, scale int, flip Flip) {
	t.Helper()
	if err := f.Add(img, pos, alpha, rotation, scale, flip); err != nil {
		t.Fatalf("Add: %v", err)
	}
}

// --- Add validation ---

func TestAddRejectsBadArguments(t *testing.T) {
	f := NewFrame()
	sprite := spriteRGB(2, 2, 10, 20, 30)
	tests := []struct {
		name  string
		err   error
		doAdd func() error
	}{
		{"nil image", ErrInvalidArgument, func() error {
			return f.Add(nil, Point{}, 1, 0, 1, NoFlip)
		}},
		{"alpha above one", ErrInvalidArgument, func() error {
			return f.Add(sprite, Point{}, 1.5, 0, 1, NoFlip)
		}},
		{"negative alpha", ErrInvalidArgument, func() error {
			return f.Add(sprite, Point{}, -0.1, 0, 1, NoFlip)
		}},
		{"zero scale", ErrInvalidArgument, func() error {
			return f.Add(sprite, Point{}, 1, 0, 0, NoFlip)
		}},
		{"four channel sprite", ErrInvalidArgument, func() error {
			return f.Add(NewRaster(2, 2, 4), Point{}, 1, 0, 1, NoFlip)
		}},
	}
	for _, tt := range tests {
		if err := tt.doAdd(); !errors.Is(err, tt.err) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.err)
		}
	}
	if f.FrameCount() != 0 {
		t.Errorf("rejected instructions were committed")
	}
}

// --- Save ---

func TestSaveRepeatsFrames(t *testing.T) {
	f := NewFrame()
	mustAdd(t, f, spriteRGB(2, 2, 1, 2, 3), Point{}, 1, 0, 1, NoFlip)
	if err := f.Save(4); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if f.FrameCount() != 4 {
		t.Errorf("FrameCount = %d, want 4", f.FrameCount())
	}
}

func TestSaveRejectsZeroRepeat(t *testing.T) {
	f := NewFrame()
	mustAdd(t, f, spriteRGB(2, 2, 1, 2, 3), Point{}, 1, 0, 1, NoFlip)
	if err := f.Save(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestSaveCommitsIndependentCopies(t *testing.T) {
	f := NewFrame()
	mustAdd(t, f, spriteRGB(2, 2, 1, 2, 3), Point{}, 1, 0, 1, NoFlip)
	if err := f.Save(1); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// New instructions after Save must not leak into the committed frame.
	mustAdd(t, f, spriteRGB(2, 2, 9, 9, 9), Point{X: 1}, 1, 0, 1, NoFlip)
	if len(f.committed[0]) != 1 {
		t.Errorf("committed frame has %d instructions, want 1", len(f.committed[0]))
	}
}

// --- Render ---

func TestRenderEmptyFirstFrame(t *testing.T) {
	f := NewFrame()
	err := f.Render(t.TempDir(), "Frame_")
	if !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("no frames: err = %v, want ErrEmptyFrame", err)
	}

	if err := f.Save(1); err != nil { // commit an instruction-less frame
		t.Fatalf("Save: %v", err)
	}
	err = f.Render(t.TempDir(), "Frame_")
	if !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("empty first frame: err = %v, want ErrEmptyFrame", err)
	}
}

func TestRenderWritesNumberedSequence(t *testing.T) {
	dir := t.TempDir()
	f := NewFrame()
	sprite := spriteRGB(2, 2, 10, 20, 30)
	for i := 0; i < 12; i++ {
		mustAdd(t, f, sprite, Point{}, 1, 0, 1, NoFlip)
		if err := f.Save(1); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	if err := f.Render(dir, "Frame_"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i := 0; i < 12; i++ {
		path := filepath.Join(dir, fmt.Sprintf("Frame_%02d.png", i))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing output frame %s", path)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 12 {
		t.Errorf("output dir has %d files, want 12", len(entries))
	}
}

func TestRenderPadsToTotalFrameCountWidth(t *testing.T) {
	dir := t.TempDir()
	f := NewFrame()
	mustAdd(t, f, spriteRGB(1, 1, 5, 5, 5), Point{}, 1, 0, 1, NoFlip)
	if err := f.Save(150); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := f.Render(dir, "Frame_"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, idx := range []string{"000", "075", "149"} {
		if _, err := os.Stat(filepath.Join(dir, "Frame_"+idx+".png")); err != nil {
			t.Errorf("missing Frame_%s.png", idx)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "Frame_150.png")); err == nil {
		t.Error("unexpected Frame_150.png")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 150 {
		t.Errorf("output dir has %d files, want 150", len(entries))
	}
}

func TestRenderCanvasSizeFixedByFirstFrame(t *testing.T) {
	dir := t.TempDir()
	f := NewFrame()
	// First frame's bottom layer is 4x3; the second frame's larger sprite
	// must be clipped to the same canvas.
	mustAdd(t, f, spriteRGB(4, 3, 10, 10, 10), Point{}, 1, 0, 1, NoFlip)
	if err := f.Save(1); err != nil {
		t.Fatalf("Save: %v", err)
	}
	mustAdd(t, f, spriteRGB(9, 9, 20, 20, 20), Point{}, 1, 0, 1, NoFlip)
	if err := f.Save(1); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := f.Render(dir, "F"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i := 0; i < 2; i++ {
		r, err := readImage(filepath.Join(dir, fmt.Sprintf("F%d.png", i)))
		if err != nil {
			t.Fatalf("readImage: %v", err)
		}
		if r.Width != 4 || r.Height != 3 {
			t.Errorf("frame %d is %dx%d, want 4x3", i, r.Width, r.Height)
		}
	}
}

func TestRenderCompositesLayersInOrder(t *testing.T) {
	dir := t.TempDir()
	f := NewFrame()
	f.SetAlphaKey(1) // keep pure black opaque in this test
	mustAdd(t, f, spriteRGB(3, 3, 0, 0, 0), Point{}, 1, 0, 1, NoFlip)
	mustAdd(t, f, spriteRGB(1, 1, 200, 100, 50), Point{X: 1, Y: 1}, 1, 0, 1, NoFlip)
	if err := f.Save(1); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := f.Render(dir, "F"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	r, err := readImage(filepath.Join(dir, "F0.png"))
	if err != nil {
		t.Fatalf("readImage: %v", err)
	}
	if r.At(1, 1, 0) != 200 || r.At(1, 1, 1) != 100 || r.At(1, 1, 2) != 50 {
		t.Errorf("top layer pixel = %v, want (200,100,50)", r.Pix[r.offset(1, 1):r.offset(1, 1)+3])
	}
	if r.At(0, 0, 0) != 0 {
		t.Errorf("bottom layer pixel = %d, want 0", r.At(0, 0, 0))
	}
}

func TestRenderScaledSpriteSetsCanvasSize(t *testing.T) {
	dir := t.TempDir()
	f := NewFrame()
	mustAdd(t, f, spriteRGB(2, 2, 10, 10, 10), Point{}, 1, 0, 3, NoFlip)
	if err := f.Save(1); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := f.Render(dir, "F"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	r, err := readImage(filepath.Join(dir, "F0.png"))
	if err != nil {
		t.Fatalf("readImage: %v", err)
	}
	if r.Width != 6 || r.Height != 6 {
		t.Errorf("canvas is %dx%d, want 6x6 (post-scale)", r.Width, r.Height)
	}
}
