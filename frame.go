package spritesmith

import (
	"fmt"
	"os"
	"path/filepath"
)

// DrawInstruction is one sprite placement within a frame: the source raster
// plus its geometric and photometric transform. Instructions are plain
// values; committed frames hold independent copies.
type DrawInstruction struct {
	Image    *Raster
	Position Point   // top-left corner in canvas space, pre-transform
	Alpha    float64 // [0, 1]; 0 fully transparent, 1 fully opaque
	Rotation float64 // degrees, positive = counter-clockwise
	Scale    int     // integer block-replication factor, >= 1
	Flip     Flip
}

// Frame accumulates draw instructions into composited animation frames and
// renders them to a numbered PNG sequence.
//
// Instructions added between Save calls form one pending frame. Save commits
// the pending frame (possibly repeated) and clears it. Render transforms and
// layers every committed frame in order: the first instruction of a frame is
// the bottom layer, and the first committed frame's bottom-layer sprite
// establishes the canvas size for the whole render.
//
// The chroma key is per-Frame state rather than process-global, so
// independent Frames can render with different keys.
type Frame struct {
	alphaKey  uint8
	pending   []DrawInstruction
	committed [][]DrawInstruction
}

// NewFrame creates an empty Frame with the default chroma key of 0: pure
// black sprite pixels become fully transparent during compositing.
func NewFrame() *Frame {
	return &Frame{}
}

// SetAlphaKey sets the chroma-key channel value. Sprite pixels whose three
// color channels all equal key are treated as fully transparent when the
// alpha mask is derived. This key is independent of any background color
// used by the extraction pipeline.
func (f *Frame) SetAlphaKey(key uint8) {
	f.alphaKey = key
}

// Add appends one draw instruction to the pending frame. The image must be
// a 3-channel raster; alpha must be in [0, 1] and scale >= 1, or Add fails
// wrapping ErrInvalidArgument. Instruction order is paint order: the first
// instruction is the bottom layer.
func (f *Frame) Add(img *Raster, pos Point, alpha, rotation float64, scale int, flip Flip) error {
	if img == nil {
		return fmt.Errorf("spritesmith: add: nil image: %w", ErrInvalidArgument)
	}
	if img.Channels != 3 {
		return fmt.Errorf("spritesmith: add: sprite must have 3 channels, got %d: %w",
			img.Channels, ErrInvalidArgument)
	}
	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("spritesmith: add: alpha %v outside [0,1]: %w", alpha, ErrInvalidArgument)
	}
	if scale < 1 {
		return fmt.Errorf("spritesmith: add: scale %d < 1: %w", scale, ErrInvalidArgument)
	}
	f.pending = append(f.pending, DrawInstruction{
		Image:    img,
		Position: pos,
		Alpha:    alpha,
		Rotation: rotation,
		Scale:    scale,
		Flip:     flip,
	})
	return nil
}

// Save commits the pending instruction list as the next repeat frames of the
// animation, then clears the pending list. Each committed frame is an
// independent copy: instructions added or mutated afterwards never affect
// frames that were already saved. repeat must be >= 1.
func (f *Frame) Save(repeat int) error {
	if repeat < 1 {
		return fmt.Errorf("spritesmith: save: repeat %d < 1: %w", repeat, ErrInvalidArgument)
	}
	for i := 0; i < repeat; i++ {
		frame := make([]DrawInstruction, len(f.pending))
		copy(frame, f.pending)
		f.committed = append(f.committed, frame)
	}
	f.pending = f.pending[:0]
	return nil
}

// FrameCount returns the number of committed frames.
func (f *Frame) FrameCount() int {
	return len(f.committed)
}

// Render composites every committed frame in order and writes each as a
// zero-padded, sequentially numbered PNG file {prefix}{index}.png in outDir,
// creating the directory if needed. The index width is the decimal digit
// count of the total frame count.
//
// Per frame, each instruction's sprite goes through flip, scale, rotation,
// and chroma-key alpha in that order, then is layered onto an opaque white
// canvas with "over" compositing. The canvas size is established once from
// the first frame's bottom-layer sprite after its transforms, and reused for
// every frame of this render call. Sprites partially or fully outside the
// canvas are clipped.
//
// Fails wrapping ErrEmptyFrame when the first committed frame has no
// instructions. A frame is written only after it composites completely; an
// error mid-frame leaves no partial file for that frame.
func (f *Frame) Render(outDir, prefix string) error {
	if len(f.committed) == 0 || len(f.committed[0]) == 0 {
		return fmt.Errorf("spritesmith: render: first frame has no instructions: %w", ErrEmptyFrame)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("spritesmith: create output dir %s: %w", outDir, err)
	}

	canvasW, canvasH := 0, 0
	width := indexWidth(len(f.committed))
	for i, instructions := range f.committed {
		canvas := f.composite(instructions, canvasW, canvasH)
		if i == 0 {
			canvasW, canvasH = canvas.Width, canvas.Height
		}
		path := filepath.Join(outDir, sequenceFileName(prefix, i, width))
		if err := writePNG(path, canvas.dropAlpha()); err != nil {
			return err
		}
	}
	return nil
}

// composite transforms and layers one frame's instructions onto a fresh
// opaque white canvas. When canvasW/canvasH are zero the canvas is sized to
// the first instruction's post-transform sprite.
func (f *Frame) composite(instructions []DrawInstruction, canvasW, canvasH int) *Raster {
	var canvas *Raster
	if canvasW > 0 && canvasH > 0 {
		canvas = newFilledRaster(canvasW, canvasH, 4, 255)
	}

	for _, in := range instructions {
		sprite, pos := f.transform(in)
		if canvas == nil {
			canvas = newFilledRaster(sprite.Width, sprite.Height, 4, 255)
		}
		layer(canvas, sprite, pos)
	}
	if canvas == nil {
		// A later frame with no instructions renders as a blank canvas.
		canvas = newFilledRaster(canvasW, canvasH, 4, 255)
	}
	return canvas
}

// transform applies one instruction's sprite transforms in the fixed order
// flip -> scale -> rotate -> alpha and returns the 4-channel sprite together
// with its adjusted canvas position.
func (f *Frame) transform(in DrawInstruction) (*Raster, Point) {
	sprite := in.Image.flip(in.Flip)
	sprite = sprite.Scale(in.Scale)
	sprite, pos := sprite.Rotate(in.Rotation, in.Position)
	return withAlpha(sprite, in.Alpha, f.alphaKey), pos
}

// dropAlpha returns a 3-channel copy of a 4-channel raster. Composited
// frames persist without their alpha channel.
func (r *Raster) dropAlpha() *Raster {
	if r.Channels == 3 {
		return r
	}
	out := NewRaster(r.Width, r.Height, 3)
	n := r.Width * r.Height
	for i := 0; i < n; i++ {
		copy(out.Pix[i*3:i*3+3], r.Pix[i*4:i*4+3])
	}
	return out
}
