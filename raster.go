package spritesmith

// Raster is an 8-bit-per-channel pixel buffer with 3 (RGB) or 4 (RGBA)
// channels. Pixels are stored row-major in Pix; the pixel at (x, y) starts
// at Pix[(y*Width+x)*Channels].
//
// Rasters produced by transform steps are treated as immutable: every
// transform allocates and returns a new Raster and never writes to its
// input.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewRaster allocates a zeroed raster. Channels must be 3 or 4.
func NewRaster(width, height, channels int) *Raster {
	return &Raster{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// newFilledRaster allocates a raster with every byte set to v.
func newFilledRaster(width, height, channels int, v uint8) *Raster {
	r := NewRaster(width, height, channels)
	for i := range r.Pix {
		r.Pix[i] = v
	}
	return r
}

// offset returns the Pix index of the first channel of pixel (x, y).
func (r *Raster) offset(x, y int) int {
	return (y*r.Width + x) * r.Channels
}

// At returns channel c of pixel (x, y). The caller guarantees bounds.
func (r *Raster) At(x, y, c int) uint8 {
	return r.Pix[(y*r.Width+x)*r.Channels+c]
}

// Set writes channel c of pixel (x, y). The caller guarantees bounds.
func (r *Raster) Set(x, y, c int, v uint8) {
	r.Pix[(y*r.Width+x)*r.Channels+c] = v
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	out := &Raster{Width: r.Width, Height: r.Height, Channels: r.Channels}
	out.Pix = make([]uint8, len(r.Pix))
	copy(out.Pix, r.Pix)
	return out
}

// FlipH returns a copy mirrored across the vertical axis (left <-> right).
func (r *Raster) FlipH() *Raster {
	out := NewRaster(r.Width, r.Height, r.Channels)
	c := r.Channels
	for y := 0; y < r.Height; y++ {
		row := y * r.Width * c
		for x := 0; x < r.Width; x++ {
			src := row + x*c
			dst := row + (r.Width-1-x)*c
			copy(out.Pix[dst:dst+c], r.Pix[src:src+c])
		}
	}
	return out
}

// FlipV returns a copy mirrored across the horizontal axis (top <-> bottom).
func (r *Raster) FlipV() *Raster {
	out := NewRaster(r.Width, r.Height, r.Channels)
	rowBytes := r.Width * r.Channels
	for y := 0; y < r.Height; y++ {
		src := y * rowBytes
		dst := (r.Height - 1 - y) * rowBytes
		copy(out.Pix[dst:dst+rowBytes], r.Pix[src:src+rowBytes])
	}
	return out
}

// flip applies horizontal then vertical mirroring, each conditionally.
// Returns the input unchanged (not a copy) when neither axis is flipped.
func (r *Raster) flip(f Flip) *Raster {
	out := r
	if f.Horizontal {
		out = out.FlipH()
	}
	if f.Vertical {
		out = out.FlipV()
	}
	return out
}

// Scale returns a copy upsampled by replicating every source pixel into a
// factor x factor block. No interpolation occurs, so cropping the result
// back at stride factor recovers the source exactly. factor must be >= 1;
// factor 1 returns the input unchanged (not a copy).
func (r *Raster) Scale(factor int) *Raster {
	if factor == 1 {
		return r
	}
	out := NewRaster(r.Width*factor, r.Height*factor, r.Channels)
	c := r.Channels
	for y := 0; y < r.Height; y++ {
		// Replicate the source row horizontally into the first output row
		// of the block, then copy that row down factor-1 times.
		base := y * factor * out.Width * c
		for x := 0; x < r.Width; x++ {
			src := r.offset(x, y)
			for i := 0; i < factor; i++ {
				dst := base + (x*factor+i)*c
				copy(out.Pix[dst:dst+c], r.Pix[src:src+c])
			}
		}
		rowBytes := out.Width * c
		for i := 1; i < factor; i++ {
			dst := base + i*rowBytes
			copy(out.Pix[dst:dst+rowBytes], out.Pix[base:base+rowBytes])
		}
	}
	return out
}

// SubRect returns a copy of the rectangle [x, x+w) x [y, y+h) intersected
// with the raster bounds. A fully out-of-bounds rectangle yields an empty
// raster.
func (r *Raster) SubRect(x, y, w, h int) *Raster {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, r.Width), min(y+h, r.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	out := NewRaster(x1-x0, y1-y0, r.Channels)
	c := r.Channels
	rowBytes := out.Width * c
	for yy := y0; yy < y1; yy++ {
		src := r.offset(x0, yy)
		dst := (yy - y0) * rowBytes
		copy(out.Pix[dst:dst+rowBytes], r.Pix[src:src+rowBytes])
	}
	return out
}
