package spritesmith

import "fmt"

// Crop returns a new sequence with every frame cropped to the fixed
// rectangle [x, x+w) x [y, y+h), intersected with each frame's bounds.
// Fails wrapping ErrEmptyInput on an empty sequence and ErrInvalidArgument
// on a non-positive extent.
func Crop(seq Sequence, x, y, w, h int) (Sequence, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("spritesmith: crop: %w", ErrEmptyInput)
	}
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("spritesmith: crop: extent %dx%d: %w", w, h, ErrInvalidArgument)
	}
	out := make(Sequence, len(seq))
	for i, frame := range seq {
		out[i] = frame.SubRect(x, y, w, h)
	}
	return out, nil
}

// RelativePosition translates a capture-space pixel coordinate into the
// coordinate space of a crop whose top-left corner is (cropX, cropY).
// Used to carry a sprite-pixel reference point across a Crop call.
func RelativePosition(cropX, cropY, spriteX, spriteY int) Point {
	return Point{X: spriteX - cropX, Y: spriteY - cropY}
}

// CleanPixelation reverses block-resampling artifacts introduced by video
// capture, where each true sprite pixel was stretched to a block x block
// square of capture pixels.
//
// ref is the capture-space coordinate of the top-left corner of some true
// sprite pixel; it must lie on a genuine sprite-pixel boundary, which is the
// caller's responsibility. For each edge, the remainder of that edge's
// distance from ref modulo block is trimmed, leaving dimensions that are
// exact multiples of block. Each block x block square then collapses to one
// output pixel holding the per-channel mean, truncated to integer.
//
// Fails wrapping ErrEmptyInput on an empty sequence and ErrInvalidArgument
// when block < 1.
func CleanPixelation(seq Sequence, ref Point, block int) (Sequence, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("spritesmith: clean pixelation: %w", ErrEmptyInput)
	}
	if block < 1 {
		return nil, fmt.Errorf("spritesmith: clean pixelation: block size %d: %w", block, ErrInvalidArgument)
	}
	out := make(Sequence, len(seq))
	for i, frame := range seq {
		out[i] = cleanFrame(frame, ref, block)
	}
	return out, nil
}

// cleanFrame trims the edge remainders of one frame and downsamples each
// block to its truncated mean.
func cleanFrame(frame *Raster, ref Point, block int) *Raster {
	trimLeft := mod(ref.X, block)
	trimTop := mod(ref.Y, block)
	trimRight := mod(frame.Width-ref.X, block)
	trimBottom := mod(frame.Height-ref.Y, block)

	w := frame.Width - trimLeft - trimRight
	h := frame.Height - trimTop - trimBottom
	if w < block || h < block {
		return NewRaster(0, 0, frame.Channels)
	}

	outW := w / block
	outH := h / block
	out := NewRaster(outW, outH, 3)
	area := block * block
	for oy := 0; oy < outH; oy++ {
		for ox := 0; ox < outW; ox++ {
			var sum [3]int
			for yy := 0; yy < block; yy++ {
				y := trimTop + oy*block + yy
				for xx := 0; xx < block; xx++ {
					x := trimLeft + ox*block + xx
					p := frame.offset(x, y)
					sum[0] += int(frame.Pix[p])
					sum[1] += int(frame.Pix[p+1])
					sum[2] += int(frame.Pix[p+2])
				}
			}
			d := out.offset(ox, oy)
			out.Pix[d] = uint8(sum[0] / area)
			out.Pix[d+1] = uint8(sum[1] / area)
			out.Pix[d+2] = uint8(sum[2] / area)
		}
	}
	return out
}

// mod returns n modulo m in [0, m), also for negative n.
func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

// Isolate separates the sprite from a known background in every frame.
//
// A pixel counts as foreground when any of its channels lies outside
// [background-tolerance, background+tolerance] for the corresponding
// background pixel. The foreground mask is denoised with a fixed
// dilate-erode-dilate pass (5x5 element), its 8-connected components are
// labeled, and one component is selected by area rank: the largest, or the
// second largest when preferSecondLargest is set (for captures where the
// leftover background itself forms the dominant blob). Every pixel outside
// the selected component, or inside it only because dilation swallowed
// background-colored neighbors, is zeroed.
//
// Fails wrapping ErrEmptyInput on an empty sequence, ErrInvalidArgument for
// a negative tolerance or a background whose dimensions differ from a
// frame's, and ErrNoRegionFound when the requested area rank does not exist.
func Isolate(seq Sequence, background *Raster, tolerance int, preferSecondLargest bool) (Sequence, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("spritesmith: isolate: %w", ErrEmptyInput)
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("spritesmith: isolate: tolerance %d < 0: %w", tolerance, ErrInvalidArgument)
	}
	out := make(Sequence, len(seq))
	for i, frame := range seq {
		isolated, err := isolateFrame(frame, background, tolerance, preferSecondLargest)
		if err != nil {
			return nil, fmt.Errorf("spritesmith: isolate frame %d: %w", i, err)
		}
		out[i] = isolated
	}
	return out, nil
}

func isolateFrame(frame, background *Raster, tolerance int, preferSecondLargest bool) (*Raster, error) {
	if frame.Width != background.Width || frame.Height != background.Height {
		return nil, fmt.Errorf("background %dx%d does not match frame %dx%d: %w",
			background.Width, background.Height, frame.Width, frame.Height, ErrInvalidArgument)
	}

	raw := foregroundMask(frame, background, tolerance)
	components := labelComponents(raw.denoise())

	rank := 0
	if preferSecondLargest {
		rank = 1
	}
	selected, ok := components.rankByArea(rank)
	if !ok {
		return nil, fmt.Errorf("%d labeled regions, need rank %d: %w",
			len(components.counts), rank, ErrNoRegionFound)
	}

	out := NewRaster(frame.Width, frame.Height, 3)
	n := frame.Width * frame.Height
	for i := 0; i < n; i++ {
		// Keep only pixels of the selected component that the raw mask also
		// marked: denoising may have grown the blob over background-colored
		// pixels, and those must stay zero in the isolated sprite.
		if components.labels[i] != selected || raw.pix[i] == 0 {
			continue
		}
		copy(out.Pix[i*3:i*3+3], frame.Pix[i*3:i*3+3])
	}
	return out, nil
}

// foregroundMask marks every pixel with any channel outside
// [background-tolerance, background+tolerance].
func foregroundMask(frame, background *Raster, tolerance int) *bitmask {
	mask := newBitmask(frame.Width, frame.Height)
	n := frame.Width * frame.Height
	for i := 0; i < n; i++ {
		for c := 0; c < 3; c++ {
			v := int(frame.Pix[i*3+c])
			b := int(background.Pix[i*3+c])
			if v < b-tolerance || v > b+tolerance {
				mask.pix[i] = 1
				break
			}
		}
	}
	return mask
}
