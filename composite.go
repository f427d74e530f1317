package spritesmith

import "math"

// withAlpha converts a 3-channel sprite to 4 channels by deriving an alpha
// mask from the chroma key: pixels whose three color channels all equal key
// become fully transparent, every other pixel receives round(255*alpha).
func withAlpha(sprite *Raster, alpha float64, key uint8) *Raster {
	out := NewRaster(sprite.Width, sprite.Height, 4)
	av := uint8(math.Round(255 * alpha))
	n := sprite.Width * sprite.Height
	for i := 0; i < n; i++ {
		s := i * 3
		d := i * 4
		out.Pix[d] = sprite.Pix[s]
		out.Pix[d+1] = sprite.Pix[s+1]
		out.Pix[d+2] = sprite.Pix[s+2]
		if sprite.Pix[s] == key && sprite.Pix[s+1] == key && sprite.Pix[s+2] == key {
			out.Pix[d+3] = 0
		} else {
			out.Pix[d+3] = av
		}
	}
	return out
}

// layer composites a 4-channel sprite onto the 4-channel canvas at pos using
// the standard "over" operator with straight (non-premultiplied) alpha:
//
//	a_out = 1 - (1 - a_s)(1 - a_d)
//	c_out = (a_s*c_s + (1 - a_s)*a_d*c_d) / a_out
//
// Only the region where the sprite overlaps the canvas is blended; parts of
// the sprite extending past any canvas edge are clipped, and a sprite fully
// outside the canvas blends nothing. The canvas is mutated in place.
func layer(canvas, sprite *Raster, pos Point) {
	// Intersect the destination rectangle with canvas bounds and shift the
	// source rectangle by the same amounts.
	dx0, dy0 := pos.X, pos.Y
	dx1, dy1 := pos.X+sprite.Width, pos.Y+sprite.Height
	sx0, sy0 := 0, 0
	if dx0 < 0 {
		sx0 = -dx0
		dx0 = 0
	}
	if dy0 < 0 {
		sy0 = -dy0
		dy0 = 0
	}
	if dx1 > canvas.Width {
		dx1 = canvas.Width
	}
	if dy1 > canvas.Height {
		dy1 = canvas.Height
	}
	if dx0 >= dx1 || dy0 >= dy1 {
		return
	}

	for y := dy0; y < dy1; y++ {
		sy := sy0 + (y - dy0)
		for x := dx0; x < dx1; x++ {
			sx := sx0 + (x - dx0)
			s := sprite.offset(sx, sy)
			d := canvas.offset(x, y)

			as := float64(sprite.Pix[s+3]) / 255
			ad := float64(canvas.Pix[d+3]) / 255
			aOut := 1 - (1-as)*(1-ad)
			if aOut <= 0 {
				canvas.Pix[d] = 0
				canvas.Pix[d+1] = 0
				canvas.Pix[d+2] = 0
				canvas.Pix[d+3] = 0
				continue
			}
			for c := 0; c < 3; c++ {
				v := (as*float64(sprite.Pix[s+c]) + (1-as)*ad*float64(canvas.Pix[d+c])) / aOut
				canvas.Pix[d+c] = uint8(v) // truncation, matching the reference
			}
			canvas.Pix[d+3] = uint8(aOut * 255)
		}
	}
}
