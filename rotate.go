package spritesmith

import "math"

// Affine matrices use the layout [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// so a point maps as x' = a*x + c*y + tx, y' = b*x + d*y + ty.

// identityAffine is the identity affine matrix.
var identityAffine = [6]float64{1, 0, 0, 1, 0, 0}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityAffine
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// rotatedBounds returns the bounding-box dimensions of a w x h sprite
// rotated by theta radians: round(h*|sin| + w*|cos|) by
// round(h*|cos| + w*|sin|).
func rotatedBounds(w, h int, theta float64) (int, int) {
	sin := math.Abs(math.Sin(theta))
	cos := math.Abs(math.Cos(theta))
	newW := int(math.Round(float64(h)*sin + float64(w)*cos))
	newH := int(math.Round(float64(h)*cos + float64(w)*sin))
	return newW, newH
}

// Rotate rotates the raster about its own center by degrees (positive =
// counter-clockwise) and returns the rotated raster together with the
// adjusted top-left position that keeps the original center anchored at
// pos + center.
//
// The output is sized to the rotated bounding box; pixels with no source
// coverage are zero. Sampling is bilinear, so a 0-degree rotation is an
// exact pixel-for-pixel copy.
func (r *Raster) Rotate(degrees float64, pos Point) (*Raster, Point) {
	theta := degrees * math.Pi / 180
	sin, cos := math.Sincos(theta)

	cx := r.Width / 2
	cy := r.Height / 2
	newW, newH := rotatedBounds(r.Width, r.Height, theta)

	// Absolute center in canvas space; the rotated sprite's top-left is
	// placed so this center does not move.
	newPos := Point{
		X: pos.X + cx - newW/2,
		Y: pos.Y + cy - newH/2,
	}

	// Rotation about (cx, cy), then a shift recentering the result in the
	// enlarged bounding box. Integer halves match the anchor arithmetic
	// above so center pixels stay aligned.
	fcx, fcy := float64(cx), float64(cy)
	m := [6]float64{
		cos, -sin,
		sin, cos,
		(1-cos)*fcx - sin*fcy + float64(newW/2-cx),
		sin*fcx + (1-cos)*fcy + float64(newH/2-cy),
	}

	out := NewRaster(newW, newH, r.Channels)
	inv := invertAffine(m)
	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			sx, sy := transformPoint(inv, float64(x), float64(y))
			r.sampleBilinear(sx, sy, out.Pix[out.offset(x, y):out.offset(x, y)+r.Channels])
		}
	}
	return out, newPos
}

// sampleBilinear writes the bilinearly interpolated pixel at the
// floating-point source coordinate (sx, sy) into dst, one byte per channel.
// Neighbors outside the raster contribute zero.
func (r *Raster) sampleBilinear(sx, sy float64, dst []uint8) {
	x0 := int(math.Floor(sx))
	y0 := int(math.Floor(sy))
	fx := sx - float64(x0)
	fy := sy - float64(y0)

	w00 := (1 - fx) * (1 - fy)
	w10 := fx * (1 - fy)
	w01 := (1 - fx) * fy
	w11 := fx * fy

	for c := 0; c < r.Channels; c++ {
		var v float64
		if p, ok := r.pixelOrZero(x0, y0, c); ok {
			v += w00 * float64(p)
		}
		if p, ok := r.pixelOrZero(x0+1, y0, c); ok {
			v += w10 * float64(p)
		}
		if p, ok := r.pixelOrZero(x0, y0+1, c); ok {
			v += w01 * float64(p)
		}
		if p, ok := r.pixelOrZero(x0+1, y0+1, c); ok {
			v += w11 * float64(p)
		}
		dst[c] = uint8(math.Round(math.Min(v, 255)))
	}
}

// pixelOrZero returns channel c of pixel (x, y) and whether it is in bounds.
func (r *Raster) pixelOrZero(x, y, c int) (uint8, bool) {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return 0, false
	}
	return r.Pix[(y*r.Width+x)*r.Channels+c], true
}
