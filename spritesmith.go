package spritesmith

// Point is an integer pixel coordinate. The coordinate system has its origin
// at the top-left, with Y increasing downward (matching image row order).
type Point struct {
	X, Y int
}

// Flip selects axis mirroring applied to a sprite before any other
// transform. The two axes are independent.
type Flip struct {
	Horizontal bool // mirror across the vertical axis (left <-> right)
	Vertical   bool // mirror across the horizontal axis (top <-> bottom)
}

// NoFlip is the zero flip (no mirroring).
var NoFlip = Flip{}

// Sequence is an ordered list of raster frames, index-addressable in
// playback order. Extraction operations take and return Sequences; they
// never mutate their input frames.
type Sequence []*Raster
