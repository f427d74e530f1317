// Package spritesmith builds 2D sprite animation frames programmatically and
// extracts clean sprite images from recorded game footage.
//
// Image editing software is built around modifying a single image, which
// makes the save-export-rename loop of frame-by-frame animation painful.
// Spritesmith replaces that loop with code: sprites are grouped into named
// events on a [FrameElement], placed with per-sprite transforms on a
// [Frame], and rendered to a numbered PNG sequence in one call.
//
// # Compositing
//
// A [Frame] accumulates draw instructions between saves. Each instruction
// carries a sprite plus its transform: flip, integer scale, rotation,
// alpha, and position. [Frame.Save] commits the pending instructions as one
// or more animation frames; [Frame.Render] applies the transforms in a
// fixed order (flip, scale, rotate, alpha) and layers the results with
// "over" alpha compositing onto a white canvas sized by the first frame's
// bottom layer:
//
//	frame := spritesmith.NewFrame()
//	cat := spritesmith.NewFrameElement()
//	cat.AddEvent("walking", "sprites/cat/walking")
//
//	for i := 0; i < 30; i++ {
//		bg, _ := scene.Sprite("exist", 0)
//		frame.Add(bg, spritesmith.Point{}, 1, 0, 1, spritesmith.NoFlip)
//		sprite, _ := cat.Sprite("walking", i%2)
//		frame.Add(sprite, spritesmith.Point{X: 52, Y: 476}, 1, 0, 10, spritesmith.NoFlip)
//		frame.Save(1)
//	}
//	frame.Render("out", "Frame_")
//
// Transparency comes from a per-Frame chroma key ([Frame.SetAlphaKey]):
// sprite pixels whose channels all equal the key composite as fully
// transparent.
//
// # Extraction
//
// The extraction pipeline turns captured footage frames back into clean
// sprites: [LoadSequence] reads a numbered PNG sequence, [Crop] cuts the
// region of interest, [CleanPixelation] collapses capture-scaling blocks
// back to true sprite pixels, [Isolate] removes a known background color by
// connected-component analysis, and [SaveSequence] writes the result.
//
// # Motion
//
// [EaseValues] and [EasePath] sample easing curves (via [gween]) at frame
// granularity for parametric movement, fades, and spins.
//
// All operations are synchronous and deterministic; failures are sentinel
// errors ([ErrEmptyInput], [ErrNotFound], ...) matched with errors.Is.
//
// [gween]: https://github.com/tanema/gween
package spritesmith
