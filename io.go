package spritesmith

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	// Sprite sources may be captured as JPEG before conversion; register the
	// decoder so event directories with mixed formats still load.
	_ "image/jpeg"
)

// LoadSequence loads the image sequence in folder whose filenames match
// {prefix}{1-3 digits}.png, in ascending filename order. No matching files
// yields an empty sequence and no error; a missing or unreadable folder
// wraps ErrNotFound. Downstream operations reject empty sequences with
// ErrEmptyInput.
func LoadSequence(folder, prefix string) (Sequence, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("spritesmith: read sequence folder %s: %w: %v", folder, ErrNotFound, err)
	}
	pattern, err := regexp.Compile("^" + regexp.QuoteMeta(prefix) + `\d{1,3}\.png$`)
	if err != nil {
		return nil, fmt.Errorf("spritesmith: sequence prefix %q: %w: %v", prefix, ErrInvalidArgument, err)
	}

	var seq Sequence
	for _, entry := range entries { // ReadDir sorts by filename
		if entry.IsDir() || !pattern.MatchString(entry.Name()) {
			continue
		}
		r, err := readImage(filepath.Join(folder, entry.Name()))
		if err != nil {
			return nil, err
		}
		seq = append(seq, r)
	}
	return seq, nil
}

// SaveSequence writes the sequence to folder as zero-padded, sequentially
// numbered PNG files named {prefix}{index}.png, creating the folder if it
// does not exist. The index width is the decimal digit count of the
// sequence length. Returns ErrEmptyInput for an empty sequence.
func SaveSequence(seq Sequence, folder, prefix string) error {
	if len(seq) == 0 {
		return fmt.Errorf("spritesmith: save sequence: %w", ErrEmptyInput)
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("spritesmith: create output folder %s: %w", folder, err)
	}
	width := indexWidth(len(seq))
	for i, frame := range seq {
		path := filepath.Join(folder, sequenceFileName(prefix, i, width))
		if err := writePNG(path, frame); err != nil {
			return err
		}
	}
	return nil
}

// indexWidth returns the zero-pad width for a sequence of n frames: the
// decimal digit count of n itself (150 frames pad to 3 digits, 000-149).
func indexWidth(n int) int {
	return len(strconv.Itoa(n))
}

// sequenceFileName formats one output filename: {prefix}{index}.png with the
// index zero-padded to width digits.
func sequenceFileName(prefix string, index, width int) string {
	return fmt.Sprintf("%s%0*d.png", prefix, width, index)
}

// readImage decodes the image file at path into a 3-channel raster. Any
// alpha channel in the source is dropped. Wraps ErrNotFound when the file
// cannot be opened or decoded.
func readImage(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spritesmith: open image %s: %w: %v", path, ErrNotFound, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("spritesmith: decode image %s: %w: %v", path, ErrNotFound, err)
	}
	return fromImage(img), nil
}

// fromImage converts a decoded image to a 3-channel raster, dropping alpha.
func fromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewRaster(w, h, 3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			out.Pix[i] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return out
}

// toImage converts a 3-channel raster to an opaque NRGBA image. The PNG
// encoder writes opaque images without an alpha channel, keeping persisted
// frames 3-channel on disk.
func toImage(r *Raster) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	n := r.Width * r.Height
	for i := 0; i < n; i++ {
		s := i * 3
		d := i * 4
		img.Pix[d] = r.Pix[s]
		img.Pix[d+1] = r.Pix[s+1]
		img.Pix[d+2] = r.Pix[s+2]
		img.Pix[d+3] = 255
	}
	return img
}

// writePNG encodes a 3-channel raster to a PNG file at the given path.
func writePNG(path string, r *Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("spritesmith: create %s: %w", path, err)
	}
	if err := png.Encode(f, toImage(r)); err != nil {
		f.Close()
		return fmt.Errorf("spritesmith: encode %s: %w", path, err)
	}
	return f.Close()
}

// loadEventDir loads every decodable image in dir in lexicographic filename
// order. Files that fail to decode are skipped; an unreadable directory or
// one with no loadable images wraps ErrNotFound.
func loadEventDir(dir string) ([]*Raster, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("spritesmith: read event folder %s: %w: %v", dir, ErrNotFound, err)
	}
	var images []*Raster
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		r, err := readImage(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		images = append(images, r)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("spritesmith: event folder %s has no loadable images: %w", dir, ErrNotFound)
	}
	return images, nil
}
