package testsupport

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	writeBytes(t, path, buf)
}

// WriteJPEG encodes a flat grey JPEG of the given size. The file carries no
// EXIF segment.
func WriteJPEG(t testing.TB, path string, width, height int) {
	t.Helper()
	writeBytes(t, path, encodeGray(t, width, height))
}

// Capture describes the EXIF fields WriteEXIFJPEG embeds.
type Capture struct {
	Taken        string
	FNumber      float64
	FocalLength  float64
	ExposureBias float64
}

// WriteEXIFJPEG encodes a grey JPEG of the given size with an APP1 segment
// holding DateTimeOriginal, FNumber, FocalLength and ExposureBiasValue.
func WriteEXIFJPEG(t testing.TB, path string, width, height int, c Capture) {
	t.Helper()

	encoded := encodeGray(t, width, height)
	payload := append([]byte("Exif\x00\x00"), exifTIFF(c)...)

	var out bytes.Buffer
	out.Write(encoded[:2])
	out.Write([]byte{0xFF, 0xE1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(encoded[2:])
	writeBytes(t, path, out.Bytes())
}

// exifTIFF lays out a little-endian TIFF block: IFD0 with a single Exif
// pointer, then an Exif IFD of four entries, then the value area.
func exifTIFF(c Capture) []byte {
	const (
		ifd0Offset = 8
		exifOffset = ifd0Offset + 2 + 12 + 4
		dataOffset = exifOffset + 2 + 4*12 + 4
	)
	taken := append([]byte(c.Taken), 0)

	var buf bytes.Buffer
	le := binary.LittleEndian
	w := func(v any) { _ = binary.Write(&buf, le, v) }
	entry := func(tag, typ uint16, count, value uint32) {
		w(tag)
		w(typ)
		w(count)
		w(value)
	}

	buf.WriteString("II")
	w(uint16(42))
	w(uint32(ifd0Offset))

	w(uint16(1))
	entry(0x8769, 4, 1, exifOffset)
	w(uint32(0))

	fnumberAt := uint32(dataOffset + len(taken))
	w(uint16(4))
	entry(0x829D, 5, 1, fnumberAt)
	entry(0x9003, 2, uint32(len(taken)), dataOffset)
	entry(0x9204, 10, 1, fnumberAt+16)
	entry(0x920A, 5, 1, fnumberAt+8)
	w(uint32(0))

	buf.Write(taken)
	w(uint32(math.Round(c.FNumber * 100)))
	w(uint32(100))
	w(uint32(math.Round(c.FocalLength * 100)))
	w(uint32(100))
	w(int32(math.Round(c.ExposureBias * 100)))
	w(int32(100))
	return buf.Bytes()
}

func encodeGray(t testing.TB, width, height int) []byte {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = color.Gray{Y: 0x80}.Y
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func writeBytes(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
