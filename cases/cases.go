// Package cases provides the built-in codec benchmark cases: PNG and
// WebP image codecs plus DEFLATE, zstd and snappy compression
// backends. Each case wraps an existing codec library; the package
// implements no codec itself.
package cases

import (
	"image"

	"github.com/codecbench/codecbench/harness"
)

// RegisterAll registers every built-in case for the given capability.
func RegisterAll(reg *harness.Registry, capability harness.Capability) error {
	switch capability {
	case harness.Decode:
		return RegisterDecode(reg)
	case harness.Encode:
		return RegisterEncode(reg)
	case harness.Compress:
		return RegisterCompress(reg)
	case harness.Decompress:
		return RegisterDecompress(reg)
	default:
		return nil
	}
}

func registerEach(reg *harness.Registry, cs []harness.Case) error {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// countingWriter discards output while tracking how many bytes an
// encoder produced.
type countingWriter struct {
	n int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

// pixelBytes returns the in-memory size of a decoded image's pixel
// data, the denominator for encode compression ratios.
func pixelBytes(img image.Image) int {
	switch im := img.(type) {
	case *image.RGBA:
		return len(im.Pix)
	case *image.NRGBA:
		return len(im.Pix)
	case *image.RGBA64:
		return len(im.Pix)
	case *image.NRGBA64:
		return len(im.Pix)
	case *image.Gray:
		return len(im.Pix)
	case *image.Gray16:
		return len(im.Pix)
	case *image.Paletted:
		return len(im.Pix)
	case *image.YCbCr:
		return len(im.Y) + len(im.Cb) + len(im.Cr)
	default:
		b := img.Bounds()
		return b.Dx() * b.Dy() * 4
	}
}
