package cases

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/codecbench/codecbench/harness"
	"github.com/codecbench/codecbench/internal/events"
)

// RegisterDecode registers the image decode cases.
func RegisterDecode(reg *harness.Registry) error {
	return registerEach(reg, []harness.Case{
		{
			Name:       "decode-png",
			Capability: harness.Decode,
			Extensions: []string{"png"},
			Invoke:     decodePNG,
		},
		{
			Name:       "decode-webp",
			Capability: harness.Decode,
			Extensions: []string{"webp"},
			Invoke:     decodeWebP,
		},
	})
}

func decodePNG(input any) (int, error) {
	img, err := png.Decode(bytes.NewReader(input.([]byte)))
	if err != nil {
		return 0, err
	}
	b := img.Bounds()
	pixels := b.Dx() * b.Dy()
	events.Add("png.decoded_pixels", int64(pixels))
	return pixels, nil
}

// RegisterEncode registers the image encode cases. WebP is absent: no
// pure-Go WebP encoder exists, and native bindings are out of scope.
func RegisterEncode(reg *harness.Registry) error {
	return registerEach(reg, []harness.Case{
		{
			Name:       "encode-png",
			Capability: harness.Encode,
			Extensions: []string{"png"},
			Setup:      decodeToImage,
			Invoke:     encodePNG(png.DefaultCompression),
		},
		{
			Name:       "encode-png-fast",
			Capability: harness.Encode,
			Extensions: []string{"png"},
			Setup:      decodeToImage,
			Invoke:     encodePNG(png.BestSpeed),
		},
	})
}

// decodeToImage decodes the source image once, un-timed, so encode
// iterations measure only encoding. The payload size is the pixel
// bytes, making the reported ratio encoded/uncompressed.
func decodeToImage(raw []byte) (harness.Payload, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return harness.Payload{}, err
	}
	return harness.Payload{Data: img, Size: int64(pixelBytes(img))}, nil
}

func encodePNG(level png.CompressionLevel) harness.InvokeFunc {
	return func(input any) (int, error) {
		img, ok := input.(image.Image)
		if !ok {
			return 0, fmt.Errorf("expected image.Image, got %T", input)
		}

		var w countingWriter
		enc := png.Encoder{CompressionLevel: level}
		if err := enc.Encode(&w, img); err != nil {
			return 0, err
		}
		events.Add("png.encoded_bytes", int64(w.n))
		return w.n, nil
	}
}
