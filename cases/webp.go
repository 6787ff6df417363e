package cases

import (
	"bytes"

	"golang.org/x/image/webp"

	"github.com/codecbench/codecbench/internal/events"
)

func decodeWebP(input any) (int, error) {
	img, err := webp.Decode(bytes.NewReader(input.([]byte)))
	if err != nil {
		return 0, err
	}
	b := img.Bounds()
	pixels := b.Dx() * b.Dy()
	events.Add("webp.decoded_pixels", int64(pixels))
	return pixels, nil
}
