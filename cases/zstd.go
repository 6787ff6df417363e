package cases

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/codecbench/codecbench/harness"
	"github.com/codecbench/codecbench/internal/events"
)

// Shared stateless codecs. EncodeAll/DecodeAll are safe for
// concurrent use, so one instance serves all workers.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

func zstdCompress(input any) (int, error) {
	out := zstdEncoder.EncodeAll(input.([]byte), nil)
	events.Add("zstd.compressed_bytes", int64(len(out)))
	return len(out), nil
}

func zstdDecompress(input any) (int, error) {
	out, err := zstdDecoder.DecodeAll(input.([]byte), nil)
	if err != nil {
		return 0, fmt.Errorf("zstd: %w", err)
	}
	return len(out), nil
}

// zstdPayload converts the corpus file into a zstd frame un-timed.
// Already-zlib corpus files are inflated first so every backend
// decompresses the same logical content.
func zstdPayload(raw []byte) (harness.Payload, error) {
	p, err := rawPayload(raw)
	if err != nil {
		return harness.Payload{}, err
	}
	frame := zstdEncoder.EncodeAll(p.Data.([]byte), nil)
	return harness.Payload{Data: frame, Size: int64(len(frame))}, nil
}
