package cases

import (
	"fmt"

	"github.com/golang/snappy"

	"github.com/codecbench/codecbench/harness"
)

func snappyCompress(input any) (int, error) {
	out := snappy.Encode(nil, input.([]byte))
	return len(out), nil
}

func snappyDecompress(input any) (int, error) {
	out, err := snappy.Decode(nil, input.([]byte))
	if err != nil {
		return 0, fmt.Errorf("snappy: %w", err)
	}
	return len(out), nil
}

// snappyPayload re-encodes the corpus file as a snappy block un-timed.
func snappyPayload(raw []byte) (harness.Payload, error) {
	p, err := rawPayload(raw)
	if err != nil {
		return harness.Payload{}, err
	}
	block := snappy.Encode(nil, p.Data.([]byte))
	return harness.Payload{Data: block, Size: int64(len(block))}, nil
}
