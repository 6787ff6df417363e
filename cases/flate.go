package cases

import (
	"bytes"
	stdzlib "compress/zlib"
	"fmt"
	"io"

	kpzlib "github.com/klauspost/compress/zlib"

	"github.com/codecbench/codecbench/harness"
	"github.com/codecbench/codecbench/internal/events"
)

// RegisterCompress registers the DEFLATE/zstd/snappy compression
// cases. Every case compresses the same raw payload, so the reported
// ratios are directly comparable across backends.
func RegisterCompress(reg *harness.Registry) error {
	return registerEach(reg, []harness.Case{
		{
			Name:       "deflate-std",
			Capability: harness.Compress,
			Setup:      rawPayload,
			Invoke:     zlibCompress(newStdZlibWriter, stdzlib.DefaultCompression),
		},
		{
			Name:       "deflate-kp-1",
			Capability: harness.Compress,
			Setup:      rawPayload,
			Invoke:     zlibCompress(newKpZlibWriter, 1),
		},
		{
			Name:       "deflate-kp-6",
			Capability: harness.Compress,
			Setup:      rawPayload,
			Invoke:     zlibCompress(newKpZlibWriter, 6),
		},
		{
			Name:       "deflate-kp-9",
			Capability: harness.Compress,
			Setup:      rawPayload,
			Invoke:     zlibCompress(newKpZlibWriter, 9),
		},
		{
			Name:       "zstd-compress",
			Capability: harness.Compress,
			Setup:      rawPayload,
			Invoke:     zstdCompress,
		},
		{
			Name:       "snappy-compress",
			Capability: harness.Compress,
			Setup:      rawPayload,
			Invoke:     snappyCompress,
		},
	})
}

// RegisterDecompress registers the INFLATE/zstd/snappy decompression
// cases. Setup converts each corpus file into the backend's compressed
// format un-timed, so iterations time only decompression.
func RegisterDecompress(reg *harness.Registry) error {
	return registerEach(reg, []harness.Case{
		{
			Name:       "inflate-std",
			Capability: harness.Decompress,
			Setup:      zlibPayload,
			Invoke:     zlibDecompress(func(r io.Reader) (io.ReadCloser, error) { return stdzlib.NewReader(r) }),
		},
		{
			Name:       "inflate-kp",
			Capability: harness.Decompress,
			Setup:      zlibPayload,
			Invoke:     zlibDecompress(func(r io.Reader) (io.ReadCloser, error) { return kpzlib.NewReader(r) }),
		},
		{
			Name:       "zstd-decompress",
			Capability: harness.Decompress,
			Setup:      zstdPayload,
			Invoke:     zstdDecompress,
		},
		{
			Name:       "snappy-decompress",
			Capability: harness.Decompress,
			Setup:      snappyPayload,
			Invoke:     snappyDecompress,
		},
	})
}

// looksLikeZlib checks the two-byte zlib header: CMF=0x78 (deflate,
// 32K window) and a valid FCHECK (header divisible by 31, RFC 1950).
// The FCHECK guard keeps plain files that happen to start with 'x'
// from being mistaken for zlib streams.
func looksLikeZlib(data []byte) bool {
	if len(data) < 2 || data[0] != 0x78 {
		return false
	}
	return (uint16(data[0])<<8|uint16(data[1]))%31 == 0
}

// rawPayload hands compression cases the uncompressed bytes. Corpus
// files that are already zlib streams (the raw IDAT corpus) are
// inflated un-timed first.
func rawPayload(raw []byte) (harness.Payload, error) {
	if !looksLikeZlib(raw) {
		return harness.Payload{Data: raw, Size: int64(len(raw))}, nil
	}

	r, err := kpzlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return harness.Payload{}, fmt.Errorf("inflate corpus file: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return harness.Payload{}, fmt.Errorf("inflate corpus file: %w", err)
	}
	events.Increment("zlib.setup_inflates")
	return harness.Payload{Data: data, Size: int64(len(data))}, nil
}

// zlibPayload ensures the payload is a zlib stream, compressing
// un-timed when the corpus file is not one already.
func zlibPayload(raw []byte) (harness.Payload, error) {
	if looksLikeZlib(raw) {
		return harness.Payload{Data: raw, Size: int64(len(raw))}, nil
	}

	var buf bytes.Buffer
	w, err := kpzlib.NewWriterLevel(&buf, kpzlib.DefaultCompression)
	if err != nil {
		return harness.Payload{}, err
	}
	if _, err := w.Write(raw); err != nil {
		return harness.Payload{}, err
	}
	if err := w.Close(); err != nil {
		return harness.Payload{}, err
	}
	events.Increment("zlib.setup_deflates")
	return harness.Payload{Data: buf.Bytes(), Size: int64(buf.Len())}, nil
}

type zlibWriterFactory func(w io.Writer, level int) (io.WriteCloser, error)

func newStdZlibWriter(w io.Writer, level int) (io.WriteCloser, error) {
	return stdzlib.NewWriterLevel(w, level)
}

func newKpZlibWriter(w io.Writer, level int) (io.WriteCloser, error) {
	return kpzlib.NewWriterLevel(w, level)
}

func zlibCompress(factory zlibWriterFactory, level int) harness.InvokeFunc {
	return func(input any) (int, error) {
		data := input.([]byte)

		var cw countingWriter
		w, err := factory(&cw, level)
		if err != nil {
			return 0, err
		}
		if _, err := w.Write(data); err != nil {
			return 0, err
		}
		if err := w.Close(); err != nil {
			return 0, err
		}
		return cw.n, nil
	}
}

func zlibDecompress(open func(io.Reader) (io.ReadCloser, error)) harness.InvokeFunc {
	return func(input any) (int, error) {
		r, err := open(bytes.NewReader(input.([]byte)))
		if err != nil {
			return 0, err
		}
		defer r.Close()

		n, err := io.Copy(io.Discard, r)
		if err != nil {
			return 0, err
		}
		return int(n), nil
	}
}
