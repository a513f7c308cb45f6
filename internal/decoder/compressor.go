package decoder

import (
	"bytes"
	"donosync/internal/decoder/interfaces"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ZstdCompression decodes stream payloads. The encoder is only needed by
// the feed simulator and is built on the first Compress call.
type ZstdCompression struct {
	mu      sync.Mutex
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	encoder, err := z.loadEncoder()
	if err != nil {
		return nil, err
	}
	return encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) loadEncoder() (*zstd.Encoder, error) {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.encoder == nil {
		encoder, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		z.encoder = encoder
	}
	return z.encoder, nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	z.mu.Lock()
	if z.encoder != nil {
		_ = z.encoder.Close()
		z.encoder = nil
	}
	z.mu.Unlock()
	z.decoder.Close()
}

// IsZstd reports whether payload starts with a zstd frame header.
func IsZstd(payload []byte) bool {
	return bytes.HasPrefix(payload, zstdMagic)
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0), zstd.WithDecoderMaxMemory(64<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{decoder: decoder}, nil
}
