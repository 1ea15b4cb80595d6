package storage

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// maxLegacyFileSize bounds the decoded size of a legacy store file.
const maxLegacyFileSize = 64 << 20

// Compressor encodes the legacy store file. Close releases its codec state.
type Compressor interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/4)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	out, err := z.decoder.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}

func (z *ZstdCompression) Close() {
	z.encoder.Close()
	z.decoder.Close()
}

// NewZstdCompressor favours ratio over speed: the legacy file is rewritten
// once per write and holds mostly repetitive snapshot JSON.
func NewZstdCompressor() (Compressor, error) {
	return newZstdCompressor(maxLegacyFileSize)
}

func newZstdCompressor(maxDecoded uint64) (*ZstdCompression, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxDecoded),
	)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}
