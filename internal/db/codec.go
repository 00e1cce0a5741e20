package db

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var ErrCorruptValues = errors.New("corrupt snapshot values")

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

// EncodeValues packs values as little-endian float64s and compresses them.
func EncodeValues(values []float64) ([]byte, error) {
	raw := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(v))
	}

	enc, err := getZstdEncoder()
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

// DecodeValues reverses EncodeValues and checks that exactly n values come out.
func DecodeValues(blob []byte, n int) ([]float64, error) {
	dec, err := getZstdDecoder()
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer zstdDecoderPool.Put(dec)

	raw, err := dec.DecodeAll(blob, make([]byte, 0, 8*n))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptValues, err)
	}
	if len(raw) != 8*n {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrCorruptValues, 8*n, len(raw))
	}

	values := make([]float64, n)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return values, nil
}
