package cache

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	encoderOnce sync.Once
	encoder     *zstd.Encoder
	decoderOnce sync.Once
	decoder     *zstd.Decoder
)

func getEncoder() *zstd.Encoder {
	encoderOnce.Do(func() {
		encoder, _ = zstd.NewWriter(nil)
	})
	return encoder
}

func getDecoder() *zstd.Decoder {
	decoderOnce.Do(func() {
		decoder, _ = zstd.NewReader(nil)
	})
	return decoder
}

// compress zstd-compresses canonical payload bytes before insert
// (DOMAIN STACK "player_states.payload_bytes and config_snapshots.
// payload_bytes are zstd-compressed canonical bytes").
func compress(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return b, nil
	}
	return getEncoder().EncodeAll(b, nil), nil
}

func decompress(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return b, nil
	}
	out, err := getDecoder().DecodeAll(b, nil)
	if err != nil {
		return nil, fmt.Errorf("cache: zstd decode: %w", err)
	}
	return out, nil
}
