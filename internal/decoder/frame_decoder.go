package decoder

import (
	"donosync/internal/decoder/interfaces"
	"donosync/internal/models"
	"fmt"

	"github.com/gorilla/websocket"
)

// FrameDecoder decodes websocket frames. Text frames carry JSON directly,
// binary frames carry zstd compressed JSON.
type FrameDecoder struct {
	compressor interfaces.CompressorInterface
}

func NewFrameDecoder(compressor interfaces.CompressorInterface) *FrameDecoder {
	return &FrameDecoder{compressor: compressor}
}

func (fd *FrameDecoder) DecodeFrame(messageType int, payload []byte) (*models.Snapshot, error) {
	switch messageType {
	case websocket.TextMessage:
		return Decode(payload)
	case websocket.BinaryMessage:
		if !IsZstd(payload) {
			return nil, &DecodeError{Err: fmt.Errorf("%w: binary frame without zstd header", ErrUnsupportedFrame)}
		}
		raw, err := fd.compressor.Decompress(payload)
		if err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("decompress: %w", err)}
		}
		return Decode(raw)
	default:
		return nil, &DecodeError{Err: fmt.Errorf("%w: %d", ErrUnsupportedFrame, messageType)}
	}
}

func (fd *FrameDecoder) Close() {
	fd.compressor.Close()
}
