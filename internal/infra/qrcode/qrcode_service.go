// Package qrcode renders channel share codes.
package qrcode

import (
	"encoding/json"

	"vidhub/config"
	"vidhub/internal/domain/service"
	"vidhub/internal/errors"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	payloadType = "channel_subscription"

	defaultSize = 256
	minSize     = 64
	maxSize     = 2048
)

type qrcodeService struct {
	size  int
	level qrcode.RecoveryLevel
}

// channelPayload is the JSON document carried inside the code.
type channelPayload struct {
	ChannelID string `json:"channel_id"`
	Type      string `json:"type"`
}

// NewQRCodeService creates a new QR code service from qrCode.size and
// qrCode.recoveryLevel.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level := defaultSize, "M"
	if cfg != nil && cfg.QRCode != nil {
		size, level = cfg.QRCode.Size, cfg.QRCode.RecoveryLevel
	}

	return newQRCodeService(size, level)
}

func newQRCodeService(size int, recoveryLevel string) *qrcodeService {
	if size < minSize || size > maxSize {
		size = defaultSize
	}

	return &qrcodeService{
		size:  size,
		level: parseRecoveryLevel(recoveryLevel),
	}
}

// parseRecoveryLevel maps L/M/Q/H to the library levels. Unknown values fall
// back to M.
func parseRecoveryLevel(level string) qrcode.RecoveryLevel {
	switch level {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateChannelQR encodes channelID as a PNG.
func (s *qrcodeService) GenerateChannelQR(channelID uuid.UUID) ([]byte, error) {
	data, err := json.Marshal(channelPayload{
		ChannelID: channelID.String(),
		Type:      payloadType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR payload")
	}

	code, err := qrcode.New(string(data), s.level)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	png, err := code.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render QR code")
	}

	return png, nil
}

// ParseChannelQR reads a payload produced by GenerateChannelQR.
func (s *qrcodeService) ParseChannelQR(payload string) (uuid.UUID, error) {
	var data channelPayload
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to unmarshal QR payload")
	}

	if data.Type != payloadType {
		return uuid.Nil, errors.Errorf("unexpected QR payload type %q", data.Type)
	}

	channelID, err := uuid.Parse(data.ChannelID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "invalid channel id in QR payload")
	}

	return channelID, nil
}
