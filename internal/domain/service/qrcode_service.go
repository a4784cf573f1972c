package service

import "github.com/google/uuid"

// QRCodeService renders a channel reference as a scannable PNG and reads it
// back.
type QRCodeService interface {
	// GenerateChannelQR returns a PNG encoding channelID.
	GenerateChannelQR(channelID uuid.UUID) ([]byte, error)

	// ParseChannelQR returns the channel id carried by a scanned payload.
	ParseChannelQR(payload string) (uuid.UUID, error)
}
