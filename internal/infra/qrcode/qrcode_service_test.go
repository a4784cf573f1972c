package qrcode

import (
	"bytes"
	"encoding/json"
	"image/png"
	"testing"

	"vidhub/config"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.Config
		wantSize  int
		wantLevel qrcode.RecoveryLevel
	}{
		{"nil config", nil, defaultSize, qrcode.Medium},
		{"configured", &config.Config{QRCode: &config.QRCodeConfig{Size: 512, RecoveryLevel: "H"}}, 512, qrcode.Highest},
		{"size out of range", &config.Config{QRCode: &config.QRCodeConfig{Size: 10, RecoveryLevel: "L"}}, defaultSize, qrcode.Low},
		{"unknown level", &config.Config{QRCode: &config.QRCodeConfig{Size: 128, RecoveryLevel: "X"}}, 128, qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, ok := NewQRCodeService(tt.cfg).(*qrcodeService)
			require.True(t, ok)
			assert.Equal(t, tt.wantSize, svc.size)
			assert.Equal(t, tt.wantLevel, svc.level)
		})
	}
}

func TestQRCodeService_GenerateChannelQR(t *testing.T) {
	svc := newQRCodeService(256, "M")

	pngBytes, err := svc.GenerateChannelQR(uuid.New())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestQRCodeService_ParseChannelQR(t *testing.T) {
	svc := newQRCodeService(256, "M")
	channelID := uuid.New()

	valid, err := json.Marshal(channelPayload{ChannelID: channelID.String(), Type: payloadType})
	require.NoError(t, err)

	got, err := svc.ParseChannelQR(string(valid))
	require.NoError(t, err)
	assert.Equal(t, channelID, got)

	invalid := []string{
		"not json",
		`{"channel_id":"` + channelID.String() + `","type":"merchant"}`,
		`{"channel_id":"nope","type":"channel_subscription"}`,
	}
	for _, payload := range invalid {
		_, err := svc.ParseChannelQR(payload)
		assert.Error(t, err, payload)
	}
}
