package storage

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestGateMediaAcceptsImage(t *testing.T) {
	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0x00}, 100)...)

	gated, err := gateMedia(bytes.NewReader(payload), int64(len(payload)), MaxImageSize, "image/")
	require.NoError(t, err)

	// The sniffed prefix must be replayed, not swallowed.
	out, err := io.ReadAll(gated)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestGateMediaRejectsOversize(t *testing.T) {
	_, err := gateMedia(bytes.NewReader(pngHeader), MaxImageSize+1, MaxImageSize, "image/")
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestGateMediaRejectsWrongKind(t *testing.T) {
	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0x00}, 100)...)

	// A PNG is not a video.
	_, err := gateMedia(bytes.NewReader(payload), int64(len(payload)), MaxVideoSize, "video/")
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestGateMediaShortPayload(t *testing.T) {
	// Payloads shorter than the sniff window still gate correctly.
	gated, err := gateMedia(bytes.NewReader(pngHeader), int64(len(pngHeader)), MaxImageSize, "image/")
	require.NoError(t, err)

	out, err := io.ReadAll(gated)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, out)
}
