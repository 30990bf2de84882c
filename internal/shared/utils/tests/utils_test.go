package tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/utils"
)

func TestPNGDataURL_RoundTrip(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}

	s := utils.EncodePNGDataURL(raw)
	require.Equal(t, "data:image/png;base64,iVBORw0K", s)

	got, err := utils.DecodePNGDataURL(s)
	require.NoError(t, err)
	require.Equal(t, raw, got)
}

func TestDecodePNGDataURL_Errors(t *testing.T) {
	cases := []string{
		"",
		"https://example.com/qr.png",
		"data:image/svg+xml;base64,AAAA",
		"data:image/png;base64,***",
	}
	for _, c := range cases {
		_, err := utils.DecodePNGDataURL(c)
		require.Error(t, err, c)
	}
}
