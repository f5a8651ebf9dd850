package payments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUTR(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"twelve digits", "123456789012", "123456789012", nil},
		{"twenty two characters", "ABCD1234EFGH5678IJKL90", "ABCD1234EFGH5678IJKL90", nil},
		{"lowercase normalized", "utr123456789", "UTR123456789", nil},
		{"surrounding whitespace", "  123456789012  ", "123456789012", nil},
		{"empty", "", "", ErrUTRRequired},
		{"only whitespace", "   ", "", ErrUTRRequired},
		{"too short", "12345678901", "", ErrUTRFormat},
		{"too long", strings.Repeat("A", 23), "", ErrUTRFormat},
		{"special characters", "1234-5678-9012", "", ErrUTRFormat},
		{"internal space", "123456 789012", "", ErrUTRFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateUTR(tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildDeeplink(t *testing.T) {
	link := BuildDeeplink("stagepass@upi", "StagePass Tickets", 6180, "SP-20260830-KQZMWR")

	assert.True(t, strings.HasPrefix(link, "upi://pay?"))
	assert.Contains(t, link, "pa=stagepass%40upi")
	assert.Contains(t, link, "am=6180.00")
	assert.Contains(t, link, "cu=INR")
	assert.Contains(t, link, "tn=SP-20260830-KQZMWR")
}

func TestBuildQRCode(t *testing.T) {
	png, err := BuildQRCode(BuildDeeplink("stagepass@upi", "StagePass", 100, "SP-20260830-AAAAAA"))

	require.NoError(t, err)
	require.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
