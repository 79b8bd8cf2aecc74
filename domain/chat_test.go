package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreview_Truncation_Law(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"Empty", "", ""},
		{"Short", "hi", "hi"},
		{"Exactly 30", strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{"Exactly 31", strings.Repeat("a", 31), strings.Repeat("a", 30) + "..."},
		{"Long", strings.Repeat("b", 100), strings.Repeat("b", 30) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, Preview(tt.content))
		})
	}
}

func TestPreview_Counts_Characters_Not_Bytes(t *testing.T) {
	req := require.New(t)

	// 31 multi-byte characters must cut at 30 characters, not mid-rune
	content := strings.Repeat("é", 31)
	req.Equal(strings.Repeat("é", 30)+"...", Preview(content))
}
