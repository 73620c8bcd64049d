package caption

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(primary, secondary string) string {
	return Delimiter + "\n" + primary + "\n" + secondary + "\n\n"
}

func TestParseCaptionBlocks(t *testing.T) {
	wellFormed := block("Senja di pantai #senja #pantai", "Sunset at the beach #sunset #beach") +
		block("Kopi pagi #kopi", "Morning coffee #coffee") +
		block("Jalan-jalan #liburan", "Out and about #holiday")

	tests := []struct {
		name       string
		raw        string
		wantCount  int
		wantFirst  string
		wantLineOK bool
	}{
		{
			name:       "three well formed blocks",
			raw:        wellFormed,
			wantCount:  3,
			wantFirst:  "Senja di pantai #senja #pantai",
			wantLineOK: true,
		},
		{
			name:      "no delimiter at all",
			raw:       "Here are some captions:\nSunset\nBeach",
			wantCount: 0,
		},
		{
			name:       "single delimiter",
			raw:        block("Satu #satu", "One #one"),
			wantCount:  1,
			wantFirst:  "Satu #satu",
			wantLineOK: true,
		},
		{
			name:       "preamble before first delimiter is ignored",
			raw:        "Sure! Here you go.\n\n" + block("Dua #dua", "Two #two"),
			wantCount:  1,
			wantFirst:  "Dua #dua",
			wantLineOK: true,
		},
		{
			name:       "extra blank lines inside a block",
			raw:        Delimiter + "\n\n\n   Tiga #tiga   \n\n\nThree #three\n",
			wantCount:  1,
			wantFirst:  "Tiga #tiga",
			wantLineOK: true,
		},
		{
			name:       "windows line endings",
			raw:        strings.ReplaceAll(block("Empat #empat", "Four #four"), "\n", "\r\n"),
			wantCount:  1,
			wantFirst:  "Empat #empat",
			wantLineOK: true,
		},
		{
			name:      "empty input",
			raw:       "",
			wantCount: 0,
		},
		{
			name:      "delimiters only",
			raw:       Delimiter + "\n  \n" + Delimiter + Delimiter,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCaptionBlocks(tt.raw)
			require.Len(t, got, tt.wantCount)
			if tt.wantCount == 0 {
				return
			}
			assert.Equal(t, tt.wantFirst, got[0].Primary)
			if tt.wantLineOK {
				for _, c := range got {
					assert.Equal(t, 2, len(strings.Split(c.Raw, "\n")), "candidate %q", c.Raw)
					assert.True(t, strings.HasPrefix(c.Raw, Delimiter))
				}
			}
		})
	}
}

func TestParseCaptionBlocksTruncatesToFirstThree(t *testing.T) {
	var raw strings.Builder
	for _, n := range []string{"1", "2", "3", "4", "5"} {
		raw.WriteString(block("Baris "+n, "Line "+n))
	}

	got := ParseCaptionBlocks(raw.String())

	require.Len(t, got, 3)
	assert.Equal(t, "Line 1", got[0].Secondary)
	assert.Equal(t, "Line 2", got[1].Secondary)
	assert.Equal(t, "Line 3", got[2].Secondary)
}

func TestParseCaptionBlocksDropsBlankSegmentsBeforeTruncating(t *testing.T) {
	raw := Delimiter + "\n   \n" + Delimiter + "\n" +
		block("A1", "A2") + block("B1", "B2") + block("C1", "C2")

	got := ParseCaptionBlocks(raw)

	require.Len(t, got, 3)
	assert.Equal(t, "A1", got[0].Primary)
	assert.Equal(t, "C1", got[2].Primary)
}

func TestParseCaptionBlocksFiltersSingleLineSegments(t *testing.T) {
	raw := Delimiter + "\nOnly one line here #lonely\n" + block("Dua baris", "Two lines")

	got := ParseCaptionBlocks(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "Dua baris", got[0].Primary)
}

func TestBuildCandidateFallback(t *testing.T) {
	c := buildCandidate("\n  Only one line #lonely  \n")

	assert.Equal(t, Delimiter+" Only one line #lonely", c.Raw)
	assert.NotContains(t, c.Raw, "\n")
}

func TestCandidateText(t *testing.T) {
	c := ParseCaptionBlocks(block("Halo #hai", "Hello #hi"))[0]

	assert.Equal(t, "Halo #hai\nHello #hi", c.Text())
	assert.Equal(t, Delimiter+" Halo #hai\nHello #hi", c.Raw)
}

func TestHashtags(t *testing.T) {
	assert.Equal(t,
		[]string{"#sunset", "#beach", "#goldenhour"},
		Hashtags("Golden light. #sunset, #beach #goldenhour!"),
	)
	assert.Empty(t, Hashtags("no tags # here"))
}
