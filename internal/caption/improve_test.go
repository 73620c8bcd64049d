package caption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func versionBlock(n, label, primary, secondary string) string {
	return "[VERSION " + n + " - " + label + "]\n" + Delimiter + "\n" + primary + "\n" + secondary + "\n\n"
}

func TestParseImprovementBlocks(t *testing.T) {
	raw := versionBlock("1", "More Engaging", "Ayo ke pantai! #pantai", "Let's hit the beach! #beach") +
		versionBlock("2", "More Concise", "Pantai. #pantai", "Beach. #beach") +
		versionBlock("3", "Storytelling", "Hari itu ombak tenang #cerita", "That day the waves were calm #story")

	got := ParseImprovementBlocks(raw)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"More Engaging", "More Concise", "Storytelling"},
		[]string{got[0].Label, got[1].Label, got[2].Label})
	assert.Equal(t, "Pantai. #pantai", got[1].Primary)
	assert.Equal(t, "Beach. #beach", got[1].Secondary)
	assert.Equal(t, "[VERSION 2 - More Concise]\n"+Delimiter+" Pantai. #pantai\nBeach. #beach", got[1].Raw)
	assert.Equal(t, "Pantai. #pantai\nBeach. #beach", got[1].Text())
}

func TestParseImprovementBlocksEdgeCases(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantLabels []string
	}{
		{
			name:       "no labels",
			raw:        block("Halo", "Hello"),
			wantLabels: nil,
		},
		{
			name: "block without nested delimiter is skipped",
			raw: "[VERSION 1 - Bare]\nHalo\nHello\n" +
				versionBlock("2", "Kept", "Dua", "Two"),
			wantLabels: []string{"Kept"},
		},
		{
			name: "single line nested caption is skipped",
			raw: "[VERSION 1 - Short]\n" + Delimiter + " only one\n" +
				versionBlock("2", "Kept", "Dua", "Two"),
			wantLabels: []string{"Kept"},
		},
		{
			name: "only the first nested caption is used",
			raw: "[VERSION 1 - Double]\n" + Delimiter + "\nSatu\nOne\n" + Delimiter + "\nDua\nTwo\n",
			wantLabels: []string{"Double"},
		},
		{
			name: "more than three labels are clipped",
			raw: versionBlock("1", "A", "a1", "a2") + versionBlock("2", "B", "b1", "b2") +
				versionBlock("3", "C", "c1", "c2") + versionBlock("4", "D", "d1", "d2"),
			wantLabels: []string{"A", "B", "C"},
		},
		{
			name:       "empty body dropped before clipping",
			raw:        "[VERSION 1 - Empty]\n   \n" + versionBlock("2", "B", "b1", "b2"),
			wantLabels: []string{"B"},
		},
		{
			name:       "lowercase header",
			raw:        "[version 1 - calm]\n" + Delimiter + "\nTenang\nCalm\n",
			wantLabels: []string{"calm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseImprovementBlocks(tt.raw)
			var labels []string
			for _, c := range got {
				labels = append(labels, c.Label)
			}
			assert.Equal(t, tt.wantLabels, labels)
		})
	}
}

func TestParseImprovementBlocksFirstNestedCaption(t *testing.T) {
	raw := "[VERSION 1 - Double]\n" + Delimiter + "\nSatu\nOne\n" + Delimiter + "\nDua\nTwo\n"

	got := ParseImprovementBlocks(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "Satu", got[0].Primary)
	assert.Equal(t, "One", got[0].Secondary)
}

func TestFallbackImprovements(t *testing.T) {
	original := "Senja di pantai #senja\nSunset at the beach #sunset"

	got := FallbackImprovements(original)

	require.Len(t, got, BatchSize)
	seen := map[string]bool{}
	for _, c := range got {
		assert.False(t, seen[c.Label], "duplicate label %q", c.Label)
		seen[c.Label] = true
		assert.Equal(t, original, c.Text())
		assert.Contains(t, c.Raw, original)
	}
}

func TestFallbackImprovementsKeepsLayout(t *testing.T) {
	original := "Senja di pantai.\n\nSunset at the beach.  "

	got := FallbackImprovements(original)

	require.Len(t, got, BatchSize)
	for _, c := range got {
		assert.Equal(t, original, c.Text())
		assert.Equal(t, "Senja di pantai.", c.Primary)
		assert.Equal(t, "Sunset at the beach.", c.Secondary)
	}
}

func TestImprovementsOrFallback(t *testing.T) {
	original := "Halo\nHello"

	got, usedFallback := ImprovementsOrFallback("I could not do that, sorry.", original)
	assert.True(t, usedFallback)
	require.Len(t, got, 3)
	assert.Equal(t, original, got[0].Text())

	got, usedFallback = ImprovementsOrFallback(versionBlock("1", "Better", "Hai", "Hi"), original)
	assert.False(t, usedFallback)
	require.Len(t, got, 1)
	assert.Equal(t, "Better", got[0].Label)
}
