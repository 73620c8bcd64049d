package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/captionkit/internal/config"
)

func sampleRecord(final string) Record {
	return Record{
		ID:                 uuid.NewString(),
		SessionID:          uuid.NewString(),
		OriginalCandidates: []string{"Halo #a\nHello #a", "Dua #b\nTwo #b"},
		FinalText:          final,
		Style:              "casual",
		LengthKey:          "short",
		Language:           "Indonesian",
		PromptUsed:         "prompt text\nwith lines",
		CreatedAt:          time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestFileSinkSaveAndList(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "sub", "history.yaml"))
	ctx := context.Background()

	first := sampleRecord("first\nline two")
	second := sampleRecord("second")
	require.NoError(t, sink.Save(ctx, first))
	require.NoError(t, sink.Save(ctx, second))

	recs, err := sink.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, second.ID, recs[0].ID, "newest first")
	assert.Equal(t, first, recs[1])

	recs, err = sink.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "second", recs[0].FinalText)
}

func TestFileSinkListMissing(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "history.yaml"))

	recs, err := sink.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestFileSinkCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: [broken"), 0600))

	_, err := NewFileSink(path).List(context.Background(), 0)
	assert.Error(t, err)
}

func TestFileSinkConcurrentSaves(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "history.yaml"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, sink.Save(ctx, sampleRecord(fmt.Sprintf("caption %d", i))))
		}(i)
	}
	wg.Wait()

	recs, err := sink.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 10)
}

func TestFileSinkCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFileSink(filepath.Join(t.TempDir(), "h.yaml")).Save(ctx, sampleRecord("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(config.HistoryConfig{Driver: config.HistoryFile, Path: filepath.Join(dir, "h.yaml")})
	require.NoError(t, err)
	assert.IsType(t, &FileSink{}, s)

	s, err = Open(config.HistoryConfig{Driver: config.HistoryNone})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, s)
	assert.NoError(t, s.Save(context.Background(), sampleRecord("x")))

	_, err = Open(config.HistoryConfig{Driver: config.HistoryFile})
	assert.Error(t, err)

	_, err = Open(config.HistoryConfig{Driver: config.HistoryPostgres})
	assert.Error(t, err)

	_, err = Open(config.HistoryConfig{Driver: "mongo"})
	assert.Error(t, err)
}

func TestRowMapping(t *testing.T) {
	rec := sampleRecord("final")
	rec.Profile = "kopi-senja"
	rec.ImagePath = "/tmp/a.png"

	row := toRow(rec)
	assert.Equal(t, "caption_records", row.TableName())
	assert.Equal(t, rec, fromRow(row))
}

// TestGormSinkPostgres runs only against a real database.
func TestGormSinkPostgres(t *testing.T) {
	dsn := os.Getenv("CAPTIONKIT_TEST_DSN")
	if dsn == "" {
		t.Skip("CAPTIONKIT_TEST_DSN not set")
	}

	sink, err := OpenPostgres(dsn)
	require.NoError(t, err)
	defer sink.Close()

	ctx := context.Background()
	rec := sampleRecord("from postgres")
	rec.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, sink.Save(ctx, rec))

	recs, err := sink.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rec.ID, recs[0].ID)
	assert.Equal(t, rec.OriginalCandidates, recs[0].OriginalCandidates)
}
