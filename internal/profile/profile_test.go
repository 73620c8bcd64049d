package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsSkipsBlankValues(t *testing.T) {
	p := &Profile{Name: "Kopi Senja", Audience: "  ", Goals: "more walk-ins"}

	fields := p.Fields()

	require.Len(t, fields, 2)
	assert.Equal(t, Field{"Business name", "Kopi Senja"}, fields[0])
	assert.Equal(t, Field{"Goals", "more walk-ins"}, fields[1])
}

func TestNilProfileIsEmpty(t *testing.T) {
	var p *Profile
	assert.True(t, p.IsEmpty())
	assert.Nil(t, p.Fields())
}

func TestDirStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	require.NoError(t, err)

	ctx := context.Background()

	got, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Save("cafe", &Profile{Name: "Kopi Senja", Industry: "coffee"}))
	got, err = store.Get(ctx, "cafe")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "coffee", got.Industry)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bakery.yaml"), []byte("industry: bread\n"), 0644))
	got, err = store.Get(ctx, "bakery")
	require.NoError(t, err)
	assert.Equal(t, "bakery", got.Name)

	assert.Equal(t, []string{"bakery", "cafe"}, store.List())

	_, err = store.Get(ctx, "../etc/passwd")
	assert.Error(t, err)
}

type countingLookup struct {
	calls int
	p     *Profile
}

func (c *countingLookup) Get(context.Context, string) (*Profile, error) {
	c.calls++
	return c.p, nil
}

func TestCachedLookup(t *testing.T) {
	next := &countingLookup{}
	cached := NewCachedLookup(next, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, err := cached.Get(ctx, "none")
		require.NoError(t, err)
		assert.Nil(t, p)
	}
	assert.Equal(t, 1, next.calls)

}

func TestCachedLookupExpires(t *testing.T) {
	next := &countingLookup{}
	cached := NewCachedLookup(next, 20*time.Millisecond)
	ctx := context.Background()

	_, err := cached.Get(ctx, "cafe")
	require.NoError(t, err)

	next.p = &Profile{Name: "Kopi Senja"}
	time.Sleep(50 * time.Millisecond)
	p, err := cached.Get(ctx, "cafe")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Kopi Senja", p.Name)
	assert.Equal(t, 2, next.calls)
}
