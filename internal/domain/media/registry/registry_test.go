// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package registry

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ManuGH/camlife/internal/bus"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func paths(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func TestRegistry_AddEvictsOldest(t *testing.T) {
	r := New(Options{MaxItems: 3})
	for i := 1; i <= 3; i++ {
		_, evicted, err := r.Add(fmt.Sprintf("/dcim/%d.jpg", i), KindPhoto)
		require.NoError(t, err)
		assert.Empty(t, evicted)
	}

	e, evicted, err := r.Add("/dcim/4.mp4", KindVideo)
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, KindVideo, e.Kind)
	assert.False(t, e.CapturedAt.IsZero())
	require.Len(t, evicted, 1)
	assert.Equal(t, "/dcim/1.jpg", evicted[0].Path)

	assert.Equal(t, 3, r.Count())
	assert.Equal(t, []string{"/dcim/2.jpg", "/dcim/3.jpg", "/dcim/4.mp4"}, paths(r.Items()))

	latest, ok := r.Latest()
	require.True(t, ok)
	assert.Equal(t, e, latest)
}

func TestRegistry_DefaultCapacity(t *testing.T) {
	r := New(Options{})
	assert.Equal(t, DefaultMaxItems, r.MaxItems())
	_, ok := r.Latest()
	assert.False(t, ok)
}

func TestRegistry_RejectsInvalidInput(t *testing.T) {
	r := New(Options{})
	_, _, err := r.Add("", KindPhoto)
	assert.ErrorIs(t, err, ErrEmptyPath)
	_, _, err = r.Add("/dcim/x.gif", "gif")
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Zero(t, r.Count())
}

func TestRegistry_RemoveAndClear(t *testing.T) {
	r := New(Options{MaxItems: 5})
	a, _, err := r.Add("/a.jpg", KindPhoto)
	require.NoError(t, err)
	_, _, err = r.Add("/b.jpg", KindPhoto)
	require.NoError(t, err)

	assert.True(t, r.Remove(a.ID))
	assert.False(t, r.Remove(a.ID))
	assert.Equal(t, []string{"/b.jpg"}, paths(r.Items()))

	r.Clear()
	assert.Zero(t, r.Count())
}

func TestRegistry_ItemsIsACopy(t *testing.T) {
	r := New(Options{})
	_, _, err := r.Add("/a.jpg", KindPhoto)
	require.NoError(t, err)

	items := r.Items()
	items[0].Path = "/mutated"
	assert.Equal(t, "/a.jpg", r.Items()[0].Path)
}

func TestRegistry_WatchSeesChangesInOrder(t *testing.T) {
	r := New(Options{MaxItems: 1})
	sub, err := r.Watch(context.Background())
	require.NoError(t, err)
	defer sub.Close()

	first, _, err := r.Add("/a.jpg", KindPhoto)
	require.NoError(t, err)
	second, _, err := r.Add("/b.jpg", KindPhoto)
	require.NoError(t, err)
	require.True(t, r.Remove(second.ID))

	want := []Change{
		{Kind: ChangeAdded, Entry: &first, Count: 1},
		{Kind: ChangeEvicted, Entry: &first, Count: 0},
		{Kind: ChangeAdded, Entry: &second, Count: 1},
		{Kind: ChangeRemoved, Entry: &second, Count: 0},
	}
	for i, w := range want {
		select {
		case msg := <-sub.C():
			got, ok := msg.(Change)
			require.True(t, ok, "message %d is %T", i, msg)
			assert.Equal(t, w, got, "change %d", i)
		case <-time.After(time.Second):
			t.Fatalf("change %d not delivered", i)
		}
	}
}

func TestRegistry_SharedBus(t *testing.T) {
	b := bus.NewMemoryBus()
	r := New(Options{Bus: b})
	sub, err := b.Subscribe(context.Background(), "media.change")
	require.NoError(t, err)
	defer sub.Close()

	_, _, err = r.Add("/a.jpg", KindPhoto)
	require.NoError(t, err)
	msg := <-sub.C()
	assert.Equal(t, ChangeAdded, msg.(Change).Kind)
}

func TestRegistry_ConcurrentAddsStayBounded(t *testing.T) {
	r := New(Options{MaxItems: 4})
	evictionsBefore := evictions(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := r.Add(fmt.Sprintf("/%d.jpg", i), KindPhoto)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, r.Count())
	assert.Equal(t, evictionsBefore+16, evictions(t))
}

func TestRegistry_HeldItemsGaugeSumsAcrossRegistries(t *testing.T) {
	before := gathered(t, "camlife_media_registry_items")

	a := New(Options{MaxItems: 2})
	b := New(Options{MaxItems: 5})
	for i := 0; i < 3; i++ {
		_, _, err := a.Add(fmt.Sprintf("/a/%d.jpg", i), KindPhoto)
		require.NoError(t, err)
		_, _, err = b.Add(fmt.Sprintf("/b/%d.jpg", i), KindPhoto)
		require.NoError(t, err)
	}
	assert.Equal(t, before+5, gathered(t, "camlife_media_registry_items"))

	// A fresh registry must not reset what the others hold.
	_ = New(Options{})
	assert.Equal(t, before+5, gathered(t, "camlife_media_registry_items"))

	a.Clear()
	e, ok := b.Latest()
	require.True(t, ok)
	require.True(t, b.Remove(e.ID))
	assert.Equal(t, before+2, gathered(t, "camlife_media_registry_items"))
}

// evictions reads the eviction counter from the default registry.
func evictions(t *testing.T) float64 {
	t.Helper()
	return gathered(t, "camlife_media_registry_evictions_total")
}

// gathered sums every sample of the named counter or gauge in the default registry.
func gathered(t *testing.T, name string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return sampleTotal(mf.GetMetric())
		}
	}
	return 0
}

func sampleTotal(ms []*dto.Metric) float64 {
	var total float64
	for _, m := range ms {
		total += m.GetCounter().GetValue() + m.GetGauge().GetValue()
	}
	return total
}
