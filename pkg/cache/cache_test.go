package cache

import (
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyCanonicalizesParameterOrder(t *testing.T) {
	a, _ := url.ParseQuery("limit=50&disease_name=breast")
	b, _ := url.ParseQuery("disease_name=breast&limit=50")
	require.Equal(t, Key("/dataset", a, nil), Key("/dataset", b, nil))
}

func TestKeyFillsDefaults(t *testing.T) {
	defaults := map[string]string{"limit": "100", "offset": "0"}

	implicit, _ := url.ParseQuery("disease_name=breast")
	explicit, _ := url.ParseQuery("disease_name=breast&limit=100&offset=0")
	require.Equal(t,
		Key("/ceRNAInteraction/findAll", implicit, defaults),
		Key("/ceRNAInteraction/findAll", explicit, defaults))

	other, _ := url.ParseQuery("disease_name=breast&limit=50")
	require.NotEqual(t,
		Key("/ceRNAInteraction/findAll", implicit, defaults),
		Key("/ceRNAInteraction/findAll", other, defaults))
}

func TestKeySeparatesPaths(t *testing.T) {
	q, _ := url.ParseQuery("limit=100")
	require.NotEqual(t, Key("/dataset", q, nil), Key("/comparison", q, nil))
}

func TestGetOrFillCachesSuccess(t *testing.T) {
	c := New(8, time.Minute)

	var calls int32
	fill := func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("payload"), nil
	}

	for i := 0; i < 3; i++ {
		data, err := c.GetOrFill("k", fill)
		require.NoError(t, err)
		require.Equal(t, []byte("payload"), data)
	}
	require.EqualValues(t, 1, calls)
}

func TestGetOrFillNeverCachesErrors(t *testing.T) {
	c := New(8, time.Minute)

	boom := errors.New("boom")
	var calls int32
	fill := func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	}

	_, err := c.GetOrFill("k", fill)
	require.ErrorIs(t, err, boom)
	_, err = c.GetOrFill("k", fill)
	require.ErrorIs(t, err, boom)
	require.EqualValues(t, 2, calls)

	_, ok := c.Get("k")
	require.False(t, ok)
}

func TestGetOrFillCollapsesConcurrentMisses(t *testing.T) {
	c := New(8, time.Minute)

	var calls int32
	gate := make(chan struct{})
	fill := func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-gate
		return []byte("x"), nil
	}

	errs := make(chan error, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetOrFill("k", fill)
			errs <- err
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, calls)
}
