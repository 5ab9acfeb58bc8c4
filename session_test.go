package t212

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource counts the loads, and returns orders then err.
type countingSource struct {
	loads     int
	refreshed []bool // IsRefresh of every load.
	orders    []Order
	err       error
}

func (c *countingSource) Orders(ctx context.Context) ([]Order, error) {
	c.loads++
	c.refreshed = append(c.refreshed, IsRefresh(ctx))
	return c.orders, c.err
}

func TestSession_Book(t *testing.T) {
	src := &countingSource{orders: []Order{filled(1, "AAPL_US_EQ", "2025-01-01T10:00:00Z", "10", "0.04", "250")}}
	s := NewSession(src, nil)
	ctx := context.Background()

	b, err := s.Book(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
	gen, loadedAt := s.Generation()
	assert.False(t, loadedAt.IsZero())

	again, err := s.Book(ctx)
	require.NoError(t, err)
	assert.Same(t, b, again)
	assert.Equal(t, 1, src.loads)

	s.Invalidate()
	_, err = s.Book(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.loads)
	next, _ := s.Generation()
	assert.NotEqual(t, gen, next)

	_, err = s.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, src.loads)

	_, err = s.Book(ctx)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true}, src.refreshed, "reloads bypass the source caches")
}

func TestSession_Interrupted(t *testing.T) {
	order := filled(1, "AAPL_US_EQ", "2025-01-01T10:00:00Z", "10", "0.04", "250")
	loads := 0
	src := SourceFunc(func(ctx context.Context) ([]Order, error) {
		loads++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []Order{order}, nil
	})
	s := NewSession(src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b, err := s.Book(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, b)
	assert.Equal(t, 0, b.Len())
	assert.NoError(t, s.Err(), "an interrupted load is not cached")

	b, err = s.Book(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 2, loads)

	// an interrupted reload keeps the cached book.
	gen, _ := s.Generation()
	_, err = s.Reload(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	again, err := s.Book(context.Background())
	require.NoError(t, err)
	assert.Same(t, b, again)
	next, _ := s.Generation()
	assert.Equal(t, gen, next)
	assert.Equal(t, 3, loads)
}

func TestSession_PartialLoad(t *testing.T) {
	failure := errors.New("page 2: 500 Internal Server Error")
	src := &countingSource{
		orders: []Order{filled(1, "AAPL_US_EQ", "2025-01-01T10:00:00Z", "10", "0.04", "250")},
		err:    failure,
	}
	s := NewSession(src, nil)

	b, err := s.Book(context.Background())
	assert.ErrorIs(t, err, failure)
	require.NotNil(t, b)
	assert.Equal(t, 1, b.Len(), "partial orders are kept")
	assert.ErrorIs(t, s.Err(), failure)

	// the partial book is cached, the error stays as a warning.
	_, err = s.Book(context.Background())
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 1, src.loads)

	src.err = nil
	_, err = s.Reload(context.Background())
	require.NoError(t, err)
	assert.NoError(t, s.Err())
}
