package internal_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactssr/internal"
)

type staticController []internal.Endpoint

func (s staticController) Endpoints(r *internal.Registry) {
	for _, ep := range s {
		r.Add(ep)
	}
}

func TestCollectEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("declaration order and default type", func(t *testing.T) {
		t.Parallel()

		eps := internal.CollectEndpoints(
			staticController{
				{Kind: "k", Path: "/a", Name: "a"},
				{Kind: "k", Path: "/b", Name: "b", Type: "custom"},
			},
			nil,
			staticController{{Kind: "k", Path: "/c", Name: "c"}},
		)

		require.Len(t, eps, 3)
		require.Equal(t, []string{"/a", "/b", "/c"}, []string{eps[0].Path, eps[1].Path, eps[2].Path})
		require.Equal(t, internal.DefaultEndpointType, eps[0].Type)
		require.Equal(t, "custom", eps[1].Type)
	})

	t.Run("registry returns a copy", func(t *testing.T) {
		t.Parallel()

		r := &internal.Registry{}
		r.Add(internal.Endpoint{Path: "/a"})
		eps := r.Endpoints()
		eps[0].Path = "/changed"

		require.Equal(t, "/a", r.Endpoints()[0].Path)
	})
}

func TestInvoke(t *testing.T) {
	t.Parallel()

	newCtx := func() internal.Context {
		return internal.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), nil)
	}

	t.Run("returns data", func(t *testing.T) {
		t.Parallel()

		data, err := internal.Invoke(newCtx(), internal.Endpoint{
			Operation: func(c internal.Context) (any, error) { return 42, nil },
		})
		require.NoError(t, err)
		require.Equal(t, 42, data)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()

		want := errors.New("failed")
		_, err := internal.Invoke(newCtx(), internal.Endpoint{
			Operation: func(c internal.Context) (any, error) { return nil, want },
		})
		require.ErrorIs(t, err, want)
	})

	t.Run("recovers panic", func(t *testing.T) {
		t.Parallel()

		data, err := internal.Invoke(newCtx(), internal.Endpoint{
			Operation: func(c internal.Context) (any, error) { panic("kaboom") },
		})
		require.Nil(t, data)

		var pe *internal.PanicError
		require.ErrorAs(t, err, &pe)
		require.Equal(t, "kaboom", pe.Value)
		require.NotEmpty(t, pe.Stack)
	})

	t.Run("nil operation", func(t *testing.T) {
		t.Parallel()

		_, err := internal.Invoke(newCtx(), internal.Endpoint{Name: "missing"})
		require.ErrorIs(t, err, internal.ErrNoOperation)
	})
}
