package endpoints

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.Client(), srv.URL, nil)
}

func TestCatalog_EnvelopeShapes(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantShape Shape
		wantCount int
	}{
		{"bare array", `[{"p_id":"B1"},{"p_id":"B2"}]`, ShapeArray, 2},
		{"products wrapper", `{"products":[{"p_id":"B1"}]}`, ShapeProducts, 1},
		{"data wrapper", `{"data":[{"p_id":"B1"}]}`, ShapeData, 1},
		{"items wrapper", `{"items":[{"p_id":"B1"}]}`, ShapeItems, 1},
		{"unknown array field", `{"results":[{"p_id":"B1"},{"p_id":"B2"},{"p_id":"B3"}]}`, ShapeScan, 3},
		{"no array anywhere", `{"status":"ok"}`, ShapeNone, 0},
		{"scalar", `42`, ShapeNone, 0},
		{"non-object items skipped", `[{"p_id":"B1"},"junk",7]`, ShapeArray, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/products/bikes/IN", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			})

			entries, shape, err := c.Catalog(context.Background(), "products", "bikes", "IN")
			require.NoError(t, err)
			assert.Equal(t, tc.wantShape, shape)
			assert.Len(t, entries, tc.wantCount)
		})
	}
}

func TestCatalog_EnvelopePriority(t *testing.T) {
	// products выигрывает у data и items даже пустым
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"p_id":"D1"}],"products":[],"items":[{"p_id":"I1"}]}`))
	})

	entries, shape, err := c.Catalog(context.Background(), "products", "bikes", "IN")
	require.NoError(t, err)
	assert.Equal(t, ShapeProducts, shape)
	assert.Empty(t, entries)
}

func TestCatalog_Errors(t *testing.T) {
	t.Run("non-200 becomes APIError", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"code":"maintenance","message":"try later"}`))
		})

		_, _, err := c.Catalog(context.Background(), "products", "bikes", "IN")
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
		assert.Equal(t, "maintenance", apiErr.Code)
		assert.Equal(t, "try later", apiErr.Message)
	})

	t.Run("bad json is an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		})

		_, _, err := c.Catalog(context.Background(), "products", "bikes", "IN")
		assert.Error(t, err)
	})

	t.Run("empty base url", func(t *testing.T) {
		c := New(http.DefaultClient, "", nil)
		_, _, err := c.Catalog(context.Background(), "products", "bikes", "IN")
		assert.Error(t, err)
	})
}

func TestCatalog_AppliesHeaders(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.Client(), srv.URL, func(req *http.Request) {
		req.Header.Set("User-Agent", "test-agent/1.0")
	})

	_, _, err := c.Catalog(context.Background(), "products", "bikes", "IN")
	require.NoError(t, err)
	assert.Equal(t, "test-agent/1.0", gotUA)
}

func TestTeams(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products/bikes/team", r.URL.Path)
			_, _ = w.Write([]byte(`[{"team":"Platform","members":[{"name":"A","role":"dev"}]}]`))
		})

		teams, err := c.Teams(context.Background(), "products", "bikes")
		require.NoError(t, err)
		require.Len(t, teams, 1)
		assert.Equal(t, "Platform", teams[0].Team)
		require.Len(t, teams[0].Members, 1)
		assert.Equal(t, "A", teams[0].Members[0].Name)
	})

	t.Run("wrapped object", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"teams":[{"team":"Platform"},{"team":"Store"}]}`))
		})

		teams, err := c.Teams(context.Background(), "products", "bikes")
		require.NoError(t, err)
		assert.Len(t, teams, 2)
	})

	t.Run("non-200 becomes APIError", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`not here`))
		})

		_, err := c.Teams(context.Background(), "products", "bikes")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})
}
