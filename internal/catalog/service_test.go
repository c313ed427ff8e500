package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/apis/shop"
)

type fakeShop struct {
	entries []shop.Entry
	teams   []shop.Team
	err     error

	gotGroup  string
	gotPath   string
	gotRegion string
}

func (f *fakeShop) FetchCatalog(_ context.Context, group, path, regionCode string) ([]shop.Entry, error) {
	f.gotGroup, f.gotPath, f.gotRegion = group, path, regionCode
	return f.entries, f.err
}

func (f *fakeShop) FetchTeams(_ context.Context, group, path string) ([]shop.Team, error) {
	f.gotGroup, f.gotPath = group, path
	return f.teams, f.err
}

func TestService_FetchCatalog(t *testing.T) {
	table := NewTable(testEntries(), "Bike")

	t.Run("label resolves to url pieces", func(t *testing.T) {
		fake := &fakeShop{entries: []shop.Entry{
			{Raw: map[string]any{"p_id": "G1", "p_type": "Gear"}},
		}}
		svc := NewService(fake, table, nil)

		products, err := svc.FetchCatalog(context.Background(), "Gear", "IN")
		require.NoError(t, err)

		assert.Equal(t, "products", fake.gotGroup)
		assert.Equal(t, "gear", fake.gotPath)
		assert.Equal(t, "IN", fake.gotRegion)
		require.Len(t, products, 1)
		assert.Equal(t, "G1", products[0].ID)
	})

	t.Run("unknown label uses the default category", func(t *testing.T) {
		fake := &fakeShop{}
		svc := NewService(fake, table, nil)

		_, err := svc.FetchCatalog(context.Background(), "Unicycle", "US-NC")
		require.NoError(t, err)
		assert.Equal(t, "bikes", fake.gotPath)
	})

	t.Run("backend error is wrapped", func(t *testing.T) {
		backendErr := errors.New("boom")
		svc := NewService(&fakeShop{err: backendErr}, table, nil)

		_, err := svc.FetchCatalog(context.Background(), "Bike", "US-NC")
		require.Error(t, err)
		assert.ErrorIs(t, err, backendErr)
		assert.Contains(t, err.Error(), "products/bikes/US-NC")
	})

	t.Run("records without id are dropped", func(t *testing.T) {
		fake := &fakeShop{entries: []shop.Entry{
			{Raw: map[string]any{"p_id": "B1"}},
			{Raw: map[string]any{"p_name": "no id"}},
		}}
		svc := NewService(fake, table, nil)

		products, err := svc.FetchCatalog(context.Background(), "Bike", "US-NC")
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})
}

func TestService_Teams(t *testing.T) {
	table := NewTable(testEntries(), "Bike")

	t.Run("passthrough", func(t *testing.T) {
		fake := &fakeShop{teams: []shop.Team{{Team: "Platform"}}}
		svc := NewService(fake, table, nil)

		teams := svc.Teams(context.Background(), "Bike")
		require.Len(t, teams, 1)
		assert.Equal(t, "Platform", teams[0].Team)
	})

	// эндпоинт исторически ненадёжен: ошибка деградирует до пустого списка
	t.Run("backend error degrades to empty", func(t *testing.T) {
		svc := NewService(&fakeShop{err: errors.New("boom")}, table, nil)

		teams := svc.Teams(context.Background(), "Bike")
		assert.NotNil(t, teams)
		assert.Empty(t, teams)
	})

	t.Run("nil result becomes empty slice", func(t *testing.T) {
		svc := NewService(&fakeShop{}, table, nil)
		assert.NotNil(t, svc.Teams(context.Background(), "Bike"))
	})
}
