package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopverse/storefront/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupCartRepo(t *testing.T) (*CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := NewCartRepository(client, 24*time.Hour, testLogger())
	return repo, mr
}

func sampleCart() *domain.Cart {
	return &domain.Cart{
		SessionID: "sess-001",
		Items: []domain.LineItem{
			{
				Product: domain.Product{
					ID:       1,
					Name:     "Linen Shirt",
					Category: "Clothing",
					Price:    39.99,
					InStock:  true,
				},
				Quantity: 2,
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestCartRepository_Get_Success(t *testing.T) {
	repo, mr := setupCartRepo(t)

	cart := sampleCart()
	data, err := json.Marshal(cart.Items)
	require.NoError(t, err)
	require.NoError(t, mr.Set("cart:"+cart.SessionID, string(data)))

	got, err := repo.Get(context.Background(), cart.SessionID)
	require.NoError(t, err)
	assert.Equal(t, cart.SessionID, got.SessionID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].ID)
	assert.Equal(t, "Linen Shirt", got.Items[0].Name)
	assert.Equal(t, 39.99, got.Items[0].Price)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestCartRepository_Get_MissingKeyYieldsEmptyCart(t *testing.T) {
	repo, _ := setupCartRepo(t)

	got, err := repo.Get(context.Background(), "nonexistent-session")
	require.NoError(t, err)
	assert.Equal(t, "nonexistent-session", got.SessionID)
	assert.Empty(t, got.Items)
}

func TestCartRepository_Get_MalformedJSONYieldsEmptyCart(t *testing.T) {
	repo, mr := setupCartRepo(t)

	require.NoError(t, mr.Set("cart:sess-bad", "{{not-valid-json"))

	got, err := repo.Get(context.Background(), "sess-bad")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestCartRepository_Get_IncompatibleShapeYieldsEmptyCart(t *testing.T) {
	repo, mr := setupCartRepo(t)

	// A stored object instead of an array must be discarded, not crash.
	require.NoError(t, mr.Set("cart:sess-old", `{"version": 2, "items": []}`))

	got, err := repo.Get(context.Background(), "sess-old")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

func TestCartRepository_Save_Success(t *testing.T) {
	repo, mr := setupCartRepo(t)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), cart))

	assert.True(t, mr.Exists("cart:"+cart.SessionID))

	raw, err := mr.Get("cart:" + cart.SessionID)
	require.NoError(t, err)

	var stored []domain.LineItem
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, 1, stored[0].ID)
	assert.Equal(t, 2, stored[0].Quantity)
}

func TestCartRepository_Save_TTL(t *testing.T) {
	repo, mr := setupCartRepo(t)

	require.NoError(t, repo.Save(context.Background(), sampleCart()))

	ttl := mr.TTL("cart:sess-001")
	assert.True(t, ttl > 23*time.Hour, "expected TTL > 23h, got %v", ttl)
	assert.True(t, ttl <= 24*time.Hour, "expected TTL <= 24h, got %v", ttl)
}

func TestCartRepository_Save_ReplacesWhole(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()

	cart := sampleCart()
	require.NoError(t, repo.Save(ctx, cart))

	cart.Items = []domain.LineItem{
		{Product: domain.Product{ID: 9, Name: "Tote"}, Quantity: 1},
	}
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.Get(ctx, cart.SessionID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 9, got.Items[0].ID)
}

// ---------------------------------------------------------------------------
// Round trip
// ---------------------------------------------------------------------------

func TestCartRepository_RoundTripPreservesOrder(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()

	cart := &domain.Cart{
		SessionID: "sess-rt",
		Items: []domain.LineItem{
			{Product: domain.Product{ID: 3, Name: "C"}, Quantity: 1},
			{Product: domain.Product{ID: 1, Name: "A"}, Quantity: 4},
			{Product: domain.Product{ID: 2, Name: "B"}, Quantity: 2},
		},
	}
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.Get(ctx, "sess-rt")
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	for i := range cart.Items {
		assert.Equal(t, cart.Items[i].ID, got.Items[i].ID)
		assert.Equal(t, cart.Items[i].Quantity, got.Items[i].Quantity)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestCartRepository_Delete_Success(t *testing.T) {
	repo, mr := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleCart()))
	assert.True(t, mr.Exists("cart:sess-001"))

	require.NoError(t, repo.Delete(ctx, "sess-001"))
	assert.False(t, mr.Exists("cart:sess-001"))
}

func TestCartRepository_Delete_NonExistent(t *testing.T) {
	repo, _ := setupCartRepo(t)

	assert.NoError(t, repo.Delete(context.Background(), "nonexistent-session"))
}
