package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/israil64/laptop-galaxy/internal/models"
)

// testStoreContract exercises the behaviors every strategy must share. The
// strategies are meant to be indistinguishable to callers except for their
// id formats.
func testStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("fresh store lists empty", func(t *testing.T) {
		laptops, err := store.Laptops().List(ctx)
		require.NoError(t, err)
		require.Empty(t, laptops)
	})

	t.Run("create assigns unique ids", func(t *testing.T) {
		var ids []string
		for i := 0; i < 5; i++ {
			created, err := store.Laptops().Create(ctx, models.Laptop{Model: "XPS", Price: 50000})
			require.NoError(t, err)
			require.NotEmpty(t, created.ID)
			for _, prev := range ids {
				require.NotEqual(t, prev, created.ID, "rapid successive creates must not collide")
			}
			ids = append(ids, created.ID)
		}
		for _, id := range ids {
			require.NoError(t, store.Laptops().Delete(ctx, id))
		}
	})

	t.Run("update merges only supplied fields", func(t *testing.T) {
		created, err := store.Laptops().Create(ctx, models.Laptop{
			Brand:     "Dell",
			Model:     "XPS 13",
			Price:     50000,
			Status:    "in-stock",
			Processor: "i7",
			RAM:       "16GB",
		})
		require.NoError(t, err)

		price := 45000.0
		status := "offer"
		updated, err := store.Laptops().Update(ctx, created.ID, models.LaptopPatch{
			Price:  &price,
			Status: &status,
		})
		require.NoError(t, err)
		require.Equal(t, 45000.0, updated.Price)
		require.Equal(t, "offer", updated.Status)
		// Fields absent from the patch keep their pre-update values.
		require.Equal(t, "Dell", updated.Brand)
		require.Equal(t, "XPS 13", updated.Model)
		require.Equal(t, "i7", updated.Processor)
		require.Equal(t, "16GB", updated.RAM)

		laptops, err := store.Laptops().List(ctx)
		require.NoError(t, err)
		require.Len(t, laptops, 1)
		require.Equal(t, updated, laptops[0])

		require.NoError(t, store.Laptops().Delete(ctx, created.ID))
	})

	t.Run("update of missing id reports not found", func(t *testing.T) {
		price := 1.0
		_, err := store.Laptops().Update(ctx, "no-such-id", models.LaptopPatch{Price: &price})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		created, err := store.Laptops().Create(ctx, models.Laptop{Model: "ThinkPad"})
		require.NoError(t, err)

		require.NoError(t, store.Laptops().Delete(ctx, created.ID))
		require.NoError(t, store.Laptops().Delete(ctx, created.ID))

		laptops, err := store.Laptops().List(ctx)
		require.NoError(t, err)
		require.Empty(t, laptops)
	})

	t.Run("review approval round-trips explicit false", func(t *testing.T) {
		hidden := false
		created, err := store.Reviews().Create(ctx, models.Review{
			Name:     "Priya",
			Rating:   5,
			Text:     "Great machine",
			Approved: &hidden,
			Date:     "01/01/2026",
		})
		require.NoError(t, err)

		reviews, err := store.Reviews().List(ctx)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		require.NotNil(t, reviews[0].Approved)
		require.False(t, *reviews[0].Approved)

		approved := true
		updated, err := store.Reviews().Update(ctx, created.ID, models.ReviewPatch{Approved: &approved})
		require.NoError(t, err)
		require.NotNil(t, updated.Approved)
		require.True(t, *updated.Approved)
		// The rest of the record is untouched by moderation.
		require.Equal(t, "Priya", updated.Name)
		require.Equal(t, 5, updated.Rating)

		require.NoError(t, store.Reviews().Delete(ctx, created.ID))
	})

	t.Run("users are found by email", func(t *testing.T) {
		u, err := store.Users().FindByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		require.Nil(t, u)

		created, err := store.Users().Create(ctx, models.User{
			Username: "ravi",
			Email:    "ravi@example.com",
			Password: "$2a$10$hash",
			Role:     "user",
		})
		require.NoError(t, err)

		found, err := store.Users().FindByEmail(ctx, "ravi@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Equal(t, created.ID, found.ID)
		require.Equal(t, "$2a$10$hash", found.Password, "the stored hash must persist")

		require.NoError(t, store.Users().Delete(ctx, created.ID))
	})

	t.Run("messages are append then delete only", func(t *testing.T) {
		created, err := store.Messages().Create(ctx, models.Message{
			Name:    "Amit",
			Email:   "amit@example.com",
			Message: "Is the XPS still available?",
			Date:    "02/01/2026",
		})
		require.NoError(t, err)

		messages, err := store.Messages().List(ctx)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		require.Equal(t, created.ID, messages[0].ID)

		require.NoError(t, store.Messages().Delete(ctx, created.ID))
		messages, err = store.Messages().List(ctx)
		require.NoError(t, err)
		require.Empty(t, messages)
	})
}
