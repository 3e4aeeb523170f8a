package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/israil64/laptop-galaxy/internal/models"
)

func TestFetchInventoryReturnsCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/laptops", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","model":"XPS","price":50000,"status":"in-stock"}]`))
	}))
	defer srv.Close()

	laptops := New(srv.URL).FetchInventory(context.Background())
	require.Len(t, laptops, 1)
	require.Equal(t, "XPS", laptops[0].Model)
}

func TestFetchInventoryFailsOpenOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	laptops := New(srv.URL).FetchInventory(context.Background())
	require.NotNil(t, laptops)
	require.Empty(t, laptops, "failures collapse to an empty collection")
}

func TestFetchReviewsFailsOpenWhenServerIsDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	reviews := New(srv.URL).FetchReviews(context.Background())
	require.NotNil(t, reviews)
	require.Empty(t, reviews)
}

func TestLoginSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "a@b.c", "wrong")
	require.EqualError(t, err, "Invalid credentials")
}

func TestLoginReturnsSanitizedProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Login successful","user":{"id":"7","username":"ravi","email":"a@b.c"}}`))
	}))
	defer srv.Close()

	user, err := New(srv.URL).Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	require.Equal(t, &models.PublicUser{ID: "7", Username: "ravi", Email: "a@b.c"}, user)
}

func TestSubmitReviewPostsToAPI(t *testing.T) {
	var got models.Review
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/reviews", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"message":"Review Submitted! Pending Approval."}`))
	}))
	defer srv.Close()

	err := New(srv.URL).SubmitReview(context.Background(), models.Review{Name: "Priya", Rating: 5, Text: "Great"})
	require.NoError(t, err)
	require.Equal(t, "Priya", got.Name)
}
