package spoonacular

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/complexSearch" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "soup" {
			t.Errorf("query = %q, want %q", q.Get("query"), "soup")
		}
		if q.Get("apiKey") != "test-key" {
			t.Errorf("apiKey = %q", q.Get("apiKey"))
		}
		if q.Get("addRecipeInformation") != "true" {
			t.Error("addRecipeInformation not requested")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"id":716429,"title":"Pasta","image":"https://img/716429.jpg","summary":"<b>Tasty</b> pasta."}
		]}`))
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))

	results, err := c.Search(context.Background(), "soup")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d results, want 1", len(results))
	}
	got := results[0]
	if got.ID != 716429 || got.Title != "Pasta" {
		t.Errorf("Search() result = %+v", got)
	}
	if got.Summary != "Tasty pasta." {
		t.Errorf("Search() summary = %q, want HTML stripped", got.Summary)
	}
}

func TestSearch_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New("k", WithBaseURL(srv.URL))
	results, err := c.Search(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("Search() = %v, want empty non-nil slice", results)
	}
}

func TestGetDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/716429/information" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"title":"Pasta",
			"image":"https://img/716429.jpg",
			"instructions":"Boil it.",
			"extendedIngredients":[{"original":"200g spaghetti"},{"original":"1 pinch salt"}]
		}`))
	}))
	defer srv.Close()

	c := New("k", WithBaseURL(srv.URL))
	details, err := c.GetDetails(context.Background(), 716429)
	if err != nil {
		t.Fatalf("GetDetails() error = %v", err)
	}
	if details.Title != "Pasta" || details.Instructions != "Boil it." {
		t.Errorf("GetDetails() = %+v", details)
	}
	if len(details.ExtendedIngredients) != 2 {
		t.Fatalf("GetDetails() ingredients = %d, want 2", len(details.ExtendedIngredients))
	}
	if details.ExtendedIngredients[0].Original != "200g spaghetti" {
		t.Errorf("ingredient[0] = %q", details.ExtendedIngredients[0].Original)
	}
}

func TestGetDetails_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired) // spoonacular's quota-exceeded status
	}))
	defer srv.Close()

	c := New("k", WithBaseURL(srv.URL))
	if _, err := c.GetDetails(context.Background(), 1); err == nil {
		t.Fatal("GetDetails() should surface non-200 provider responses")
	}
}
