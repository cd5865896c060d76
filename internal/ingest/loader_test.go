package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("expected Accept: application/json, got %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"speaker": "alice", "text": "the budget must balance", "date": "2024-01-09"},
			{"speaker": "bob", "text": "spending will rise", "date": "2024-03-20"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	records, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Speaker != "alice" {
		t.Errorf("expected speaker alice, got %q", first.Speaker)
	}
	if first.SpokenAt.Format("2006-01-02") != "2024-01-09" {
		t.Errorf("unexpected date: %v", first.SpokenAt)
	}
	if first.Week != 2 {
		t.Errorf("expected ISO week 2, got %d", first.Week)
	}
}

func TestClient_Load_BadDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"speaker": "alice", "text": "x", "date": "Jan 9, 2024"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Load(context.Background()); err == nil {
		t.Fatal("expected error for unparseable date")
	}
}

func TestClient_Load_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Load(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestClient_Load_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL)
	if _, err := client.Load(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDeriveWeek(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2024-01-09", 2},
		{"2024-12-30", 1}, // ISO week rolls into the next year
		{"2023-01-01", 52},
	}

	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatalf("parse %s: %v", tt.date, err)
		}
		if got := DeriveWeek(d); got != tt.want {
			t.Errorf("DeriveWeek(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}
