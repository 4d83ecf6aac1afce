package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func TestLocalStorePutServeDelete(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewLocalStoreFs(fs, "/uploads", zap.NewNop())
	ctx := context.Background()

	url, err := store.Put(ctx, "qrcodes/abc.png", "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if url != "/uploads/qrcodes/abc.png" {
		t.Fatalf("unexpected url %s", url)
	}

	srv := httptest.NewServer(http.StripPrefix("/uploads", store.Handler()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/uploads/qrcodes/abc.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "png-bytes" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}

	if err := store.Delete(ctx, "qrcodes/abc.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := afero.Exists(fs, "/qrcodes/abc.png"); ok {
		t.Fatalf("expected blob removed")
	}
	if err := store.Delete(ctx, "qrcodes/abc.png"); err != nil {
		t.Fatalf("deleting a missing blob should succeed, got %v", err)
	}
}

func TestCleanKeyStaysInsideRoot(t *testing.T) {
	got, err := CleanKey("../../etc/passwd")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if got != "etc/passwd" {
		t.Fatalf("expected traversal stripped, got %s", got)
	}
	if _, err := CleanKey("/"); err == nil {
		t.Fatalf("expected empty key rejected")
	}
}

func TestLocalStoreHidesDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewLocalStoreFs(fs, "/uploads", zap.NewNop())
	if _, err := store.Put(context.Background(), "qrcodes/abc.png", "image/png", []byte("png-bytes")); err != nil {
		t.Fatalf("put: %v", err)
	}

	srv := httptest.NewServer(http.StripPrefix("/uploads", store.Handler()))
	defer srv.Close()

	for _, path := range []string{"/uploads/", "/uploads/qrcodes/", "/uploads/qrcodes", "/uploads/missing.png"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.StatusCode)
		}
		if strings.Contains(string(body), "abc.png") {
			t.Fatalf("%s: listing leaked %q", path, body)
		}
	}
}

func TestLocalStoreDeletePrefix(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewLocalStoreFs(fs, "/uploads", zap.NewNop())
	ctx := context.Background()

	for _, key := range []string{"offers/a/1.png", "offers/a/2.png", "offers/b/1.png"} {
		if _, err := store.Put(ctx, key, "image/png", []byte("x")); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	if err := store.DeletePrefix(ctx, "offers/a"); err != nil {
		t.Fatalf("delete prefix: %v", err)
	}
	if ok, _ := afero.Exists(fs, "/offers/a/1.png"); ok {
		t.Fatal("expected offers/a removed")
	}
	if ok, _ := afero.Exists(fs, "/offers/b/1.png"); !ok {
		t.Fatal("expected offers/b kept")
	}
	if err := store.DeletePrefix(ctx, "offers/missing"); err != nil {
		t.Fatalf("deleting a missing prefix should succeed, got %v", err)
	}
}
