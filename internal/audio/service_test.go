package audio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestServiceDownloadsAndCaches(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.URL.Path != "/audio/42.mp3" {
			http.NotFound(w, r)
			return
		}
		w.Write(mp3Frames(20))
	}))
	defer srv.Close()

	svc := NewService(t.TempDir(), srv.URL+"/audio/%d.mp3", srv.Client())
	ctx := context.Background()

	h, err := svc.Fetch(ctx, 42)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if h.SubjectID != 42 || h.Path != svc.Path(42) || h.Duration <= 0 {
		t.Fatalf("unexpected handle %+v", h)
	}
	if _, err := os.Stat(svc.Path(42)); err != nil {
		t.Fatalf("expected cached file: %v", err)
	}

	if _, err := svc.Fetch(ctx, 42); err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Fatalf("expected 1 request, got %d", got)
	}
}

func TestServiceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	svc := NewService(t.TempDir(), srv.URL+"/%d.mp3", srv.Client())
	if _, err := svc.Fetch(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceCacheOnly(t *testing.T) {
	svc := NewService(t.TempDir(), "", nil)
	if _, err := svc.Fetch(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := os.WriteFile(svc.Path(1), mp3Frames(5), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := svc.Fetch(context.Background(), 1); err != nil {
		t.Fatalf("Fetch from cache: %v", err)
	}
}

func TestServiceDiscardsUndecodableAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not audio</html>"))
	}))
	defer srv.Close()

	svc := NewService(t.TempDir(), srv.URL+"/%d.mp3", srv.Client())
	if _, err := svc.Fetch(context.Background(), 5); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := os.Stat(svc.Path(5)); !os.IsNotExist(err) {
		t.Fatalf("expected undecodable file to be removed, stat err = %v", err)
	}
}

func TestServiceSharesConcurrentFetches(t *testing.T) {
	var requests int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		<-release
		w.Write(mp3Frames(5))
	}))
	defer srv.Close()

	svc := NewService(t.TempDir(), srv.URL+"/%d.mp3", srv.Client())

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Fetch(context.Background(), 9)
			errs <- err
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
	}
	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Fatalf("expected 1 request, got %d", got)
	}
}
