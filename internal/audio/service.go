package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when no audio exists for a subject.
var ErrNotFound = errors.New("audio not found")

// Service resolves subject ids to audio handles, downloading into a cache
// directory on first use.
type Service struct {
	dir         string
	urlTemplate string
	client      *http.Client
	group       singleflight.Group
}

// NewService creates a service caching into dir. urlTemplate is formatted
// with the subject id (e.g. "https://example.com/audio/%d.mp3"); when empty
// only cached files are served. A nil client uses a client with a 30 second
// timeout.
func NewService(dir, urlTemplate string, client *http.Client) *Service {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Service{
		dir:         dir,
		urlTemplate: urlTemplate,
		client:      client,
	}
}

// Path returns the cache path for a subject's audio.
func (s *Service) Path(subjectID int) string {
	return filepath.Join(s.dir, strconv.Itoa(subjectID)+".mp3")
}

// Fetch returns a handle for the subject's audio. Concurrent calls for the
// same subject share one download.
func (s *Service) Fetch(ctx context.Context, subjectID int) (*Handle, error) {
	v, err, _ := s.group.Do(strconv.Itoa(subjectID), func() (any, error) {
		return s.fetch(ctx, subjectID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Handle), nil
}

func (s *Service) fetch(ctx context.Context, subjectID int) (*Handle, error) {
	path := s.Path(subjectID)
	if _, err := os.Stat(path); err == nil {
		return OpenHandle(subjectID, path)
	}

	if s.urlTemplate == "" {
		return nil, fmt.Errorf("subject %d: %w", subjectID, ErrNotFound)
	}
	if err := s.download(ctx, subjectID, path); err != nil {
		return nil, err
	}

	h, err := OpenHandle(subjectID, path)
	if err != nil {
		// Don't keep an undecodable file in the cache
		os.Remove(path)
		return nil, err
	}
	return h, nil
}

func (s *Service) download(ctx context.Context, subjectID int, path string) error {
	url := fmt.Sprintf(s.urlTemplate, subjectID)
	slog.Debug("downloading audio", "subject", subjectID, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading audio: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("subject %d: %w", subjectID, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("downloading audio: unexpected status %s", resp.Status)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating audio dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".download-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("writing audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing audio: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("storing audio: %w", err)
	}
	return nil
}
