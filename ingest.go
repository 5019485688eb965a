package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const fetchTimeout = 5 * time.Second

// Source returns the raw JSON body of the note feed.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// httpSource fetches the feed over HTTP with a cache-busting parameter
// that changes on every request.
type httpSource struct {
	client *http.Client
	url    string
	now    func() time.Time
}

func (s *httpSource) Fetch(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(s.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch feed: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	return body, nil
}

// fileSource reads the feed from a local JSON file.
type fileSource struct {
	path string
}

func (s *fileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	return body, nil
}

func newSource(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &httpSource{
			client: &http.Client{Timeout: fetchTimeout},
			url:    location,
			now:    time.Now,
		}
	}
	return &fileSource{path: location}
}

// localPath returns the file behind a source, or "" for remote sources.
func localPath(src Source) string {
	if fs, ok := src.(*fileSource); ok {
		return fs.path
	}
	return ""
}

type feedMsg struct {
	body []byte
	err  error
}

type pollMsg time.Time

type feedChangedMsg struct{}

func fetchFeedCmd(src Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		body, err := src.Fetch(ctx)
		return feedMsg{body: body, err: err}
	}
}

func pollCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// watchFeedFile watches the directory holding path and signals on ch
// whenever the file is written, created or renamed into place. It returns
// when ctx is done.
func watchFeedFile(ctx context.Context, path string, logger *slog.Logger, ch chan<- struct{}) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve feed path: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watcher: started", slog.String("path", abs))

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watcher: stopped")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case ch <- struct{}{}:
			default:
			}
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", werr.Error()))
		}
	}
}

func waitFeedChangeCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return feedChangedMsg{}
	}
}

// poller drives ingestion outside the terminal program.
type poller struct {
	src      Source
	interval time.Duration
	logger   *slog.Logger
}

// run fetches immediately, then on every tick and every signal on
// changed, handing each body (or error) to apply. Errors never stop it.
func (p *poller) run(ctx context.Context, changed <-chan struct{}, apply func(DataArrived)) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	fetch := func() {
		fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		body, err := p.src.Fetch(fctx)
		if err != nil {
			p.logger.Debug("poll failed", slog.String("error", err.Error()))
		}
		apply(DataArrived{Body: body, Err: err})
	}

	fetch()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fetch()
		case <-changed:
			fetch()
		}
	}
}
