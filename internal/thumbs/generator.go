package thumbs

import (
	"bytes"
	"container/list"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/trackcut/trackcut/internal/remux"
	"github.com/trackcut/trackcut/internal/tools"
)

// Defaults
const (
	DefaultOffset     = time.Second
	DefaultCacheLimit = 256
)

// ThumbnailError reports a failed frame extraction: corrupt file,
// unsupported codec, or a failing ffmpeg run.
type ThumbnailError struct {
	Path string
	Err  error
}

func (e *ThumbnailError) Error() string {
	return fmt.Sprintf("thumbnail %q: %v", e.Path, e.Err)
}

func (e *ThumbnailError) Unwrap() error {
	return e.Err
}

type cacheKey struct {
	path    string
	modTime int64
}

type cacheEntry struct {
	key  cacheKey
	data []byte
}

// Generator extracts and caches preview frames. Safe for concurrent use.
type Generator struct {
	ts     tools.Toolset
	offset time.Duration
	limit  int

	mu       sync.Mutex
	entries  map[cacheKey]*list.Element
	order    *list.List // front = most recently used
	inflight map[string]chan struct{}
}

// NewGenerator creates a thumbnail generator grabbing the frame at offset
// into each video and caching at most limit images.
func NewGenerator(ts tools.Toolset, offset time.Duration, limit int) *Generator {
	if offset <= 0 {
		offset = DefaultOffset
	}
	if limit <= 0 {
		limit = DefaultCacheLimit
	}
	return &Generator{
		ts:       ts,
		offset:   offset,
		limit:    limit,
		entries:  make(map[cacheKey]*list.Element),
		order:    list.New(),
		inflight: make(map[string]chan struct{}),
	}
}

// Thumbnail returns the JPEG bytes of one representative frame of path,
// served from cache when the file has not changed since the last call.
// Concurrent calls for the same path share one extraction.
func (g *Generator) Thumbnail(ctx context.Context, path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ThumbnailError{Path: path, Err: err}
	}
	key := cacheKey{path: path, modTime: info.ModTime().UnixNano()}

	for {
		if data, ok := g.lookup(key); ok {
			return data, nil
		}

		settled, leader := g.claim(path)
		if !leader {
			select {
			case <-settled:
			case <-ctx.Done():
				return nil, &ThumbnailError{Path: path, Err: ctx.Err()}
			}
			continue
		}

		data, err := g.extract(ctx, path)
		if err != nil {
			g.release(path)
			return nil, err
		}
		g.store(key, data)
		g.release(path)
		return data, nil
	}
}

// claim marks path as being extracted. When another call already holds the
// claim, the second return is false and the channel closes once that
// extraction settles.
func (g *Generator) claim(path string) (<-chan struct{}, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if ch, ok := g.inflight[path]; ok {
		return ch, false
	}
	ch := make(chan struct{})
	g.inflight[path] = ch
	return ch, true
}

func (g *Generator) release(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if ch, ok := g.inflight[path]; ok {
		close(ch)
		delete(g.inflight, path)
	}
}

// extract runs the frame grab, writing the image to stdout.
func (g *Generator) extract(ctx context.Context, path string) ([]byte, error) {
	args := remux.BuildThumbnailArgs(path, g.offset)
	cmd := exec.CommandContext(ctx, g.ts.FFmpeg, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ThumbnailError{Path: path, Err: fmt.Errorf("%w: %s", err, lastLine(stderr.String()))}
	}
	if stdout.Len() == 0 {
		return nil, &ThumbnailError{Path: path, Err: fmt.Errorf("no frame produced")}
	}
	return stdout.Bytes(), nil
}

func (g *Generator) lookup(key cacheKey) ([]byte, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	elem, ok := g.entries[key]
	if !ok {
		return nil, false
	}
	g.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).data, true
}

func (g *Generator) store(key cacheKey, data []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Drop any stale entry for the same path (older mtime).
	for existing, elem := range g.entries {
		if existing.path == key.path {
			g.order.Remove(elem)
			delete(g.entries, existing)
		}
	}

	g.entries[key] = g.order.PushFront(&cacheEntry{key: key, data: data})

	for g.order.Len() > g.limit {
		oldest := g.order.Back()
		g.order.Remove(oldest)
		delete(g.entries, oldest.Value.(*cacheEntry).key)
	}
}

// CacheSize returns the number of cached thumbnails.
func (g *Generator) CacheSize() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.order.Len()
}

// lastLine returns the final non-empty stderr line, where ffmpeg states
// the actual failure.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
