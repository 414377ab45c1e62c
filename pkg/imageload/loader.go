// Package imageload resolves image locators into slots that load in the
// background and render as terminal rasters.
package imageload

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/alexisbeaulieu97/sdui/pkg/observability"
)

// Sources reported to observability hooks.
const (
	SourceRemote = "remote"
	SourceAsset  = "asset"
)

var (
	errOffline  = errors.New("remote images disabled")
	errFileURLs = errors.New("file urls disabled")
)

var remotePrefixes = []string{"http://", "https://", "wss://", "ws://", "ftp://", "file://", "data:"}

// IsRemote reports whether locator names a remote resource rather than a
// bundled asset.
func IsRemote(locator string) bool {
	for _, prefix := range remotePrefixes {
		if strings.HasPrefix(locator, prefix) {
			return true
		}
	}
	return false
}

// Loader creates slots for image locators. Remote locators load in their own
// goroutine; assets load synchronously from the asset filesystem. Slots are
// shared per locator. A remote load belongs to the loader, not to the render
// pass that started it: it runs until it finishes or the loader is closed.
type Loader struct {
	client   *http.Client
	assets   fs.FS
	logger   zerolog.Logger
	onUpdate func()
	maxBytes int64
	offline  bool
	noFiles  bool

	life context.Context
	stop context.CancelFunc

	mu    sync.Mutex
	slots map[string]*Slot
	wg    sync.WaitGroup
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for http and https locators.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithAssets sets the filesystem bundled asset names resolve against.
func WithAssets(assets fs.FS) Option {
	return func(l *Loader) { l.assets = assets }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithOnUpdate sets a callback invoked after each remote load finishes.
// It runs on the loading goroutine.
func WithOnUpdate(fn func()) Option {
	return func(l *Loader) { l.onUpdate = fn }
}

// WithMaxBytes caps the size of a fetched image.
func WithMaxBytes(n int64) Option {
	return func(l *Loader) { l.maxBytes = n }
}

// WithOffline fails remote locators immediately instead of fetching them.
func WithOffline() Option {
	return func(l *Loader) { l.offline = true }
}

// WithoutFileURLs fails file:// locators. Hosts rendering documents sent by
// clients use it so a document cannot read the host's disk.
func WithoutFileURLs() Option {
	return func(l *Loader) { l.noFiles = true }
}

// NewLoader creates a loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:   http.DefaultClient,
		logger:   zerolog.Nop(),
		maxBytes: 16 << 20,
		slots:    make(map[string]*Slot),
	}
	l.life, l.stop = context.WithCancel(context.Background())
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the slot for locator, starting the load on first use.
func (l *Loader) Load(ctx context.Context, locator string) *Slot {
	l.mu.Lock()
	if slot, ok := l.slots[locator]; ok {
		l.mu.Unlock()
		return slot
	}
	slot := &Slot{locator: locator}
	l.slots[locator] = slot
	l.mu.Unlock()

	if !IsRemote(locator) {
		l.finish(ctx, slot, SourceAsset, time.Now(), func() (image.Image, error) {
			return l.asset(locator)
		})
		return slot
	}
	if l.offline {
		l.finish(ctx, slot, SourceRemote, time.Now(), func() (image.Image, error) {
			return nil, errOffline
		})
		return slot
	}

	loadCtx, cancel := l.detach(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancel()
		l.finish(loadCtx, slot, SourceRemote, time.Now(), func() (image.Image, error) {
			return l.remote(loadCtx, locator)
		})
		if l.onUpdate != nil {
			l.onUpdate()
		}
	}()
	return slot
}

// detach keeps the values of ctx but takes cancellation from the loader.
func (l *Loader) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	out, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(l.life, cancel)
	return out, func() {
		stop()
		cancel()
	}
}

// Close cancels in-flight remote loads and waits for them to return.
func (l *Loader) Close() {
	l.stop()
	l.wg.Wait()
}

// Wait blocks until every started remote load finishes or ctx is done.
func (l *Loader) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loader) finish(ctx context.Context, slot *Slot, source string, start time.Time, load func() (image.Image, error)) {
	img, err := load()
	observability.Image().OnImageLoad(ctx, source, time.Since(start), err)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Abandoned, not failed: the next Load starts over.
			l.forget(slot)
		}
		l.logger.Warn().Err(err).Str("locator", slot.locator).Str("source", source).Msg("image load failed")
		slot.fail(err)
		return
	}
	l.logger.Debug().Str("locator", slot.locator).Str("source", source).Msg("image loaded")
	slot.resolve(img)
}

func (l *Loader) forget(slot *Slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.slots[slot.locator] == slot {
		delete(l.slots, slot.locator)
	}
}

func (l *Loader) asset(name string) (image.Image, error) {
	if l.assets == nil {
		return nil, fmt.Errorf("asset %q: no asset directory configured", name)
	}
	f, err := l.assets.Open(name)
	if err != nil {
		return nil, fmt.Errorf("asset %q: %w", name, err)
	}
	defer f.Close()
	return decode(f)
}

func (l *Loader) remote(ctx context.Context, locator string) (image.Image, error) {
	if strings.HasPrefix(locator, "data:") {
		data, err := decodeDataURL(locator)
		if err != nil {
			return nil, err
		}
		return decode(bytes.NewReader(data))
	}

	u, err := url.Parse(locator)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", locator, err)
	}
	switch u.Scheme {
	case "http", "https":
		return l.fetch(ctx, u)
	case "file":
		if l.noFiles {
			return nil, errFileURLs
		}
		f, err := os.Open(u.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return decode(io.LimitReader(f, l.maxBytes))
	default:
		return nil, fmt.Errorf("unsupported image scheme %q", u.Scheme)
	}
}

func (l *Loader) fetch(ctx context.Context, u *url.URL) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", u.Redacted(), resp.StatusCode)
	}
	return decode(io.LimitReader(resp.Body, l.maxBytes))
}

func decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// decodeDataURL extracts the payload of a data: URL.
func decodeDataURL(locator string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(locator, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("data url: missing payload")
	}
	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data url: %w", err)
		}
		return data, nil
	}
	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("data url: %w", err)
	}
	return []byte(unescaped), nil
}
