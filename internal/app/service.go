// Package app wires configuration into the long-lived services the hosts
// share: destination and custom renderer registries, the action dispatcher,
// the image loader and the renderer.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/alexisbeaulieu97/sdui/internal/config"
	"github.com/alexisbeaulieu97/sdui/internal/logger"
	"github.com/alexisbeaulieu97/sdui/pkg/action"
	"github.com/alexisbeaulieu97/sdui/pkg/imageload"
	"github.com/alexisbeaulieu97/sdui/pkg/observability"
	"github.com/alexisbeaulieu97/sdui/pkg/render"
	"github.com/alexisbeaulieu97/sdui/pkg/sdui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui/components"
)

// Options configures NewService.
type Options struct {
	Config *config.Config
	Logger *logger.Logger

	// Opener opens URL destinations. Nil uses the platform opener.
	Opener action.URLOpener
	// Navigator receives push and modal transitions. It can be attached later
	// through Service.Host.
	Navigator action.Navigator
	// OnImageUpdate runs whenever a remote image finishes loading.
	OnImageUpdate func()
	// HTTPClient fetches remote images.
	HTTPClient *http.Client
	// DenyFileImages fails file:// image locators. Set it when documents come
	// from clients rather than from the local user.
	DenyFileImages bool
}

// Service bundles the services created at startup.
type Service struct {
	cfg *config.Config
	log *logger.Logger

	Destinations *action.Registry
	Custom       *render.CustomRegistry
	Host         *action.Host
	Dispatcher   *action.Dispatcher
	Images       *imageload.Loader
	Renderer     *render.Renderer
}

// NewService builds the services and registers the configured destinations.
func NewService(opts Options) (*Service, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Service{
		cfg:          cfg,
		log:          log,
		Destinations: action.NewRegistry(),
		Custom:       render.NewCustomRegistry(),
		Host:         action.NewHost(opts.Navigator),
	}

	dispatchOpts := []action.Option{
		action.WithHost(s.Host),
		action.WithLogger(log.Component("action").Zerolog()),
	}
	if opts.Opener != nil {
		dispatchOpts = append(dispatchOpts, action.WithOpener(opts.Opener))
	}
	s.Dispatcher = action.NewDispatcher(s.Destinations, dispatchOpts...)

	imageOpts := []imageload.Option{
		imageload.WithLogger(log.Component("images").Zerolog()),
		imageload.WithMaxBytes(cfg.Images.MaxBytes),
	}
	if opts.HTTPClient != nil {
		imageOpts = append(imageOpts, imageload.WithHTTPClient(opts.HTTPClient))
	}
	if opts.OnImageUpdate != nil {
		imageOpts = append(imageOpts, imageload.WithOnUpdate(opts.OnImageUpdate))
	}
	if !cfg.Images.Enabled {
		imageOpts = append(imageOpts, imageload.WithOffline())
	}
	if opts.DenyFileImages {
		imageOpts = append(imageOpts, imageload.WithoutFileURLs())
	}
	if cfg.Images.AssetsDir != "" {
		dir := cfg.Resolve(cfg.Images.AssetsDir)
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("assets dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("assets dir %s is not a directory", dir)
		}
		imageOpts = append(imageOpts, imageload.WithAssets(os.DirFS(dir)))
	}
	s.Images = imageload.NewLoader(imageOpts...)

	s.Renderer = render.NewRenderer(
		render.WithCustomRegistry(s.Custom),
		render.WithDispatcher(s.Dispatcher),
		render.WithImageLoader(s.Images),
		render.WithLogger(log.Component("render").Zerolog()),
		render.WithMetrics(components.Metrics{
			ColumnPoints: cfg.Render.ColumnPoints,
			RowPoints:    cfg.Render.RowPoints,
		}),
		render.WithDefaultPadding(cfg.Render.DefaultPadding),
		render.WithDefaultSpacing(cfg.Render.DefaultSpacing),
	)

	for _, d := range cfg.Destinations {
		s.Destinations.Register(d.Key, s.destination(d))
	}

	return s, nil
}

// Config returns the configuration the service was built from.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Logger returns the service logger.
func (s *Service) Logger() *logger.Logger {
	return s.log
}

// Close detaches the navigation host and cancels image loads still in flight.
func (s *Service) Close() {
	s.Host.Release()
	s.Images.Close()
}

// Decode decodes a scene document and reports it to the decode hooks.
func (s *Service) Decode(ctx context.Context, data []byte) (*sdui.Scene, error) {
	start := time.Now()
	scene, err := sdui.Decode(data)
	observability.Render().OnDecode(ctx, len(data), time.Since(start), err)
	if err != nil {
		s.log.WithFields(map[string]any{"bytes": len(data)}).Error(err, "decode failed")
		return nil, err
	}
	return scene, nil
}

// ReadScene reads and decodes the scene document at path. A byte-order mark
// selects UTF-16 input, which is transcoded; a UTF-8 mark is dropped.
func (s *Service) ReadScene(ctx context.Context, path string) (*sdui.Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	data, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return s.Decode(ctx, data)
}

// Render builds the page for scene.
func (s *Service) Render(ctx context.Context, scene *sdui.Scene) *components.Page {
	return s.Renderer.Render(ctx, scene)
}

// Draw renders scene to a string width cells wide, or unconstrained when
// width is not positive.
func (s *Service) Draw(ctx context.Context, scene *sdui.Scene, width int) string {
	return components.Render(s.Render(ctx, scene), s.Renderer.Context(width))
}

// Width returns the configured render width, or fallback when unset.
func (s *Service) Width(fallback int) int {
	if s.cfg.Render.Width > 0 {
		return s.cfg.Render.Width
	}
	return fallback
}

func (s *Service) destination(d config.Destination) action.Destination {
	switch d.Kind {
	case config.DestinationURL:
		target := d.URL
		return action.URL(func() string { return target })
	case config.DestinationText:
		screen := action.Screen{Title: d.Title, Content: components.NewText(d.Text)}
		return action.Controller(func() action.Screen { return screen })
	default:
		path, title := s.cfg.Resolve(d.Path), d.Title
		build := func() ui.Renderable {
			scene, err := s.ReadScene(context.Background(), path)
			if err != nil {
				return components.NewPlaceholder(err.Error())
			}
			return s.Render(context.Background(), scene)
		}
		if title == "" {
			return action.View(build)
		}
		return action.Controller(func() action.Screen {
			return action.Screen{Title: title, Content: build()}
		})
	}
}
