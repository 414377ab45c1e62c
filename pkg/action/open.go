package action

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

// URLOpener opens an external URL.
type URLOpener interface {
	Open(ctx context.Context, u *url.URL) error
}

// OpenerFunc adapts a function to URLOpener.
type OpenerFunc func(ctx context.Context, u *url.URL) error

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, u *url.URL) error {
	return f(ctx, u)
}

// ParseURL accepts absolute URLs only.
func ParseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", sduierrors.ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sduierrors.ErrInvalidURL, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: %q has no scheme", sduierrors.ErrInvalidURL, raw)
	}
	return u, nil
}

// SystemOpener hands URLs to the platform's default handler.
type SystemOpener struct{}

// Open starts the platform opener without waiting for it to exit.
func (SystemOpener) Open(ctx context.Context, u *url.URL) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", u.String())
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", u.String())
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", u.String())
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return startDetached(cmd, nil)
}

// startDetached starts cmd and waits for it in the background so the child
// is reaped. done, when set, receives the exit result.
func startDetached(cmd *exec.Cmd, done func(error)) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		err := cmd.Wait()
		if done != nil {
			done(err)
		}
	}()
	return nil
}
