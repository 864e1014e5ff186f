package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/godbus/dbus/v5"

	"github.com/joshuamegnauth54/cosmic-screenshot/internal/config"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/portal"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/saver"
)

const (
	appName      = "COSMIC Screenshot"
	appIcon      = "camera-photo-symbolic"
	notifyBus    = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
)

// Service delivers capture outcomes to the user's desktop. Every call is
// best-effort: errors are returned for logging and never affect the capture
// result.
type Service interface {
	CaptureSaved(ctx context.Context, path string) error
	CaptureCancelled(ctx context.Context) error
	CaptureFailed(ctx context.Context, captureErr error) error
	Test(ctx context.Context) error
}

// NewService builds a notification service from configuration. When
// notifications are disabled a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil || !cfg.Notifications.Enabled {
		return noopService{}
	}
	return &desktopService{timeoutMS: cfg.Notifications.TimeoutMS}
}

type desktopService struct {
	timeoutMS int
}

func (s *desktopService) CaptureSaved(ctx context.Context, path string) error {
	return s.send(ctx, "Screenshot captured", path)
}

func (s *desktopService) CaptureCancelled(ctx context.Context) error {
	return s.send(ctx, "Screenshot cancelled", "")
}

func (s *desktopService) CaptureFailed(ctx context.Context, captureErr error) error {
	return s.send(ctx, "Screenshot failed", UserFacing(captureErr))
}

func (s *desktopService) Test(ctx context.Context) error {
	return s.send(ctx, appName, "Notification test")
}

// send posts via org.freedesktop.Notifications and degrades to beeep (which
// shells out to notify-send and friends) when the session bus is unreachable.
func (s *desktopService) send(ctx context.Context, summary, body string) error {
	if err := s.sendDBus(ctx, summary, body); err != nil {
		if beeepErr := beeep.Notify(summary, body, ""); beeepErr != nil {
			return fmt.Errorf("send notification: %w (fallback: %v)", err, beeepErr)
		}
	}
	return nil
}

func (s *desktopService) sendDBus(ctx context.Context, summary, body string) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	call := conn.Object(notifyBus, notifyPath).CallWithContext(
		ctx,
		notifyMethod,
		0,
		appName,
		uint32(0),
		appIcon,
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{},
		int32(s.timeoutMS),
	)
	if call.Err != nil {
		return fmt.Errorf("notify call: %w", call.Err)
	}
	return nil
}

// UserFacing renders a capture error as a short human-readable message for
// the failure notification body.
func UserFacing(err error) string {
	var saveErr *saver.SaveError
	var portalErr *portal.PortalError
	switch {
	case err == nil:
		return "unknown error"
	case errors.Is(err, saver.ErrMissingSaveDir):
		return "No save directory available; pass --save-dir or create a Pictures directory"
	case errors.Is(err, saver.ErrUnsupportedScheme):
		return "The portal returned a screenshot location this tool cannot read"
	case errors.As(err, &saveErr):
		return fmt.Sprintf("Could not save the screenshot (%s)", saveErr.Step)
	case errors.As(err, &portalErr):
		return "The screenshot portal did not provide a capture"
	default:
		return err.Error()
	}
}

type noopService struct{}

func (noopService) CaptureSaved(context.Context, string) error { return nil }
func (noopService) CaptureCancelled(context.Context) error     { return nil }
func (noopService) CaptureFailed(context.Context, error) error { return nil }
func (noopService) Test(context.Context) error                 { return nil }
