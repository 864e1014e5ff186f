package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"
)

const (
	portalBusName    = "org.freedesktop.portal.Desktop"
	portalObjectPath = "/org/freedesktop/portal/desktop"
	screenshotMethod = "org.freedesktop.portal.Screenshot.Screenshot"
	requestInterface = "org.freedesktop.portal.Request"
	responseMember   = "Response"
)

// Response codes defined by the portal Request interface.
const (
	responseSuccess   = 0
	responseCancelled = 1
)

// ErrCancelled reports that the user dismissed the screenshot dialog. It is a
// neutral outcome, not a failure.
var ErrCancelled = errors.New("screenshot cancelled by user")

// PortalError reports a portal request that ended without a capture for any
// reason other than user cancellation.
type PortalError struct {
	Code uint32
}

func (e *PortalError) Error() string {
	return fmt.Sprintf("portal request failed with response code %d", e.Code)
}

// Options mirror the Screenshot portal request options.
type Options struct {
	// Interactive asks the portal to present its picker UI.
	Interactive bool
	// Modal asks the compositor to make the picker modal.
	Modal bool
}

// Client talks to the XDG desktop portal over the session bus.
type Client struct {
	conn *dbus.Conn
}

// Connect opens a private session bus connection for portal calls.
func Connect() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the session bus connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Screenshot requests a capture and blocks until the portal answers or ctx
// ends. On success it returns the capture URI reported by the portal
// (typically file://...). User cancellation surfaces as ErrCancelled.
func (c *Client) Screenshot(ctx context.Context, opts Options) (string, error) {
	token := newHandleToken()
	expectedPath := requestPath(c.conn.Names()[0], token)

	// Subscribe before sending the request; the Response signal can arrive
	// before the method reply is processed.
	signals := make(chan *dbus.Signal, 4)
	c.conn.Signal(signals)
	defer c.conn.RemoveSignal(signals)

	matchOpts := []dbus.MatchOption{
		dbus.WithMatchInterface(requestInterface),
		dbus.WithMatchMember(responseMember),
		dbus.WithMatchObjectPath(expectedPath),
	}
	if err := c.conn.AddMatchSignalContext(ctx, matchOpts...); err != nil {
		return "", fmt.Errorf("subscribe to portal response: %w", err)
	}
	defer func() { _ = c.conn.RemoveMatchSignal(matchOpts...) }()

	var handle dbus.ObjectPath
	obj := c.conn.Object(portalBusName, portalObjectPath)
	call := obj.CallWithContext(ctx, screenshotMethod, 0, "", requestOptions(token, opts))
	if call.Err != nil {
		return "", fmt.Errorf("screenshot request: %w", call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return "", fmt.Errorf("decode request handle: %w", err)
	}

	// Older portal backends return a handle that differs from the token
	// derivation; when that happens the returned path wins.
	if handle != expectedPath {
		extra := []dbus.MatchOption{
			dbus.WithMatchInterface(requestInterface),
			dbus.WithMatchMember(responseMember),
			dbus.WithMatchObjectPath(handle),
		}
		if err := c.conn.AddMatchSignalContext(ctx, extra...); err != nil {
			return "", fmt.Errorf("subscribe to portal response: %w", err)
		}
		defer func() { _ = c.conn.RemoveMatchSignal(extra...) }()
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return "", errors.New("session bus connection closed")
			}
			if sig == nil || sig.Name != requestInterface+"."+responseMember {
				continue
			}
			if sig.Path != handle && sig.Path != expectedPath {
				continue
			}
			return parseResponse(sig.Body)
		}
	}
}

// newHandleToken generates a portal handle token; the portal restricts tokens
// to [A-Za-z0-9_].
func newHandleToken() string {
	return "cosmic_screenshot_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// requestPath derives the Request object path the portal will use for a given
// sender and handle token: the sender's unique name with the leading colon
// dropped and dots mapped to underscores.
func requestPath(sender, token string) dbus.ObjectPath {
	sender = strings.TrimPrefix(sender, ":")
	sender = strings.ReplaceAll(sender, ".", "_")
	return dbus.ObjectPath(portalObjectPath + "/request/" + sender + "/" + token)
}

func requestOptions(token string, opts Options) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(token),
		"interactive":  dbus.MakeVariant(opts.Interactive),
		"modal":        dbus.MakeVariant(opts.Modal),
	}
}

// parseResponse decodes a Request.Response signal body (response code plus a
// results vardict) into the capture URI.
func parseResponse(body []any) (string, error) {
	if len(body) < 2 {
		return "", fmt.Errorf("malformed portal response: %d body elements", len(body))
	}
	code, ok := body[0].(uint32)
	if !ok {
		return "", fmt.Errorf("malformed portal response code: %T", body[0])
	}
	switch code {
	case responseSuccess:
	case responseCancelled:
		return "", ErrCancelled
	default:
		return "", &PortalError{Code: code}
	}

	results, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", fmt.Errorf("malformed portal results: %T", body[1])
	}
	uriVariant, ok := results["uri"]
	if !ok {
		return "", errors.New("portal response missing uri")
	}
	uri, ok := uriVariant.Value().(string)
	if !ok || uri == "" {
		return "", errors.New("portal response uri is not a string")
	}
	return uri, nil
}
