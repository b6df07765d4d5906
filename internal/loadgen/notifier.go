package loadgen

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	dhttp "github.com/wesleyorama2/comparedemo/internal/http"
	"github.com/wesleyorama2/comparedemo/internal/logbuf"
)

// Action is a load state transition reported to the scaling listener.
type Action string

const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"
)

// Notifier reports load transitions out of band. Implementations must not
// block the caller.
type Notifier interface {
	Notify(action Action, level string)
}

// ListenerNotifier posts transitions to the external scaling listener as
// POST <url>?action=<action>[&level=<level>]. The response body is ignored.
//
// A non-2xx status is logged as a warning; an unreachable listener as an
// error. Neither affects the caller. Notifications reach the listener in the
// order Notify was called.
type ListenerNotifier struct {
	url    string
	client *dhttp.Client
	log    *logbuf.Buffer
	logger *slog.Logger
	wg     sync.WaitGroup

	mu   sync.Mutex
	last chan struct{}
}

// NewListenerNotifier creates a notifier for the listener at url, reporting
// problems to log. client may be nil.
func NewListenerNotifier(url string, client *dhttp.Client, log *logbuf.Buffer, logger *slog.Logger) *ListenerNotifier {
	if client == nil {
		client = dhttp.NewClient()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ListenerNotifier{
		url:    url,
		client: client,
		log:    log,
		logger: logger,
	}
}

// URL returns the listener address.
func (n *ListenerNotifier) URL() string {
	return n.url
}

// Notify sends the signal in the background.
func (n *ListenerNotifier) Notify(action Action, level string) {
	n.mu.Lock()
	prev := n.last
	done := make(chan struct{})
	n.last = done
	n.wg.Add(1)
	n.mu.Unlock()

	go func() {
		defer n.wg.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}
		_ = n.Send(context.Background(), action, level)
	}()
}

// Wait blocks until every background notification has finished.
func (n *ListenerNotifier) Wait() {
	n.wg.Wait()
}

// Send posts the signal synchronously, logs any problem and returns it.
func (n *ListenerNotifier) Send(ctx context.Context, action Action, level string) error {
	req := dhttp.NewRequest(http.MethodPost, n.url).WithQueryParam("action", string(action))
	if level != "" {
		req.WithQueryParam("level", level)
	}

	n.logger.Debug("notifying scaling listener", "url", n.url, "action", action, "level", level)

	resp, err := n.client.Do(ctx, req)
	if err != nil {
		cause := err
		var transportErr *dhttp.TransportError
		if errors.As(err, &transportErr) {
			cause = transportErr.Err
		}
		n.logger.Error("scaling listener unreachable", "url", n.url, "error", cause)
		if n.log != nil {
			n.log.Errorf("ERROR: Cannot reach local scaling script at %s. Is it running? Check console. (Error: %s)", n.url, cause.Error())
		}
		return err
	}

	if !resp.IsSuccess() {
		n.logger.Warn("scaling listener rejected notification", "status", resp.StatusCode, "elapsed", resp.ResponseTime)
		if n.log != nil {
			n.log.Warnf("Warn: Could not notify scaling script (status %d). Is it running & accessible?", resp.StatusCode)
		}
		return &dhttp.HTTPError{Status: resp.StatusCode, Data: resp.Decoded()}
	}

	n.logger.Debug("scaling listener notified", "action", action, "elapsed", resp.ResponseTime)
	return nil
}
