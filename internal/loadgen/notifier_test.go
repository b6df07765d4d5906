package loadgen

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dhttp "github.com/wesleyorama2/comparedemo/internal/http"
	"github.com/wesleyorama2/comparedemo/internal/logbuf"
)

func TestListenerNotifier_Request(t *testing.T) {
	var gotMethod, gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotQuery = r.Method, r.URL.Path, r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	log := logbuf.New(5)
	n := NewListenerNotifier(srv.URL+"/notify", nil, log, nil)

	require.NoError(t, n.Send(context.Background(), ActionStart, "high"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/notify", gotPath)
	assert.Equal(t, "action=start&level=high", gotQuery)

	require.NoError(t, n.Send(context.Background(), ActionStop, ""))
	assert.Equal(t, "action=stop", gotQuery)
	assert.Zero(t, log.Len(), "success is silent")
}

func TestListenerNotifier_NotifyPreservesOrder(t *testing.T) {
	gate := make(chan struct{})
	var mu sync.Mutex
	var actions []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action := r.URL.Query().Get("action")
		if action == string(ActionStart) {
			<-gate
		}
		mu.Lock()
		actions = append(actions, action)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewListenerNotifier(srv.URL+"/notify", nil, logbuf.New(5), nil)
	n.Notify(ActionStart, "low")
	n.Notify(ActionStop, "")

	seen := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), actions...)
	}
	assert.Never(t, func() bool { return len(seen()) > 0 }, 50*time.Millisecond, 5*time.Millisecond,
		"stop must not overtake a pending start")

	close(gate)
	n.Wait()
	assert.Equal(t, []string{"start", "stop"}, seen())
}

func TestListenerNotifier_NonSuccessIsWarning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	log := logbuf.New(5)
	err := NewListenerNotifier(srv.URL+"/notify", nil, log, nil).Send(context.Background(), ActionStart, "low")

	var httpErr *dhttp.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)

	entry := log.Entries()[0]
	assert.Equal(t, logbuf.SeverityWarning, entry.Severity)
	assert.Equal(t, "Warn: Could not notify scaling script (status 503). Is it running & accessible?", entry.Message)
}

func TestListenerNotifier_UnreachableIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL + "/notify"
	srv.Close()

	log := logbuf.New(5)
	n := NewListenerNotifier(url, nil, log, nil)
	n.Notify(ActionStop, "")
	n.Wait()

	entry := log.Entries()[0]
	assert.Equal(t, logbuf.SeverityError, entry.Severity)
	assert.True(t, strings.HasPrefix(entry.Message, "ERROR: Cannot reach local scaling script at "+url+". Is it running? Check console. (Error: "), entry.Message)
}

func TestListenerNotifier_FailureDoesNotAffectSession(t *testing.T) {
	h := newHarness(t, http.StatusCreated, `{}`)
	h.notifier = NewListenerNotifier("http://127.0.0.1:1/notify", nil, h.log, nil)
	h.gen.notifier = h.notifier

	require.NoError(t, h.gen.Start(Low))
	h.notifier.Wait()

	assert.True(t, h.gen.Active())
	assert.Len(t, h.messages(logbuf.SeverityError), 1)
}
