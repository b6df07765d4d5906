package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wesleyorama2/comparedemo/internal/backend"
	"github.com/wesleyorama2/comparedemo/internal/config"
	dhttp "github.com/wesleyorama2/comparedemo/internal/http"
	"github.com/wesleyorama2/comparedemo/internal/loadgen"
)

type fakeBackend struct {
	name string

	mu     sync.Mutex
	orders [][2]string
}

func (f *fakeBackend) CreateUser(ctx context.Context, username string) (*backend.UserResult, error) {
	if username == "" {
		return nil, &dhttp.InputError{Message: "Username cannot be empty"}
	}
	return &backend.UserResult{
		Body:   map[string]interface{}{"user_id": "u-" + username, "via": f.name},
		UserID: "u-" + username,
	}, nil
}

func (f *fakeBackend) GetProduct(ctx context.Context, productID string) (interface{}, error) {
	if productID == "missing" {
		return nil, &dhttp.HTTPError{Status: 404, Data: map[string]interface{}{"error": "Product not found"}}
	}
	return map[string]interface{}{"product_id": productID, "via": f.name}, nil
}

func (f *fakeBackend) CreateOrder(ctx context.Context, userID, productID string) (interface{}, error) {
	if userID == "" || productID == "" {
		return nil, &dhttp.InputError{Message: "User ID and Product ID cannot be empty"}
	}
	f.mu.Lock()
	f.orders = append(f.orders, [2]string{userID, productID})
	f.mu.Unlock()
	return map[string]interface{}{"order_id": "o-1"}, nil
}

type fakeOrders struct{}

func (fakeOrders) SubmitOrder(ctx context.Context, payload backend.OrderPayload) (interface{}, error) {
	return nil, errors.New("unused")
}

func newTestModel(t *testing.T) (Model, *loadgen.Generator) {
	t.Helper()
	gen := loadgen.New(loadgen.Options{
		Orders: fakeOrders{},
		Clock:  loadgen.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	t.Cleanup(func() { gen.Stop() })

	m := New(Options{
		Generator: gen,
		Services: map[string]Backend{
			config.ArchMicroservices: &fakeBackend{name: "ms"},
			config.ArchMonolith:      &fakeBackend{name: "mono"},
		},
	})
	return m, gen
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends msg and drops any resulting command.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// act sends msg and feeds the API call result back the way the bubbletea
// runtime would.
func act(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	model := updated.(Model)
	if model.pending == "" {
		t.Fatalf("%v did not start an API call", msg)
	}
	if cmd == nil {
		t.Fatal("expected a command for the API call")
	}
	res, ok := cmd().(resultMsg)
	if !ok {
		t.Fatal("expected a resultMsg")
	}
	updated, _ = model.Update(res)
	return updated.(Model)
}

func typeInto(t *testing.T, m Model, field int, text string) Model {
	t.Helper()
	for m.focus != field {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	m = press(t, m, runes(text))
	return press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
}

func TestNew(t *testing.T) {
	m, _ := newTestModel(t)

	if m.arch != config.ArchMicroservices {
		t.Errorf("expected default arch %q, got %q", config.ArchMicroservices, m.arch)
	}
	if m.focus != focusNone {
		t.Errorf("expected no focused field, got %d", m.focus)
	}
	if m.session.Status != loadgen.StatusInactive {
		t.Errorf("expected inactive status, got %q", m.session.Status)
	}
	if m.Init() == nil {
		t.Error("Init should return the refresh tick")
	}
}

func TestStartAndStopLoad(t *testing.T) {
	m, gen := newTestModel(t)

	m = press(t, m, runes("2"))
	if !gen.Active() || gen.Snapshot().Tier != "medium" {
		t.Fatalf("expected medium session, got %+v", gen.Snapshot())
	}
	if !strings.Contains(m.View(), "Generating Medium Load (2 req/s)...") {
		t.Error("view should show the generating status")
	}

	m = press(t, m, runes("3"))
	if gen.Snapshot().Tier != "medium" {
		t.Error("second start must not replace the running session")
	}
	if !strings.Contains(m.entries[0].Message, "Load is already running") {
		t.Errorf("expected already-running warning, got %q", m.entries[0].Message)
	}

	m = press(t, m, runes("s"))
	if gen.Active() {
		t.Error("expected load to be stopped")
	}
	if m.session.Status != loadgen.StatusInactive {
		t.Errorf("expected inactive status, got %q", m.session.Status)
	}
}

func TestCreateUserFillsOrderUser(t *testing.T) {
	m, _ := newTestModel(t)

	m = typeInto(t, m, inputUsername, "alice")
	m = act(t, m, runes("u"))

	if got := m.inputs[inputOrderUserID].Value(); got != "u-alice" {
		t.Errorf("expected order user id to be filled, got %q", got)
	}
	if !strings.Contains(m.View(), "(Created ID: u-alice)") {
		t.Error("view should show the created id")
	}
	if m.failed {
		t.Error("create user should succeed")
	}
}

func TestInputErrorShown(t *testing.T) {
	m, _ := newTestModel(t)

	m = act(t, m, runes("u"))
	if !m.failed {
		t.Fatal("expected an error response")
	}
	if !strings.HasPrefix(m.response, "Error Input Error:") || !strings.Contains(m.response, "Username cannot be empty") {
		t.Errorf("unexpected response %q", m.response)
	}
}

func TestHTTPErrorShown(t *testing.T) {
	m, _ := newTestModel(t)

	m = typeInto(t, m, inputProductID, "missing")
	m = act(t, m, runes("p"))
	if !strings.HasPrefix(m.response, "Error 404:") {
		t.Errorf("unexpected response %q", m.response)
	}
}

func TestEnterRunsFieldAction(t *testing.T) {
	m, _ := newTestModel(t)

	for m.focus != inputProductID {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	m = press(t, m, runes("p-1"))
	m = act(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !strings.Contains(m.response, `"product_id": "p-1"`) {
		t.Errorf("unexpected response %q", m.response)
	}
}

func TestShortcutsIgnoredWhileEditing(t *testing.T) {
	m, gen := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("1"))
	if gen.Active() {
		t.Error("typing in a field must not start load")
	}
	if got := m.inputs[inputUsername].Value(); got != "1" {
		t.Errorf("expected the key to be typed, got %q", got)
	}
}

func TestFocusCycle(t *testing.T) {
	m, _ := newTestModel(t)

	want := []int{inputUsername, inputProductID, inputOrderUserID, inputOrderProductID, focusNone}
	for _, w := range want {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.focus != w {
			t.Fatalf("expected focus %d, got %d", w, m.focus)
		}
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != inputOrderProductID {
		t.Errorf("shift+tab should wrap to the last field, got %d", m.focus)
	}
}

func TestToggleArch(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("a"))
	if m.arch != config.ArchMonolith {
		t.Fatalf("expected monolith, got %q", m.arch)
	}
	m = typeInto(t, m, inputProductID, "p-2")
	m = act(t, m, runes("p"))
	if !strings.Contains(m.response, `"via": "mono"`) {
		t.Errorf("call should go to the monolith backend, got %q", m.response)
	}

	m = press(t, m, runes("a"))
	if m.arch != config.ArchMicroservices {
		t.Errorf("expected microservices, got %q", m.arch)
	}
}

func TestLoadUsesOrderInputs(t *testing.T) {
	m, gen := newTestModel(t)

	m = typeInto(t, m, inputOrderUserID, "u-9")
	m = press(t, m, runes("1"))

	if !gen.Active() {
		t.Fatal("expected load to start")
	}
	if !strings.Contains(m.View(), "[s] Stop Load") {
		t.Error("view should list the stop button")
	}
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m, _ := newTestModel(t)
		updated, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", msg.String())
		}
		if updated.(Model).View() != "" {
			t.Errorf("%s: view should be empty after quit", msg.String())
		}
	}
}

func TestTickRefreshes(t *testing.T) {
	m, gen := newTestModel(t)

	gen.Log().Infof("external entry")
	updated, cmd := m.Update(tickMsg(time.Now()))
	model := updated.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if len(model.entries) != 1 || model.entries[0].Message != "external entry" {
		t.Errorf("expected refreshed log, got %+v", model.entries)
	}
}

func TestWindowSize(t *testing.T) {
	m, _ := newTestModel(t)

	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	model := updated.(Model)
	if cmd != nil {
		t.Error("window size should not produce a command")
	}
	if model.width != 120 || model.height != 50 {
		t.Errorf("expected 120x50, got %dx%d", model.width, model.height)
	}
}
