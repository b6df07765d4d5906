// Package tui provides a bubbletea console for manual calls and load
// generation.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wesleyorama2/comparedemo/internal/backend"
	"github.com/wesleyorama2/comparedemo/internal/config"
	"github.com/wesleyorama2/comparedemo/internal/loadgen"
	"github.com/wesleyorama2/comparedemo/internal/logbuf"
	"github.com/wesleyorama2/comparedemo/internal/output"
)

// refreshInterval is how often the load panel is redrawn.
const refreshInterval = 250 * time.Millisecond

// Input field indexes. focusNone means no field has focus and single-key
// shortcuts are active.
const (
	focusNone = iota - 1
	inputUsername
	inputProductID
	inputOrderUserID
	inputOrderProductID
	inputCount
)

const (
	opCreateUser  = "create user"
	opGetProduct  = "get product"
	opCreateOrder = "create order"
)

// Backend is the set of manual calls the console can make.
type Backend interface {
	CreateUser(ctx context.Context, username string) (*backend.UserResult, error)
	GetProduct(ctx context.Context, productID string) (interface{}, error)
	CreateOrder(ctx context.Context, userID, productID string) (interface{}, error)
}

// Options configures the console Model.
type Options struct {
	Generator *loadgen.Generator
	// Services maps an architecture name to its backend.
	Services map[string]Backend
	// Arch is the architecture selected at startup.
	Arch string
	// Form pre-fills the order inputs.
	Form    loadgen.OrderForm
	Context context.Context
}

// Model is the bubbletea model for the console.
type Model struct {
	ctx      context.Context
	gen      *loadgen.Generator
	services map[string]Backend
	arch     string
	keys     KeyMap
	format   *output.Formatter

	inputs [inputCount]textinput.Model
	focus  int

	// Manual call state
	pending   string
	response  string
	failed    bool
	createdID string

	// Load state, refreshed on every tick
	session loadgen.Session
	entries []logbuf.Entry

	width    int
	height   int
	quitting bool
}

// New creates a console Model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	arch := opts.Arch
	if arch == "" {
		arch = config.ArchMicroservices
	}

	m := Model{
		ctx:      ctx,
		gen:      opts.Generator,
		services: opts.Services,
		arch:     arch,
		keys:     DefaultKeyMap(),
		format:   output.NewFormatter(output.FormatJSON, true),
		focus:    focusNone,
		width:    100,
		height:   40,
	}

	placeholders := [inputCount]string{"username", "product id", "order user id", "order product id"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 64
		ti.Width = 24
		m.inputs[i] = ti
	}
	m.inputs[inputOrderUserID].SetValue(opts.Form.UserID)
	m.inputs[inputOrderProductID].SetValue(opts.Form.ProductID)

	m.refresh()
	return m
}

// Init starts the refresh tick.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tickCmd()

	case resultMsg:
		return m.handleResult(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Force) {
		return m.quit()
	}

	if key.Matches(msg, m.keys.Focus) {
		if msg.String() == "shift+tab" {
			m.setFocus(m.focus - 1)
		} else {
			m.setFocus(m.focus + 1)
		}
		return m, nil
	}

	if m.focus != focusNone {
		switch {
		case key.Matches(msg, m.keys.Blur):
			m.setFocus(focusNone)
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submitField()
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Low):
		return m.startLoad(loadgen.Low), nil
	case key.Matches(msg, m.keys.Medium):
		return m.startLoad(loadgen.Medium), nil
	case key.Matches(msg, m.keys.High):
		return m.startLoad(loadgen.High), nil
	case key.Matches(msg, m.keys.Stop):
		m.gen.Stop()
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.CreateUser):
		return m.call(opCreateUser)
	case key.Matches(msg, m.keys.GetProduct):
		return m.call(opGetProduct)
	case key.Matches(msg, m.keys.CreateOrder):
		return m.call(opCreateOrder)
	case key.Matches(msg, m.keys.ToggleArch):
		m.toggleArch()
		return m, nil
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// setFocus moves focus to i, wrapping through focusNone.
func (m *Model) setFocus(i int) {
	span := inputCount + 1
	i = ((i-focusNone)%span+span)%span + focusNone

	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i
	if i != focusNone {
		m.inputs[i].Focus()
	}
}

func (m Model) submitField() (tea.Model, tea.Cmd) {
	switch m.focus {
	case inputUsername:
		return m.call(opCreateUser)
	case inputProductID:
		return m.call(opGetProduct)
	default:
		return m.call(opCreateOrder)
	}
}

func (m Model) startLoad(tier loadgen.Tier) Model {
	m.gen.SetOrderForm(loadgen.OrderForm{
		UserID:    m.inputs[inputOrderUserID].Value(),
		ProductID: m.inputs[inputOrderProductID].Value(),
	})
	// A rejected start is already recorded in the load log.
	_ = m.gen.Start(tier)
	m.refresh()
	return m
}

func (m *Model) toggleArch() {
	next := config.ArchMonolith
	if m.arch == config.ArchMonolith {
		next = config.ArchMicroservices
	}
	if _, ok := m.services[next]; !ok {
		return
	}
	m.arch = next
	m.response = ""
	m.failed = false
	m.createdID = ""
}

// call runs op against the selected architecture in the background.
func (m Model) call(op string) (tea.Model, tea.Cmd) {
	svc, ok := m.services[m.arch]
	if !ok {
		m.response = "No backend configured for " + m.arch
		m.failed = true
		return m, nil
	}

	m.pending = op
	m.response = "Calling API..."
	m.failed = false
	if op == opCreateUser {
		m.createdID = ""
	}

	ctx := m.ctx
	username := m.inputs[inputUsername].Value()
	productID := m.inputs[inputProductID].Value()
	orderUser := m.inputs[inputOrderUserID].Value()
	orderProduct := m.inputs[inputOrderProductID].Value()

	return m, func() tea.Msg {
		switch op {
		case opCreateUser:
			res, err := svc.CreateUser(ctx, username)
			if err != nil {
				return resultMsg{op: op, err: err}
			}
			return resultMsg{op: op, data: res.Body, userID: res.UserID}
		case opGetProduct:
			data, err := svc.GetProduct(ctx, productID)
			return resultMsg{op: op, data: data, err: err}
		default:
			data, err := svc.CreateOrder(ctx, orderUser, orderProduct)
			return resultMsg{op: op, data: data, err: err}
		}
	}
}

func (m Model) handleResult(msg resultMsg) Model {
	m.pending = ""
	if msg.err != nil {
		m.response = m.format.FormatError(msg.err)
		m.failed = true
		return m
	}

	m.response = m.format.FormatResult(msg.data)
	m.failed = false
	if msg.op == opCreateUser && msg.userID != "" {
		m.createdID = msg.userID
		m.inputs[inputOrderUserID].SetValue(msg.userID)
	}
	return m
}

func (m *Model) refresh() {
	if m.gen == nil {
		return
	}
	m.session = m.gen.Snapshot()
	m.entries = m.gen.Log().Entries()
}
