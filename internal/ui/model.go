package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/tmux-emoji-popup/internal/backend"
	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/data/dispatcher"
	"github.com/atomicstack/tmux-emoji-popup/internal/insert"
	"github.com/atomicstack/tmux-emoji-popup/internal/prefs"
	"github.com/atomicstack/tmux-emoji-popup/internal/render"
	"github.com/atomicstack/tmux-emoji-popup/internal/state"
	"github.com/atomicstack/tmux-emoji-popup/internal/syncstore"
	"github.com/atomicstack/tmux-emoji-popup/internal/theme"
	"github.com/atomicstack/tmux-emoji-popup/internal/ui/command"
	uistate "github.com/atomicstack/tmux-emoji-popup/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

// Mode selects which surface receives key input.
type Mode int

const (
	ModeGrid Mode = iota
	ModeForm
	ModeConfirm
	ModeSkinTone
)

const (
	itemHeight       = 1
	scrollOverscan   = 2
	scrollDebounce   = 16 * time.Millisecond
	wheelStep        = 1
	defaultGridRows  = 12
	infoTTL          = 5 * time.Second
	copyToastTTL     = 1500 * time.Millisecond
	headerRows       = 3 // tabs, categories, search prompt
	statusRows       = 2 // tooltip, status
	gridRightPadding = 2 // scrollbar and gap
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures NewModel. Nil collaborators are replaced with in-memory
// defaults so the model can run without a store, a tmux server or a watcher.
type Options struct {
	Context    context.Context
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	KeepOpen   bool
	Tab        string
	Query      string
	Socket     string

	Watcher   *backend.Watcher
	Prefs     *prefs.Service
	Catalog   state.CatalogStore
	Loader    *catalog.Loader
	Deliverer Deliverer

	// StaticCursor stops the search caret from blinking.
	StaticCursor bool
}

// Model implements the Bubble Tea model for the emoji picker.
type Model struct {
	level        *level
	loading      bool
	pendingLabel string
	errMsg       string
	infoMsg      string
	infoExpire   time.Time
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	showFooter   bool
	showFullHelp bool
	verbose      bool
	keepOpen     bool
	staticCursor bool

	backend        *backend.Watcher
	backendState   map[backend.Kind]error
	backendLastErr string
	targetLost     bool

	form    *customForm
	confirm *deleteConfirm
	tones   *toneSelector
	mode    Mode

	filterCursor      cursor.Model
	filterCursorDirty bool

	keys keyMap
	help help.Model

	renderToken uint64
	loadingData bool
	// a failed kaomoji fetch is retried when the kaomoji tab is shown again
	kaomojiLoaded  bool
	kaomojiPending bool
	scrollToken    uint64
	pendingScroll  int
	grid           render.Grid
	cellWidth      int

	handlers map[reflect.Type]msgHandler

	ctx        context.Context
	registry   *catalog.Registry
	bus        *command.Bus
	prefs      *prefs.Service
	catalog    state.CatalogStore
	loader     *catalog.Loader
	deliverer  Deliverer
	dispatcher *dispatcher.Dispatcher
	socket     string
	amb        render.Ambient
}

// NewModel initialises the picker with the given collaborators and
// configuration.
func NewModel(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	svc := opts.Prefs
	if svc == nil {
		svc = prefs.New(syncstore.NewMemoryStore(nil), nil)
	}
	store := opts.Catalog
	if store == nil {
		store = state.NewCatalogStore()
	}
	loader := opts.Loader
	if loader == nil {
		loader = catalog.NewLoader(nil, catalog.EmbedSource(), store)
	}
	var deliverer Deliverer = insert.New("", "", false)
	if opts.Deliverer != nil {
		deliverer = opts.Deliverer
	}
	lvl := uistate.NewLevel(string(render.ParseTab(opts.Tab)), catalog.All)
	if opts.Query != "" {
		lvl.SetFilter(opts.Query, len([]rune(opts.Query)))
	}
	m := &Model{
		level:        lvl,
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		keepOpen:     opts.KeepOpen,
		staticCursor: opts.StaticCursor,
		backend:      opts.Watcher,
		backendState: map[backend.Kind]error{},
		mode:         ModeGrid,
		keys:         defaultKeyMap(),
		help:         help.New(),
		ctx:          ctx,
		registry:     loader.Registry(),
		bus:          command.New(ctx),
		prefs:        svc,
		catalog:      store,
		loader:       loader,
		deliverer:    deliverer,
		dispatcher:   dispatcher.New(svc),
		socket:       opts.Socket,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.help.Width = m.width
	m.applyTheme()
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	if opts.StaticCursor {
		c.SetMode(cursor.CursorStatic)
	}
	m.filterCursor = c
	m.registerHandlers()
	m.rebuild()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.startupCmd(), m.refresh()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	handled, cmd := m.handleActiveModal(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled {
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveModal(msg tea.Msg) (bool, tea.Cmd) {
	switch m.mode {
	case ModeForm:
		return m.handleCustomForm(msg)
	case ModeConfirm:
		return m.handleDeleteConfirm(msg)
	case ModeSkinTone:
		return m.handleToneSelector(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):          m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):        m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):   m.handleWindowSizeMsg,
		reflect.TypeOf(renderReadyMsg{}):      m.handleRenderReadyMsg,
		reflect.TypeOf(scrollTickMsg{}):       m.handleScrollTickMsg,
		reflect.TypeOf(kaomojiLoadedMsg{}):    m.handleKaomojiLoadedMsg,
		reflect.TypeOf(categoriesLoadedMsg{}): m.handleCategoriesLoadedMsg,
		reflect.TypeOf(deliveredMsg{}):        m.handleDeliveredMsg,
		reflect.TypeOf(mutationMsg{}):         m.handleMutationMsg,
		reflect.TypeOf(backendEventMsg{}):     m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):      m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// language returns the active UI language code.
func (m *Model) language() string {
	return string(m.prefs.Preferences().Language())
}

func (m *Model) applyTheme() {
	styles = theme.For(string(m.prefs.Preferences().Theme()))
	m.help.Styles.ShortKey = styles.Footer.Copy().Bold(true)
	m.help.Styles.ShortDesc = styles.Footer.Copy()
	m.help.Styles.ShortSeparator = styles.Footer.Copy()
	m.help.Styles.FullKey = styles.Footer.Copy().Bold(true)
	m.help.Styles.FullDesc = styles.Footer.Copy()
	m.help.Styles.FullSeparator = styles.Footer.Copy()
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
}
