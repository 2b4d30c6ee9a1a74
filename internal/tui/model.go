package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"shapecanvas/internal/canvas"
	"shapecanvas/internal/config"
	"shapecanvas/internal/document"
)

type sidebarMode int

const (
	sidebarHidden sidebarMode = iota
	sidebarShapes
	sidebarFiles
)

type Model struct {
	width  int
	height int

	sidebar     sidebarMode
	helpVisible bool

	status string

	cfg config.Config
	log *zap.Logger

	board *board
	ctl   *canvas.Controller

	// sidebar: shapes of the drawing or files of the working directory
	cwd     string
	l       list.Model
	selPath string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// property table and numeric entry
	showProps bool
	tbl       table.Model
	editing   string
	ti        textinput.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	cursor     string
}

// New builds the host around a fresh controller configured from cfg.
func New(cfg config.Config, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	b := &board{grid: cfg.Grid.Size, snap: cfg.Grid.Snap}
	ctl := canvas.New()
	ctl.Logger = log.Named("canvas")
	ctl.Options.HandleRadius = cfg.Handles.Radius
	ctl.Options.TouchFactor = cfg.Handles.TouchFactor
	ctl.Options.RotateOffset = cfg.Handles.RotateOffset
	ctl.Options.StarHandleMin = cfg.Handles.StarHandleMin
	ctl.Shapes = b.all
	ctl.Snap = b.snapPoint
	ctl.OnUpdate = b.upsert
	ctl.OnRemove = b.remove
	ctl.OnCommit = b.record

	m := Model{
		helpVisible: true,
		status:      "shapecanvas ready",
		cfg:         cfg,
		log:         log,
		board:       b,
		ctl:         ctl,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (LINESTRING, POLYGON). Press Enter to add a polyline; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// property table
	m.tbl = table.New(
		table.WithColumns([]table.Column{
			{Title: "field", Width: 14},
			{Title: "value", Width: 10},
			{Title: "min", Width: 8},
			{Title: "max", Width: 8},
		}),
		table.WithFocused(true),
	)
	m.tbl.SetHeight(12)
	m.ti = textinput.New()
	m.ti.CharLimit = 24
	m.ti.Width = 12
	return m
}

// NewWithPath preloads a drawing at launch.
func NewWithPath(cfg config.Config, log *zap.Logger, path string) Model {
	m := New(cfg, log)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// savePath is where ctrl+s writes the drawing.
func (m Model) savePath() string {
	if m.selPath != "" && document.Supported(m.selPath) && !isWKT(m.selPath) {
		return m.selPath
	}
	return "drawing.json"
}
