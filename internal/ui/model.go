// Package ui is the interactive terminal front end over the scan and
// cleanup engine. The model owns the result set exclusively: scans run in
// the background and hand their results back as messages, deletions run
// to completion inside Update, so no state is ever shared across
// goroutines.
package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rskill/rskill/internal/cleaner"
	"github.com/rskill/rskill/internal/scan"
	"github.com/rskill/rskill/internal/styles"
)

// phase is the model's coarse display state.
type phase int

const (
	phaseScanning phase = iota
	phaseBrowsing
	phaseConfirmDeleteAll
)

// Options configures the interactive session.
type Options struct {
	Scan scan.Options

	// FolderMode switches to the name-only strategy: bare directory-name
	// matches instead of manifest-discovered projects.
	FolderMode    bool
	FolderIgnored []string

	DryRun bool
	GB     bool

	Logger *slog.Logger
}

// Messages.
type (
	scanDoneMsg struct {
		result  *scan.Result
		folders []*scan.Folder
		err     error
	}
	watchStartedMsg struct{ watcher *Watcher }
	watchEventMsg   struct{}
	clearToastMsg   struct{}
)

// Model is the bubbletea model for the interactive cleaner.
type Model struct {
	opts Options
	log  *slog.Logger

	phase phase
	spin  spinner.Model

	ctrl        *cleaner.Controller
	projects    []*scan.Project
	folders     []*scan.Folder
	globalCache *scan.GlobalCache

	// filter state
	filterInput textinput.Model
	filtering   bool
	filterQuery string

	// visible maps display rows to controller indices after filtering.
	visible []int
	cursor  int
	scroll  int

	width  int
	height int

	toast    string
	toastErr bool

	watcher *Watcher
	stale   bool

	useGB    bool
	scanErr  error
	quitting bool
}

// New creates the interactive model. A nil logger is replaced with the
// default.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/"
	ti.CharLimit = 64

	return &Model{
		opts:        opts,
		log:         opts.Logger,
		phase:       phaseScanning,
		spin:        sp,
		filterInput: ti,
		ctrl:        cleaner.New(nil, opts.DryRun, opts.Logger),
		useGB:       opts.GB,
	}
}

// Init kicks off the first scan.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.startScan(), m.startWatcher())
}

// startScan runs the configured scan strategy off the update loop and
// returns its result as a message.
func (m *Model) startScan() tea.Cmd {
	opts := m.opts
	return func() tea.Msg {
		if opts.FolderMode {
			scanner := scan.NewFolderScanner(opts.Scan.Root, opts.Scan.TargetName, opts.FolderIgnored, opts.Logger)
			folders, err := scanner.FindFolders()
			return scanDoneMsg{folders: folders, err: err}
		}
		scanner := scan.NewProjectScanner(opts.Scan, opts.Logger)
		result, err := scanner.Scan()
		return scanDoneMsg{result: result, err: err}
	}
}

// startWatcher begins watching the scan root for post-scan changes.
func (m *Model) startWatcher() tea.Cmd {
	root := m.opts.Scan.Root
	logger := m.log
	return func() tea.Msg {
		watcher, err := NewWatcher(root)
		if err != nil {
			logger.Debug("root watcher unavailable", "error", err)
			return nil
		}
		return watchStartedMsg{watcher: watcher}
	}
}

// listenForWatchEvents waits for the next change notification.
func (m *Model) listenForWatchEvents() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return watchEventMsg{}
	}
}

// Stop releases resources when the program exits.
func (m *Model) Stop() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

// adoptResults installs a fresh result set into the controller.
func (m *Model) adoptResults(msg scanDoneMsg) {
	m.projects = nil
	m.folders = nil
	m.globalCache = nil

	var targets []cleaner.Target
	if m.opts.FolderMode {
		m.folders = msg.folders
		for _, f := range m.folders {
			targets = append(targets, f)
		}
	} else {
		m.projects = msg.result.Projects
		m.globalCache = msg.result.GlobalCache
		for _, p := range m.projects {
			targets = append(targets, p)
		}
	}

	m.ctrl.Replace(targets)
	m.cursor = 0
	m.scroll = 0
	m.stale = false
	m.applyFilter()
}

// applyFilter recomputes the visible rows from the committed query.
func (m *Model) applyFilter() {
	targets := m.ctrl.Targets()
	m.visible = m.visible[:0]
	query := strings.ToLower(m.filterQuery)
	for i, t := range targets {
		if query == "" ||
			strings.Contains(strings.ToLower(t.DisplayName()), query) ||
			strings.Contains(strings.ToLower(t.Location()), query) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor > len(m.visible)-1 {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectedTarget resolves the cursor through the filter mapping.
func (m *Model) selectedTarget() cleaner.Target {
	if len(m.visible) == 0 {
		return nil
	}
	m.ctrl.Select(m.visible[m.cursor])
	return m.ctrl.Selected()
}

func (m *Model) ensureCursorVisible() {
	rows := m.listHeight()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+rows {
		m.scroll = m.cursor - rows + 1
	}
}

// listHeight is the number of rows the list area can show.
func (m *Model) listHeight() int {
	rows := m.height - 8 // header, column row, separator, footer block
	if rows < 1 {
		rows = 1
	}
	return rows
}
