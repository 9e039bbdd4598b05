package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rskill/rskill/internal/styles"
)

const toastDuration = 3 * time.Second

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case scanDoneMsg:
		if msg.err != nil {
			m.scanErr = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.adoptResults(msg)
		m.phase = phaseBrowsing
		return m, nil

	case watchStartedMsg:
		m.watcher = msg.watcher
		return m, m.listenForWatchEvents()

	case watchEventMsg:
		if m.phase == phaseBrowsing {
			m.stale = true
		}
		return m, m.listenForWatchEvents()

	case clearToastMsg:
		m.toast = ""
		m.toastErr = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.phase == phaseScanning {
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.phase == phaseConfirmDeleteAll {
		return m.handleConfirmKey(msg)
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}

	case "g":
		m.useGB = !m.useGB

	case "/":
		m.filtering = true
		m.filterInput.SetValue(m.filterQuery)
		return m, m.filterInput.Focus()

	case " ", "delete", "D":
		return m.deleteSelected()

	case "a":
		if m.ctrl.Len() > 0 {
			m.phase = phaseConfirmDeleteAll
		}

	case "o":
		if err := m.ctrlOpenSelected(); err != nil {
			return m, m.showToast("Open failed: "+err.Error(), true)
		}

	case "y":
		if t := m.selectedTarget(); t != nil {
			if err := clipboard.WriteAll(t.Location()); err != nil {
				return m, m.showToast("Copy failed: "+err.Error(), true)
			}
			return m, m.showToast("Path copied", false)
		}

	case "r":
		m.phase = phaseScanning
		return m, tea.Batch(m.spin.Tick, m.startScan())
	}

	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.phase = phaseBrowsing
		return m.deleteAll()
	default:
		m.phase = phaseBrowsing
		return m, m.showToast("Delete all cancelled", false)
	}
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filterQuery = m.filterInput.Value()
		m.filterInput.Blur()
		m.cursor = 0
		m.scroll = 0
		m.applyFilter()
		return m, nil
	case "esc":
		m.filtering = false
		m.filterQuery = ""
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filterQuery = m.filterInput.Value()
	m.applyFilter()
	return m, cmd
}

// deleteSelected removes the selected record's cleanable directory. The
// removal runs to completion here: the result set has a single owner and
// nothing else mutates it mid-operation.
func (m *Model) deleteSelected() (tea.Model, tea.Cmd) {
	target := m.selectedTarget()
	if target == nil {
		return m, nil
	}
	if target.CleanablePath() == "" {
		return m, m.showToast("Nothing to clean for "+target.DisplayName(), false)
	}

	freed, err := m.ctrl.DeleteSelected()
	if err != nil {
		return m, m.showToast("Delete failed: "+err.Error(), true)
	}
	if m.ctrl.DryRun() {
		return m, m.showToast("Dry run: would delete "+target.CleanablePath(), false)
	}
	return m, m.showToast("Freed "+styles.HumanSize(freed), false)
}

// deleteAll attempts every record and reports the collected outcome.
func (m *Model) deleteAll() (tea.Model, tea.Cmd) {
	batch := m.ctrl.DeleteAll()
	if m.ctrl.DryRun() {
		attempted := len(batch.Outcomes) - batch.Failed
		return m, m.showToast(fmt.Sprintf("Dry run: %d item(s) would be deleted", attempted), false)
	}
	msg := fmt.Sprintf("Deleted %d item(s), freed %s", batch.Deleted, styles.HumanSize(batch.Freed))
	if batch.Failed > 0 {
		msg += fmt.Sprintf(", %d failed", batch.Failed)
		return m, m.showToast(msg, true)
	}
	return m, m.showToast(msg, false)
}

func (m *Model) ctrlOpenSelected() error {
	if m.selectedTarget() == nil {
		return nil
	}
	return m.ctrl.OpenSelected()
}

func (m *Model) showToast(text string, isErr bool) tea.Cmd {
	m.toast = text
	m.toastErr = isErr
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}
