package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rskill/rskill/internal/scan"
	"github.com/rskill/rskill/internal/styles"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.phase == phaseScanning {
		return fmt.Sprintf("\n  %s Scanning %s ...\n", m.spin.View(),
			styles.Muted.Render(m.opts.Scan.Root))
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")

	if m.ctrl.Len() == 0 {
		sb.WriteString(styles.Muted.Render("\n  Nothing found. Press r to rescan or q to quit.\n"))
	} else {
		sb.WriteString(m.renderList())
	}

	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m *Model) renderHeader() string {
	title := "rskill — project cleaner"
	if m.opts.FolderMode {
		title = fmt.Sprintf("rskill — folders named %q", m.opts.Scan.TargetName)
	}
	header := "  " + styles.Title.Render(title)
	if m.ctrl.DryRun() {
		header += "  " + styles.StaleTag.Render("[dry run]")
	}
	if m.stale {
		header += "  " + styles.StaleTag.Render("files changed — press r to rescan")
	}
	return header + "\n"
}

func (m *Model) renderList() string {
	var sb strings.Builder

	if !m.opts.FolderMode {
		sb.WriteString(styles.Muted.Bold(true).Render(fmt.Sprintf("  %-25s %-12s %-38s %-14s %s",
			"Project", "Size", "Path", "Last Modified", "Status")))
		sb.WriteString("\n")
	}
	sep := strings.Repeat("─", max(min(m.width-4, 96), 10))
	sb.WriteString(styles.Muted.Render("  " + sep))
	sb.WriteString("\n")

	rows := m.listHeight()
	for i := m.scroll; i < len(m.visible) && i < m.scroll+rows; i++ {
		idx := m.visible[i]
		line := m.renderRow(idx)
		if i == m.cursor {
			line = styles.Selected.Width(max(m.width, lipgloss.Width(line))).Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m *Model) renderRow(idx int) string {
	if m.opts.FolderMode {
		f := m.folders[idx]
		return fmt.Sprintf("  %-12s %s %s",
			styles.FormatSize(f.Size, m.useGB),
			styles.TruncatePath(styles.RelativePath(m.opts.Scan.Root, f.Path), max(m.width-24, 20)),
			m.statusTag(f.Status, true),
		)
	}

	p := m.projects[idx]
	age := "Unknown"
	if days, ok := p.DaysSinceModified(); ok {
		switch {
		case days <= 0:
			age = "Today"
		case days == 1:
			age = "1 day ago"
		default:
			age = fmt.Sprintf("%d days ago", days)
		}
	}

	return fmt.Sprintf("  %-25s %-12s %-38s %-14s %s",
		styles.Truncate(p.Name, 25),
		styles.FormatSize(p.TotalCleanableSize(), m.useGB),
		styles.TruncatePath(styles.RelativePath(m.opts.Scan.Root, p.Path), 38),
		age,
		m.projectStatusTag(p),
	)
}

func (m *Model) projectStatusTag(p *scan.Project) string {
	switch p.Status {
	case scan.StatusCleaned:
		return styles.Muted.Render("cleaned")
	case scan.StatusError:
		return styles.ErrorTag.Render("error")
	}
	if p.TargetDir == "" {
		return styles.Muted.Render("no target")
	}
	if p.IsLikelyActive() {
		return styles.ActiveTag.Render("active")
	}
	return styles.StaleTag.Render("stale")
}

func (m *Model) statusTag(s scan.Status, hasTarget bool) string {
	switch s {
	case scan.StatusCleaned:
		return styles.Muted.Render("cleaned")
	case scan.StatusError:
		return styles.ErrorTag.Render("error")
	default:
		if !hasTarget {
			return styles.Muted.Render("gone")
		}
		return ""
	}
}

func (m *Model) renderFooter() string {
	var sb strings.Builder

	sb.WriteString(styles.Muted.Render("  " + strings.Repeat("─", max(min(m.width-4, 96), 10))))
	sb.WriteString("\n")

	var total int64
	for _, t := range m.ctrl.Targets() {
		total += t.CleanableSize()
	}
	status := fmt.Sprintf("  %d item(s) | %s cleanable | %d deleted (%s freed)",
		m.ctrl.Len(),
		styles.FormatSize(total, m.useGB),
		m.ctrl.DeletedCount(),
		styles.FormatSize(m.ctrl.TotalFreed(), m.useGB),
	)
	if g := m.globalCache; g != nil {
		status += fmt.Sprintf(" | shared caches %s", styles.FormatSize(g.TotalSize(), m.useGB))
	}
	sb.WriteString(styles.Muted.Render(status))
	sb.WriteString("\n")

	switch {
	case m.phase == phaseConfirmDeleteAll:
		sb.WriteString("  " + styles.StaleTag.Render("Delete ALL listed build directories? y to confirm, any other key cancels"))
	case m.filtering:
		sb.WriteString("  " + m.filterInput.View())
	case m.toast != "":
		if m.toastErr {
			sb.WriteString("  " + styles.ErrorTag.Render(m.toast))
		} else {
			sb.WriteString("  " + styles.ActiveTag.Render(m.toast))
		}
	default:
		sb.WriteString(styles.Muted.Render("  ↑↓/jk move | space/D delete | a delete all | o open | y copy path | / filter | g units | r rescan | q quit"))
	}
	sb.WriteString("\n")

	return sb.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
