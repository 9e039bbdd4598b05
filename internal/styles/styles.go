package styles

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Color palette.
var (
	Primary     = lipgloss.Color("86")  // cyan
	Success     = lipgloss.Color("42")  // green
	Warning     = lipgloss.Color("214") // amber
	Error       = lipgloss.Color("196") // red
	TextPrimary = lipgloss.Color("252")
	TextMuted   = lipgloss.Color("241")
	BgSecondary = lipgloss.Color("236")
)

// Shared styles.
var (
	Title     = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted     = lipgloss.NewStyle().Foreground(TextMuted)
	SizeText  = lipgloss.NewStyle().Foreground(Primary)
	ActiveTag = lipgloss.NewStyle().Foreground(Success)
	StaleTag  = lipgloss.NewStyle().Foreground(Warning)
	ErrorTag  = lipgloss.NewStyle().Foreground(Error)
	Selected  = lipgloss.NewStyle().Background(BgSecondary).Foreground(TextPrimary).Bold(true)
)

// FormatSize renders a byte count with two decimals in MB, or GB when
// useGB is set. This fixed-unit form keeps table columns aligned; see
// HumanSize for the shortest readable form.
func FormatSize(bytes int64, useGB bool) string {
	if useGB {
		return fmt.Sprintf("%.2f GB", float64(bytes)/(1024*1024*1024))
	}
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

// HumanSize renders a byte count in the nearest binary unit ("1.5 MiB").
func HumanSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}

// TruncatePath shortens a path to maxWidth display cells, keeping the
// tail, which carries the distinguishing components.
func TruncatePath(path string, maxWidth int) string {
	if runewidth.StringWidth(path) <= maxWidth {
		return path
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(path, maxWidth, "")
	}
	tail := runewidth.TruncateLeft(path, runewidth.StringWidth(path)-(maxWidth-3), "")
	return "..." + tail
}

// RelativePath renders path relative to root when it lies inside it,
// falling back to the path as given otherwise.
func RelativePath(root, path string) string {
	if root == "" {
		return path
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// Truncate shortens a string to maxLen bytes with a trailing ellipsis.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// FormatAge renders a last-modified time as a relative age ("3 days ago").
// A zero time renders as "Unknown".
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	days := int(time.Since(t).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

// FormatDate renders a last-modified time as a date, "Unknown" when zero.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("2006-01-02")
}
