// Package listing renders scan results as plain tabular text for the
// non-interactive mode.
package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/rskill/rskill/internal/cleaner"
	"github.com/rskill/rskill/internal/scan"
	"github.com/rskill/rskill/internal/styles"
)

const pathColumnWidth = 18

// PrintProjects writes the project table: name, size, root-relative
// truncated path, last-modified date and an active/stale status label,
// ending with the total cleanable-size summary line.
func PrintProjects(w io.Writer, result *scan.Result, root string, useGB bool) {
	if len(result.Projects) == 0 {
		fmt.Fprintln(w, "No projects found.")
		return
	}

	bold := styles.Title
	fmt.Fprintf(w, "\n%-30s %-15s %-20s %-15s %-10s\n",
		bold.Render("Project Name"),
		bold.Render("Size"),
		bold.Render("Path"),
		bold.Render("Last Modified"),
		bold.Render("Status"),
	)
	fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, p := range result.Projects {
		status := styles.StaleTag.Render("Stale")
		if p.IsLikelyActive() {
			status = styles.ActiveTag.Render("Active")
		}

		note := ""
		if p.TargetDir == "" && p.Status != scan.StatusCleaned {
			note = styles.ErrorTag.Render(" (no target)")
		}

		fmt.Fprintf(w, "%-30s %-15s %-20s %-15s %-10s%s\n",
			styles.Truncate(p.Name, 30),
			styles.SizeText.Render(styles.FormatSize(p.TotalCleanableSize(), useGB)),
			styles.TruncatePath(styles.RelativePath(root, p.Path), pathColumnWidth),
			styles.FormatDate(p.LastModified),
			status,
			note,
		)
	}

	fmt.Fprintf(w, "\nTotal cleanable space: %s\n",
		styles.Title.Render(styles.FormatSize(result.TotalCleanableSize(), useGB)))

	if g := result.GlobalCache; g != nil {
		fmt.Fprintf(w, "Shared caches (affect every project): %s\n",
			styles.StaleTag.Render(styles.FormatSize(g.TotalSize(), useGB)))
		for _, a := range g.Artifacts {
			fmt.Fprintf(w, "  %-20s %s\n", a.Kind, styles.FormatSize(a.Size, useGB))
		}
	}
}

// PrintFolders writes the folder table for the name-only mode.
func PrintFolders(w io.Writer, folders []*scan.Folder, useGB bool) {
	if len(folders) == 0 {
		fmt.Fprintln(w, "No matching folders found.")
		return
	}

	var total int64
	for _, f := range folders {
		fmt.Fprintf(w, "%-15s %s\n",
			styles.SizeText.Render(styles.FormatSize(f.Size, useGB)), f.Path)
		total += f.Size
	}
	fmt.Fprintf(w, "\nTotal cleanable space: %s\n",
		styles.Title.Render(styles.FormatSize(total, useGB)))
}

// PrintBatch reports a bulk deletion: one line per attempted item, then
// success count, failure count and bytes freed.
func PrintBatch(w io.Writer, batch cleaner.BatchResult, useGB, dryRun bool) {
	for _, o := range batch.Outcomes {
		switch {
		case o.Err != nil:
			fmt.Fprintf(w, "%s %s: %v\n", styles.ErrorTag.Render("failed"), o.Target.Location(), o.Err)
		case dryRun:
			fmt.Fprintf(w, "%s %s\n", styles.Muted.Render("would delete"), o.Target.Location())
		default:
			fmt.Fprintf(w, "%s %s (%s)\n", styles.ActiveTag.Render("deleted"),
				o.Target.Location(), styles.FormatSize(o.Freed, useGB))
		}
	}

	if dryRun {
		fmt.Fprintf(w, "\nDry run: %d item(s) would be deleted, nothing was removed.\n", len(batch.Outcomes)-batch.Failed)
		return
	}
	fmt.Fprintf(w, "\nDeleted %d item(s), %d failed, freed %s.\n",
		batch.Deleted, batch.Failed, styles.FormatSize(batch.Freed, useGB))
}
