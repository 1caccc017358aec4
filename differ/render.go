package differ

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// CommentMarker opens every rendered comment so a bot can find and replace
// its previous comment instead of posting a new one.
const CommentMarker = "<!-- oasnorm-schema-drift -->"

// RenderComment renders the report as a Markdown comment: a header with the
// labels and counts, then one collapsible section per changed file holding
// its counts and patch.
func RenderComment(r *Report) string {
	var b strings.Builder
	b.WriteString(CommentMarker)
	b.WriteString("\n## Schema drift report\n\n")
	fmt.Fprintf(&b, "Comparing `%s` with `%s`: %d file(s) compared, %d changed.\n",
		r.SourceLabel, r.TargetLabel, r.ComparedCount, r.ChangedCount)

	if !r.HasChanges() {
		b.WriteString("\nNo schema changes detected.\n")
		return b.String()
	}

	for _, f := range r.ChangedFiles() {
		b.WriteString("\n<details>\n")
		fmt.Fprintf(&b, "<summary><code>%s</code>%s: %d added, %d removed, %d modified</summary>\n\n",
			f.FileName, fileStatus(f), f.Summary.AddedCount, f.Summary.RemovedCount, f.Summary.ModifiedCount)
		if f.Patch != "" {
			fence := codeFence(f.Patch)
			fmt.Fprintf(&b, "%sdiff\n%s", fence, f.Patch)
			if !strings.HasSuffix(f.Patch, "\n") {
				b.WriteByte('\n')
			}
			b.WriteString(fence)
			b.WriteByte('\n')
		}
		b.WriteString("\n</details>\n")
	}
	return b.String()
}

func fileStatus(f FileReport) string {
	switch {
	case f.IsNew:
		return " (new)"
	case f.IsDeleted:
		return " (deleted)"
	default:
		return ""
	}
}

// codeFence returns a backtick fence longer than any run inside text.
func codeFence(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

// RenderText renders the report for a terminal. With colorize set, patch and
// path lines are colored regardless of whether the output is a terminal.
func RenderText(r *Report, colorize bool) string {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	bold := color.New(color.Bold)
	for _, c := range []*color.Color{red, green, yellow, cyan, bold} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s -> %s: %d file(s) compared, %d changed\n",
		r.SourceLabel, r.TargetLabel, r.ComparedCount, r.ChangedCount)
	for _, f := range r.ChangedFiles() {
		b.WriteByte('\n')
		bold.Fprintf(&b, "%s%s\n", f.FileName, fileStatus(f))
		fmt.Fprintf(&b, "  %d added, %d removed, %d modified\n",
			f.Summary.AddedCount, f.Summary.RemovedCount, f.Summary.ModifiedCount)
		for _, c := range f.Summary.Changes() {
			switch c.Type {
			case ChangeTypeAdded:
				green.Fprintf(&b, "  %s\n", c)
			case ChangeTypeRemoved:
				red.Fprintf(&b, "  %s\n", c)
			default:
				yellow.Fprintf(&b, "  %s\n", c)
			}
		}
		if f.Patch == "" {
			continue
		}
		b.WriteByte('\n')
		for _, line := range strings.SplitAfter(strings.TrimSuffix(f.Patch, "\n"), "\n") {
			line = strings.TrimSuffix(line, "\n")
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
				bold.Fprintln(&b, line)
			case strings.HasPrefix(line, "@@"):
				cyan.Fprintln(&b, line)
			case strings.HasPrefix(line, "+"):
				green.Fprintln(&b, line)
			case strings.HasPrefix(line, "-"):
				red.Fprintln(&b, line)
			default:
				fmt.Fprintln(&b, line)
			}
		}
	}
	return b.String()
}
