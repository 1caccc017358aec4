/*
Package differ detects drift between parsed schema documents.

# Overview

[Compare] walks two open document trees and reports JSON Pointer paths that
were added, removed or modified. Objects are compared key by key (keys visited
in lexicographic order), arrays position by position, and anything else,
including a type change, is a single modification with no further recursion.
Reordering array elements therefore shows up as pairwise modifications rather
than moves. Every path list in a [Summary] is sorted.

[UnifiedPatch] renders a textual unified diff between two serialized documents,
and [CompareFiles] combines both for a set of files into a [Report], which
renders as JSON, as plain or colored text ([RenderText]) or as a Markdown
comment ([RenderComment]) that starts with [CommentMarker] so an existing
comment can be found and replaced.

# Example

	pairs, err := differ.PairDirs(afero.NewOsFs(), "published", "generated")
	if err != nil {
		log.Fatal(err)
	}
	report, err := differ.CompareFiles(ctx, pairs,
		differ.WithSourceLabel("published"),
		differ.WithTargetLabel("generated"),
	)
	if err != nil {
		log.Fatal(err)
	}
	if report.HasChanges() {
		fmt.Print(differ.RenderComment(report))
	}

# Concurrency

Compare and UnifiedPatch are pure functions. CompareFiles processes file pairs
concurrently; each pair owns its parsed documents.
*/
package differ
