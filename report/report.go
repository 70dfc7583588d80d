// Package report prints a human-readable statistics block over a
// completed crawl's StatsState. It is an external collaborator: it
// only reads StatsState after the indexer's Crawl has returned, and
// has no say in how the traversal ran.
package report

import (
	"fmt"
	"io"

	"github.com/comp3310/gopherindex/indexer"
)

const rule = "---------------------------------------------------"

// Print writes the full statistics report for s to w.
func Print(w io.Writer, s *indexer.StatsState) {
	fmt.Fprintf(w, "Total directories visited: %d\n\n", s.Visited)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total text files (fetched successfully): %d\n\n", len(s.TextFiles))
	printList(w, "List of all text files:", s.TextFiles)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total bad text files (empty or null response): %d\n\n", len(s.BadTextFiles))
	printList(w, "List of all bad text files:", s.BadTextFiles)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total binary files (fetched successfully): %d\n\n", len(s.BinaryFiles))
	printList(w, "List of all binary files:", s.BinaryFiles)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total bad binary files (empty or null response): %d\n\n", len(s.BadBinaryFiles))
	printList(w, "List of all bad binary files:", s.BadBinaryFiles)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Smallest text file content: %s\n", s.SmallestTextContents)
	fmt.Fprintf(w, "Largest text file size: %d bytes\n", s.LargestTextSize)
	fmt.Fprintf(w, "Smallest binary file size: %d bytes\n", s.SmallestBinarySize)
	fmt.Fprintf(w, "Largest binary file size: %d bytes\n\n", s.LargestBinarySize)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total external servers: %d\n\n", len(s.ExternalServersUp)+len(s.ExternalServersDown))
	if len(s.ExternalServersUp) > 0 {
		fmt.Fprintln(w, "List of all external servers that are up:")
		for _, host := range s.ExternalServersUp {
			fmt.Fprintln(w, host)
		}
	}
	fmt.Fprintln(w)
	if len(s.ExternalServersDown) > 0 {
		fmt.Fprintln(w, "List of all external servers that are down:")
		for _, host := range s.ExternalServersDown {
			fmt.Fprintln(w, host)
		}
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total unique invalid references: %d\n\n", len(s.UniqueInvalidReferences))
	printList(w, "List of all unique invalid references:", s.UniqueInvalidReferences)
}

func printList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, label)
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
}
