package indexer

import "math"

// StatsState is the single-writer aggregate populated during a crawl.
// It is owned exclusively by the Indexer's traversal goroutine and read
// by the external printer only after Crawl returns, so none of its
// methods need locking (see the crawler's concurrency model: one
// traversal, one connection, one writer, always sequential).
type StatsState struct {
	TextFiles      []string
	BinaryFiles    []string
	BadTextFiles   []string
	BadBinaryFiles []string

	ExternalServersUp   []string
	ExternalServersDown []string

	UniqueInvalidReferences []string

	SmallestTextSize   int64
	LargestTextSize    int64
	SmallestBinarySize int64
	LargestBinarySize  int64

	SmallestTextContents string

	Visited int
}

// NewStatsState returns a StatsState with the extrema at their
// sentinel values (smallest = +infinity equivalent, largest = 0).
func NewStatsState() *StatsState {
	return &StatsState{
		SmallestTextSize:   math.MaxInt64,
		SmallestBinarySize: math.MaxInt64,
	}
}

// RecordText records a successfully persisted text file. Extrema
// update with strictly-less/strictly-greater semantics: equal sizes
// never overwrite, so the first-seen smallest contents wins.
func (s *StatsState) RecordText(fullPath string, size int64, contents string) {
	s.TextFiles = append(s.TextFiles, fullPath)
	if size < s.SmallestTextSize {
		s.SmallestTextSize = size
		s.SmallestTextContents = contents
	}
	if size > s.LargestTextSize {
		s.LargestTextSize = size
	}
}

// RecordBinary records a successfully persisted binary file.
func (s *StatsState) RecordBinary(fullPath string, size int64) {
	s.BinaryFiles = append(s.BinaryFiles, fullPath)
	if size < s.SmallestBinarySize {
		s.SmallestBinarySize = size
	}
	if size > s.LargestBinarySize {
		s.LargestBinarySize = size
	}
}

func (s *StatsState) AddBadText(fullPath string) {
	s.BadTextFiles = append(s.BadTextFiles, fullPath)
}

func (s *StatsState) AddBadBinary(fullPath string) {
	s.BadBinaryFiles = append(s.BadBinaryFiles, fullPath)
}

func (s *StatsState) AddExternalUp(hostPort string) {
	s.ExternalServersUp = append(s.ExternalServersUp, hostPort)
}

func (s *StatsState) AddExternalDown(hostPort string) {
	s.ExternalServersDown = append(s.ExternalServersDown, hostPort)
}

func (s *StatsState) AddInvalidReference(fullPath string) {
	s.UniqueInvalidReferences = append(s.UniqueInvalidReferences, fullPath)
}
