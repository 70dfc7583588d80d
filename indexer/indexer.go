// Package indexer implements the depth-first traversal of a Gopher
// server's menu tree: fetching menus, dispatching on entry type,
// persisting text and binary resources, probing external hosts
// without descending into them, and accumulating StatsState.
package indexer

import (
	"fmt"
	"math"
	"time"

	"github.com/comp3310/gopherindex/gopher"
	"github.com/comp3310/gopherindex/ledger"
	"github.com/comp3310/gopherindex/logger"
)

// Indexer drives one crawl. It owns the visited set, the external-probe
// dedup set, and the StatsState aggregate, and is not safe for
// concurrent use — the crawl is strictly sequential by contract.
type Indexer struct {
	transport    *gopher.Transport
	log          logger.Logger
	downloadRoot string
	maxDepth     int
	ledger       *ledger.Ledger

	visited      map[string]struct{}
	externalSeen map[string]struct{}
	stats        *StatsState
}

// Option configures an Indexer at construction time.
type Option func(*Indexer)

// WithLedger attaches a report ledger. Resource and run records are
// written to it as the crawl proceeds; a nil ledger (the default)
// means the crawl only produces the in-memory StatsState.
func WithLedger(l *ledger.Ledger) Option {
	return func(i *Indexer) { i.ledger = l }
}

// WithMaxDepth caps how many levels of type-1 recursion on the origin
// server the crawl will descend. The root selector is depth 0. A
// non-positive value is treated as "effectively unbounded".
func WithMaxDepth(depth int) Option {
	return func(i *Indexer) {
		if depth > 0 {
			i.maxDepth = depth
		}
	}
}

// New builds an Indexer that fetches through transport and reports
// through log, writing downloaded resources under downloadRoot.
func New(transport *gopher.Transport, log logger.Logger, downloadRoot string, opts ...Option) *Indexer {
	idx := &Indexer{
		transport:    transport,
		log:          log,
		downloadRoot: downloadRoot,
		maxDepth:     math.MaxInt32,
		visited:      make(map[string]struct{}),
		externalSeen: make(map[string]struct{}),
		stats:        NewStatsState(),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Stats returns the StatsState accumulated so far. It is only safe to
// read after Crawl has returned.
func (idx *Indexer) Stats() *StatsState {
	return idx.stats
}

// Crawl performs the entire walk synchronously, starting at
// originHost:originPort/rootSelector, and populates the Indexer's
// StatsState. The crawl itself only fails if the root menu fetch
// raises an error the transport did not already swallow.
func (idx *Indexer) Crawl(originHost string, originPort int, rootSelector string) error {
	started := time.Now()

	if err := idx.visitDirectory(originHost, originPort, rootSelector, "", 0, originHost, originPort); err != nil {
		return err
	}

	if idx.ledger != nil {
		idx.recordRun(originHost, originPort, started, time.Now())
	}
	return nil
}

func resourceKey(host string, port int, selector string) string {
	return fmt.Sprintf("%s:%d%s", host, port, selector)
}

// visitDirectory implements the per-resource state machine in the
// traversal's §4.E contract: dedup by (host, port, selector), fetch
// the menu, then dispatch on each entry's type in source order.
func (idx *Indexer) visitDirectory(host string, port int, selector, fullPath string, depth int, originHost string, originPort int) error {
	if depth > idx.maxDepth {
		return nil
	}

	key := resourceKey(host, port, selector)
	if _, seen := idx.visited[key]; seen {
		return nil
	}
	idx.visited[key] = struct{}{}
	idx.stats.Visited++

	idx.log.Info(fmt.Sprintf("Fetching: %s - %s", time.Now().Format(time.RFC3339), key))

	body, err := idx.transport.SendRequest(host, port, selector)
	if err != nil {
		idx.log.Warning(fmt.Sprintf("failed to fetch menu %s: %s", key, err))
		if depth == 0 {
			return fmt.Errorf("fetch root menu %s: %w", key, err)
		}
		return nil
	}
	if body == "" {
		idx.log.Warning("empty response received for selector: " + selector)
		return nil
	}

	entries := gopher.ParseMenu(body, idx.log)

	for _, entry := range entries {
		childFullPath := fullPath + entry.Selector

		switch entry.Type {
		case gopher.TypeInfo:
			// informational, no action

		case gopher.TypeMenu:
			if entry.Host == originHost && entry.Port == originPort {
				if err := idx.visitDirectory(entry.Host, entry.Port, entry.Selector, childFullPath, depth+1, originHost, originPort); err != nil {
					return err
				}
			} else {
				idx.probeExternal(entry)
			}

		case gopher.TypeText:
			idx.fetchText(entry, childFullPath)

		case gopher.TypeErr:
			idx.stats.AddInvalidReference(childFullPath)

		case gopher.TypeBin:
			idx.fetchBinary(entry, childFullPath)

		default:
			// unrecognized entry type, ignore
		}
	}

	return nil
}

func (idx *Indexer) probeExternal(entry gopher.MenuEntry) {
	extKey := resourceKey(entry.Host, entry.Port, entry.Selector)
	if _, seen := idx.externalSeen[extKey]; seen {
		return
	}
	idx.externalSeen[extKey] = struct{}{}

	hostPort := fmt.Sprintf("%s:%d", entry.Host, entry.Port)
	if idx.transport.Probe(entry.Host, entry.Port) {
		idx.stats.AddExternalUp(hostPort)
	} else {
		idx.stats.AddExternalDown(hostPort)
	}
}

func (idx *Indexer) fetchText(entry gopher.MenuEntry, fullPath string) {
	idx.log.Info(fmt.Sprintf("Fetching: %s - %s", time.Now().Format(time.RFC3339), resourceKey(entry.Host, entry.Port, entry.Selector)))

	body, err := idx.transport.SendRequest(entry.Host, entry.Port, entry.Selector)
	if err != nil || body == "" {
		if err != nil {
			idx.log.Warning(fmt.Sprintf("failed to fetch text file %s: %s", fullPath, err))
		} else {
			idx.log.Warning("empty response received for selector: " + entry.Selector)
		}
		idx.stats.AddBadText(fullPath)
		return
	}

	text := stripTrailingTerminator(body)
	localPath, size := writeResource(idx.log, idx.downloadRoot, fullPath, []byte(text))
	if size == 0 {
		// Write failed after a successful fetch; per the writer's
		// contract this does not count as a fetch failure, so it is
		// not added to badTextFiles either — it simply never appears
		// in any list.
		return
	}

	idx.stats.RecordText(fullPath, size, text)
	idx.log.Info(fmt.Sprintf("File downloaded and saved: %s (size: %d bytes)", fullPath, size))

	if idx.ledger != nil {
		idx.ledger.RecordResource(ledger.ResourceRecord{
			Host: entry.Host, Port: entry.Port, Selector: entry.Selector,
			FullPath: fullPath, LocalPath: localPath, Kind: "text",
			Size: size, RecordedAt: time.Now().Unix(),
		})
	}
}

func (idx *Indexer) fetchBinary(entry gopher.MenuEntry, fullPath string) {
	idx.log.Info(fmt.Sprintf("Fetching: %s - %s", time.Now().Format(time.RFC3339), resourceKey(entry.Host, entry.Port, entry.Selector)))

	data, err := idx.transport.ReadBinary(entry.Host, entry.Port, entry.Selector)
	if err != nil || data == nil {
		if err != nil {
			idx.log.Warning(fmt.Sprintf("failed to fetch binary file %s: %s", fullPath, err))
		} else {
			idx.log.Warning("empty response received for selector: " + entry.Selector)
		}
		idx.stats.AddBadBinary(fullPath)
		return
	}

	localPath, size := writeResource(idx.log, idx.downloadRoot, fullPath, data)
	if size == 0 {
		// See the matching comment in fetchText: a write failure after
		// a successful fetch is not a badBinaryFiles entry either.
		return
	}

	idx.stats.RecordBinary(fullPath, size)
	idx.log.Info(fmt.Sprintf("File downloaded successfully: %s (size: %d bytes)", fullPath, size))

	if idx.ledger != nil {
		idx.ledger.RecordResource(ledger.ResourceRecord{
			Host: entry.Host, Port: entry.Port, Selector: entry.Selector,
			FullPath: fullPath, LocalPath: localPath, Kind: "binary",
			Size: size, RecordedAt: time.Now().Unix(),
		})
	}
}

func (idx *Indexer) recordRun(originHost string, originPort int, started, finished time.Time) {
	s := idx.stats
	err := idx.ledger.RecordRun(ledger.RunSummary{
		OriginHost: originHost, OriginPort: originPort,
		StartedAt: started.Unix(), FinishedAt: finished.Unix(),
		Visited:            s.Visited,
		TextFiles:          len(s.TextFiles),
		BadTextFiles:       len(s.BadTextFiles),
		BinaryFiles:        len(s.BinaryFiles),
		BadBinaryFiles:     len(s.BadBinaryFiles),
		ExternalUp:         len(s.ExternalServersUp),
		ExternalDown:       len(s.ExternalServersDown),
		InvalidReferences:  len(s.UniqueInvalidReferences),
		SmallestTextSize:   s.SmallestTextSize,
		LargestTextSize:    s.LargestTextSize,
		SmallestBinarySize: s.SmallestBinarySize,
		LargestBinarySize:  s.LargestBinarySize,
	})
	if err != nil {
		idx.log.Severe("failed to record run summary in ledger: " + err.Error())
	}
}
