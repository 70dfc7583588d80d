// Command gopherindex recursively walks a Gopher server's menu tree
// from a root selector, downloads its text and binary resources,
// probes cross-server references without descending into them, and
// prints a statistics report over the traversal.
package main

import (
	"flag"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/comp3310/gopherindex/gopher"
	"github.com/comp3310/gopherindex/indexer"
	"github.com/comp3310/gopherindex/ledger"
	gopherlog "github.com/comp3310/gopherindex/logger"
	"github.com/comp3310/gopherindex/report"
)

var (
	downloadRoot = flag.String("datadir", "./downloaded_files", "where to download fetched resources to")
	dbPath       = flag.String("dbpath", "./crawl_report.db", "where to persist the crawl report (SQLite)")
)

func main() {
	flag.Parse()

	hostname, port, maxDepth, err := parseArgs(flag.Args())
	if err != nil {
		log.Fatalf("invalid arguments: %s", err)
	}

	l, err := ledger.Open(*dbPath)
	if err != nil {
		log.Fatalf("unable to open report ledger: %s", err)
	}
	defer l.Close()

	clog := gopherlog.New(os.Stdout)
	transport := gopher.NewTransport(clog)

	opts := []indexer.Option{indexer.WithLedger(l)}
	if maxDepth > 0 && maxDepth < math.MaxInt32 {
		opts = append(opts, indexer.WithMaxDepth(maxDepth))
	}

	idx := indexer.New(transport, clog, *downloadRoot, opts...)

	if err := idx.Crawl(hostname, port, ""); err != nil {
		log.Fatalf("crawl failed: %s", err)
	}

	os.Stdout.WriteString(">>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>\n\n")
	clog.Info("Finish Indexing!")
	report.Print(os.Stdout, idx.Stats())
	os.Stdout.WriteString("\n<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<\n")
}

// parseArgs decodes up to three positional CLI arguments: hostname
// (default comp3310.ddns.net), port (default 70) and an optional
// maxDepth that defaults to an effectively unbounded sentinel.
func parseArgs(args []string) (hostname string, port int, maxDepth int, err error) {
	hostname = "comp3310.ddns.net"
	port = 70
	maxDepth = math.MaxInt32

	if len(args) > 0 {
		hostname = args[0]
	}
	if len(args) > 1 {
		port, err = strconv.Atoi(args[1])
		if err != nil {
			return "", 0, 0, err
		}
	}
	if len(args) > 2 {
		maxDepth, err = strconv.Atoi(args[2])
		if err != nil {
			return "", 0, 0, err
		}
	}
	return hostname, port, maxDepth, nil
}
