package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/bitcoinfees/auctionsim/api"
	"github.com/bitcoinfees/auctionsim/report"
)

func stop(args []string, c *api.Client) {
	const usage = `
auctionsim stop

Stop the daemon.
`
	f := flag.NewFlagSet(args[0], flag.ExitOnError)
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, usage)
		f.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
	}
	if err := f.Parse(args[1:]); err != nil {
		log.Fatal(err)
	}
	if err := c.Stop(); err != nil {
		log.Fatal(err)
	}
}

func status(args []string, c *api.Client) {
	const usage = `
auctionsim status

Show daemon status:

	snapshot: Whether or not a mempool snapshot is available for simulations.
	source  : Whether or not the last data source poll succeeded. A snapshot
	          may still be available from the cache when the source is down.
	cache   : Whether or not the snapshot cache is readable.

`
	f := flag.NewFlagSet(args[0], flag.ExitOnError)
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, usage)
		f.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
	}
	if err := f.Parse(args[1:]); err != nil {
		log.Fatal(err)
	}

	result, err := c.Status()
	if err != nil {
		log.Fatal(err)
	}

	for _, k := range []string{"snapshot", "source", "cache"} {
		fmt.Printf("%-9s: %s\n", k, result[k])
	}
}

func simulate(args []string, c *api.Client) {
	const usage = `
auctionsim simulate VSIZE FEERATE

Simulate the queue position of a hypothetical transaction with the given
virtual size (vbytes) and fee rate (sat/vB), against the latest mempool
snapshot. Prints a plain-text report.

`
	f := flag.NewFlagSet(args[0], flag.ExitOnError)
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, usage)
		f.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
	}
	if err := f.Parse(args[1:]); err != nil {
		log.Fatal(err)
	}
	if f.NArg() != 2 {
		f.Usage()
		os.Exit(1)
	}

	vsize, err := strconv.ParseInt(f.Arg(0), 10, 64)
	if err != nil {
		log.Fatal(err)
	}
	feerate, err := strconv.ParseFloat(f.Arg(1), 64)
	if err != nil {
		log.Fatal(err)
	}

	result, err := c.Simulate(api.SimulateArgs{VSize: vsize, FeeRate: feerate})
	if err != nil {
		log.Fatal(err)
	}
	report.Render(os.Stdout, result)
}

func recommend(args []string, c *api.Client) {
	const usage = `
auctionsim recommend

Show recommended fee tiers (sat/vB) for common confirmation targets.

`
	f := flag.NewFlagSet(args[0], flag.ExitOnError)
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, usage)
		f.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
	}
	if err := f.Parse(args[1:]); err != nil {
		log.Fatal(err)
	}

	tiers, err := c.Recommend()
	if err != nil {
		log.Fatal(err)
	}
	report.RenderTiers(os.Stdout, tiers)
}

func snapshot(args []string, c *api.Client) {
	const usage = `
auctionsim snapshot

Show a summary of the latest mempool snapshot.

`
	f := flag.NewFlagSet(args[0], flag.ExitOnError)
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, usage)
		f.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
	}
	if err := f.Parse(args[1:]); err != nil {
		log.Fatal(err)
	}

	result, err := c.Snapshot()
	if err != nil {
		log.Fatal(err)
	}

	b, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(b))
}

func refresh(args []string, c *api.Client) {
	const usage = `
auctionsim refresh

Poll the data source immediately, outside the regular poll schedule.

`
	f := flag.NewFlagSet(args[0], flag.ExitOnError)
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, usage)
		f.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
	}
	if err := f.Parse(args[1:]); err != nil {
		log.Fatal(err)
	}

	if err := c.Refresh(); err != nil {
		log.Fatal(err)
	}
}

func setDebug(args []string, c *api.Client) {
	const usage = `
auctionsim setdebug BOOL

Turn on debug-level logging with "true"; turn off with "false".

`
	f := flag.NewFlagSet(args[0], flag.ExitOnError)
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, usage)
		f.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
	}
	if err := f.Parse(args[1:]); err != nil {
		log.Fatal(err)
	}
	on, err := strconv.ParseBool(f.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if err := c.SetDebug(on); err != nil {
		log.Fatal(err)
	}
}

func appConfig(args []string, c *api.Client) {
	const usage = `
auctionsim config

Show app config settings.

`
	f := flag.NewFlagSet(args[0], flag.ExitOnError)
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, usage)
		f.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
	}
	if err := f.Parse(args[1:]); err != nil {
		log.Fatal(err)
	}

	result, err := c.Config()
	if err != nil {
		log.Fatal(err)
	}

	b, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(b))
}

func appMetrics(args []string, c *api.Client) {
	const usage = `
auctionsim metrics

Show app metrics.

`
	f := flag.NewFlagSet(args[0], flag.ExitOnError)
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, usage)
		f.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
	}
	if err := f.Parse(args[1:]); err != nil {
		log.Fatal(err)
	}

	result, err := c.Metrics()
	if err != nil {
		log.Fatal(err)
	}

	b, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(b))
}
