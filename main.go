package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/rcrowley/go-metrics"

	"github.com/bitcoinfees/auctionsim/api"
	col "github.com/bitcoinfees/auctionsim/collect"
	"github.com/bitcoinfees/auctionsim/collect/mempoolspace"
	"github.com/bitcoinfees/auctionsim/db/bolt"
)

const usage = `
auctionsim [-c CONFIGFILE] [-d DATADIR] COMMAND [-h | -help] [args...]

Commands:
	start     (start the daemon)
	stop      (terminate the daemon)
	version   (show app version)
	status    (show daemon status)
	simulate  (simulate the queue position of a transaction: VSIZE FEERATE)
	recommend (show recommended fee tiers in sat/vB)
	snapshot  (show the latest mempool snapshot summary)
	refresh   (poll the data source immediately)
	setdebug  (turn on/off debug-level logging)
	metrics   (show app metrics)
	config    (show app config settings.)

`

const version = "0.1.0"

func main() {
	var (
		configFile, dataDir string
	)
	flag.CommandLine.Usage = func() {
		fmt.Fprintf(os.Stderr, usage)
		flag.CommandLine.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
	}
	flag.StringVar(&configFile, "c", "",
		fmt.Sprintf("Path to config file (alternatively, use %s env var).", configFileEnv))
	flag.StringVar(&dataDir, "d", "",
		fmt.Sprintf("Path to data directory (alternatively, use %s env var).", dataDirEnv))
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.CommandLine.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(configFile, dataDir)
	if err != nil {
		log.Fatal(err)
	}

	apiclient := api.NewClient(api.Config{
		Host:    cfg.AppRPC.Host,
		Port:    cfg.AppRPC.Port,
		Timeout: 15,
	})

	switch args[0] {
	case "start":
		runAuctionSim(args, cfg)
	case "version":
		fmt.Println(version)
	case "stop":
		stop(args, apiclient)
	case "status":
		status(args, apiclient)
	case "simulate":
		simulate(args, apiclient)
	case "recommend":
		recommend(args, apiclient)
	case "snapshot":
		snapshot(args, apiclient)
	case "refresh":
		refresh(args, apiclient)
	case "setdebug":
		setDebug(args, apiclient)
	case "metrics":
		appMetrics(args, apiclient)
	case "config":
		appConfig(args, apiclient)
	default:
		log.Fatalf("Invalid command '%s'", args[0])
	}
}

func runAuctionSim(args []string, cfg config) {
	const usage = `
auctionsim start

Start the daemon. The daemon polls the mempool.space API for projected block
templates, and serves blockspace auction simulations over JSON-RPC.

Use auctionsim status to check the data collection status.
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

	snapshotdb, err := loadSnapshotDB(cfg)
	if err != nil {
		log.Fatal(fmt.Errorf("loadSnapshotDB: %v", err))
	}

	collectConfig, err := loadCollectorConfig(cfg)
	if err != nil {
		log.Fatal(fmt.Errorf("loadCollectorConfig: %v", err))
	}

	// Setup the logger
	var dLog *DebugLog
	logFileMode := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if f, err := os.OpenFile(cfg.LogFile, logFileMode, 0666); err != nil {
		log.Fatal(fmt.Errorf("opening logfile: %v", err))
	} else {
		dLog = NewDebugLog(f, "", log.LstdFlags)
	}

	auctionsimConfig := AuctionSimConfig{
		Collect: collectConfig,
		Sim:     cfg.Sim,
		logger:  dLog.Logger,
	}
	auctionsim, err := NewAuctionSim(snapshotdb, auctionsimConfig)
	if err != nil {
		log.Fatal(fmt.Errorf("NewAuctionSim: %v", err))
	}
	service := &Service{Sim: auctionsim, DLog: dLog, Cfg: cfg}

	os.Stdout.Close()
	os.Stderr.Close()
	os.Stdin.Close()

	errc := make(chan error)
	go func() { errc <- auctionsim.Run() }()
	go func() { errc <- service.ListenAndServe() }()

	// Signal handling
	sigc := make(chan os.Signal, 3)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigc
		auctionsim.Stop()
	}()

	err = <-errc
	// Blocks until it is safely shutdown. It is idempotent, so no harm if
	// auctionsim is already stopped.
	auctionsim.Stop()
	if err != nil {
		dLog.Logger.Fatal(err)
	}
}

func loadSnapshotDB(cfg config) (SnapshotDB, error) {
	const dbFileName = "snapshot.db"
	dbfile := filepath.Join(cfg.DataDir, dbFileName)
	return bolt.LoadSnapshotDB(dbfile)
}

func loadCollectorConfig(cfg config) (col.Config, error) {
	timeNow := func() int64 {
		return time.Now().Unix()
	}
	getSnapshot, err := mempoolspace.Getters(timeNow, cfg.Mempool)
	if err != nil {
		return col.Config{}, err
	}

	// Wrap getSnapshot with a timer
	reservoirSize := 60 / cfg.Collect.PollPeriod * 60 * 24 // About one day's worth
	getSnapshotTimer := metrics.NewCustomTimer(metrics.NewHistogram(
		metrics.NewSimpleExpDecaySample(reservoirSize)), metrics.NewMeter())
	timedGetSnapshot := func() (*col.Snapshot, error) {
		start := time.Now()
		defer getSnapshotTimer.UpdateSince(start)
		return getSnapshot()
	}
	name := "getsnapshot" + strconv.Itoa(reservoirSize)
	metrics.Register(name, getSnapshotTimer)

	c := col.Config{
		GetSnapshot: timedGetSnapshot,
		PollPeriod:  cfg.Collect.PollPeriod,
	}
	return c, nil
}
