// Command wpilog-write exercises the data log writer from the command
// line: it opens a file-backed log, appends a run of synthetic double and
// string entries at a fixed rate, and flushes/closes cleanly on exit.
//
// Run:
//
// ```bash
// ./bin/wpilog-write -dir=/tmp/logs -entries=1000 -rate=200
// ```
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	wpilog "github.com/BlueZeeKing/allwpilib"
	"github.com/BlueZeeKing/allwpilib/internal/logging"
)

var (
	dir      = flag.String("dir", ".", "directory to write the log file into")
	filename = flag.String("filename", "", "log filename (random if empty)")
	entries  = flag.Int("entries", 1000, "number of data records to append per channel")
	rateHz   = flag.Float64("rate", 100, "appends per second per channel")
	period   = flag.Duration("flush-period", 250*time.Millisecond, "background flush period")
)

func main() {
	flag.Parse()

	cfg := wpilog.DefaultConfig()
	cfg.Logger = logging.NewDefaultLogger(logging.LevelInfo)

	dl := wpilog.OpenFile(*dir, *filename, *period, nil, cfg)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		voltage := dl.Start("/robot/voltage", "double", "", 0)
		status := dl.Start("/robot/status", "string", "", 0)

		interval := time.Duration(float64(time.Second) / *rateHz)
		for i := 0; i < *entries; i++ {
			select {
			case <-sigCh:
				return
			default:
			}
			dl.AppendDouble(voltage, 12.0+0.01*float64(i%50), 0)
			dl.AppendString(status, fmt.Sprintf("tick-%d", i), 0)
			time.Sleep(interval)
		}
		dl.Finish(voltage, 0)
		dl.Finish(status, 0)
	}()

	select {
	case <-done:
	case <-sigCh:
	}
	dl.Close()
	fmt.Println("wrote log to", *dir)
}
