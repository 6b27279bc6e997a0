package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/hedgechart/plot"
	"github.com/fsnotify/fsnotify"
)

type Mode uint8

const (
	ModeNone Mode = iota
	ModeReplaying
	ModeFollowing
	ModeDemo
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeReplaying:
		return "replaying"
	case ModeFollowing:
		return "following"
	case ModeDemo:
		return "demo"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Status describes the session currently feeding the chart.
type Status struct {
	Mode Mode
	// Source names where the samples come from.
	Source  string
	Samples int
	Err     error
}

// Datasource loads series from files, streams and the demo generator and
// publishes snapshots of them. Only one session is active at a time;
// starting a new one stops the previous one.
type Datasource struct {
	appCtx context.Context
	series box[plot.Series]
	status box[Status]

	lock    sync.Mutex
	session context.Context
	cancel  context.CancelFunc
}

func NewDatasource(appCtx context.Context) *Datasource {
	d := &Datasource{appCtx: appCtx}
	d.status.Store(Status{})
	return d
}

// Series streams snapshots of the active session's samples.
func (d *Datasource) Series(ctx context.Context) <-chan plot.Series {
	return d.series.Stream(ctx)
}

// Status streams the state of the active session.
func (d *Datasource) Status(ctx context.Context) <-chan Status {
	return d.status.Stream(ctx)
}

// CurrentStatus returns the state of the active session.
func (d *Datasource) CurrentStatus() Status {
	s, _ := d.status.Load()
	return s
}

// Stop ends the active session, if any. Its last snapshot stays published.
func (d *Datasource) Stop() {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// begin cancels the previous session and publishes an empty one.
func (d *Datasource) begin(mode Mode, source string) context.Context {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.cancel != nil {
		d.cancel()
	}
	d.session, d.cancel = context.WithCancel(d.appCtx)
	d.series.Store(plot.Series{})
	d.status.Store(Status{Mode: mode, Source: source})
	return d.session
}

// publish stores a snapshot unless its session has been replaced.
func (d *Datasource) publish(ctx context.Context, s plot.Series, status Status) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if ctx != d.session || ctx.Err() != nil {
		return
	}
	if err := s.Validate(); err != nil && !errors.Is(err, plot.ErrEmptySeries) {
		log.Printf("publishing invalid series from %q: %v", status.Source, err)
	}
	status.Samples = s.Len()
	d.series.Store(s)
	d.status.Store(status)
}

// fail records err against the session without touching its samples.
func (d *Datasource) fail(ctx context.Context, status Status, err error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if ctx != d.session || ctx.Err() != nil {
		return
	}
	log.Printf("session %q: %v", status.Source, err)
	status.Err = err
	d.status.Store(status)
}

// LoadFromFile asks the user for a CSV file and replays it.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) error {
	file, err := expl.ChooseFile(".csv")
	if err != nil {
		return fmt.Errorf("failed choosing series file: %w", err)
	}
	source := "chosen file"
	if f, ok := file.(interface{ Name() string }); ok {
		source = filepath.Base(f.Name())
	}
	d.LoadFromStream(source, file)
	return nil
}

// LoadFromStream decodes a complete CSV series from r in the background. r
// is closed once it has been read.
func (d *Datasource) LoadFromStream(source string, r io.ReadCloser) {
	ctx := d.begin(ModeReplaying, source)
	go func() {
		status := Status{Mode: ModeReplaying, Source: source}
		s, err := ReadSeries(r)
		err = errors.Join(err, r.Close())
		if err != nil {
			d.fail(ctx, status, err)
			return
		}
		d.publish(ctx, s, status)
	}()
}

// LoadDemo publishes n generated samples.
func (d *Datasource) LoadDemo(n int) {
	source := fmt.Sprintf("demo (%d samples)", n)
	ctx := d.begin(ModeDemo, source)
	d.publish(ctx, GenerateDemo(n, DemoStart, 1), Status{Mode: ModeDemo, Source: source})
}

// Follow reads the CSV file at path and keeps reading as it grows. A new
// snapshot is published each time the reader catches up with the writer.
func (d *Datasource) Follow(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed opening %q: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed creating file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		return errors.Join(fmt.Errorf("failed watching %q: %w", path, err), watcher.Close(), file.Close())
	}
	source := filepath.Base(path)
	ctx := d.begin(ModeFollowing, source)
	go func() {
		defer func() {
			if err := errors.Join(watcher.Close(), file.Close()); err != nil {
				log.Printf("failed closing %q: %v", path, err)
			}
		}()
		d.follow(ctx, file, watcher, Status{Mode: ModeFollowing, Source: source})
	}()
	return nil
}

func (d *Datasource) follow(ctx context.Context, r io.Reader, watcher *fsnotify.Watcher, status Status) {
	csvReader := newCSVReader(newLineReader(r))
	var b seriesBuilder
	first := true
	for {
		rec, err := csvReader.Read()
		if err == nil {
			if first {
				first = false
				if isHeader(rec) {
					continue
				}
			}
			b.add(rec)
			continue
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			log.Printf("skipping malformed csv line: %v", err)
			continue
		} else if !errors.Is(err, io.EOF) {
			d.fail(ctx, status, fmt.Errorf("failed reading csv series: %w", err))
			return
		}
		if b.dirty {
			d.publish(ctx, b.snapshot(), status)
		}
		if !waitForWrite(ctx, watcher) {
			return
		}
	}
}

// waitForWrite blocks until the watched file is written to. It reports false
// when following should stop.
func waitForWrite(ctx context.Context, watcher *fsnotify.Watcher) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-watcher.Events:
			if !ok {
				return false
			}
			if ev.Has(fsnotify.Write) {
				return true
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				log.Printf("stopped following %q: %v", ev.Name, ev.Op)
				return false
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return false
			}
			log.Printf("file watcher error: %v", err)
		}
	}
}
