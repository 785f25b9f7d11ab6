package textfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/guiguan/caster"
)

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// ErrStarted is returned if a loader is subscribed to or run after it has
// been started.
var ErrStarted = errors.New("textfile: loader already started")

// ErrClosed is returned by operations on a loader which has been closed.
var ErrClosed = errors.New("textfile: loader closed")

// ErrNotText is returned for fragments which are not valid UTF-8.
var ErrNotText = errors.New("textfile: file is not valid UTF-8 text")

// Fragment is a run of complete lines of a text file.
type Fragment struct {
	Text string // content, including line terminators
	Pos  int64  // byte offset of Text within the file
	Line int    // number of the first line of Text, starting at 1
}

// Loader reads a text file and broadcasts its content as fragments.
type Loader struct {
	path     string         // file name
	info     os.FileInfo    // result from Stat(path)
	file     *os.File       // file handle
	fragSize int64          // recommended fragment length
	cast     *caster.Caster // broadcaster for fragments
	mx       sync.Mutex     // guards started
	started  bool
	stopped  atomic.Bool // set by Close
}

// Open opens a file, which must be a regular file, for loading. Clients may
// indicate a recommended fragment length. A value of 0 lets Open choose a
// sensible default depending on the file size. The file is opened
// synchronously, loading happens in Run.
func Open(name string, fragSize int64) (*Loader, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("textfile: %s is not a regular file", name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	if fragSize <= 0 || fragSize > tenKb {
		fragSize = defaultFragSize(fi.Size())
	}
	return &Loader{
		path:     name,
		info:     fi,
		file:     file,
		fragSize: fragSize,
		cast:     caster.New(nil), // we will broadcast messages when fragments are loaded
	}, nil
}

func defaultFragSize(size int64) int64 {
	switch {
	case size < 64:
		return max(size, 1)
	case size < 1024:
		return 64
	case size < tenKb:
		return 256
	case size < hundredKb:
		return 512
	case size < oneMb:
		return twoKb
	}
	return sixKb
}

// Name returns the name of the file.
func (l *Loader) Name() string {
	return l.path
}

// FragmentSize returns the recommended fragment length in effect.
func (l *Loader) FragmentSize() int64 {
	return l.fragSize
}

// Subscribe registers a consumer of fragments. Subscribers have to be
// registered before Run is called; fragments are not replayed. capacity is
// the number of fragments which may be buffered for the subscriber.
//
// The subscription ends when the loader has published the last fragment or
// when ctx is done.
func (l *Loader) Subscribe(ctx context.Context, capacity uint) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mx.Lock()
	defer l.mx.Unlock()
	if l.stopped.Load() {
		return nil, ErrClosed
	}
	if l.started {
		return nil, ErrStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	ch, ok := l.cast.Sub(ctx, capacity)
	if !ok {
		cancel()
		return nil, ErrStarted
	}
	return &Subscription{ch: ch, ctx: ctx, cancel: cancel}, nil
}

// Run reads the file and publishes it fragment by fragment to all
// subscribers. Run blocks until every fragment has been handed to the
// subscribers; clients usually call it in a goroutine of its own.
// Subscriptions end when Run returns.
//
// If the loader is closed while running, Run stops before publishing the
// next fragment and returns ErrClosed.
func (l *Loader) Run() error {
	l.mx.Lock()
	if l.started {
		l.mx.Unlock()
		if l.stopped.Load() {
			return ErrClosed
		}
		return ErrStarted
	}
	l.started = true
	l.mx.Unlock()
	defer l.cast.Close()
	defer l.file.Close()
	//
	var err error
	cnt := 0
	rd := bufio.NewReader(l.file)
	next := Fragment{Line: 1}
	var buf strings.Builder
	lines := 0
	for {
		line, rerr := rd.ReadString('\n')
		if line != "" {
			buf.WriteString(line)
			lines++
		}
		if rerr != nil && rerr != io.EOF {
			err = fmt.Errorf("textfile: error loading %s: %w", l.path, rerr)
			break
		}
		if buf.Len() > 0 && (int64(buf.Len()) >= l.fragSize || rerr == io.EOF) {
			next.Text = buf.String()
			if !utf8.ValidString(next.Text) {
				err = fmt.Errorf("%w: fragment at %d", ErrNotText, next.Pos)
				break
			}
			if l.stopped.Load() {
				err = ErrClosed
				break
			}
			l.cast.Pub(next)
			cnt++
			next = Fragment{
				Pos:  next.Pos + int64(buf.Len()),
				Line: next.Line + lines,
			}
			buf.Reset()
			lines = 0
		}
		if rerr == io.EOF {
			break
		}
	}
	tracer().Debugf("textfile: published %d fragments of %s", cnt, l.path)
	return err
}

// Close stops the loader. If Run has not been called yet, Close releases
// the file and ends all subscriptions. Otherwise a running Run stops before
// publishing its next fragment and releases the file itself.
// Closing a loader more than once is a no-op.
func (l *Loader) Close() error {
	l.mx.Lock()
	defer l.mx.Unlock()
	if l.stopped.Swap(true) || l.started {
		return nil
	}
	l.started = true
	l.cast.Close()
	return l.file.Close()
}

// Subscription receives the fragments of a loader.
type Subscription struct {
	ch     <-chan interface{}
	ctx    context.Context
	cancel context.CancelFunc
}

// Each calls fn for every fragment, in file order, until the loader has
// published the last fragment. If fn returns an error or the subscription's
// context is done, Each unsubscribes and returns that error.
//
// Fragments still in flight are discarded before Each returns, so the
// loader never blocks on a subscriber which has stopped reading. Each
// returns only after the loader has been run or closed.
func (s *Subscription) Each(fn func(Fragment) error) error {
	defer s.drain()
	for {
		select {
		case msg, ok := <-s.ch:
			if !ok {
				return s.ctx.Err()
			}
			frag, isFrag := msg.(Fragment)
			if !isFrag {
				continue
			}
			if err := fn(frag); err != nil {
				return err
			}
		case <-s.ctx.Done():
			return s.ctx.Err()
		}
	}
}

// drain ends the subscription and discards pending fragments until the
// loader has closed the channel, which it does at the latest with its next
// publish.
func (s *Subscription) drain() {
	s.cancel()
	for range s.ch {
	}
}
