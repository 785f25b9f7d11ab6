package wordindex

import (
	"context"
	"errors"
	"strings"

	"github.com/npillmayer/ordmap/textfile"
)

// LoadFile indexes the words of a text file. The file is read by a
// textfile.Loader in fragments of about fragSize bytes (0 selects a default)
// and indexed while it is being loaded. Line numbers are those of the file.
//
// If ctx is done before the file has been indexed, LoadFile returns the
// context's error; words indexed so far stay in the index.
func (ix *Index) LoadFile(ctx context.Context, name string, fragSize int64) error {
	loader, err := textfile.Open(name, fragSize)
	if err != nil {
		return err
	}
	sub, err := loader.Subscribe(ctx, 4)
	if err != nil {
		loader.Close()
		return err
	}
	stop := context.AfterFunc(ctx, func() { loader.Close() })
	defer stop()
	errc := make(chan error, 1)
	go func() {
		errc <- loader.Run()
	}()
	err = sub.Each(func(frag textfile.Fragment) error {
		line := frag.Line
		for text := range strings.Lines(frag.Text) {
			if err := ix.AddLine(text, line); err != nil {
				loader.Close()
				return err
			}
			line++
		}
		return nil
	})
	if rerr := <-errc; err == nil {
		err = rerr
	}
	if errors.Is(err, textfile.ErrClosed) && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err == nil {
		tracer().Infof("wordindex: indexed %s, %d distinct words", name, ix.Len())
	}
	return err
}
