package main

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"os/signal"
	"strings"

	"github.com/npillmayer/ordmap"
	"github.com/npillmayer/ordmap/wordindex"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wordidx [flags] file...",
	Short: "Print a sorted word index of text files",
	Long: `wordidx reads text or HTML files and prints every word together with
the number of its occurrences and the lines it occurs on.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return run(ctx, cmd.OutOrStdout(), args, opts)
	},
	SilenceUsage: true,
}

type options struct {
	index    wordindex.Options
	html     bool
	from, to string
	reverse  bool
	prune    int
	dot      string
	color    bool
	frag     int64
}

func optionsFromFlags(cmd *cobra.Command) (options, error) {
	var opts options
	var err error
	flags := cmd.Flags()
	level, _ := flags.GetString("trace")
	if err = setupTracing(level); err != nil {
		return opts, err
	}
	if opts.index.Language, err = flags.GetString("lang"); err != nil {
		return opts, err
	}
	if opts.index.FoldCase, err = flags.GetBool("fold"); err != nil {
		return opts, err
	}
	if opts.index.MinLength, err = flags.GetInt("min"); err != nil {
		return opts, err
	}
	if opts.html, err = flags.GetBool("html"); err != nil {
		return opts, err
	}
	if opts.from, err = flags.GetString("from"); err != nil {
		return opts, err
	}
	if opts.to, err = flags.GetString("to"); err != nil {
		return opts, err
	}
	if opts.reverse, err = flags.GetBool("reverse"); err != nil {
		return opts, err
	}
	if opts.prune, err = flags.GetInt("prune"); err != nil {
		return opts, err
	}
	if opts.dot, err = flags.GetString("dot"); err != nil {
		return opts, err
	}
	if opts.color, err = flags.GetBool("color"); err != nil {
		return opts, err
	}
	opts.frag, err = flags.GetInt64("frag")
	return opts, err
}

func setupTracing(level string) error {
	gtrace.CoreTracer = gologadapter.New()
	switch strings.ToLower(level) {
	case "error", "":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	case "info":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	case "debug":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	default:
		return fmt.Errorf("unknown trace level %q", level)
	}
	return nil
}

func run(ctx context.Context, w io.Writer, files []string, opts options) error {
	ix, err := wordindex.New(opts.index)
	if err != nil {
		return err
	}
	for _, name := range files {
		if err := addFile(ctx, ix, name, opts); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if opts.prune > 1 {
		ix.Prune(opts.prune)
	}
	if opts.dot != "" {
		if err := writeDot(ix.Map(), opts.dot); err != nil {
			return err
		}
	}
	gtrace.CoreTracer.Infof("index holds %d words in a tree of height %d",
		ix.Len(), ix.Map().Height())
	return wordindex.NewPrinter(opts.color).Print(w, selectWords(ix, opts))
}

func addFile(ctx context.Context, ix *wordindex.Index, name string, opts options) error {
	if !opts.html {
		return ix.LoadFile(ctx, name, opts.frag)
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return ix.AddHTML(f)
}

// selectWords returns the words to report, honouring --from, --to and
// --reverse.
func selectWords(ix *wordindex.Index, opts options) iter.Seq2[string, wordindex.Entry] {
	if !opts.reverse {
		return ix.Range(opts.from, opts.to)
	}
	return func(yield func(string, wordindex.Entry) bool) {
		for w, e := range ix.Backward() {
			if opts.to != "" && ix.Map().Config().Compare(w, opts.to) >= 0 {
				continue
			}
			if ix.Map().Config().Compare(w, opts.from) < 0 {
				return
			}
			if !yield(w, e) {
				return
			}
		}
	}
}

func writeDot(m *ordmap.Map[string, wordindex.Entry], name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := ordmap.Map2Dot(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.Bool("html", false, "input files are HTML")
	flags.StringP("lang", "l", "", "collate words by the rules of a language (BCP 47 tag)")
	flags.BoolP("fold", "f", false, "fold words to lower case")
	flags.Int("min", 1, "minimum length of an indexed word")
	flags.String("from", "", "first word to report")
	flags.String("to", "", "report words up to, but not including, this word")
	flags.BoolP("reverse", "r", false, "report in reverse order")
	flags.Int("prune", 0, "drop words occurring less often than this")
	flags.String("dot", "", "write the index tree in DOT format to this file")
	flags.Bool("color", false, "colour the report")
	flags.String("trace", "error", "trace level (error, info, debug)")
	flags.Int64("frag", 0, "fragment size for loading files (0 = automatic)")
}
