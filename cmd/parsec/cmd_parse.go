package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dhamidi/parsec/ebnf"
	"github.com/dhamidi/parsec/format"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("parsec.cli")

func newParseCmd() *cobra.Command {
	var p parseRun

	cmd := &cobra.Command{
		Use:   "parse <grammar> <input>",
		Short: "Parse a file with a grammar and dump the syntax tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.grammarPath, p.inputPath = args[0], args[1]
			p.out, p.errOut = cmd.OutOrStdout(), cmd.ErrOrStderr()

			if _, err := format.New(p.format, io.Discard); err != nil {
				return err
			}

			err := p.run()
			if !p.watch {
				return err
			}
			if err != nil {
				fmt.Fprintln(p.errOut, err)
			}
			return p.watchFiles(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&p.start, "start", "", "start production (defaults to the first production of the grammar)")
	cmd.Flags().StringVarP(&p.format, "format", "f", "json", fmt.Sprintf("output format %v", format.Names()))
	cmd.Flags().BoolVar(&p.skipSpace, "skip-space", false, "skip whitespace between the tokens of non-lexical productions")
	cmd.Flags().BoolVarP(&p.watch, "watch", "w", false, "parse again whenever the grammar or the input changes")
	cmd.Flags().BoolVar(&p.digest, "digest", false, "print the BLAKE2b digest of the tree instead of the tree")

	return cmd
}

type parseRun struct {
	grammarPath string
	inputPath   string
	start       string
	format      string
	skipSpace   bool
	watch       bool
	digest      bool

	out    io.Writer
	errOut io.Writer
}

func (p *parseRun) run() error {
	opts := []ebnf.Option{ebnf.WithFile(p.inputPath)}
	if p.skipSpace {
		opts = append(opts, ebnf.WithSkipSpace())
	}
	grammar, err := ebnf.Load(p.grammarPath, opts...)
	if err != nil {
		return fmt.Errorf("load grammar: %w", err)
	}

	start := p.start
	if start == "" {
		start = grammar.Start()
	}

	input, err := os.ReadFile(p.inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	node, err := grammar.Parse(start, input)
	if err != nil {
		return err
	}

	if p.digest {
		sum, err := format.Digest(node)
		if err != nil {
			return fmt.Errorf("digest: %w", err)
		}
		fmt.Fprintln(p.out, sum)
		return nil
	}

	encoder, err := format.New(p.format, p.out)
	if err != nil {
		return err
	}
	if err := encoder.Encode(node); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// watchFiles runs p again after every change to the grammar or the input
// until ctx is done. Directories are watched rather than the files, so
// editors that save by renaming a new file into place are noticed.
func (p *parseRun) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]bool{}
	for _, path := range []string{p.grammarPath, p.inputPath} {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			log.Debugf("%s changed", event.Name)
			if err := p.run(); err != nil {
				fmt.Fprintln(p.errOut, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch: %s", err)
		}
	}
}
