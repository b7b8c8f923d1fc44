package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/bethropolis/quill/internal/core"
	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/types"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (c *cli) newSpansCmd() *cobra.Command {
	var (
		all      bool
		language string
	)
	cmd := &cobra.Command{
		Use:   "spans <file>",
		Short: "Print the highlight spans of a file",
		Long: `Print one row per highlight span: start and end character offsets,
the span kind and the quoted text it covers.

Examples:
  quill spans Main.java
  quill spans --all --language C notes.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := core.NewFileStore(afero.NewOsFs())
			if _, err := store.Fs().Stat(args[0]); err != nil {
				return &core.IOError{Op: "load", Path: args[0], Err: err}
			}

			var opts []core.Option
			if cmd.Flags().Changed("language") {
				l := lang.GetByName(language)
				if l == nil {
					return fmt.Errorf("unknown language '%s'", language)
				}
				opts = append(opts, core.WithLanguage(l))
			}

			doc, err := store.Open(args[0], opts...)
			if err != nil {
				return err
			}
			defer doc.Close()

			spans := doc.Spans()
			if all {
				spans = types.Cover(spans, doc.Len())
			}
			return writeSpans(cmd, doc, spans)
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include plain text spans")
	cmd.Flags().StringVarP(&language, "language", "l", "", "language name instead of the file extension")
	return cmd
}

func writeSpans(cmd *cobra.Command, doc *core.Document, spans []types.Span) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', 0)
	for _, s := range spans {
		text, err := doc.Slice(s.Start, s.End)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%q\n", s.Start, s.End, s.Kind, text)
	}
	if len(spans) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: no spans (%s)\n", doc.Title(), doc.LanguageName())
	}
	return w.Flush()
}
