package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/iw2rmb/inkwell/document"
)

func importCmd() *cobra.Command {
	var output string

	cmd := cobra.Command{
		Use:   "import [FILE.md]",
		Short: "Convert Markdown to markup",
		Long: `Render Markdown and keep what the document model supports: paragraphs,
bold, italic, strikethrough, inline code and images. Headings, list items and
quotes become paragraphs. Reads stdin when FILE is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			doc, err := importMarkdown(data)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			out := document.Serialize(doc)
			if output != "" {
				return writeFile(output, []byte(out))
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out+"\n")
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the markup to this file instead of stdout.")

	return &cmd
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// importMarkdown converts Markdown into a document. Empty paragraphs, such
// as the ones left around a standalone image, are dropped.
func importMarkdown(src []byte) (document.Document, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return document.Document{}, fmt.Errorf("rendering markdown: %w", err)
	}
	doc, err := document.Parse(buf.String())
	if err != nil {
		return document.Document{}, err
	}

	kept := doc.Blocks[:0]
	for _, b := range doc.Blocks {
		if b.IsParagraph() && b.Len() == 0 {
			continue
		}
		kept = append(kept, b)
	}
	if len(kept) == 0 {
		return document.Empty(), nil
	}
	return document.New(kept...), nil
}
