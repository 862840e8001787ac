package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/pagesmith/codec"
	"github.com/eringen/pagesmith/generator"
	"github.com/eringen/pagesmith/page"
	"github.com/eringen/pagesmith/share"
)

// now is replaced in tests.
var now = time.Now

var (
	inputPath  string
	outputPath string
	origin     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a page from product details",
	Long: `Reads product details as JSON (the editor's form fields, e.g.
{"productName":"Acme","tone":"bold","keyFeatures":["Fast"]}) and writes a
shareable page envelope as JSON, ready for "pagesmith encode".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := readInput(cmd, inputPath)
		if err != nil {
			return err
		}
		var form page.UserFormData
		if err := json.Unmarshal(b, &form); err != nil {
			return fmt.Errorf("parse product details: %w", err)
		}
		sections := generator.BuiltinSections(generator.Generate(form))
		data := page.NewShareableData(sections, page.DefaultTheme(), form, now().UnixMilli())
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(cmd, outputPath, append(out, '\n'))
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a page envelope into a share link",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := readInput(cmd, inputPath)
		if err != nil {
			return err
		}
		var candidate any
		if err := json.Unmarshal(b, &candidate); err != nil {
			return fmt.Errorf("parse envelope: %w", err)
		}
		if !codec.Validate(candidate) {
			return fmt.Errorf("envelope is missing sections, theme, formData, timestamp or version")
		}
		var data page.ShareableData
		if err := json.Unmarshal(b, &data); err != nil {
			return fmt.Errorf("parse envelope: %w", err)
		}
		link, err := share.CreateFrom(data, origin)
		if err != nil {
			return err
		}
		return writeOutput(cmd, outputPath, []byte(link.URL+"\n"))
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <token|link>",
	Short: "Print the page envelope carried by a share link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := openArg(args[0])
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(view.Data, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(cmd, outputPath, append(out, '\n'))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <token|link>",
	Short: "Render a share link as a standalone HTML file",
	Long: `Renders the page carried by a share link. Without -o the file is named
after the product, e.g. acme-analytics.html; use -o - for stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := openArg(args[0])
		if err != nil {
			return err
		}
		html, err := view.ExportHTML()
		if err != nil {
			return err
		}
		path := outputPath
		if path == "" {
			path = view.Filename()
		}
		if err := writeOutput(cmd, path, []byte(html)); err != nil {
			return err
		}
		if path != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
		}
		return nil
	},
}

// openArg accepts a bare token or a full share link.
func openArg(arg string) (*share.View, error) {
	arg = strings.TrimSpace(arg)
	if strings.Contains(arg, codec.SharedPrefix) {
		if u, err := url.Parse(arg); err == nil {
			return share.OpenPath(u.Path)
		}
	}
	return share.Open(arg)
}

func init() {
	for _, c := range []*cobra.Command{generateCmd, encodeCmd} {
		c.Flags().StringVarP(&inputPath, "input", "i", "-", "input file (- for stdin)")
	}
	for _, c := range []*cobra.Command{generateCmd, encodeCmd, decodeCmd} {
		c.Flags().StringVarP(&outputPath, "output", "o", "", "output file (- or empty for stdout)")
	}
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (- for stdout, default <product>.html)")
	encodeCmd.Flags().StringVar(&origin, "origin", "http://localhost:3000", "origin the link is served from")
	rootCmd.AddCommand(generateCmd, encodeCmd, decodeCmd, exportCmd)
}
