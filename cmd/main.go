package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/noders-team/go-gedcomx/internal/extract"
	"github.com/noders-team/go-gedcomx/pkg/codec"
	"github.com/noders-team/go-gedcomx/pkg/fileformat"
	"github.com/noders-team/go-gedcomx/pkg/manifest"
	"github.com/noders-team/go-gedcomx/pkg/model"
	"github.com/noders-team/go-gedcomx/pkg/timestamp"
)

const (
	gxRootAttr     = "GX-Root"
	dcModifiedAttr = "X-DC-modified"
)

var (
	debug     bool
	output    string
	as        string
	createdBy string
	root      string
)

// mediaTypes maps source file extensions accepted by pack to content types.
var mediaTypes = map[string]string{
	".xml":  model.ConclusionV1XMLMediaType,
	".json": model.ConclusionV1JSONMediaType,
	".yaml": model.ConclusionV1YAMLMediaType,
	".yml":  model.ConclusionV1YAMLMediaType,
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gedx <command> [--debug]",
		Short: "GEDCOM X file tool",
		Long: `A command-line interface tool for inspecting and building GEDCOM X (.gedx) files.

A GEDCOM X file is a ZIP archive of serialized genealogy resources whose last entry,
META-INF/MANIFEST.MF, carries the file and per-entry attributes.`,
		Example: `  gedx inspect ./family.gedx
  gedx cat ./family.gedx persons/98765 --as application/x-gedcomx-conclusion-v1+yaml
  gedx pack ./resources --output ./family.gedx --root persons/98765.xml
  gedx unpack ./family.gedx --output ./family --debug`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if debug {
				zerolog.SetGlobalLevel(zerolog.TraceLevel)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable trace logging")

	inspectCmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the file attributes and every entry with its attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0])
		},
	}

	catCmd := &cobra.Command{
		Use:   "cat <file> <entry> [--as <media-type>]",
		Short: "Decode an entry and print it re-encoded",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(cmd.OutOrStdout(), args[0], args[1], as)
		},
	}
	catCmd.Flags().StringVar(&as, "as", model.ConclusionV1JSONMediaType, "media type of the output")

	packCmd := &cobra.Command{
		Use:   "pack <dir> --output <file> [--created-by <name>] [--root <entry>]",
		Short: "Build a GEDCOM X file from XML, JSON and YAML resource files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output parameter is required")
			}
			return runPack(args[0], output, createdBy, root)
		},
	}
	packCmd.Flags().StringVar(&output, "output", "", "path of the GEDCOM X file to create (required)")
	packCmd.Flags().StringVar(&createdBy, "created-by", "gedx", "value of the Created-By attribute")
	packCmd.Flags().StringVar(&root, "root", "", "entry to mark with GX-Root: true")
	packCmd.MarkFlagRequired("output")

	unpackCmd := &cobra.Command{
		Use:   "unpack <file> --output <dir>",
		Short: "Extract the raw entries of a GEDCOM X file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output parameter is required")
			}
			return runUnpack(args[0], output)
		},
	}
	unpackCmd.Flags().StringVar(&output, "output", "", "directory the entries are written to (required)")
	unpackCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(inspectCmd, catCmd, packCmd, unpackCmd)
	return rootCmd
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runInspect(w io.Writer, path string) error {
	f, err := fileformat.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}
	defer f.Close()

	attrs := f.Attributes()
	fmt.Fprintln(w, "attributes:")
	for _, name := range sortedKeys(attrs) {
		fmt.Fprintf(w, "  %s: %s\n", name, attrs[name])
	}

	fmt.Fprintln(w, "entries:")
	for _, e := range f.Entries() {
		fmt.Fprintf(w, "  %s (%d bytes, modified %s)\n", e.Name(), e.Size(), timestamp.FormatAsXMLUTC(e.Modified()))
		entryAttrs := e.Attributes()
		for _, name := range sortedKeys(entryAttrs) {
			fmt.Fprintf(w, "    %s: %s\n", name, entryAttrs[name])
		}
	}
	return nil
}

func runCat(w io.Writer, path, entryName, mediaType string) error {
	registry, err := codec.DefaultRegistry()
	if err != nil {
		return err
	}
	encoder, err := registry.Lookup(mediaType)
	if err != nil {
		return err
	}

	f, err := fileformat.OpenFile(path, fileformat.WithRegistry(registry))
	if err != nil {
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}
	defer f.Close()

	name, err := fileformat.NormalizeEntryName(entryName)
	if err != nil {
		return err
	}
	e, ok := f.Entry(name)
	if !ok {
		return fmt.Errorf("entry '%s' not found in '%s'", name, path)
	}
	resource, err := f.ReadResource(e)
	if err != nil {
		return err
	}
	return encoder.Encode(w, resource)
}

func runPack(dir, outputFile, createdBy, rootEntry string) (err error) {
	registry, err := codec.DefaultRegistry()
	if err != nil {
		return err
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", outputFile, err)
	}
	w, err := fileformat.NewWriter(out, fileformat.WithRegistry(registry))
	if err != nil {
		out.Close()
		return err
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if createdBy != "" {
		if err := w.AddAttribute(manifest.CreatedByAttr, createdBy); err != nil {
			return err
		}
	}

	added := 0
	absOutput, _ := filepath.Abs(outputFile)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if abs, _ := filepath.Abs(path); abs == absOutput {
			return nil
		}
		contentType, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]
		if !ok {
			log.Debug().Msgf("skipping %s", path)
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if err := packFile(w, registry, path, name, contentType, name == rootEntry); err != nil {
			return fmt.Errorf("failed to pack '%s': %w", path, err)
		}
		added++
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Msgf("packed %d entries into %s", added, outputFile)
	return nil
}

func packFile(w *fileformat.Writer, registry *codec.Registry, path, name, contentType string, isRoot bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	serializer, err := registry.Lookup(contentType)
	if err != nil {
		return err
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	resource, err := serializer.Decode(src)
	if err != nil {
		return err
	}

	opts := []fileformat.EntryOption{
		fileformat.WithLastModified(info.ModTime()),
		fileformat.WithAttribute(dcModifiedAttr, timestamp.FormatAsXMLUTC(info.ModTime())),
	}
	if isRoot {
		opts = append(opts, fileformat.WithAttribute(gxRootAttr, "true"))
	}
	_, err = w.AddResource(contentType, name, resource, opts...)
	return err
}

func runUnpack(path, outputDir string) error {
	f, err := fileformat.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}
	defer f.Close()

	if err := extract.ExtractTo(f, outputDir); err != nil {
		return err
	}
	log.Info().Msgf("extracted %d entries into %s", len(f.Entries()), outputDir)
	return nil
}
