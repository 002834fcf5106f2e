package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/woozymasta/wetex"
)

var infoFlags struct {
	json bool
}

var infoCmd = &cobra.Command{
	Use:   "info <INPUT>...",
	Short: "Describe a PKG or TEX file without extracting it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoFlags.json, "json", false, "emit machine-readable JSON")
}

func runInfo(cmd *cobra.Command, args []string) error {
	var failures int
	for _, input := range args {
		if err := describeFile(input); err != nil {
			logFailure(fmt.Sprintf("info %s", input), err)
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d input(s) failed", failures)
	}
	return nil
}

func describeFile(input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	kind := wetex.Describe(data)

	if infoFlags.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"path": input, "kind": describeKindName(kind), "detail": kind})
	}

	switch v := kind.(type) {
	case wetex.PackageInfo:
		fmt.Printf("%s: package %s, %d entries\n", input, v.Magic, v.EntryCount)
		for _, e := range v.Entries {
			fmt.Printf("  %-10s %8d  %s\n", e.Kind, e.Size, e.Path)
		}
	case wetex.TextureInfo:
		fmt.Printf("%s: texture %dx%d (source %dx%d), format %s, mipmaps %d, animated %t, video %t\n",
			input, v.Width, v.Height, v.TextureWidth, v.TextureHeight, v.Format, v.MipmapCount, v.IsAnimated, v.IsVideo)
	default:
		fmt.Printf("%s: unrecognised\n", input)
	}
	return nil
}

func describeKindName(kind wetex.FileKind) string {
	switch kind.(type) {
	case wetex.PackageInfo:
		return "package"
	case wetex.TextureInfo:
		return "texture"
	default:
		return "unknown"
	}
}
