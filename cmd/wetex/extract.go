package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/woozymasta/wetex"
	"golang.org/x/sync/errgroup"
)

var extractFlags struct {
	outputDir string
	format    string
	quality   int
	jobs      int
	overwrite bool
	noConvert bool
	singleDir bool
	only      []string
	ignore    []string
}

var extractCmd = &cobra.Command{
	Use:   "extract <INPUT>...",
	Short: "Extract PKG entries, converting TEX payloads to image files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	f := extractCmd.Flags()
	f.StringVarP(&extractFlags.outputDir, "output", "o", "", "output directory (default from WETEX_OUTPUT_DIR or .)")
	f.StringVarP(&extractFlags.format, "format", "f", "auto", "target format: png,jpg,gif,webp,bmp,tiff,tga,auto")
	f.IntVarP(&extractFlags.quality, "quality", "q", 0, "JPEG quality 1-100 (default from WETEX_QUALITY or 90)")
	f.IntVarP(&extractFlags.jobs, "jobs", "j", 0, "worker count (default from WETEX_JOBS or logical CPU count)")
	f.BoolVar(&extractFlags.overwrite, "overwrite", false, "overwrite existing output files")
	f.BoolVar(&extractFlags.noConvert, "no-convert", false, "write raw entry bytes instead of converting TEX payloads")
	f.BoolVar(&extractFlags.singleDir, "single-dir", false, "flatten output into a single directory")
	f.StringSliceVar(&extractFlags.only, "only", nil, "only extract entries with these extensions")
	f.StringSliceVar(&extractFlags.ignore, "ignore", nil, "skip entries with these extensions")
}

func runExtract(cmd *cobra.Command, args []string) error {
	validFormats := map[string]bool{"png": true, "jpg": true, "gif": true, "webp": true, "bmp": true, "tiff": true, "tga": true, "auto": true}
	if !validFormats[extractFlags.format] {
		return newUsageError("unknown --format %q", extractFlags.format)
	}
	if extractFlags.quality != 0 && (extractFlags.quality < 1 || extractFlags.quality > 100) {
		return newUsageError("--quality must be between 1 and 100")
	}

	outDir := cfg.OutputDir
	if extractFlags.outputDir != "" {
		outDir = extractFlags.outputDir
	}
	quality := cfg.Quality
	if extractFlags.quality != 0 {
		quality = extractFlags.quality
	}
	jobs := cfg.Jobs
	if extractFlags.jobs != 0 {
		jobs = extractFlags.jobs
	}
	if jobs < 1 {
		jobs = 1
	}

	var failures int64
	for _, input := range args {
		if err := extractFile(input, outDir, quality, jobs); err != nil {
			logFailure(fmt.Sprintf("extract %s", input), err)
			atomic.AddInt64(&failures, 1)
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d input(s) failed", failures)
	}
	return nil
}

func extractFile(input, outDir string, quality, jobs int) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	pkg, err := wetex.ParsePackage(data)
	if err != nil && !errors.Is(err, wetex.ErrUnsupportedVersion) {
		return convertSingleTexture(input, data, outDir, quality)
	}
	if err != nil {
		slog.Warn("package uses an unrecognised magic, extracting anyway", "input", input, "error", err)
	}

	entries := filterEntries(pkg.Entries)
	slog.Info("extracting package", "input", input, "entries", len(entries), "jobs", jobs)

	bar := newProgress(len(entries), !quiet)
	defer bar.finish()

	g := new(errgroup.Group)
	g.SetLimit(jobs)
	var failed int64

	for _, e := range entries {
		e := e
		g.Go(func() error {
			defer bar.increment()
			if err := extractEntry(pkg, e, outDir, quality); err != nil {
				logFailure(fmt.Sprintf("entry %s", e.Path), err)
				atomic.AddInt64(&failed, 1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if failed > 0 {
		return fmt.Errorf("%d/%d entries failed", failed, len(entries))
	}
	return nil
}

func filterEntries(entries []wetex.PackageEntry) []wetex.PackageEntry {
	if len(extractFlags.only) == 0 && len(extractFlags.ignore) == 0 {
		return entries
	}
	out := make([]wetex.PackageEntry, 0, len(entries))
	for _, e := range entries {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(e.Path)), ".")
		if len(extractFlags.only) > 0 && !containsFold(extractFlags.only, ext) {
			continue
		}
		if containsFold(extractFlags.ignore, ext) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func containsFold(list []string, ext string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimPrefix(v, "."), ext) {
			return true
		}
	}
	return false
}

func extractEntry(pkg *wetex.Package, e wetex.PackageEntry, outDir string, quality int) error {
	raw, err := pkg.ExtractOne(e.Path)
	if err != nil {
		return err
	}

	relPath := e.Path
	if extractFlags.singleDir {
		relPath = filepath.Base(e.Path)
	}

	if extractFlags.noConvert || e.Kind != wetex.EntryKindTexture {
		return writeOutput(outDir, relPath, raw)
	}

	out, mimeType, err := wetex.Convert(raw, extractFlags.format, wetex.EncodeOptions{Quality: quality})
	if err != nil {
		return err
	}
	ext := extensionForMIME(mimeType)
	dest := strings.TrimSuffix(relPath, filepath.Ext(relPath)) + ext
	return writeOutput(outDir, dest, out)
}

func convertSingleTexture(input string, data []byte, outDir string, quality int) error {
	out, mimeType, err := wetex.Convert(data, extractFlags.format, wetex.EncodeOptions{Quality: quality})
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return writeOutput(outDir, base+extensionForMIME(mimeType), out)
}

func writeOutput(outDir, relPath string, data []byte) error {
	dest := filepath.Join(outDir, filepath.FromSlash(relPath))
	if !extractFlags.overwrite {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("%s already exists (use --overwrite)", dest)
		}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func extensionForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	case "image/x-tga":
		return ".tga"
	case "video/mp4":
		return ".mp4"
	default:
		return ".bin"
	}
}
