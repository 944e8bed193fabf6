// Package ocr wraps the external recognition binaries (ImageMagick and
// tesseract) behind the port interfaces. Nothing in here is assumed
// accurate: output text is best-effort and the caller decides what to
// do with it.
package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"recibo/internal/config"
	"recibo/internal/port"
)

type magickPreprocessor struct {
	cfg    config.OCRConfig
	runner Runner
}

// NewPreprocessor returns a Preprocessor that shells out to ImageMagick
// to produce a grayscale, Otsu-thresholded PNG. PDF sources are
// rasterized at 300 DPI (first page).
func NewPreprocessor(cfg config.OCRConfig, runner Runner) port.Preprocessor {
	if cfg.Magick == "" {
		cfg.Magick = "magick"
	}
	if runner == nil {
		runner = NewExecRunner()
	}
	return &magickPreprocessor{cfg: cfg, runner: runner}
}

func (p *magickPreprocessor) Normalize(ctx context.Context, srcPath string) (string, error) {
	out, err := os.CreateTemp(p.cfg.WorkDir, "normalized-*.png")
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}
	outPath := out.Name()
	_ = out.Close()

	var args []string
	src := srcPath
	if strings.EqualFold(filepath.Ext(srcPath), ".pdf") {
		args = append(args, "-density", "300")
		src = srcPath + "[0]"
	}
	args = append(args, src, "-colorspace", "Gray", "-auto-threshold", "OTSU", outPath)

	if _, errb, err := p.runner.Run(ctx, p.cfg.Magick, args...); err != nil {
		_ = os.Remove(outPath)
		return "", fmt.Errorf("magick normalize %s: %w: %s", filepath.Base(srcPath), err, errb)
	}
	return outPath, nil
}
