package ocr

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"recibo/internal/config"
	"recibo/internal/port"
)

type tesseractRecognizer struct {
	cfg    config.OCRConfig
	runner Runner
}

// NewRecognizer returns a Recognizer that shells out to tesseract.
func NewRecognizer(cfg config.OCRConfig, runner Runner) port.Recognizer {
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "spa"
	}
	if runner == nil {
		runner = NewExecRunner()
	}
	return &tesseractRecognizer{cfg: cfg, runner: runner}
}

func (r *tesseractRecognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	// tesseract <file> stdout -l <lang> --psm <n>
	args := []string{imagePath, "stdout", "-l", r.cfg.Language}
	if r.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(r.cfg.PSM))
	}

	out, errb, err := r.runner.Run(ctx, r.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract %s: %w: %s", filepath.Base(imagePath), err, errb)
	}
	return string(out), nil
}
