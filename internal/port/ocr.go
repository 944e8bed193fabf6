package port

import "context"

// Preprocessor normalizes a source artifact (photo, scan, PDF) into an
// image the recognizer can work with. It fails with a descriptive error
// if the source cannot be decoded.
type Preprocessor interface {
	// Normalize returns the path of the normalized image.
	Normalize(ctx context.Context, srcPath string) (string, error)
}

// Recognizer extracts text from a normalized image. Output is
// best-effort: it may be empty or garbled and is never assumed
// accurate.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}
