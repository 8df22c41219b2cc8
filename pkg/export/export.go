// Package export writes rendered trees out of the process: to PNG files and
// to the terminal's clipboard.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/willbeason/webtree/pkg/canvas"
	"github.com/willbeason/webtree/pkg/tree"
)

// DefaultFileName is the name a saved image gets when none is given.
const DefaultFileName = "image.png"

// MaxDimension caps the width and height of images rendered on request.
const MaxDimension = 8192

// ErrEncode is returned when a rendered tree cannot be encoded as an image.
var ErrEncode = errors.New("unable to encode image")

// RenderPNG renders params on a new width by height canvas and writes it as
// a PNG.
func RenderPNG(w io.Writer, params tree.Params, width, height int) (tree.Stats, error) {
	cv := canvas.New(width, height)
	stats := tree.Render(params, cv, width, height)

	if err := cv.EncodePNG(w); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return stats, nil
}

// PNGBytes is RenderPNG into memory.
func PNGBytes(params tree.Params, width, height int) ([]byte, tree.Stats, error) {
	buf := &bytes.Buffer{}
	stats, err := RenderPNG(buf, params, width, height)
	if err != nil {
		return nil, stats, err
	}
	return buf.Bytes(), stats, nil
}

// SaveFile renders params into a PNG file at path, creating parent
// directories as needed. An empty path means DefaultFileName.
func SaveFile(path string, params tree.Params, width, height int) (tree.Stats, error) {
	if path == "" {
		path = DefaultFileName
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return tree.Stats{}, err
		}
	}

	data, stats, err := PNGBytes(params, width, height)
	if err != nil {
		return stats, err
	}

	f, err := os.Create(path)
	if err != nil {
		return stats, err
	}

	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return stats, fmt.Errorf("writing %s: %w", path, err)
	}

	return stats, nil
}
