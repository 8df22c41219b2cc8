package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/webtree/pkg/notify"
	"github.com/willbeason/webtree/pkg/tree"
)

func TestRenderPNG(t *testing.T) {
	buf := &bytes.Buffer{}
	stats, err := RenderPNG(buf, tree.DefaultParams(), 80, 60)
	require.NoError(t, err)
	assert.Positive(t, stats.Segments)

	img, err := png.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderPNG_EncodeFailure(t *testing.T) {
	_, err := RenderPNG(failingWriter{}, tree.DefaultParams(), 8, 8)
	assert.ErrorIs(t, err, ErrEncode)
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "tree.png")

	_, err := SaveFile(path, tree.DefaultParams(), 40, 30)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestSaveFile_DefaultName(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := SaveFile("", tree.DefaultParams(), 10, 10)
	require.NoError(t, err)
	assert.FileExists(t, DefaultFileName)
}

func TestClipboard_NotATerminal(t *testing.T) {
	c := &Clipboard{Out: &bytes.Buffer{}}

	err := c.CopyPNG([]byte("png"))
	assert.ErrorIs(t, err, ErrClipboardUnavailable)
}

func TestClipboard_WritesOSC52(t *testing.T) {
	buf := &bytes.Buffer{}
	c := &Clipboard{Out: buf, Terminal: true}

	require.NoError(t, c.CopyPNG([]byte("png bytes")))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\x1b]52;c;"), "%q", out)
	payload := strings.TrimSuffix(strings.TrimPrefix(out, "\x1b]52;c;"), "\x07")

	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Equal(t, DataURL([]byte("png bytes")), string(decoded))
}

func TestClipboard_TooLarge(t *testing.T) {
	buf := &bytes.Buffer{}
	c := &Clipboard{Out: buf, Terminal: true, Limit: 16}

	err := c.CopyPNG(bytes.Repeat([]byte{1}, 64))
	assert.ErrorIs(t, err, ErrClipboardTooLarge)
	assert.Zero(t, buf.Len())
}

func TestDataURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AQID", DataURL([]byte{1, 2, 3}))
}

func TestClipboardNotice(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level notify.Level
		msg   string
	}{
		{name: "copied", err: nil, level: notify.Info, msg: MessageCopied},
		{name: "unavailable", err: ErrClipboardUnavailable, level: notify.Error, msg: MessageUnsupported},
		{name: "too large", err: ErrClipboardTooLarge, level: notify.Error, msg: MessageTooLarge},
		{name: "encode", err: ErrEncode, level: notify.Error, msg: MessageEncode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, msg := ClipboardNotice(tt.err)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.msg, msg)
		})
	}
}
