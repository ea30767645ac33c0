package main

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newLogger returns a console logger writing to w. Only errors are logged
// unless verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.ErrorLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.RFC3339TimeEncoder
	encoder := zapcore.NewConsoleEncoder(config)

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}

// lookupEncoding returns the encoding registered under name in the WHATWG
// encoding standard, e.g utf-16le, latin1 or shift_jis.
func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown encoding %q", name)
	}
	return enc, nil
}

// autoEncoding names the input encoding that is guessed from the source.
const autoEncoding = "auto"

// decodeSource converts the source to utf-8, src is returned as is when no
// encoding is named. With the auto encoding, valid utf-8 is kept and other
// input is decoded with the first detected charset that converts it.
func decodeSource(src []byte, name string) ([]byte, error) {
	switch {
	case name == "":
		return src, nil
	case strings.EqualFold(name, autoEncoding):
		if utf8.Valid(src) {
			return src, nil
		}
		return detectAndDecode(src)
	}

	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(newDecoder(enc), src)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode source as %s", name)
	}
	return out, nil
}

// newDecoder decodes with enc unless the input starts with a byte order
// mark, which then selects the utf encoding and is dropped.
func newDecoder(enc encoding.Encoding) transform.Transformer {
	return unicode.BOMOverride(enc.NewDecoder())
}

func detectAndDecode(src []byte) ([]byte, error) {
	results, err := chardet.NewTextDetector().DetectAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "error detecting encoding")
	}
	for _, r := range results {
		enc, err := htmlindex.Get(r.Charset)
		if err != nil {
			continue
		}
		out, _, err := transform.Bytes(newDecoder(enc), src)
		if err == nil && utf8.Valid(out) {
			return out, nil
		}
	}
	return nil, errors.New("unable to convert source to utf-8")
}

// openOutput returns a writer that encodes its utf-8 input to the named
// encoding. The returned close function flushes the encoder, it does not
// close w.
func openOutput(w io.Writer, name string) (io.Writer, func() error, error) {
	if name == "" {
		return w, func() error { return nil }, nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, nil, err
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return tw, tw.Close, nil
}
