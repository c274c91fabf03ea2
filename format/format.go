// Package format selects the structured-file codec for a translation file
// and reads or writes trees through an afero filesystem.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/minios-linux/transmerge/jsonfile"
	"github.com/minios-linux/transmerge/tree"
	"github.com/minios-linux/transmerge/yamlfile"
)

// Type is a supported structured file type.
type Type string

const (
	JSON Type = "json"
	YAML Type = "yaml"
)

// ErrUnsupportedFileType is matched by UnsupportedFileTypeError via errors.Is.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// UnsupportedFileTypeError names a file whose extension has no codec.
type UnsupportedFileTypeError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("%s: unsupported file type %q (valid: json, yaml, yml)", e.Path, e.Ext)
}

func (e *UnsupportedFileTypeError) Is(target error) bool {
	return target == ErrUnsupportedFileType
}

// DecodeError is a malformed file, with the parser's diagnostic.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FromExt maps an extension (with or without the leading dot, any case)
// to a Type.
func FromExt(ext string) (Type, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return JSON, true
	case "yaml", "yml":
		return YAML, true
	}
	return "", false
}

// FromPath returns the Type of path, or an UnsupportedFileTypeError.
func FromPath(path string) (Type, error) {
	ext := filepath.Ext(path)
	t, ok := FromExt(ext)
	if !ok {
		return "", &UnsupportedFileTypeError{Path: path, Ext: strings.TrimPrefix(ext, ".")}
	}
	return t, nil
}

// Decode parses data with the codec for t.
func Decode(t Type, data []byte) (*tree.Tree, error) {
	switch t {
	case JSON:
		return jsonfile.Decode(data)
	case YAML:
		return yamlfile.Decode(data)
	}
	return nil, fmt.Errorf("%w %q", ErrUnsupportedFileType, t)
}

// Encode serialises tr with the codec for t.
func Encode(t Type, tr *tree.Tree) ([]byte, error) {
	switch t {
	case JSON:
		return jsonfile.Encode(tr)
	case YAML:
		return yamlfile.Encode(tr)
	}
	return nil, fmt.Errorf("%w %q", ErrUnsupportedFileType, t)
}

// ReadFile reads and decodes path, selecting the codec by its extension.
func ReadFile(fs afero.Fs, path string) (*tree.Tree, Type, error) {
	t, err := FromPath(path)
	if err != nil {
		return nil, "", err
	}
	tr, err := ReadFileAs(fs, path, t)
	return tr, t, err
}

// ReadFileAs reads and decodes path with an explicit codec.
func ReadFileAs(fs afero.Fs, path string, t Type) (*tree.Tree, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	tr, err := Decode(t, data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return tr, nil
}

// WriteFile encodes tr and writes it to path, creating parent directories.
// An existing YAML file at path is used as a template, so its comments and
// quoting survive the rewrite.
func WriteFile(fs afero.Fs, path string, t Type, tr *tree.Tree) error {
	data, err := encodeOver(fs, path, t, tr)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func encodeOver(fs afero.Fs, path string, t Type, tr *tree.Tree) ([]byte, error) {
	if t == YAML {
		if prev, err := afero.ReadFile(fs, path); err == nil {
			return yamlfile.EncodeOver(tr, prev)
		}
	}
	return Encode(t, tr)
}
