package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tomasbasham/formdata"
)

// ErrAttachmentOutsideBase is returned for attachment names that escape the
// configured base directory.
var ErrAttachmentOutsideBase = errors.New("attachment outside base directory")

// attachFiles returns a copy of root in which every string starting with the
// attach prefix is replaced by the named file.
func attachFiles(root formdata.Mapping, cfg AttachConfig, logger *slog.Logger) (formdata.Mapping, error) {
	prefix := cfg.AttachPrefix()
	if prefix == "" {
		return root, nil
	}

	v, err := attachValue(root, prefix, cfg.BaseDir, logger)
	if err != nil {
		return nil, err
	}
	return v.(formdata.Mapping), nil
}

func attachValue(v formdata.Value, prefix, baseDir string, logger *slog.Logger) (formdata.Value, error) {
	switch v := v.(type) {
	case formdata.String:
		name, ok := strings.CutPrefix(string(v), prefix)
		if !ok || name == "" {
			return v, nil
		}
		path, err := attachmentPath(baseDir, name)
		if err != nil {
			return nil, err
		}
		return loadFile(path, logger)
	case formdata.Sequence:
		out := make(formdata.Sequence, len(v))
		for i, elem := range v {
			val, err := attachValue(elem, prefix, baseDir, logger)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	case formdata.Mapping:
		out := make(formdata.Mapping, len(v))
		for i, e := range v {
			val, err := attachValue(e.Value, prefix, baseDir, logger)
			if err != nil {
				return nil, err
			}
			out[i] = formdata.KV(e.Key, val)
		}
		return out, nil
	default:
		return v, nil
	}
}

// attachmentPath resolves name below baseDir. With a base directory set, name
// must be a local path that stays inside it; without one it is used as given.
func attachmentPath(baseDir, name string) (string, error) {
	if baseDir == "" {
		return name, nil
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q", ErrAttachmentOutsideBase, name)
	}
	return filepath.Join(baseDir, name), nil
}

func loadFile(path string, logger *slog.Logger) (*formdata.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment: %w", err)
	}
	defer f.Close()

	file, err := formdata.NewFile(filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	logger.Debug("Attached file", "path", path, "size", len(file.Content))
	return file, nil
}
