// Descriptor file read/write helpers with atomic persistence.
package slots

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/eliasbuenosdias/voice-changer/pkg/types"
)

// codec matches encoding/json output: sorted map keys, HTML escaping.
var codec = sonic.ConfigStd

// readDescriptor reads and parses the descriptor at path. The boolean is
// false when the file does not exist. A document that is not a JSON object
// fails with an error wrapping types.ErrNotObject.
func readDescriptor(path string) (map[string]any, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, true, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, true, nil
}

// parseDocument decodes data into a generic key-value map.
func parseDocument(data []byte) (map[string]any, error) {
	var v any
	if err := codec.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, types.ErrNotObject
	}
	return doc, nil
}

// writeDescriptor atomically replaces the file at path with data using the
// temp-file, fsync, rename pattern. The parent directory must exist.
func writeDescriptor(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".params-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing descriptor: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
