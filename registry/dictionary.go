package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/fixwire/fixwire/schema"
)

// DictionaryError reports a rejected tag definition while loading a dictionary.
type DictionaryError struct {
	Path   string
	Tag    int
	Reason string
}

func (e *DictionaryError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid tag %d: %s", e.Tag, e.Reason)
	}
	return fmt.Sprintf("%s: invalid tag %d: %s", e.Path, e.Tag, e.Reason)
}

// LoadDictionary loads supplemental tag definitions from a YAML or JSON
// dictionary file, or from every dictionary file under a directory. Loaded
// definitions extend the built-in table; a definition for an already known
// tag replaces it. Must complete before the registry is shared for lookups.
func (r *Registry) LoadDictionary(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("dictionary path does not exist: %w", err)
	}

	if !info.IsDir() {
		if !isDictionaryFile(path) {
			return fmt.Errorf("file %s is not a dictionary file (.yaml, .yml or .json)", path)
		}
		return r.loadDictionaryFile(path)
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isDictionaryFile(p) {
			return nil
		}
		return r.loadDictionaryFile(p)
	})
	if err != nil {
		return fmt.Errorf("failed to walk dictionary directory: %w", err)
	}
	return nil
}

func isDictionaryFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// loadDictionaryFile reads and registers a single dictionary file.
func (r *Registry) loadDictionaryFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dictionary: %w", err)
	}

	var dicts []*schema.Dictionary
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dicts, err = decodeJSONDictionary(data)
	} else {
		dicts, err = decodeYAMLDictionary(data)
	}
	if err != nil {
		return fmt.Errorf("failed to decode dictionary %s: %w", path, err)
	}

	for _, dict := range dicts {
		for _, tag := range dict.Tags {
			if err := r.Register(tag); err != nil {
				var de *DictionaryError
				if errors.As(err, &de) {
					de.Path = path
				}
				return err
			}
		}
	}
	return nil
}

// decodeYAMLDictionary decodes a dictionary that may span multiple YAML
// documents in one file.
func decodeYAMLDictionary(data []byte) ([]*schema.Dictionary, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var dicts []*schema.Dictionary
	for {
		var dict schema.Dictionary
		if err := dec.Decode(&dict); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		dicts = append(dicts, &dict)
	}
	return dicts, nil
}

func decodeJSONDictionary(data []byte) ([]*schema.Dictionary, error) {
	var dict schema.Dictionary
	if err := gojson.Unmarshal(data, &dict); err != nil {
		return nil, err
	}
	return []*schema.Dictionary{&dict}, nil
}
