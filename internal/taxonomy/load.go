package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// RootKey is the single top-level key of a taxonomy document. It is matched
// case-insensitively so TOML and YAML files may spell it parent_categories.
const RootKey = "PARENT_CATEGORIES"

// Load reads a taxonomy document. The format is chosen by extension:
// .toml, .yaml/.yml, anything else is read as JSON. Categories whose value is
// not a list are kept with no allowed labels and logged as a warning.
func Load(path string, logger *zap.Logger) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy %s: %w", path, err)
	}
	return Decode(data, filepath.Ext(path), logger)
}

// Decode parses a taxonomy document held in memory. ext selects the format
// the same way Load does.
func Decode(data []byte, ext string, logger *zap.Logger) (*Taxonomy, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var doc map[string]any
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	raw, found := lookupRoot(doc)
	if !found {
		logger.Warn("taxonomy document has no categories", zap.String("key", RootKey))
		return New(nil), nil
	}
	parents, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an object, got %T", ErrMalformed, RootKey, raw)
	}

	categories := make(map[string][]string, len(parents))
	names := make([]string, 0, len(parents))
	for name := range parents {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		list, ok := parents[name].([]any)
		if !ok {
			logger.Warn("taxonomy category is not a list; ignoring its labels",
				zap.String("category", name), zap.String("type", fmt.Sprintf("%T", parents[name])))
			categories[name] = nil
			continue
		}
		labels := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				logger.Warn("taxonomy label is not a string; skipping",
					zap.String("category", name), zap.Any("value", item))
				continue
			}
			labels = append(labels, s)
		}
		categories[name] = labels
	}
	return New(categories), nil
}

func lookupRoot(doc map[string]any) (any, bool) {
	if v, ok := doc[RootKey]; ok {
		return v, true
	}
	for k, v := range doc {
		if strings.EqualFold(k, RootKey) {
			return v, true
		}
	}
	return nil, false
}
