package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-node-config/internal/logger"
	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the resolver reads.
const EnvPrefix = "NODECONF_"

// Resource names looked up in the resource file system.
const (
	DefaultsResource = "nodeconf.yaml"
	UserResource     = "user.conf.yaml"
	TestResource     = "test-nodeconf.yaml"
	TestUserResource = "test-user.yaml"

	// UserDirFile is the user-scoped file, relative to the user directory.
	UserDirFile = "config/nodeconf.yaml"
)

// bootstrap holds the settings that locate the other sources. They are read
// from the process environment before any source is loaded.
type bootstrap struct {
	// ConfRes names an extra resource layered over the defaults.
	ConfRes string `env:"CONF_RES"`
	// ConfFile names a file layered over the user-scoped sources.
	ConfFile string `env:"CONF_FILE"`
	// Resources is a directory serving as the resource file system.
	Resources string `env:"RESOURCES"`
	// UserDir holds the user-scoped file; defaults to the working directory.
	UserDir string `env:"USER_DIR"`
}

var bootstrapVars = []string{
	EnvPrefix + "CONF_RES",
	EnvPrefix + "CONF_FILE",
	EnvPrefix + "RESOURCES",
	EnvPrefix + "USER_DIR",
}

func parseBootstrap(environ map[string]string) (bootstrap, error) {
	b, err := env.ParseAsWithOptions[bootstrap](env.Options{
		Environment: environ,
		Prefix:      EnvPrefix,
	})
	if err != nil {
		return bootstrap{}, fmt.Errorf("error getting bootstrap env configs: %w", err)
	}
	return b, nil
}

// Parse decodes data into a source. The format follows the extension of
// name: ".toml" is TOML, anything else YAML (which covers JSON).
func Parse(origin, name string, data []byte) (*Source, error) {
	tree := map[string]any{}

	switch strings.ToLower(path.Ext(name)) {
	case ".toml":
		t, err := toml.LoadBytes(data)
		if err != nil {
			return nil, &SourceLoadError{Origin: origin, Cause: err}
		}
		tree = t.ToMap()
	default:
		t, err := decodeYAML(data)
		if err != nil {
			return nil, &SourceLoadError{Origin: origin, Cause: err}
		}
		tree = t
	}

	return NewSource(origin, tree), nil
}

// decodeYAML decodes a document through yaml.Node so that numeric scalars
// which would not print back as written (leading zeros, overflow, exponent
// forms) keep their literal text. Hex keys made only of digits must reach
// the accessors unchanged.
func decodeYAML(data []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return map[string]any{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return map[string]any{}, nil
	}
	v, err := yamlValue(root)
	if err != nil {
		return nil, err
	}
	tree, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("line %d: top level must be a mapping", root.Line)
	}
	return tree, nil
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlValue(n.Alias)

	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil

	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		var merges []*yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.ShortTag() == "!!merge" {
				merges = append(merges, v)
				continue
			}
			val, err := yamlValue(v)
			if err != nil {
				return nil, err
			}
			m[k.Value] = val
		}
		// keys written in the mapping win over merged ones
		for _, mn := range merges {
			if err := mergeYAML(m, mn); err != nil {
				return nil, err
			}
		}
		return m, nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		switch n.ShortTag() {
		case "!!int", "!!float":
			if !sameLiteral(v, n.Value) {
				return n.Value, nil
			}
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
}

func mergeYAML(dst map[string]any, n *yaml.Node) error {
	v, err := yamlValue(n)
	if err != nil {
		return err
	}

	var srcs []any
	if list, ok := v.([]any); ok {
		srcs = list
	} else {
		srcs = []any{v}
	}
	for _, src := range srcs {
		m, ok := src.(map[string]any)
		if !ok {
			return fmt.Errorf("line %d: merge value must be a mapping", n.Line)
		}
		for k, val := range m {
			if _, set := dst[k]; !set {
				dst[k] = val
			}
		}
	}
	return nil
}

// sameLiteral reports whether the decoded number v renders as literal.
func sameLiteral(v any, literal string) bool {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t) == literal
	case int64:
		return strconv.FormatInt(t, 10) == literal
	case uint64:
		return strconv.FormatUint(t, 10) == literal
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64) == literal
	}
	return false
}

// LoadFile reads and parses the file at name.
func LoadFile(name string) (*Source, error) {
	origin := "file '" + name + "'"
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, &SourceLoadError{Origin: origin, Cause: err}
	}
	return Parse(origin, name, data)
}

// LoadResource reads and parses the resource name from fsys.
func LoadResource(fsys fs.FS, name string) (*Source, error) {
	origin := "resource '" + name + "'"
	if fsys == nil {
		return nil, &SourceLoadError{Origin: origin, Cause: fs.ErrNotExist}
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &SourceLoadError{Origin: origin, Cause: err}
	}
	return Parse(origin, name, data)
}

// loader reads the startup layers. A layer that cannot be loaded degrades
// to an empty source.
type loader struct {
	log       *logger.Logger
	resources fs.FS
	loadID    string
}

func (l *loader) resource(desc, name string) *Source {
	if name == "" {
		return l.present(desc, EmptySource(desc))
	}

	src, err := LoadResource(l.resources, name)
	return l.present(desc, l.degrade(desc, src, err))
}

func (l *loader) file(desc, name string) *Source {
	if name == "" {
		return l.present(desc, EmptySource(desc))
	}

	src, err := LoadFile(name)
	return l.present(desc, l.degrade(desc, src, err))
}

func (l *loader) degrade(desc string, src *Source, err error) *Source {
	if err == nil {
		return src
	}

	if errors.Is(err, fs.ErrNotExist) {
		l.log.Debug().Err(err).Str("loadId", l.loadID).Msgf("config source absent: %s", desc)
	} else {
		l.log.Warn().Err(err).Str("loadId", l.loadID).Msgf("config source skipped: %s", desc)
	}
	return EmptySource(desc)
}

// present logs whether a layer contributes anything, never its content.
func (l *loader) present(desc string, src *Source) *Source {
	flag := "yes"
	if src.Empty() {
		flag = "no"
	}
	l.log.Info().Str("present", flag).Str("loadId", l.loadID).Msgf("Config: %s", desc)
	return src
}

// envSource maps NODECONF_<PATH> variables onto dotted keys: "_" becomes
// "." and the result is matched case-insensitively against known. Keys
// that match nothing are lower-cased.
func envSource(environ map[string]string, known []string) *Source {
	index := make(map[string]string, len(known))
	for _, k := range known {
		index[strings.ToLower(k)] = k
	}

	names := make([]string, 0, len(environ))
	for name := range environ {
		if strings.HasPrefix(name, EnvPrefix) && !slices.Contains(bootstrapVars, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	kv := make([]string, 0, 2*len(names))
	for _, name := range names {
		rest := strings.TrimPrefix(name, EnvPrefix)
		if rest == "" {
			continue
		}

		dotted := strings.ToLower(strings.ReplaceAll(rest, "_", "."))
		key, ok := index[dotted]
		if !ok {
			key = dotted
		}
		kv = append(kv, key, environ[name])
	}

	// even length by construction
	src, _ := FromPairs("process environment", kv...)
	return src
}
