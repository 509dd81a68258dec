// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MKhiriev/go-node-config/internal/config/resources"
	"github.com/MKhiriev/go-node-config/internal/genesis"
	"github.com/MKhiriev/go-node-config/internal/identity"
	"github.com/MKhiriev/go-node-config/internal/ipresolver"
	"github.com/MKhiriev/go-node-config/internal/logger"
	"github.com/MKhiriev/go-node-config/internal/network"
	"github.com/MKhiriev/go-node-config/models"
	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/core"
)

// Options control how New assembles the configuration.
type Options struct {
	// Resources is the resource file system holding user.conf.yaml, the
	// NODECONF_CONF_RES resource, test resources and genesis files. When
	// nil, the NODECONF_RESOURCES directory is used if set.
	Resources fs.FS
	// UserDir holds config/nodeconf.yaml. When empty, NODECONF_USER_DIR or
	// the working directory is used.
	UserDir string
	// Env is the process environment as "KEY=value" pairs. nil reads
	// os.Environ.
	Env []string
	// API is layered over every file and resource.
	API *Source
	// Test enables the test-scoped resources.
	Test bool

	Logger           *logger.Logger
	BindResolver     ipresolver.Resolver
	ExternalResolver ipresolver.Resolver
	GenesisLoader    genesis.Loader
	BuildInfo        models.AppBuildInfo
}

// overrides are the programmatic test overrides. A nil field defers to
// the configuration.
type overrides struct {
	databaseDir      *string
	databaseReset    *bool
	syncEnabled      *bool
	discoveryEnabled *bool
	genesisInfo      *string
}

// Properties is the validated node configuration.
//
// Readers may run concurrently. Overrides replace the stack atomically but
// must be serialized by the owner.
type Properties struct {
	log       *logger.Logger
	buildInfo models.AppBuildInfo
	bindRes   ipresolver.Resolver
	extRes    ipresolver.Resolver
	genLoader genesis.Loader
	network   *network.Selector

	mu    sync.RWMutex
	stack *Stack
	ov    overrides

	idMu       sync.Mutex
	identities map[string]*identity.Manager

	bindMu sync.Mutex
	bindIP string
	extMu  sync.Mutex
	extIP  string

	genMu       sync.Mutex
	genesis     *core.Genesis
	genesisName string
}

// New loads every layer, validates the result and returns it. On error no
// Properties value is returned.
func New(opts Options) (*Properties, error) {
	log := logger.OrNop(opts.Logger).Component("config")

	environ := opts.Env
	if environ == nil {
		environ = os.Environ()
	}
	envMap := env.ToMap(environ)

	boot, err := parseBootstrap(envMap)
	if err != nil {
		return nil, err
	}

	res := opts.Resources
	if res == nil && boot.Resources != "" {
		res = os.DirFS(boot.Resources)
	}

	userDir := opts.UserDir
	if userDir == "" {
		userDir = boot.UserDir
	}
	if userDir == "" {
		if userDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("error resolving user dir: %w", err)
		}
	}

	st := NewStack()
	l := &loader{log: log, resources: res, loadID: st.ID()}

	defaults, err := LoadResource(resources.FS, DefaultsResource)
	if err != nil {
		return nil, fmt.Errorf("error loading built-in defaults: %w", err)
	}
	l.present("default properties from resource '"+DefaultsResource+"'", defaults)

	layers := []*Source{
		defaults,
		l.resource("user properties from "+EnvPrefix+"CONF_RES resource '"+boot.ConfRes+"'", boot.ConfRes),
		l.resource("user properties from resource '"+UserResource+"'", UserResource),
	}
	userFile := filepath.Join(userDir, filepath.FromSlash(UserDirFile))
	layers = append(layers,
		l.file("user properties from file '"+userFile+"'", userFile),
		l.file("user properties from "+EnvPrefix+"CONF_FILE file '"+boot.ConfFile+"'", boot.ConfFile),
	)
	if opts.Test {
		layers = append(layers,
			l.resource("test properties from resource '"+TestResource+"'", TestResource),
			l.resource("test properties from resource '"+TestUserResource+"'", TestUserResource),
		)
	}

	api := opts.API
	if api == nil {
		api = EmptySource("api")
	}
	layers = append(layers, l.present("config passed via API", api))

	for _, src := range layers {
		st = st.Push(src)
	}
	st = st.Push(l.present("process environment "+EnvPrefix+"*", envSource(envMap, st.Keys())))

	p := &Properties{
		log:        log,
		buildInfo:  opts.BuildInfo,
		bindRes:    opts.BindResolver,
		extRes:     opts.ExternalResolver,
		genLoader:  opts.GenesisLoader,
		network:    network.NewSelector(),
		identities: make(map[string]*identity.Manager),
	}
	if p.bindRes == nil {
		p.bindRes = ipresolver.NewDialResolver("")
	}
	if p.extRes == nil {
		p.extRes = ipresolver.NewHTTPResolver("")
	}
	if p.genLoader == nil {
		p.genLoader = genesis.NewLoader(res)
	}

	if err := Validate(p.view(st)); err != nil {
		log.Error().Err(err).Str("loadId", st.ID()).Msg("config validation failed")
		return nil, err
	}
	p.stack = st

	return p, nil
}

// view returns an unmemoized Properties reading st with the current
// overrides. Validation runs against a view so that a rejected stack is
// never installed.
func (p *Properties) view(st *Stack) *Properties {
	return &Properties{
		log:       p.log,
		buildInfo: p.buildInfo,
		network:   p.network,
		stack:     st,
		ov:        p.currentOverrides(),
	}
}

// Stack returns the current stack.
func (p *Properties) Stack() *Stack {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stack
}

// LoadID identifies the startup load in logs.
func (p *Properties) LoadID() string {
	return p.Stack().ID()
}

// Override pushes src over every existing layer. When the result fails
// validation the previous configuration stays in place and the error is
// returned.
func (p *Properties) Override(src *Source) error {
	if src == nil {
		return nil
	}

	next := p.Stack().Push(src)
	if err := Validate(p.view(next)); err != nil {
		p.log.Error().Err(err).Str("origin", src.Origin()).Str("loadId", next.ID()).Msg("config override rejected")
		return err
	}

	p.mu.Lock()
	p.stack = next
	p.mu.Unlock()

	p.log.Info().Str("origin", src.Origin()).Str("loadId", next.ID()).Int("layers", next.Len()).Msg("config override applied")
	return nil
}

// OverridePairs pushes alternating keys and values, e.g.
// OverridePairs("peer.listen.port", "30304", "sync.enabled", "false").
func (p *Properties) OverridePairs(kv ...string) error {
	src, err := FromPairs("override pairs", kv...)
	if err != nil {
		return err
	}
	return p.Override(src)
}

// OverrideMap pushes m, typically parsed command line options.
func (p *Properties) OverrideMap(m map[string]string) error {
	return p.Override(FromMap("override map", m))
}

// Lookup returns the merged value of key.
func (p *Properties) Lookup(key string) (any, bool) {
	return p.Stack().Lookup(key)
}

// Has reports whether key is defined.
func (p *Properties) Has(key string) bool {
	return p.Stack().Has(key)
}

// String returns key as a string.
func (p *Properties) String(key string) (string, error) {
	v, ok := p.Lookup(key)
	if !ok {
		return "", missing(key)
	}
	return toString(key, v)
}

// Int returns key as an int.
func (p *Properties) Int(key string) (int, error) {
	v, ok := p.Lookup(key)
	if !ok {
		return 0, missing(key)
	}
	return toInt(key, v)
}

// Int64 returns key as an int64.
func (p *Properties) Int64(key string) (int64, error) {
	v, ok := p.Lookup(key)
	if !ok {
		return 0, missing(key)
	}
	return toInt64(key, v)
}

// Bool returns key as a bool.
func (p *Properties) Bool(key string) (bool, error) {
	v, ok := p.Lookup(key)
	if !ok {
		return false, missing(key)
	}
	return toBool(key, v)
}

// Float64 returns key as a float64.
func (p *Properties) Float64(key string) (float64, error) {
	v, ok := p.Lookup(key)
	if !ok {
		return 0, missing(key)
	}
	return toFloat64(key, v)
}

// StringList returns key as a list of strings.
func (p *Properties) StringList(key string) ([]string, error) {
	v, ok := p.Lookup(key)
	if !ok {
		return nil, missing(key)
	}
	return toStringList(key, v)
}

// ObjectList returns key as a list of objects.
func (p *Properties) ObjectList(key string) ([]*Object, error) {
	v, ok := p.Lookup(key)
	if !ok {
		return nil, missing(key)
	}
	return toObjectList(key, v)
}

// Get returns key converted to the type of def, or def when key is absent,
// blank or not convertible.
func Get[T any](p *Properties, key string, def T) T {
	v, ok := p.Lookup(key)
	if !ok {
		return def
	}
	if s, err := toString(key, v); err == nil && isBlank(s) {
		return def
	}

	var (
		out any
		err error
	)
	switch any(def).(type) {
	case string:
		out, err = toString(key, v)
	case int:
		out, err = toInt(key, v)
	case int64:
		out, err = toInt64(key, v)
	case bool:
		out, err = toBool(key, v)
	case float64:
		out, err = toFloat64(key, v)
	case []string:
		out, err = toStringList(key, v)
	case []*Object:
		out, err = toObjectList(key, v)
	default:
		out = v
	}
	if err != nil {
		return def
	}

	t, ok := out.(T)
	if !ok {
		return def
	}
	return t
}

func (p *Properties) currentOverrides() overrides {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ov
}

func (p *Properties) setOverride(apply func(o *overrides)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	apply(&p.ov)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
