package harness

import (
	"regexp"
	"slices"
	"strings"
)

// Capability identifies which codec operation a benchmark case
// measures.
type Capability int

const (
	Decode Capability = iota
	Encode
	Compress
	Decompress
)

func (c Capability) String() string {
	switch c {
	case Decode:
		return "decode"
	case Encode:
		return "encode"
	case Compress:
		return "compress"
	case Decompress:
		return "decompress"
	default:
		return "unknown"
	}
}

// CompressesOutput reports whether cases with this capability produce
// compressed output, i.e. whether a compression ratio is meaningful.
func (c Capability) CompressesOutput() bool {
	return c == Encode || c == Compress
}

// Payload is the prepared input handed to timed invocations. Setup
// builds it once per file so timing excludes loading and format
// conversion. Size is the byte count used for throughput and
// compression-ratio accounting, which may differ from the on-disk size
// (e.g. decoded pixel bytes for an encoder).
type Payload struct {
	Data any
	Size int64
}

// SetupFunc prepares raw file bytes for invocation. It runs un-timed,
// once per file; its output is reused across all iterations.
type SetupFunc func(raw []byte) (Payload, error)

// InvokeFunc runs one codec operation over the prepared input and
// returns the output size in the capability's natural unit: bytes for
// encoders and compressors, pixels for decoders. Each call is
// individually timed by the runner.
type InvokeFunc func(input any) (outSize int, err error)

// Case is a named, pluggable unit of benchmark work. Immutable once
// registered.
type Case struct {
	Name       string
	Capability Capability

	// Extensions limits which corpus files the case runs over
	// (lowercase, without dot). Empty means every file.
	Extensions []string

	// Setup is optional; when nil the raw file bytes are invoked
	// directly.
	Setup  SetupFunc
	Invoke InvokeFunc
}

func (c Case) accepts(format string) bool {
	if len(c.Extensions) == 0 {
		return true
	}
	return slices.Contains(c.Extensions, strings.ToLower(format))
}

// Registry holds the benchmark cases for a run, keyed by unique name.
// The set is closed once the run starts; registration order is
// preserved for deterministic execution.
type Registry struct {
	order []Case
	names map[string]struct{}
}

// NewRegistry creates an empty case registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register adds a case. Registering an unnamed case, a case without an
// Invoke function, or a duplicate name fails with ConfigError.
func (r *Registry) Register(c Case) error {
	if c.Name == "" {
		return configErrorf("benchmark case has no name")
	}
	if c.Invoke == nil {
		return configErrorf("benchmark case %q has no invoke function", c.Name)
	}
	if _, exists := r.names[c.Name]; exists {
		return configErrorf("duplicate benchmark case name %q", c.Name)
	}

	r.names[c.Name] = struct{}{}
	r.order = append(r.order, c)
	return nil
}

// Cases returns all registered cases in registration order.
func (r *Registry) Cases() []Case {
	return slices.Clone(r.order)
}

// Len returns the number of registered cases.
func (r *Registry) Len() int {
	return len(r.order)
}

// Match returns the cases whose names match the given regular
// expression, in registration order. An empty pattern matches every
// case; an invalid pattern fails with ConfigError. A pattern matching
// zero cases is not an error.
func (r *Registry) Match(pattern string) ([]Case, error) {
	if pattern == "" {
		return r.Cases(), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &ConfigError{Reason: "invalid filter pattern " + pattern, Err: err}
	}

	var matched []Case
	for _, c := range r.order {
		if re.MatchString(c.Name) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}
