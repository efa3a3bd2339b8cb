// Package seed derives generator seeds from caller-facing identifiers.
//
// A Spec is a plain value. Each call to Spec.New constructs a fresh
// generator, so sampling sessions stay reproducible without saving any
// generator state: re-deriving the same Spec replays the same words.
package seed

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/lox/seededrand/pcg"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// Kind says how a Spec's value is turned into a seed.
type Kind int

const (
	// KindFixed uses the value as the seed unchanged.
	KindFixed Kind = iota
	// KindNamespace mixes an integer namespace into a seed.
	KindNamespace
	// KindName hashes a string and mixes the hash into a seed.
	KindName
)

func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindNamespace:
		return "ns"
	case KindName:
		return "name"
	default:
		return "unknown"
	}
}

// ErrInvalidSpec is returned by Parse for malformed input.
var ErrInvalidSpec = errors.New("invalid seed spec")

// Spec identifies a reproducible seed.
type Spec struct {
	Kind  Kind
	Value uint64
	Name  string

	stream    uint64
	hasStream bool
}

// Fixed returns a Spec that seeds generators with v directly.
func Fixed(v uint64) Spec {
	return Spec{Kind: KindFixed, Value: v}
}

// Namespace returns a Spec derived from an integer namespace.
func Namespace(ns int64) Spec {
	return Spec{Kind: KindNamespace, Value: uint64(ns)}
}

// Named returns a Spec derived from a string.
func Named(name string) Spec {
	return Spec{Kind: KindName, Name: name}
}

// WithStream returns a copy of s whose generators request stream seq.
func (s Spec) WithStream(seq uint64) Spec {
	s.stream = seq
	s.hasStream = true
	return s
}

// Stream reports the requested stream, if any.
func (s Spec) Stream() (uint64, bool) {
	return s.stream, s.hasStream
}

// Seed reduces the spec to a 64-bit seed.
func (s Spec) Seed() uint64 {
	switch s.Kind {
	case KindNamespace:
		return Mix(s.Value + goldenRatio64)
	case KindName:
		h := fnv.New64a()
		h.Write([]byte(s.Name))
		return Mix(h.Sum64() + goldenRatio64)
	default:
		return s.Value
	}
}

// New constructs a fresh generator for one sampling session.
func (s Spec) New() *pcg.PCG64 {
	if s.hasStream {
		return pcg.NewWithStream(s.Seed(), s.stream)
	}
	return pcg.New(s.Seed())
}

// String formats s so that Parse returns an equal Spec.
func (s Spec) String() string {
	var b strings.Builder
	switch s.Kind {
	case KindNamespace:
		fmt.Fprintf(&b, "ns:%d", int64(s.Value))
	case KindName:
		b.WriteString("name:")
		b.WriteString(formatName(s.Name))
	default:
		fmt.Fprintf(&b, "fixed:%#x", s.Value)
	}
	if s.hasStream {
		fmt.Fprintf(&b, "@%#x", s.stream)
	}
	return b.String()
}

// formatName quotes names that Parse would otherwise misread: anything
// containing '@', starting with a quote, or with surrounding spaces.
func formatName(name string) string {
	if strings.Contains(name, "@") || strings.HasPrefix(name, `"`) || strings.TrimSpace(name) != name {
		return strconv.Quote(name)
	}
	return name
}

// Parse reads a spec of the form "fixed:<uint>", "ns:<int>", "name:<text>" or
// a bare unsigned integer, optionally followed by "@<stream>". Integers accept
// Go prefixes (0x, 0o, 0b). A name may be a Go quoted string, in which case
// everything inside the quotes belongs to the name.
func Parse(text string) (Spec, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Spec{}, fmt.Errorf("%w: empty", ErrInvalidSpec)
	}
	if rest, ok := strings.CutPrefix(text, "name:"); ok && strings.HasPrefix(rest, `"`) {
		return parseQuotedName(rest)
	}

	body, streamText, hasStream := cutLast(text, "@")
	var spec Spec
	kind, value, ok := strings.Cut(body, ":")
	if !ok {
		kind, value = "fixed", body
	}

	switch kind {
	case "fixed":
		v, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: fixed seed %q: %v", ErrInvalidSpec, value, err)
		}
		spec = Fixed(v)
	case "ns":
		v, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: namespace %q: %v", ErrInvalidSpec, value, err)
		}
		spec = Namespace(v)
	case "name":
		if value == "" {
			return Spec{}, fmt.Errorf("%w: empty name", ErrInvalidSpec)
		}
		// names may contain '@'; only a numeric suffix is a stream
		if hasStream {
			if _, err := strconv.ParseUint(streamText, 0, 64); err != nil {
				value = value + "@" + streamText
				hasStream = false
			}
		}
		spec = Named(value)
	default:
		return Spec{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, kind)
	}

	if hasStream {
		seq, err := strconv.ParseUint(streamText, 0, 64)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: stream %q: %v", ErrInvalidSpec, streamText, err)
		}
		spec = spec.WithStream(seq)
	}
	return spec, nil
}

func parseQuotedName(text string) (Spec, error) {
	quoted, err := strconv.QuotedPrefix(text)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: name %s: %v", ErrInvalidSpec, text, err)
	}
	name, err := strconv.Unquote(quoted)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: name %s: %v", ErrInvalidSpec, quoted, err)
	}
	if name == "" {
		return Spec{}, fmt.Errorf("%w: empty name", ErrInvalidSpec)
	}
	spec := Named(name)

	tail := text[len(quoted):]
	if tail == "" {
		return spec, nil
	}
	streamText, ok := strings.CutPrefix(tail, "@")
	if !ok {
		return Spec{}, fmt.Errorf("%w: unexpected %q after name", ErrInvalidSpec, tail)
	}
	seq, err := strconv.ParseUint(streamText, 0, 64)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: stream %q: %v", ErrInvalidSpec, streamText, err)
	}
	return spec.WithStream(seq), nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

// Mix is the splitmix64 finalizer. It spreads nearby inputs across the whole
// 64-bit space.
func Mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
