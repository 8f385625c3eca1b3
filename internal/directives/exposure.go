package directives

import (
	"fmt"
	"sort"
	"strings"
)

// ExposureConfig is the set of directives whose definitions and applications are
// surfaced in the supergraph as authored.
type ExposureConfig struct {
	names map[string]bool
}

// ParseExposure accepts names written with their leading "@", like "@foo".
func ParseExposure(names []string) (*ExposureConfig, error) {
	c := &ExposureConfig{names: make(map[string]bool, len(names))}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if !strings.HasPrefix(name, "@") || len(name) == 1 {
			return nil, fmt.Errorf("invalid exposed directive %q: directive names must be written with a leading \"@\"", name)
		}
		c.names[name[1:]] = true
	}
	return c, nil
}

// IsExposed takes the bare directive name, without "@".
func (c *ExposureConfig) IsExposed(name string) bool {
	if c == nil {
		return false
	}
	return c.names[name]
}

// With returns a copy that also exposes the given bare names.
func (c *ExposureConfig) With(names ...string) *ExposureConfig {
	copied := &ExposureConfig{names: make(map[string]bool)}
	if c != nil {
		for name := range c.names {
			copied.names[name] = true
		}
	}
	for _, name := range names {
		copied.names[name] = true
	}
	return copied
}

// Names returns the exposed directives, "@"-prefixed and sorted.
func (c *ExposureConfig) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.names))
	for name := range c.names {
		names = append(names, "@"+name)
	}
	sort.Strings(names)
	return names
}
