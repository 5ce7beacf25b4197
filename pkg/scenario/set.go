package scenario

import (
	"fmt"
	"os"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Set is an ordered collection of scenarios with unique names.
type Set []*Scenario

// file is the on-disk layout of a scenario file.
type file struct {
	Scenarios []*Scenario `yaml:"scenarios"`
}

// LoadFile reads scenarios from a YAML file. Unknown keys are rejected and
// every scenario is validated.
func LoadFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var doc file
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}

	if len(doc.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file %s defines no scenarios", path)
	}

	set := Set(doc.Scenarios)
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return set, nil
}

// Validate checks each scenario and rejects duplicate names.
func (s Set) Validate() error {
	seen := make(map[string]bool, len(s))
	for _, sc := range s {
		if sc == nil {
			return fmt.Errorf("empty scenario entry")
		}
		if err := sc.Validate(); err != nil {
			return err
		}
		if seen[sc.Name] {
			return fmt.Errorf("duplicate scenario name: %s", sc.Name)
		}
		seen[sc.Name] = true
	}
	return nil
}

// Lookup returns the scenario with the given name.
func (s Set) Lookup(name string) (*Scenario, bool) {
	for _, sc := range s {
		if sc.Name == name {
			return sc, true
		}
	}
	return nil, false
}

// Names returns scenario names in order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for _, sc := range s {
		names = append(names, sc.Name)
	}
	return names
}

// Merge returns s with extra applied on top. A scenario in extra replaces
// the one with the same name in place; new names are appended.
func (s Set) Merge(extra Set) Set {
	out := make(Set, len(s), len(s)+len(extra))
	copy(out, s)

	index := make(map[string]int, len(out))
	for i, sc := range out {
		index[sc.Name] = i
	}
	for _, sc := range extra {
		if i, ok := index[sc.Name]; ok {
			out[i] = sc
			continue
		}
		index[sc.Name] = len(out)
		out = append(out, sc)
	}
	return out
}

// Select returns the scenarios whose names match any of patterns, in set
// order. No patterns selects everything. A pattern that matches nothing is
// an error so that typos do not silently skip a verification.
func (s Set) Select(patterns []string) (Set, error) {
	if len(patterns) == 0 {
		return s, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}

	matched := make([]bool, len(globs))
	var out Set
	for _, sc := range s {
		hit := false
		for i, g := range globs {
			if g.Match(sc.Name) {
				matched[i] = true
				hit = true
			}
		}
		if hit {
			out = append(out, sc)
		}
	}

	for i, ok := range matched {
		if !ok {
			return nil, fmt.Errorf("no scenario matches %q (available: %v)", patterns[i], s.Names())
		}
	}
	return out, nil
}
