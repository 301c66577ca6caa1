package services

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// EntryType lists the fields of one BibTeX entry type.
type EntryType struct {
	Required []string `yaml:"required"`
	Optional []string `yaml:"optional"`
}

// EntryTypes is the catalogue of BibTeX entry types.
type EntryTypes struct {
	Common EntryType            `yaml:"common"`
	Types  map[string]EntryType `yaml:"types"`
}

// ParseEntryTypes decodes the YAML catalogue.
func ParseEntryTypes(raw []byte) (*EntryTypes, error) {
	var et EntryTypes
	if err := yaml.Unmarshal(raw, &et); err != nil {
		return nil, fmt.Errorf("failed to parse entry types: %w", err)
	}
	if len(et.Types) == 0 {
		return nil, fmt.Errorf("entry type catalogue is empty")
	}
	return &et, nil
}

// Lookup returns the entry type with the given name.
func (et *EntryTypes) Lookup(name string) (EntryType, bool) {
	t, ok := et.Types[name]
	return t, ok
}

// Names returns the entry type names in sorted order.
func (et *EntryTypes) Names() []string {
	names := make([]string, 0, len(et.Types))
	for name := range et.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields returns every bibliographic field any type accepts, sorted.
func (et *EntryTypes) Fields() []string {
	seen := map[string]bool{}
	add := func(fields []string) {
		for _, f := range fields {
			seen[f] = true
		}
	}
	add(et.Common.Optional)
	for _, t := range et.Types {
		add(t.Required)
		add(t.Optional)
	}

	fields := make([]string, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Accepts reports whether the type takes the field.
func (et *EntryTypes) Accepts(typeName, field string) bool {
	t, ok := et.Types[typeName]
	if !ok {
		return false
	}
	for _, list := range [][]string{t.Required, t.Optional, et.Common.Optional} {
		for _, f := range list {
			if f == field {
				return true
			}
		}
	}
	return false
}
