package codepage

import (
	"strings"

	"github.com/wippyai/clipuni/errors"
)

const (
	// MaxNameLen bounds the UCS-side codepage name.
	MaxNameLen = 12
	// MaxSpecLen bounds the full converter specifier.
	MaxSpecLen = 64
)

// Routing parameters appended to every resolved spec: conversion through
// the codepage's own table, never through a path-based lookup.
const (
	MapCDRA = "cdra"
	PathNo  = "no"
)

// Spec is a converter specifier: a UCS-side codepage name plus routing
// parameters, rendered as "IBM-850@map=cdra,path=no".
type Spec struct {
	Name string
	Map  string
	Path string
}

// String renders the spec in its canonical form.
func (s Spec) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	sep := byte('@')
	if s.Map != "" {
		b.WriteByte(sep)
		b.WriteString("map=")
		b.WriteString(s.Map)
		sep = ','
	}
	if s.Path != "" {
		b.WriteByte(sep)
		b.WriteString("path=")
		b.WriteString(s.Path)
	}
	return b.String()
}

// Resolve maps a codepage identifier to its converter spec.
func Resolve(id uint32) (Spec, error) {
	info, ok := Lookup(id)
	if !ok {
		return Spec{}, errors.ResolverFailed(id)
	}
	if len(info.Name) > MaxNameLen {
		return Spec{}, errors.New(errors.PhaseResolve, errors.KindResolverFailed).
			Codepage(id).
			Detail("codepage name %q exceeds %d characters", info.Name, MaxNameLen).
			Build()
	}
	return Spec{Name: info.Name, Map: MapCDRA, Path: PathNo}, nil
}

// ParseSpec parses "NAME[@key=value[,key=value]]". Only the map and path
// keys are recognised.
func ParseSpec(s string) (Spec, error) {
	if len(s) > MaxSpecLen {
		return Spec{}, errors.InvalidInput(errors.PhaseSession, "converter spec too long")
	}
	name, params, _ := strings.Cut(s, "@")
	if name == "" {
		return Spec{}, errors.InvalidInput(errors.PhaseSession, "converter spec has no codepage name")
	}
	spec := Spec{Name: name}
	if params == "" {
		return spec, nil
	}
	for _, kv := range strings.Split(params, ",") {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" {
			return Spec{}, errors.InvalidInput(errors.PhaseSession, "malformed spec parameter "+kv)
		}
		switch strings.ToLower(key) {
		case "map":
			spec.Map = strings.ToLower(value)
		case "path":
			spec.Path = strings.ToLower(value)
		default:
			return Spec{}, errors.InvalidInput(errors.PhaseSession, "unknown spec parameter "+key)
		}
	}
	return spec, nil
}
