package crs

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/paulmach/orb"
)

// Identifier is an authority code such as EPSG:4326.
type Identifier struct {
	Authority string // Authority name (e.g. "EPSG")
	Code      string // Code within the authority (e.g. "4326")
}

func (id Identifier) String() string {
	return id.Authority + ":" + id.Code
}

// Extent is the domain of validity of an object.
type Extent struct {
	Description string     // Free-form region description
	Bound       *orb.Bound // Geographic bounding box in degrees (longitude, latitude), optional
}

func (e *Extent) clone() *Extent {
	if e == nil {
		return nil
	}
	c := &Extent{Description: e.Description}
	if e.Bound != nil {
		b := *e.Bound
		c.Bound = &b
	}
	return c
}

func (e *Extent) equal(o *Extent) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Description != o.Description {
		return false
	}
	if e.Bound == nil || o.Bound == nil {
		return e.Bound == o.Bound
	}
	return e.Bound.Equal(*o.Bound)
}

// Properties identify an object at construction time. Only Name is required.
type Properties struct {
	Name        string
	Aliases     []string
	Identifiers []Identifier
	Scope       string
	Domain      *Extent
	Remarks     string
}

// identification is embedded by every identified object and exposes the
// common metadata accessors.
type identification struct {
	name        string
	aliases     []string
	identifiers []Identifier
	scope       string
	domain      *Extent
	remarks     string
}

func newIdentification(p Properties) (identification, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return identification{}, ErrMissingName
	}
	return identification{
		name:        name,
		aliases:     append([]string(nil), p.Aliases...),
		identifiers: append([]Identifier(nil), p.Identifiers...),
		scope:       p.Scope,
		domain:      p.Domain.clone(),
		remarks:     p.Remarks,
	}, nil
}

// Name returns the canonical name.
func (id *identification) Name() string { return id.name }

// Aliases returns the alternative names, in declaration order.
func (id *identification) Aliases() []string {
	return append([]string(nil), id.aliases...)
}

// Identifiers returns the authority codes, primary code first.
func (id *identification) Identifiers() []Identifier {
	return append([]Identifier(nil), id.identifiers...)
}

// Identifier returns the primary authority code, if any.
func (id *identification) Identifier() (Identifier, bool) {
	if len(id.identifiers) == 0 {
		return Identifier{}, false
	}
	return id.identifiers[0], true
}

// Scope returns the description of the intended usage.
func (id *identification) Scope() string { return id.scope }

// Domain returns the domain of validity, or nil.
func (id *identification) Domain() *Extent { return id.domain.clone() }

// Remarks returns free-form remarks.
func (id *identification) Remarks() string { return id.remarks }

// Properties returns the identification as constructor properties.
func (id *identification) Properties() Properties {
	return Properties{
		Name:        id.name,
		Aliases:     id.Aliases(),
		Identifiers: id.Identifiers(),
		Scope:       id.scope,
		Domain:      id.Domain(),
		Remarks:     id.remarks,
	}
}

// withoutIdentifiers keeps names and usage but drops authority codes, for
// objects derived from an identified one that no longer match its definition.
func (id identification) withoutIdentifiers() identification {
	id.identifiers = nil
	return id
}

func (id *identification) equal(o *identification) bool {
	if id.name != o.name || id.scope != o.scope || id.remarks != o.remarks {
		return false
	}
	if len(id.aliases) != len(o.aliases) || len(id.identifiers) != len(o.identifiers) {
		return false
	}
	for i := range id.aliases {
		if id.aliases[i] != o.aliases[i] {
			return false
		}
	}
	for i := range id.identifiers {
		if id.identifiers[i] != o.identifiers[i] {
			return false
		}
	}
	return id.domain.equal(o.domain)
}

// hash is seeded from the name and aliases only. Objects combine it with their
// own fields as hash*31 + field.
func (id *identification) hash() uint64 {
	h := xxhash.Sum64String(id.name)
	for _, a := range id.aliases {
		h = h*31 + xxhash.Sum64String(a)
	}
	return h
}
