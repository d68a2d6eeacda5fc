package orgunit

import (
	"sort"

	dErrors "notadesk/pkg/domainerrors"
	"notadesk/pkg/taxid"
)

// Registry resolves buyer tax ids to organizational units. The catalog is
// fixed at construction; the index is built once with explicit headquarters
// precedence so shared-id collisions never depend on catalog order.
type Registry struct {
	units        []OrgUnit
	index        map[string]*OrgUnit
	headquarters *OrgUnit
}

// New validates the catalog and builds the tax-id index.
//
// Startup invariant: exactly one unit must be the headquarters. With zero the
// shared-id precedence rule has no anchor; with two, attribution of the shared
// id is ambiguous. Either way serving would misattribute documents, so the
// caller is expected to treat the error as fatal.
func New(units []OrgUnit) (*Registry, error) {
	if len(units) == 0 {
		return nil, dErrors.New(dErrors.CodeConfiguration, "org unit catalog is empty")
	}

	r := &Registry{
		units: make([]OrgUnit, len(units)),
		index: make(map[string]*OrgUnit, len(units)),
	}
	copy(r.units, units)

	seenCodes := make(map[int]bool, len(units))
	hqCount := 0
	for i := range r.units {
		u := &r.units[i]
		if u.Code <= 0 {
			return nil, dErrors.Newf(dErrors.CodeConfiguration, "org unit %q has non-positive code %d", u.DisplayName, u.Code)
		}
		if seenCodes[u.Code] {
			return nil, dErrors.Newf(dErrors.CodeConfiguration, "duplicate org unit code %d", u.Code)
		}
		seenCodes[u.Code] = true
		if !u.UnitType.IsValid() {
			return nil, dErrors.Newf(dErrors.CodeConfiguration, "org unit %d has unknown type %q", u.Code, u.UnitType)
		}
		u.TaxIDFormatted = taxid.Format(u.TaxID)
		if u.UnitType == TypeHeadquarters {
			hqCount++
			r.headquarters = u
		}
	}
	if hqCount != 1 {
		return nil, dErrors.Newf(dErrors.CodeConfiguration, "catalog must declare exactly one headquarters, found %d", hqCount)
	}

	r.buildIndex()
	return r, nil
}

// buildIndex admits the headquarters' tax id unconditionally; any other
// unit's id is admitted only when it is not the headquarters' id and not
// already claimed. Units temporarily reusing the headquarters' id are thus
// unreachable through the index: documents bearing the shared id attribute to
// headquarters, never to a guessed branch.
func (r *Registry) buildIndex() {
	hqID := r.headquarters.normalized()
	if hqID != "" {
		r.index[hqID] = r.headquarters
	}
	for i := range r.units {
		u := &r.units[i]
		if u == r.headquarters {
			continue
		}
		id := u.normalized()
		if id == "" || id == hqID {
			continue
		}
		if _, claimed := r.index[id]; claimed {
			continue
		}
		r.index[id] = u
	}
}

// Resolve maps a raw buyer tax id to a unit. A miss returns nil, not an
// error: the buyer may be outside the group or the unit not yet cataloged.
func (r *Registry) Resolve(rawTaxID string) *OrgUnit {
	id := taxid.Normalize(rawTaxID)
	if id == "" {
		return nil
	}
	return r.index[id]
}

// Headquarters returns the single headquarters unit.
func (r *Registry) Headquarters() *OrgUnit { return r.headquarters }

// All returns the catalog in its configured order.
func (r *Registry) All() []OrgUnit {
	out := make([]OrgUnit, len(r.units))
	copy(out, r.units)
	return out
}

// ByCode finds a unit by its numeric code; nil when absent.
func (r *Registry) ByCode(code int) *OrgUnit {
	for i := range r.units {
		if r.units[i].Code == code {
			return &r.units[i]
		}
	}
	return nil
}

// ListByState filters the catalog by state code, preserving catalog order.
func (r *Registry) ListByState(stateCode string) []OrgUnit {
	var out []OrgUnit
	for _, u := range r.units {
		if u.StateCode == stateCode {
			out = append(out, u)
		}
	}
	return out
}

// GroupStates returns the sorted distinct state codes the group operates in.
func (r *Registry) GroupStates() []string {
	seen := make(map[string]bool)
	var out []string
	for _, u := range r.units {
		if u.StateCode != "" && !seen[u.StateCode] {
			seen[u.StateCode] = true
			out = append(out, u.StateCode)
		}
	}
	sort.Strings(out)
	return out
}
