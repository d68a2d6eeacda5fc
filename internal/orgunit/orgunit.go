// Package orgunit holds the static catalog of organizational units and the
// tax-id index used to attribute incoming documents to a unit.
package orgunit

import "notadesk/pkg/taxid"

// UnitType categorizes an organizational unit.
type UnitType string

const (
	TypeHeadquarters UnitType = "headquarters"
	TypeBranch       UnitType = "branch"
	TypeUrgentCare   UnitType = "urgent_care"
	TypePrimaryCare  UnitType = "primary_care"
	TypeHospital     UnitType = "hospital"
	TypeOffice       UnitType = "office"
	TypeClinic       UnitType = "clinic"
)

// IsValid checks if the unit type is one of the supported enum values.
func (t UnitType) IsValid() bool {
	switch t {
	case TypeHeadquarters, TypeBranch, TypeUrgentCare, TypePrimaryCare,
		TypeHospital, TypeOffice, TypeClinic:
		return true
	}
	return false
}

// String returns the string representation.
func (t UnitType) String() string { return string(t) }

// OrgUnit is one organizational unit of the group. Several units may carry
// the headquarters' tax id while their own registration is pending.
type OrgUnit struct {
	Code           int      `json:"code" yaml:"code"`
	DisplayName    string   `json:"display_name" yaml:"display_name"`
	TaxID          string   `json:"tax_id" yaml:"tax_id"`
	TaxIDFormatted string   `json:"tax_id_formatted" yaml:"-"`
	Municipality   string   `json:"municipality" yaml:"municipality"`
	StateCode      string   `json:"state_code" yaml:"state_code"`
	UnitType       UnitType `json:"unit_type" yaml:"unit_type"`
}

// normalized returns the unit's tax id reduced to digits for indexing.
func (u OrgUnit) normalized() string { return taxid.Normalize(u.TaxID) }
