package orgunit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// The compiled-in catalog is configuration, not runtime state. Changing it
// means redeploying; there is no API to edit units. Codes 11+ are units still
// operating under the headquarters' tax id while their own registration
// completes.
var defaultCatalog = []OrgUnit{
	{Code: 1, DisplayName: "Matriz São Paulo", TaxID: "11858570000133", Municipality: "São Paulo", StateCode: "SP", UnitType: TypeHeadquarters},
	{Code: 2, DisplayName: "Hospital Vila Mariana", TaxID: "11858570000214", Municipality: "São Paulo", StateCode: "SP", UnitType: TypeHospital},
	{Code: 3, DisplayName: "UPA Campinas Centro", TaxID: "11858570000305", Municipality: "Campinas", StateCode: "SP", UnitType: TypeUrgentCare},
	{Code: 4, DisplayName: "UBS Belo Horizonte Savassi", TaxID: "11858570000486", Municipality: "Belo Horizonte", StateCode: "MG", UnitType: TypePrimaryCare},
	{Code: 5, DisplayName: "Clínica Curitiba Batel", TaxID: "11858570000567", Municipality: "Curitiba", StateCode: "PR", UnitType: TypeClinic},
	{Code: 6, DisplayName: "Escritório Rio de Janeiro", TaxID: "11858570000648", Municipality: "Rio de Janeiro", StateCode: "RJ", UnitType: TypeOffice},
	{Code: 11, DisplayName: "Filial Osasco", TaxID: "11858570000133", Municipality: "Osasco", StateCode: "SP", UnitType: TypeBranch},
	{Code: 12, DisplayName: "Filial Niterói", TaxID: "11858570000133", Municipality: "Niterói", StateCode: "RJ", UnitType: TypeBranch},
}

// DefaultCatalog returns a copy of the compiled-in unit list.
func DefaultCatalog() []OrgUnit {
	out := make([]OrgUnit, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

type catalogFile struct {
	Units []OrgUnit `yaml:"units"`
}

// LoadCatalog reads a YAML catalog override. An empty path selects the
// compiled-in catalog.
func LoadCatalog(path string) ([]OrgUnit, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(f.Units) == 0 {
		return nil, fmt.Errorf("catalog %s declares no units", path)
	}
	return f.Units, nil
}
