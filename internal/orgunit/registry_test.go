package orgunit

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "notadesk/pkg/domainerrors"
)

type RegistrySuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

// Catalog shape mirrors the shared-id situation in production: the
// headquarters' tax id is reused by a branch awaiting registration.
func (s *RegistrySuite) catalog() []OrgUnit {
	return []OrgUnit{
		{Code: 1, DisplayName: "Matriz", TaxID: "11858570000133", StateCode: "SP", UnitType: TypeHeadquarters},
		{Code: 11, DisplayName: "Filial Reutilizando CNPJ", TaxID: "11858570000133", StateCode: "SP", UnitType: TypeBranch},
		{Code: 2, DisplayName: "Hospital Próprio", TaxID: "11858570000214", StateCode: "MG", UnitType: TypeHospital},
	}
}

func (s *RegistrySuite) TestNew() {
	s.Run("valid catalog builds", func() {
		r, err := New(s.catalog())
		s.Require().NoError(err)
		s.Equal(1, r.Headquarters().Code)
	})

	s.Run("empty catalog is a configuration violation", func() {
		_, err := New(nil)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeConfiguration))
	})

	s.Run("zero headquarters is fatal", func() {
		units := []OrgUnit{
			{Code: 1, TaxID: "11858570000133", UnitType: TypeBranch},
		}
		_, err := New(units)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeConfiguration))
	})

	s.Run("two headquarters is fatal", func() {
		units := append(s.catalog(),
			OrgUnit{Code: 99, TaxID: "99999999000199", UnitType: TypeHeadquarters})
		_, err := New(units)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeConfiguration))
	})

	s.Run("duplicate code rejected", func() {
		units := append(s.catalog(),
			OrgUnit{Code: 2, TaxID: "33333333000133", UnitType: TypeClinic})
		_, err := New(units)
		s.Require().Error(err)
	})

	s.Run("non-positive code rejected", func() {
		units := append(s.catalog(),
			OrgUnit{Code: 0, TaxID: "44444444000144", UnitType: TypeClinic})
		_, err := New(units)
		s.Require().Error(err)
	})

	s.Run("unknown unit type rejected", func() {
		units := append(s.catalog(),
			OrgUnit{Code: 50, TaxID: "55555555000155", UnitType: UnitType("warehouse")})
		_, err := New(units)
		s.Require().Error(err)
	})

	s.Run("formatted tax id is derived", func() {
		r, err := New(s.catalog())
		s.Require().NoError(err)
		s.Equal("11.858.570/0001-33", r.Headquarters().TaxIDFormatted)
	})
}

func (s *RegistrySuite) TestResolve() {
	r, err := New(s.catalog())
	s.Require().NoError(err)

	s.Run("shared id resolves to headquarters, never the branch", func() {
		u := r.Resolve("11858570000133")
		s.Require().NotNil(u)
		s.Equal(1, u.Code)
		s.Equal(TypeHeadquarters, u.UnitType)
	})

	s.Run("unique id resolves to its own unit", func() {
		u := r.Resolve("11858570000214")
		s.Require().NotNil(u)
		s.Equal(2, u.Code)
	})

	s.Run("punctuated input resolves after normalization", func() {
		u := r.Resolve("11.858.570/0001-33")
		s.Require().NotNil(u)
		s.Equal(1, u.Code)
	})

	s.Run("unknown id misses without error", func() {
		s.Nil(r.Resolve("00000000000000"))
	})

	s.Run("empty id misses", func() {
		s.Nil(r.Resolve(""))
		s.Nil(r.Resolve("sem documento"))
	})

	s.Run("precedence holds when headquarters is listed last", func() {
		units := []OrgUnit{
			{Code: 11, DisplayName: "Filial", TaxID: "11858570000133", UnitType: TypeBranch},
			{Code: 1, DisplayName: "Matriz", TaxID: "11858570000133", UnitType: TypeHeadquarters},
		}
		rr, err := New(units)
		s.Require().NoError(err)
		u := rr.Resolve("11858570000133")
		s.Require().NotNil(u)
		s.Equal(1, u.Code)
	})
}

func (s *RegistrySuite) TestCatalogViews() {
	r, err := New(s.catalog())
	s.Require().NoError(err)

	s.Run("ListByState preserves catalog order", func() {
		sp := r.ListByState("SP")
		s.Require().Len(sp, 2)
		s.Equal(1, sp[0].Code)
		s.Equal(11, sp[1].Code)
		s.Empty(r.ListByState("AM"))
	})

	s.Run("GroupStates is sorted and distinct", func() {
		s.Equal([]string{"MG", "SP"}, r.GroupStates())
	})

	s.Run("ByCode", func() {
		s.Equal("Hospital Próprio", r.ByCode(2).DisplayName)
		s.Nil(r.ByCode(404))
	})

	s.Run("All copies the catalog", func() {
		all := r.All()
		s.Len(all, 3)
		all[0].DisplayName = "mutated"
		s.Equal("Matriz", r.All()[0].DisplayName)
	})
}

func TestDefaultCatalog(t *testing.T) {
	units := DefaultCatalog()
	r, err := New(units)
	if err != nil {
		t.Fatalf("default catalog must satisfy startup invariants: %v", err)
	}
	if r.Headquarters().Code != 1 {
		t.Fatalf("expected headquarters code 1, got %d", r.Headquarters().Code)
	}
	// Branches reusing the headquarters id must stay unreachable.
	if u := r.Resolve("11858570000133"); u.UnitType != TypeHeadquarters {
		t.Fatalf("shared id resolved to %v", u.UnitType)
	}
}
