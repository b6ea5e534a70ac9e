package facets_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/sisu/internal/domain/dataset"
	"github.com/okian/sisu/internal/domain/dataset/datasettest"
	"github.com/okian/sisu/internal/domain/facets"
	"github.com/okian/sisu/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtract(t *testing.T) {
	Convey("Given the wide dataset", t, func() {
		set := facets.Extract(datasettest.Wide())

		Convey("Then every facet is sorted and unique", func() {
			want := facets.Set{
				Courses:      []string{"Direito", "Engenharia", "Medicina"},
				States:       []string{"MG", "RJ", "SP"},
				Institutions: []string{"UFMG", "UFRJ", "UNESP", "UNICAMP", "USP"},
			}
			So(cmp.Diff(want, set), ShouldBeEmpty)
			So(set.Len(model.FacetState), ShouldEqual, 3)
		})
	})

	Convey("Given the same rows in a different order", t, func() {
		rows := []model.Record{
			{Course: "Medicina", State: "SP", Institution: "USP", Score: 890.5},
			{Course: "Direito", State: "RJ", Institution: "UFRJ", Score: math.NaN()},
			{Course: "Medicina", State: "SP", Institution: "UNICAMP", Score: 870},
		}
		reversed := []model.Record{rows[2], rows[1], rows[0]}

		a := facets.Extract(dataset.New(dataset.DefaultColumns(), rows))
		b := facets.Extract(dataset.New(dataset.DefaultColumns(), reversed))

		Convey("Then extraction is deterministic", func() {
			So(cmp.Diff(a, b), ShouldBeEmpty)
		})
	})
}

func TestIndexSearch(t *testing.T) {
	Convey("Given an index over accented course names", t, func() {
		idx := facets.NewIndex(facets.Set{
			Courses:      []string{"Administração", "Administração Pública", "Arquitetura", "Medicina", "medicina veterinária"},
			States:       []string{"RJ", "RN", "RO", "SP"},
			Institutions: []string{"USP"},
		})

		Convey("When searching without accents or case", func() {
			got, err := idx.Search(model.FacetCourse, "administracao", 0)

			Convey("Then both spellings match in ascending order", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []string{"Administração", "Administração Pública"})
			})
		})

		Convey("When the prefix matches mixed-case values", func() {
			got, _ := idx.Search(model.FacetCourse, "MED", 0)

			Convey("Then results keep their original spelling in byte order", func() {
				So(got, ShouldResemble, []string{"Medicina", "medicina veterinária"})
			})
		})

		Convey("When a limit is given", func() {
			got, _ := idx.Search(model.FacetState, "r", 2)

			Convey("Then only the first values are returned", func() {
				So(got, ShouldResemble, []string{"RJ", "RN"})
			})
		})

		Convey("When the prefix is empty", func() {
			got, _ := idx.Search(model.FacetState, "", 0)

			Convey("Then every value is returned", func() {
				So(got, ShouldHaveLength, 4)
			})
		})

		Convey("When nothing matches", func() {
			got, err := idx.Search(model.FacetInstitution, "zz", 10)

			Convey("Then the result is empty", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When the facet is unknown", func() {
			_, err := idx.Search(model.Facet("year"), "", 0)

			Convey("Then ErrUnknownFacet is returned", func() {
				So(errors.Is(err, facets.ErrUnknownFacet), ShouldBeTrue)
			})
		})
	})

	Convey("Given strings to fold", t, func() {
		So(facets.Fold("  São Paulo "), ShouldEqual, "sao paulo")
		So(facets.Fold("INSTITUIÇÕES"), ShouldEqual, "instituicoes")
	})
}
