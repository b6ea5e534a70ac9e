package model_test

import (
	"encoding/json"
	"math"
	"testing"

	model "github.com/okian/sisu/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestValues(t *testing.T) {
	convey.Convey("Given raw selection values", t, func() {
		convey.Convey("When normalizing duplicates and empties", func() {
			vs := model.NewValues("SP", "", "RJ", "SP")

			convey.Convey("Then the set is sorted and unique", func() {
				convey.So(vs, convey.ShouldResemble, model.Values{"RJ", "SP"})
				convey.So(vs.Contains("SP"), convey.ShouldBeTrue)
				convey.So(vs.Contains("MG"), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When a scalar and a one-element list are decoded", func() {
			var scalar, list model.Values
			convey.So(json.Unmarshal([]byte(`"Medicina"`), &scalar), convey.ShouldBeNil)
			convey.So(json.Unmarshal([]byte(`["Medicina"]`), &list), convey.ShouldBeNil)

			convey.Convey("Then they normalize to the same set", func() {
				convey.So(scalar, convey.ShouldResemble, list)
			})
		})

		convey.Convey("When null or an empty string is decoded", func() {
			var a, b model.Values
			convey.So(json.Unmarshal([]byte(`null`), &a), convey.ShouldBeNil)
			convey.So(json.Unmarshal([]byte(`""`), &b), convey.ShouldBeNil)

			convey.Convey("Then the set is empty", func() {
				convey.So(a.Empty(), convey.ShouldBeTrue)
				convey.So(b.Empty(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the JSON is of the wrong type", func() {
			var vs model.Values

			convey.Convey("Then decoding fails", func() {
				convey.So(json.Unmarshal([]byte(`42`), &vs), convey.ShouldNotBeNil)
				convey.So(json.Unmarshal([]byte(`["SP", 1]`), &vs), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When a nil set is encoded", func() {
			b, err := json.Marshal(model.Selection{Course: model.NewValues("Medicina")})

			convey.Convey("Then it becomes an empty array", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldEqual, `{"course":["Medicina"],"state":[],"institution":[]}`)
			})
		})
	})
}

func TestSelectionAndRecord(t *testing.T) {
	convey.Convey("Given a selection and a record", t, func() {
		sel := model.Selection{
			Course: model.NewValues("Medicina"),
			State:  model.NewValues("SP"),
		}
		rec := model.Record{Course: "Medicina", State: "SP", Institution: "USP", Score: math.NaN()}

		convey.Convey("Then facet accessors agree", func() {
			for _, f := range model.Facets() {
				parsed, ok := model.ParseFacet(string(f))
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(parsed, convey.ShouldEqual, f)
			}
			convey.So(sel.Get(model.FacetCourse), convey.ShouldResemble, model.Values{"Medicina"})
			convey.So(sel.Get(model.FacetInstitution).Empty(), convey.ShouldBeTrue)
			convey.So(rec.Value(model.FacetInstitution), convey.ShouldEqual, "USP")
			convey.So(rec.HasScore(), convey.ShouldBeFalse)
		})

		convey.Convey("Then unknown facets are rejected", func() {
			_, ok := model.ParseFacet("year")
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}
