package api

import (
	"errors"
	"net/url"
	"testing"

	"github.com/okian/sisu/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestErrorHelpers(t *testing.T) {
	convey.Convey("Given an operation error", t, func() {
		cause := errors.New("unexpected EOF")
		err := WrapKind("api.update", ErrBadRequest, cause)

		convey.Convey("Then it matches both the kind and the cause", func() {
			convey.So(errors.Is(err, ErrBadRequest), convey.ShouldBeTrue)
			convey.So(errors.Is(err, cause), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldEqual, "api.update: bad request: unexpected EOF")
		})

		convey.Convey("Then kinds without a cause still format", func() {
			k := NewKind("api.chart", ErrNotFound)
			convey.So(errors.Is(k, ErrNotFound), convey.ShouldBeTrue)
			convey.So(k.Error(), convey.ShouldEqual, "api.chart: not found")
		})

		convey.Convey("Then Wrap keeps nil nil", func() {
			convey.So(Wrap("op", nil), convey.ShouldBeNil)
			convey.So(errors.Is(Wrap("op", cause), cause), convey.ShouldBeTrue)
		})
	})
}

func TestSelectionFromQuery(t *testing.T) {
	convey.Convey("Given repeated and single query parameters", t, func() {
		q, err := url.ParseQuery("course=Medicina&state=SP&state=RJ&state=SP&institution=")
		convey.So(err, convey.ShouldBeNil)
		sel := selectionFromQuery(q)

		convey.Convey("Then they normalize to sets", func() {
			convey.So(sel.Course, convey.ShouldResemble, model.Values{"Medicina"})
			convey.So(sel.State, convey.ShouldResemble, model.Values{"RJ", "SP"})
			convey.So(sel.Institution.Empty(), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given response statuses", t, func() {
		cases := []struct {
			status         int
			kind, severity string
		}{
			{200, "", ""},
			{204, "", ""},
			{302, "", ""},
			{400, "bad_request", "medium"},
			{404, "not_found", "medium"},
			{405, "not_found", "medium"},
			{413, "too_large", "medium"},
			{500, "internal_error", "high"},
			{503, "internal_error", "high"},
		}
		for _, tc := range cases {
			kind, severity := classifyStatus(tc.status)
			convey.So(kind, convey.ShouldEqual, tc.kind)
			convey.So(severity, convey.ShouldEqual, tc.severity)
		}
	})
}
