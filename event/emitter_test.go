package event

import (
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type widget struct {
	*Emitter
	id int
}

func newWidget(id int) *widget {
	w := &widget{id: id}
	w.Emitter = NewEmitter(w)
	return w
}

func TestEmitter(t *testing.T) {
	Convey("Given an emitter embedded in an object", t, func() {
		w := newWidget(7)

		Convey("Dispatch reaches the listener exactly once with the payload and owner", func() {
			calls := 0
			var gotOwner any
			var gotData Data
			w.AddEventListener("x", Func(func(o any, d Data) {
				calls++
				gotOwner = o
				gotData = d
			}))

			So(w.Dispatch("x", Data{"a": 1}), ShouldBeNil)
			So(calls, ShouldEqual, 1)
			So(gotOwner, ShouldEqual, w)
			So(gotData, ShouldResemble, Data{"a": 1})
		})

		Convey("Event lazily registers unknown names", func() {
			ev := w.Event("lazy")
			So(ev, ShouldNotBeNil)
			So(ev.Name(), ShouldEqual, "lazy")
			So(w.Event("lazy"), ShouldEqual, ev)
		})

		Convey("Dispatching an unknown event is a no-op", func() {
			So(w.Dispatch("nothing", nil), ShouldBeNil)
			So(w.Names(), ShouldContain, "nothing")
		})

		Convey("Register replaces an event and drops its listeners", func() {
			calls := 0
			w.AddEventListener("x", Func(func(any, Data) { calls++ }))
			w.Register("x")
			So(w.Dispatch("x", nil), ShouldBeNil)
			So(calls, ShouldEqual, 0)
		})

		Convey("Add and remove chain on the emitter", func() {
			calls := 0
			l := Func(func(any, Data) { calls++ })
			So(w.AddEventListener("x", l), ShouldEqual, w.Emitter)
			So(w.RemoveEventListener("x", l), ShouldEqual, w.Emitter)
			So(w.Dispatch("x", nil), ShouldBeNil)
			So(calls, ShouldEqual, 0)
		})

		Convey("On returns a handle usable for removal", func() {
			calls := 0
			l := w.On("x", func(any, Data) error {
				calls++
				return nil
			})
			So(w.Dispatch("x", nil), ShouldBeNil)
			w.RemoveEventListener("x", l)
			So(w.Dispatch("x", nil), ShouldBeNil)
			So(calls, ShouldEqual, 1)
		})

		Convey("Callbacks may dispatch further events synchronously", func() {
			var order []string
			w.On("outer", func(any, Data) error {
				order = append(order, "outer")
				return w.Dispatch("inner", nil)
			})
			w.On("inner", func(any, Data) error {
				order = append(order, "inner")
				return nil
			})
			So(w.Dispatch("outer", nil), ShouldBeNil)
			So(order, ShouldResemble, []string{"outer", "inner"})
		})

		Convey("A nil owner makes the emitter its own owner", func() {
			em := NewEmitter(nil)
			So(em.Owner(), ShouldEqual, em)
		})
	})

	Convey("AddListenerAll attaches one listener to every item", t, func() {
		items := []*widget{newWidget(1), newWidget(2), newWidget(3)}
		var seen []int
		l := Func(func(o any, _ Data) { seen = append(seen, o.(*widget).id) })

		AddListenerAll(items, "ping", l)
		for _, item := range items {
			So(item.Dispatch("ping", nil), ShouldBeNil)
		}

		sort.Ints(seen)
		So(seen, ShouldResemble, []int{1, 2, 3})
	})
}
