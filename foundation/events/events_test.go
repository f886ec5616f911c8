package events_test

import (
	"testing"

	"github.com/ardanlabs/powledger/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestParse(t *testing.T) {
	tt := []struct {
		msg  string
		ok   bool
		kind string
		data string
	}{
		{msg: `viewer: block: {"hash":"00ab"}`, ok: true, kind: "block", data: `{"hash":"00ab"}`},
		{msg: "viewer: tx", ok: true, kind: "tx", data: ""},
		{msg: "state: SealNewBlock: MINING", ok: false},
	}

	t.Log("Given the need to parse viewer messages.")
	{
		for testID, tst := range tt {
			e, ok := events.Parse(tst.msg)
			if ok != tst.ok || e.Kind != tst.kind || e.Data != tst.data {
				t.Fatalf("\t%s\tTest %d:\tShould parse %q, got %+v %v.", failed, testID, tst.msg, e, ok)
			}
			t.Logf("\t%s\tTest %d:\tShould parse %q.", success, testID, tst.msg)
		}
	}
}

func TestSend(t *testing.T) {
	t.Log("Given the need to fan events out to receivers.")
	{
		evts := events.New()
		all := evts.Acquire("all")
		blocks := evts.Acquire("blocks", "block")

		evts.SendMessage("viewer: block: one")
		evts.SendMessage("viewer: tx: two")
		evts.SendMessage("worker: ignored")

		if len(all) != 2 {
			t.Fatalf("\t%s\tShould deliver every event to an unfiltered receiver, got %d.", failed, len(all))
		}
		if len(blocks) != 1 {
			t.Fatalf("\t%s\tShould deliver only block events to a filtered receiver, got %d.", failed, len(blocks))
		}
		if e := <-blocks; e.Data != "one" {
			t.Fatalf("\t%s\tShould get the block event, got %+v.", failed, e)
		}
		t.Logf("\t%s\tShould fan out events by kind.", success)

		if err := evts.Release("blocks"); err != nil {
			t.Fatalf("\t%s\tShould be able to release a receiver: %s", failed, err)
		}
		if err := evts.Release("blocks"); err == nil {
			t.Fatalf("\t%s\tShould not release a receiver twice.", failed)
		}
		if _, open := <-blocks; open {
			t.Fatalf("\t%s\tShould close a released channel.", failed)
		}
		t.Logf("\t%s\tShould release receivers.", success)

		evts.Shutdown()
		if evts.Count() != 0 {
			t.Fatalf("\t%s\tShould remove every receiver on shutdown.", failed)
		}
		t.Logf("\t%s\tShould remove every receiver on shutdown.", success)
	}
}
