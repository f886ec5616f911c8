package worker_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/identity"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/blockchain/storage/memory"
	"github.com/ardanlabs/powledger/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestAutoSeal(t *testing.T) {
	t.Log("Given the need to seal blocks in the background.")
	{
		id, err := identity.New(identity.Config{Scheme: identity.SchemeSchnorr})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate an identity: %s", failed, err)
		}

		sealed := make(chan string, 10)
		ev := func(v string, args ...any) {
			if strings.HasPrefix(v, "viewer: block:") {
				sealed <- v
			}
		}

		st, err := state.New(state.Config{
			Identity:   id,
			Storage:    memory.New(),
			Difficulty: 2,
			AutoSeal:   true,
			EvHandler:  ev,
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %s", failed, err)
		}

		worker.Run(st, worker.Config{})
		defer st.Shutdown()

		if _, err := st.InitGenesis(); err != nil {
			t.Fatalf("\t%s\tShould be able to create the genesis block: %s", failed, err)
		}
		<-sealed

		if _, err := st.SubmitTransaction("A", "B", 10); err != nil {
			t.Fatalf("\t%s\tShould be able to submit a transaction: %s", failed, err)
		}

		select {
		case <-sealed:
		case <-time.After(10 * time.Second):
			t.Fatalf("\t%s\tShould seal the block in the background.", failed)
		}

		chain, _ := st.RetrieveChain()
		if len(chain) != 2 {
			t.Fatalf("\t%s\tShould have 2 blocks in the chain, got %d.", failed, len(chain))
		}
		t.Logf("\t%s\tShould seal the block in the background.", success)
	}
}

func TestIntervalSeal(t *testing.T) {
	t.Log("Given the need to seal blocks on an interval.")
	{
		id, err := identity.New(identity.Config{Scheme: identity.SchemeSchnorr})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate an identity: %s", failed, err)
		}

		st, err := state.New(state.Config{Identity: id, Storage: memory.New(), Difficulty: 1})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %s", failed, err)
		}

		w := worker.Run(st, worker.Config{Interval: 10 * time.Millisecond})
		defer w.Shutdown()

		st.InitGenesis()
		st.SubmitTransaction("A", "B", 1)

		deadline := time.After(10 * time.Second)
		for st.QueryMempoolLength() != 0 {
			select {
			case <-deadline:
				t.Fatalf("\t%s\tShould seal the pool on the interval.", failed)
			case <-time.After(10 * time.Millisecond):
			}
		}
		t.Logf("\t%s\tShould seal the pool on the interval.", success)

		w.Shutdown()
		t.Logf("\t%s\tShould be able to shut down twice.", success)
	}
}
