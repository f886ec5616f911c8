package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ardanlabs/powledger/business/web/errs"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestClassify(t *testing.T) {
	errEmpty := errors.New("empty")
	errTaken := errors.New("taken")

	kinds := []errs.Kind{
		{Err: errEmpty, Status: http.StatusConflict, Code: "empty"},
		{Err: errTaken, Code: "taken"},
	}

	t.Log("Given the need to classify ledger errors.")
	{
		err := errs.Classify(fmt.Errorf("seal: %w", errEmpty), kinds...)
		te := errs.GetTrusted(err)
		if te == nil || te.Status != http.StatusConflict || te.Code != "empty" {
			t.Fatalf("\t%s\tShould classify a wrapped error: %+v", failed, te)
		}
		if !errors.Is(err, errEmpty) {
			t.Fatalf("\t%s\tShould keep the original error in the chain.", failed)
		}
		t.Logf("\t%s\tShould classify a wrapped error.", success)

		if te := errs.GetTrusted(errs.Classify(errTaken, kinds...)); te == nil || te.Status != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould default to a bad request: %+v", failed, te)
		}
		t.Logf("\t%s\tShould default to a bad request.", success)

		if errs.IsTrusted(errs.Classify(errors.New("boom"), kinds...)) {
			t.Fatalf("\t%s\tShould not trust unknown errors.", failed)
		}
		t.Logf("\t%s\tShould not trust unknown errors.", success)

		if errs.Classify(nil, kinds...) != nil {
			t.Fatalf("\t%s\tShould return nil for no error.", failed)
		}
	}
}
