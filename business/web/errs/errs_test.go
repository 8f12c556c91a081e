package errs_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ardanlabs/powledger/business/web/errs"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestFromLedger(t *testing.T) {
	type table struct {
		name   string
		err    error
		status int
	}

	tt := []table{
		{name: "funds", err: database.NewValidationError(database.ErrInsufficientFunds, "insufficient funds for Alice (has 0)"), status: http.StatusBadRequest},
		{name: "amount", err: database.NewValidationError(database.ErrInvalidAmount, "amount must be positive"), status: http.StatusBadRequest},
		{name: "missing", err: fmt.Errorf("block 9: %w", state.ErrNotFound), status: http.StatusNotFound},
		{name: "limit", err: fmt.Errorf("pow: %w", database.ErrMiningLimit), status: http.StatusServiceUnavailable},
		{name: "deadline", err: fmt.Errorf("pow: %w", context.DeadlineExceeded), status: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("disk on fire")},
	}

	t.Log("Given the need to map ledger errors to status codes.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s error.", testID, tst.name)
			{
				f := func(t *testing.T) {
					err := errs.FromLedger(tst.err)

					trusted := errs.GetTrusted(err)
					switch tst.status {
					case 0:
						if trusted != nil {
							t.Fatalf("\t%s\tTest %d:\tShould not trust the error.", failed, testID)
						}
						t.Logf("\t%s\tTest %d:\tShould not trust the error.", success, testID)

					default:
						if trusted == nil || trusted.Status != tst.status {
							t.Fatalf("\t%s\tTest %d:\tShould get status %d, got %v.", failed, testID, tst.status, trusted)
						}
						t.Logf("\t%s\tTest %d:\tShould get status %d.", success, testID, tst.status)

						if !errors.Is(err, errors.Unwrap(tst.err)) && !errors.Is(err, tst.err) {
							t.Fatalf("\t%s\tTest %d:\tShould keep the ledger error.", failed, testID)
						}
						t.Logf("\t%s\tTest %d:\tShould keep the ledger error.", success, testID)
					}
				}

				t.Run(tst.name, f)
			}
		}
	}
}
