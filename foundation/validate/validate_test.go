package validate_test

import (
	"testing"

	"github.com/ardanlabs/powledger/foundation/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type payload struct {
	Sender string  `json:"sender" validate:"required"`
	Amount float64 `json:"amount" validate:"gt=0"`
}

func TestCheck(t *testing.T) {
	t.Log("Given the need to validate request payloads.")
	{
		t.Logf("\tTest 0:\tWhen the payload is missing values.")
		{
			err := validate.Check(payload{})
			fe := validate.GetFieldErrors(err)
			if fe == nil {
				t.Fatalf("\t%s\tTest 0:\tShould get field errors, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get field errors.", success)

			fields := fe.Fields()
			if _, exists := fields["sender"]; !exists {
				t.Fatalf("\t%s\tTest 0:\tShould name the field by its json tag, got %v.", failed, fields)
			}
			if _, exists := fields["amount"]; !exists {
				t.Fatalf("\t%s\tTest 0:\tShould name the field by its json tag, got %v.", failed, fields)
			}
			t.Logf("\t%s\tTest 0:\tShould name the fields by their json tag.", success)
		}

		t.Logf("\tTest 1:\tWhen the payload is complete.")
		{
			if err := validate.Check(payload{Sender: "Alice", Amount: 1}); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould pass validation: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould pass validation.", success)
		}
	}
}
