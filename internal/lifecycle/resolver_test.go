package lifecycle

import (
	"fmt"
	"testing"
	"time"

	"jozi-market/internal/model"

	"github.com/stretchr/testify/assert"
)

// approvedState enumerates the three shapes the approval flag can take.
type approvedState int

const (
	approvedUnset approvedState = iota
	approvedTrue
	approvedFalse
)

func flagsFor(requested bool, approved approvedState, reviewed bool) model.ReturnFlags {
	flags := model.ReturnFlags{}

	if requested {
		flags.Requested = model.FlexTrue()
	} else {
		flags.Requested = model.FlexFalse()
	}

	switch approved {
	case approvedTrue:
		flags.Approved = model.FlexTrue()
	case approvedFalse:
		flags.Approved = model.FlexFalse()
	}

	if reviewed {
		by := "admin-42"
		at := time.Date(2024, 11, 2, 10, 0, 0, 0, time.UTC)
		flags.Reviewed = model.FlexTrue()
		flags.ReviewedBy = &by
		flags.ReviewedAt = &at
	}

	return flags
}

// Every combination of (requested, approved, review identity) maps to
// exactly one state, and Declined is never produced without a recorded
// reviewer identity.
func TestResolveReturnState_Totality(t *testing.T) {
	expected := map[[3]int]model.ReturnState{
		// requested=false: always None, whatever the other flags claim
		{0, int(approvedUnset), 0}: model.ReturnNone,
		{0, int(approvedUnset), 1}: model.ReturnNone,
		{0, int(approvedTrue), 0}:  model.ReturnNone,
		{0, int(approvedTrue), 1}:  model.ReturnNone,
		{0, int(approvedFalse), 0}: model.ReturnNone,
		{0, int(approvedFalse), 1}: model.ReturnNone,

		// requested=true, approved=true: Approved even without a reviewer
		{1, int(approvedTrue), 0}: model.ReturnApproved,
		{1, int(approvedTrue), 1}: model.ReturnApproved,

		// requested=true, not approved: the reviewer identity decides
		// between a closed decline and a request still in review
		{1, int(approvedFalse), 1}: model.ReturnDeclined,
		{1, int(approvedFalse), 0}: model.ReturnInReview,
		{1, int(approvedUnset), 1}: model.ReturnDeclined,
		{1, int(approvedUnset), 0}: model.ReturnInReview,
	}

	for requested := 0; requested <= 1; requested++ {
		for approved := 0; approved <= 2; approved++ {
			for reviewed := 0; reviewed <= 1; reviewed++ {
				key := [3]int{requested, approved, reviewed}
				name := fmt.Sprintf("requested=%d approved=%d reviewed=%d", requested, approved, reviewed)

				t.Run(name, func(t *testing.T) {
					flags := flagsFor(requested == 1, approvedState(approved), reviewed == 1)
					state := ResolveReturnState(flags)

					assert.Equal(t, expected[key], state)
					if reviewed == 0 {
						assert.NotEqual(t, model.ReturnDeclined, state,
							"a return must never read as declined before a reviewer identity is recorded")
					}
				})
			}
		}
	}
}

// An explicit false approval with no reviewer identity is a pending review,
// not a decline. Reporting it as declined would tell a customer their return
// was rejected before a human ever looked at it.
func TestResolveReturnState_FalseWithoutReviewerIsInReview(t *testing.T) {
	flags := model.ReturnFlags{
		Requested: model.FlexTrue(),
		Approved:  model.FlexFalse(),
	}

	assert.Equal(t, model.ReturnInReview, ResolveReturnState(flags))
}

// Records that never entered a return flow carry unset flags across the
// board; they must read as None, not as a review in progress.
func TestResolveReturnState_UnsetRequestedIsNone(t *testing.T) {
	assert.Equal(t, model.ReturnNone, ResolveReturnState(model.ReturnFlags{}))

	// A stray reviewer identity without a request is still None.
	by := "admin-42"
	at := time.Date(2024, 11, 2, 10, 0, 0, 0, time.UTC)
	flags := model.ReturnFlags{ReviewedBy: &by, ReviewedAt: &at}
	assert.Equal(t, model.ReturnNone, ResolveReturnState(flags))
}

// A partial review identity (reviewer without timestamp, or the reverse)
// is not enough to close the request.
func TestResolveReturnState_PartialIdentityStaysInReview(t *testing.T) {
	by := "admin-42"
	at := time.Date(2024, 11, 2, 10, 0, 0, 0, time.UTC)

	onlyBy := model.ReturnFlags{Requested: model.FlexTrue(), Approved: model.FlexFalse(), ReviewedBy: &by}
	onlyAt := model.ReturnFlags{Requested: model.FlexTrue(), Approved: model.FlexFalse(), ReviewedAt: &at}

	assert.Equal(t, model.ReturnInReview, ResolveReturnState(onlyBy))
	assert.Equal(t, model.ReturnInReview, ResolveReturnState(onlyAt))
}
