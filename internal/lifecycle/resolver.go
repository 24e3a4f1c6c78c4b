// Package lifecycle derives customer-facing order state from the raw flags
// reported by the order service, and constructs the outgoing cancellation and
// return requests. Everything in this package is pure; submission and
// refreshing belong to the service layer.
package lifecycle

import "jozi-market/internal/model"

// ResolveReturnState combines the request/approval/review flags into exactly
// one of the four return states. First match wins:
//
//   - request flag not affirmatively true (false or unset): None
//   - approved flag true: Approved (approval implies review; an
//     approved-but-unreviewed record still reads as Approved, never as None)
//   - review identity fully present: Declined
//   - otherwise: InReview
//
// A return is never reported as Declined before a reviewer identity is
// recorded. An explicit false approval without a reviewer means the request
// is still in review, not that a human rejected it.
func ResolveReturnState(flags model.ReturnFlags) model.ReturnState {
	if flags.Requested.False() {
		return model.ReturnNone
	}
	if flags.Approved.True() {
		return model.ReturnApproved
	}
	if flags.ReviewIdentityPresent() {
		return model.ReturnDeclined
	}
	return model.ReturnInReview
}
