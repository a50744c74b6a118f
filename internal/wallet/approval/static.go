package approval

import (
	"context"

	"github/chapool/go-txsigner/internal/wallet/confirm"
)

// Static answers every prompt with the same decision. Meant for automation
// where approval happens out of band.
type Static bool

const (
	AlwaysApprove Static = true
	AlwaysReject  Static = false
)

var _ confirm.Approver = AlwaysApprove

func (s Static) Approve(ctx context.Context, _ confirm.Prompt) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return bool(s), nil
}
