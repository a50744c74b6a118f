package approvals

import (
	"github.com/go-openapi/strfmt"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/wallet/approval"
	"github/chapool/go-txsigner/internal/wallet/summary"
)

func toApprovalRequest(request approval.Request) *types.ApprovalRequest {
	out := &types.ApprovalRequest{
		RequestID: request.Prompt.RequestID,
		Header:    toSummaryRows(request.Prompt.Header),
		Rows:      toSummaryRows(request.Prompt.Rows),
		CreatedAt: strfmt.DateTime(request.CreatedAt),
	}

	if request.ExpiresAt != nil {
		expiresAt := strfmt.DateTime(*request.ExpiresAt)
		out.ExpiresAt = &expiresAt
	}

	return out
}

func toSummaryRows(rows []summary.Row) []*types.SummaryRow {
	out := make([]*types.SummaryRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, &types.SummaryRow{
			Label: row.Label,
			Value: row.Value,
			Kind:  string(row.Kind),
		})
	}

	return out
}
