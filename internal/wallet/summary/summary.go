package summary

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/wallet/tx"
)

// none is shown for absent optional values and empty coin lists
const none = "none"

// Header returns the rows describing the transaction envelope
func Header(sender tx.Addr, chainID string, sequence uint32) []Row {
	return []Row{
		AddressRow("sender", string(sender)),
		TextRow("chain id", chainID),
		TextRow("sequence", strconv.FormatUint(uint64(sequence), 10)),
	}
}

// Summarize renders every message as a divider, a "message #i" row naming
// the variant, and one or more rows per signed field.
//
// Rows are built from the same field table as the sign document, so a
// field that is signed is always displayed.
func Summarize(msgs tx.Messages) ([]Row, error) {
	rows := make([]Row, 0, len(msgs)*4)

	for i, msg := range msgs {
		if msg == nil {
			return nil, errors.Wrapf(tx.ErrEncoding, "message #%d is nil", i+1)
		}

		rows = append(rows,
			DividerRow(),
			TextRow(fmt.Sprintf("message #%d", i+1), msg.Kind().DisplayName()),
		)

		for _, field := range tx.Fields(msg) {
			fieldRows, err := fieldToRows(field)
			if err != nil {
				return nil, errors.Wrapf(err, "message #%d %s", i+1, field.Key)
			}
			rows = append(rows, fieldRows...)
		}
	}

	return rows, nil
}

func fieldToRows(field tx.Field) ([]Row, error) {
	switch v := field.Value.(type) {
	case tx.Addr:
		return []Row{AddressRow(field.Label, string(v))}, nil
	case *tx.Addr:
		if v == nil {
			return []Row{TextRow(field.Label, none)}, nil
		}
		return []Row{AddressRow(field.Label, string(*v))}, nil
	case tx.Coins:
		coins, err := v.Normalize()
		if err != nil {
			return nil, err
		}
		return []Row{TextRow(field.Label, coins.String())}, nil
	case tx.Payload:
		canonical, err := v.Canonical()
		if err != nil {
			return nil, err
		}
		return []Row{TextRow(field.Label, string(canonical))}, nil
	case tx.Binary:
		if len(v) == 0 {
			// signed as "", so shown as "" rather than a placeholder
			return []Row{TextRow(field.Label, `""`)}, nil
		}
		return []Row{TextRow(field.Label, base64.StdEncoding.EncodeToString(v))}, nil
	case tx.Hash:
		return []Row{TextRow(field.Label, v.String())}, nil
	case tx.Code:
		// byte code is too large to show, the hash identifies it
		return []Row{
			TextRow(field.Label+" hash", v.Fingerprint().String()),
			TextRow(field.Label+" size", fmt.Sprintf("%d bytes", len(v))),
		}, nil
	default:
		return nil, errors.Wrapf(tx.ErrEncoding, "unsupported field type %T", field.Value)
	}
}
