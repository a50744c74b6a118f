package types

import (
	"encoding/json"

	"github.com/go-openapi/strfmt"
	"github/chapool/go-txsigner/internal/wallet/tx"
)

const (
	RPCMethodSignTransaction = "signTransaction"
	RPCMethodCreateAndSignTx = "createAndSignTx"
	RPCMethodGetPublicKey    = "getPublicKey"
)

// PostRPCPayload is the body of POST /rpc
type PostRPCPayload struct {
	// Echoed back in the response
	ID any `json:"id,omitempty"`

	// One of signTransaction, createAndSignTx or getPublicKey
	Method string `json:"method" validate:"required"`

	Params json.RawMessage `json:"params,omitempty"`
}

// SignTransactionParams are the params of signTransaction and createAndSignTx
type SignTransactionParams struct {
	Tx tx.Tx `json:"tx"`
}

// GetPublicKeyParams are the optional params of getPublicKey
type GetPublicKeyParams struct {
	// BIP-44 coin type to derive with, defaults to the configured one
	CoinType *uint32 `json:"coin_type,omitempty" validate:"omitempty,lt=2147483648"`
}

// RPCResponse wraps the result of a successful call
type RPCResponse struct {
	ID     any `json:"id,omitempty"`
	Result any `json:"result" validate:"required"`
}

// SignTransactionResult is the result of signTransaction
type SignTransactionResult struct {
	// base64 encoded r||s signature
	Signature string `json:"signature" validate:"required,base64"`
}

// GetPublicKeyResult is the result of getPublicKey
type GetPublicKeyResult struct {
	// hex encoded compressed secp256k1 public key
	PublicKey string `json:"public_key" validate:"required,hexadecimal,len=66"`
	Address   string `json:"address" validate:"required,eth_addr"`
}

// SummaryRow is one label/value line of a sign request summary
type SummaryRow struct {
	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`
	Kind  string `json:"kind" validate:"required,oneof=text address divider"`
}

// ApprovalRequest is a sign request awaiting a decision
type ApprovalRequest struct {
	RequestID string           `json:"request_id" validate:"required"`
	Header    []*SummaryRow    `json:"header" validate:"required,dive"`
	Rows      []*SummaryRow    `json:"rows" validate:"required,dive"`
	CreatedAt strfmt.DateTime  `json:"created_at"`
	ExpiresAt *strfmt.DateTime `json:"expires_at,omitempty"`
}

// ApprovalListResponse lists the sign requests awaiting a decision, oldest first
type ApprovalListResponse struct {
	Approvals []*ApprovalRequest `json:"approvals" validate:"required,dive"`
}

// ApprovalDecisionResponse confirms a resolved sign request
type ApprovalDecisionResponse struct {
	RequestID string `json:"request_id" validate:"required"`
	Approved  bool   `json:"approved"`
}
