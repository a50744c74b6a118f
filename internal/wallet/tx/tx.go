package tx

import "github.com/go-openapi/strfmt"

// Tx is the signable view of a transaction. Nothing outside these four
// fields influences the sign document.
type Tx struct {
	Sender   Addr     `json:"sender"`
	Msgs     Messages `json:"msgs"`
	ChainID  string   `json:"chain_id"`
	Sequence uint32   `json:"sequence"`
}

// SignBytes returns the canonical sign document of the transaction
func (t *Tx) SignBytes() ([]byte, error) {
	return EncodeSignableBytes(t.Msgs, t.Sender, t.ChainID, t.Sequence)
}

// Digest returns the SHA-256 digest of the sign document
func (t *Tx) Digest() (Hash, error) {
	return SignDigest(t.Msgs, t.Sender, t.ChainID, t.Sequence)
}

// SignedTransaction is a transaction together with its base64 encoded signature
type SignedTransaction struct {
	Sender     Addr          `json:"sender"`
	Msgs       Messages      `json:"msgs"`
	Credential strfmt.Base64 `json:"credential"`
}
