package tx

import (
	"github.com/pkg/errors"
)

// SignDocVersion identifies the sign document layout produced by
// EncodeSignableBytes. Signatures over different versions are incompatible;
// bump it on any change to the output bytes.
const SignDocVersion = 1

// EncodeSignableBytes returns the canonical JSON sign document
//
//	{"chain_id":...,"msgs":[...],"sender":...,"sequence":...}
//
// with object keys sorted at every level. The output depends only on the
// logical content of its inputs, never on key order of nested payloads.
func EncodeSignableBytes(msgs Messages, sender Addr, chainID string, sequence uint32) ([]byte, error) {
	if err := sender.validate("sender"); err != nil {
		return nil, err
	}
	if chainID == "" {
		return nil, errors.Wrap(ErrEncoding, "chain id is empty")
	}
	if err := validateText("chain id", chainID); err != nil {
		return nil, err
	}

	encoded := make([]any, 0, len(msgs))
	for i, msg := range msgs {
		value, err := canonicalMessage(msg)
		if err != nil {
			return nil, errors.Wrapf(err, "message #%d", i+1)
		}
		encoded = append(encoded, value)
	}

	return marshalCanonical(map[string]any{
		"chain_id": chainID,
		"msgs":     encoded,
		"sender":   string(sender),
		"sequence": sequence,
	})
}

// SignDigest returns the SHA-256 digest of the sign document, the value that gets signed
func SignDigest(msgs Messages, sender Addr, chainID string, sequence uint32) (Hash, error) {
	signBytes, err := EncodeSignableBytes(msgs, sender, chainID, sequence)
	if err != nil {
		return Hash{}, err
	}

	return HashBytes(signBytes), nil
}

func canonicalMessage(msg Message) (map[string]any, error) {
	if msg == nil {
		return nil, errors.Wrap(ErrEncoding, "nil message")
	}

	body := make(map[string]any)
	for _, field := range msg.fields() {
		value, err := CanonicalValue(field.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", msg.Kind(), field.Key)
		}
		body[field.Key] = value
	}

	return map[string]any{string(msg.Kind()): body}, nil
}
