package tx

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the tag of a message variant, used as its key in JSON and in the sign document
type Kind string

const (
	KindUpdateConfig Kind = "update_config"
	KindTransfer     Kind = "transfer"
	KindStoreCode    Kind = "store_code"
	KindInstantiate  Kind = "instantiate"
	KindExecute      Kind = "execute"
	KindMigrate      Kind = "migrate"
)

// DisplayName returns the human readable name of the variant, e.g. "store code"
func (k Kind) DisplayName() string {
	return strings.ReplaceAll(string(k), "_", " ")
}

// Message is one of UpdateConfig, Transfer, StoreCode, Instantiate, Execute
// or Migrate. The set is closed: fields() is unexported.
type Message interface {
	Kind() Kind
	fields() []Field
}

// Field is one entry of a variant's field table. The same table drives both
// the sign document and the confirmation summary, so every signed field is shown.
//
// Value is one of Addr, *Addr, Coins, Payload, Binary, Hash or Code.
type Field struct {
	Key   string
	Label string
	Value any
}

// Fields returns the field table of msg
func Fields(msg Message) []Field {
	return msg.fields()
}

// UpdateConfig replaces the chain configuration
type UpdateConfig struct {
	NewConfig Payload `json:"new_config"`
}

func (UpdateConfig) Kind() Kind { return KindUpdateConfig }

func (m UpdateConfig) fields() []Field {
	return []Field{
		{Key: "new_config", Label: "new config", Value: m.NewConfig},
	}
}

// Transfer sends coins to an address
type Transfer struct {
	To    Addr  `json:"to"`
	Coins Coins `json:"coins"`
}

func (Transfer) Kind() Kind { return KindTransfer }

func (m Transfer) fields() []Field {
	return []Field{
		{Key: "to", Label: "to", Value: m.To},
		{Key: "coins", Label: "coins", Value: m.Coins},
	}
}

// StoreCode uploads contract byte code
type StoreCode struct {
	WasmByteCode Code `json:"wasm_byte_code"`
}

func (StoreCode) Kind() Kind { return KindStoreCode }

func (m StoreCode) fields() []Field {
	return []Field{
		{Key: "wasm_byte_code", Label: "code", Value: m.WasmByteCode},
	}
}

// Instantiate creates a contract from stored code
type Instantiate struct {
	CodeHash Hash    `json:"code_hash"`
	Msg      Payload `json:"msg"`
	Salt     Binary  `json:"salt"`
	Funds    Coins   `json:"funds"`
	Admin    *Addr   `json:"admin"`
}

func (Instantiate) Kind() Kind { return KindInstantiate }

func (m Instantiate) fields() []Field {
	return []Field{
		{Key: "code_hash", Label: "code hash", Value: m.CodeHash},
		{Key: "msg", Label: "msg", Value: m.Msg},
		{Key: "salt", Label: "salt", Value: m.Salt},
		{Key: "funds", Label: "funds", Value: m.Funds},
		{Key: "admin", Label: "admin", Value: m.Admin},
	}
}

// Execute calls a contract
type Execute struct {
	Contract Addr    `json:"contract"`
	Msg      Payload `json:"msg"`
	Funds    Coins   `json:"funds"`
}

func (Execute) Kind() Kind { return KindExecute }

func (m Execute) fields() []Field {
	return []Field{
		{Key: "contract", Label: "contract", Value: m.Contract},
		{Key: "msg", Label: "msg", Value: m.Msg},
		{Key: "funds", Label: "funds", Value: m.Funds},
	}
}

// Migrate switches a contract to new code
type Migrate struct {
	Contract    Addr    `json:"contract"`
	NewCodeHash Hash    `json:"new_code_hash"`
	Msg         Payload `json:"msg"`
}

func (Migrate) Kind() Kind { return KindMigrate }

func (m Migrate) fields() []Field {
	return []Field{
		{Key: "contract", Label: "contract", Value: m.Contract},
		{Key: "new_code_hash", Label: "new code hash", Value: m.NewCodeHash},
		{Key: "msg", Label: "msg", Value: m.Msg},
	}
}

// CanonicalValue returns the sign document representation of a field value
func CanonicalValue(value any) (any, error) {
	switch v := value.(type) {
	case Addr:
		if err := v.validate("message"); err != nil {
			return nil, err
		}
		return string(v), nil
	case *Addr:
		if v == nil {
			return nil, nil
		}
		if err := v.validate("message"); err != nil {
			return nil, err
		}
		return string(*v), nil
	case Coins:
		coins, err := v.Normalize()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(coins))
		for _, coin := range coins {
			out = append(out, map[string]any{"amount": coin.Amount, "denom": coin.Denom})
		}
		return out, nil
	case Payload:
		canonical, err := v.Canonical()
		if err != nil {
			return nil, err
		}
		return json.RawMessage(canonical), nil
	case Binary:
		return base64.StdEncoding.EncodeToString(v), nil
	case Code:
		return base64.StdEncoding.EncodeToString(v), nil
	case Hash:
		return v.String(), nil
	default:
		return nil, errors.Wrapf(ErrEncoding, "unsupported field type %T", value)
	}
}

// Messages is an ordered message list, JSON encoded as externally tagged
// variants: [{"transfer": {"to": "...", "coins": [...]}}]
type Messages []Message

func (m Messages) MarshalJSON() ([]byte, error) {
	out := make([]map[Kind]Message, 0, len(m))
	for _, msg := range m {
		if msg == nil {
			return nil, errors.Wrap(ErrEncoding, "nil message")
		}
		out = append(out, map[Kind]Message{msg.Kind(): msg})
	}
	return json.Marshal(out)
}

func (m *Messages) UnmarshalJSON(b []byte) error {
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(b, &entries); err != nil {
		return errors.Wrap(ErrEncoding, err.Error())
	}

	msgs := make(Messages, 0, len(entries))
	for i, entry := range entries {
		if len(entry) != 1 {
			return errors.Wrapf(ErrEncoding, "message #%d must have exactly one variant, got %d", i+1, len(entry))
		}

		for key, body := range entry {
			msg, err := decodeMessage(Kind(key), body)
			if err != nil {
				return errors.Wrapf(err, "message #%d", i+1)
			}
			msgs = append(msgs, msg)
		}
	}

	*m = msgs
	return nil
}

//nolint:ireturn // decodes into the matching variant
func decodeMessage(kind Kind, body json.RawMessage) (Message, error) {
	switch kind {
	case KindUpdateConfig:
		return decodeVariant[UpdateConfig](body)
	case KindTransfer:
		return decodeVariant[Transfer](body)
	case KindStoreCode:
		return decodeVariant[StoreCode](body)
	case KindInstantiate:
		return decodeVariant[Instantiate](body)
	case KindExecute:
		return decodeVariant[Execute](body)
	case KindMigrate:
		return decodeVariant[Migrate](body)
	default:
		return nil, errors.Wrapf(ErrEncoding, "unknown message variant %q", kind)
	}
}

//nolint:ireturn
func decodeVariant[T Message](body json.RawMessage) (Message, error) {
	var msg T
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msg); err != nil {
		return nil, errors.Wrapf(ErrEncoding, "%s: %v", msg.Kind(), err)
	}
	return msg, nil
}
