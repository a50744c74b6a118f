package tx

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrEncoding is returned when a transaction can't be canonically serialized
var ErrEncoding = errors.New("encoding error")

// HashSize is the length of code hashes and sign digests
const HashSize = sha256.Size

// maxAmountBits bounds coin amounts to Uint128
const maxAmountBits = 128

// Addr is a chain account or contract address
type Addr string

func (a Addr) validate(name string) error {
	if strings.TrimSpace(string(a)) == "" {
		return errors.Wrapf(ErrEncoding, "%s address is empty", name)
	}
	return validateText(name+" address", string(a))
}

// validateText rejects strings that encoding/json would silently rewrite
// with U+FFFD, so distinct inputs can never share sign bytes.
func validateText(name string, s string) error {
	if !utf8.ValidString(s) {
		return errors.Wrapf(ErrEncoding, "%s is not valid UTF-8", name)
	}
	return nil
}

// Hash is a 32-byte SHA-256 digest, hex encoded in JSON
type Hash [HashSize]byte

// HashBytes returns the SHA-256 hash of b
func HashBytes(b []byte) Hash {
	return sha256.Sum256(b)
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimPrefix(string(text), "0x"), "0X")
	if hex.DecodedLen(len(s)) != HashSize {
		return errors.Wrapf(ErrEncoding, "hash must be %d hex characters", 2*HashSize)
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return errors.Wrap(ErrEncoding, err.Error())
	}
	return nil
}

// Binary is an opaque byte string, base64 encoded in JSON
type Binary []byte

// Code is contract byte code. It is signed in full but shown by fingerprint.
type Code []byte

// Fingerprint returns the SHA-256 hash of the code
func (c Code) Fingerprint() Hash {
	return HashBytes(c)
}

// Payload is a structured JSON message (contract msg or chain config)
type Payload json.RawMessage

func (p Payload) MarshalJSON() ([]byte, error) {
	return p.Canonical()
}

func (p *Payload) UnmarshalJSON(b []byte) error {
	*p = append((*p)[:0], b...)
	return nil
}

// Canonical returns the payload re-encoded with sorted object keys and no
// insignificant whitespace. An empty payload encodes as null.
func (p Payload) Canonical() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}

	value, err := decodeJSON(p)
	if err != nil {
		return nil, errors.Wrap(ErrEncoding, err.Error())
	}

	return marshalCanonical(value)
}

// Coin is an amount of a single denomination
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

func (c Coin) String() string {
	return c.Amount + " " + c.Denom
}

// Coins is an unordered set of coins; its canonical form is sorted by denom
type Coins []Coin

// Normalize validates the coins and returns them sorted by denom with
// amounts stripped of leading zeros.
func (c Coins) Normalize() (Coins, error) {
	out := make(Coins, 0, len(c))
	seen := make(map[string]struct{}, len(c))

	for _, coin := range c {
		if coin.Denom == "" {
			return nil, errors.Wrap(ErrEncoding, "coin denom is empty")
		}
		if err := validateText("coin denom", coin.Denom); err != nil {
			return nil, err
		}
		if _, ok := seen[coin.Denom]; ok {
			return nil, errors.Wrapf(ErrEncoding, "duplicate denom %q", coin.Denom)
		}
		seen[coin.Denom] = struct{}{}

		amount, err := parseAmount(coin.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "coin %q", coin.Denom)
		}

		out = append(out, Coin{Denom: coin.Denom, Amount: amount})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Denom < out[j].Denom })

	return out, nil
}

func (c Coins) String() string {
	if len(c) == 0 {
		return "none"
	}

	parts := make([]string, 0, len(c))
	for _, coin := range c {
		parts = append(parts, coin.String())
	}
	return strings.Join(parts, ", ")
}

func parseAmount(s string) (string, error) {
	if s == "" {
		return "", errors.Wrap(ErrEncoding, "amount is empty")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", errors.Wrapf(ErrEncoding, "amount %q is not an unsigned decimal", s)
		}
	}

	//nolint:mnd // base 10
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return "", errors.Wrapf(ErrEncoding, "invalid amount %q", s)
	}
	if amount.BitLen() > maxAmountBits {
		return "", errors.Wrapf(ErrEncoding, "amount %q overflows uint128", s)
	}

	return amount.String(), nil
}
