package summary

// RowKind tells a renderer how to present a row's value
type RowKind string

const (
	RowText    RowKind = "text"
	RowAddress RowKind = "address"
	RowDivider RowKind = "divider"
)

// Row is one label/value line of a confirmation prompt
type Row struct {
	Label string  `json:"label,omitempty"`
	Value string  `json:"value,omitempty"`
	Kind  RowKind `json:"kind"`
}

// TextRow is a plain label/value row
func TextRow(label string, value string) Row {
	return Row{Label: label, Value: value, Kind: RowText}
}

// AddressRow holds an account or contract address
func AddressRow(label string, value string) Row {
	return Row{Label: label, Value: value, Kind: RowAddress}
}

// DividerRow separates messages
func DividerRow() Row {
	return Row{Kind: RowDivider}
}
