package services

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/noora/internal/apperr"
	"github.com/example/noora/internal/models"
)

// RawValue is the untyped payload submitted for one attribute. Value carries text,
// numbers, booleans and single-select tokens; Values carries multi-select tokens.
type RawValue struct {
	Value  string   `json:"value"`
	Values []string `json:"values"`
}

// coercedValue is the typed result of coercing a RawValue against an attribute
// definition. At most one channel is populated.
type coercedValue struct {
	Text    *string
	Number  *decimal.Decimal
	Bool    *bool
	Options []models.AttributeOption
}

func (v coercedValue) empty() bool {
	if v.Text != nil && *v.Text != "" {
		return false
	}
	return v.Number == nil && v.Bool == nil && len(v.Options) == 0
}

// coerceValue translates raw input into the channel declared by the attribute's data
// type. options must be the attribute's full option list for select types.
func coerceValue(attr models.Attribute, options []models.AttributeOption, raw RawValue) (coercedValue, error) {
	var out coercedValue

	switch attr.DataType {
	case models.DataTypeText:
		if raw.Value != "" {
			text := raw.Value
			out.Text = &text
		}

	case models.DataTypeNumber:
		if raw.Value != "" {
			num, err := decimal.NewFromString(strings.TrimSpace(raw.Value))
			if err != nil {
				return out, apperr.InvalidValue(attr.Key, "%q is not a valid number", raw.Value)
			}
			out.Number = &num
		}

	case models.DataTypeBoolean:
		if raw.Value != "" {
			b := parseBoolToken(raw.Value)
			out.Bool = &b
		}

	case models.DataTypeSingleSelect:
		if raw.Value != "" {
			option, ok := findOption(options, raw.Value)
			if !ok {
				return out, apperr.InvalidValue(attr.Key, "unknown option %q", raw.Value)
			}
			out.Options = []models.AttributeOption{option}
		}

	case models.DataTypeMultiSelect:
		tokens := raw.Values
		if len(tokens) == 0 && raw.Value != "" {
			tokens = splitTokens(raw.Value)
		}
		for _, token := range tokens {
			option, ok := findOption(options, token)
			if !ok {
				return out, apperr.InvalidValue(attr.Key, "unknown option %q", token)
			}
			out.Options = append(out.Options, option)
		}

	default:
		return out, apperr.InvalidValue(attr.Key, "unknown data type %q", attr.DataType)
	}

	if out.empty() {
		return out, apperr.InvalidValue(attr.Key, "at least one value must be provided")
	}

	return out, nil
}

// parseBoolToken coerces a supplied token to a boolean: true/1/yes mean true,
// anything else means false.
func parseBoolToken(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func findOption(options []models.AttributeOption, value string) (models.AttributeOption, bool) {
	for _, option := range options {
		if option.Value == value {
			return option, true
		}
	}
	return models.AttributeOption{}, false
}

func splitTokens(value string) []string {
	parts := strings.Split(value, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens
}

// displayValue renders the human-readable string for a stored value. Selected
// options are joined by their sort order.
func displayValue(attr models.Attribute, value models.ProductAttributeValue) string {
	switch attr.DataType {
	case models.DataTypeText:
		if value.ValueText != nil {
			return *value.ValueText
		}
		return ""

	case models.DataTypeNumber:
		if value.ValueNumber != nil {
			return value.ValueNumber.String()
		}
		return ""

	case models.DataTypeBoolean:
		if value.ValueBool == nil {
			return ""
		}
		if *value.ValueBool {
			return "true"
		}
		return "false"

	case models.DataTypeSingleSelect:
		if len(value.Options) > 0 {
			return value.Options[0].Label
		}
		return ""

	case models.DataTypeMultiSelect:
		options := sortedOptions(value.Options)
		labels := make([]string, 0, len(options))
		for _, option := range options {
			labels = append(labels, option.Label)
		}
		return strings.Join(labels, ", ")
	}
	return ""
}

// rawValueString renders the machine representation used in detailed specification
// rows: the stored channel as a string, option values for select types.
func rawValueString(attr models.Attribute, value models.ProductAttributeValue) string {
	switch attr.DataType {
	case models.DataTypeText:
		if value.ValueText != nil {
			return *value.ValueText
		}
		return ""

	case models.DataTypeNumber:
		if value.ValueNumber != nil {
			return value.ValueNumber.String()
		}
		return ""

	case models.DataTypeBoolean:
		if value.ValueBool == nil {
			return ""
		}
		if *value.ValueBool {
			return "true"
		}
		return "false"

	case models.DataTypeSingleSelect:
		if len(value.Options) > 0 {
			return value.Options[0].Value
		}
		return ""

	case models.DataTypeMultiSelect:
		options := sortedOptions(value.Options)
		values := make([]string, 0, len(options))
		for _, option := range options {
			values = append(values, option.Value)
		}
		return strings.Join(values, ", ")
	}
	return ""
}

func sortedOptions(options []models.AttributeOption) []models.AttributeOption {
	sorted := make([]models.AttributeOption, len(options))
	copy(sorted, options)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		return sorted[i].Value < sorted[j].Value
	})
	return sorted
}
