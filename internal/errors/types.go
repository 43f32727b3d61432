package errors

// closed set of classification outcomes
type Category uint8

const (
	CategoryGeneric Category = iota
	CategoryDataIntegrity
	CategoryResourceNotFound
	CategoryTypeMismatch
	CategoryInvalidUsage
	CategoryBusinessRule
	CategoryEntityNotFound
)

var categoryNames = [...]string{
	CategoryGeneric:          "generic",
	CategoryDataIntegrity:    "data_integrity",
	CategoryResourceNotFound: "resource_not_found",
	CategoryTypeMismatch:     "type_mismatch",
	CategoryInvalidUsage:     "invalid_usage",
	CategoryBusinessRule:     "business_rule",
	CategoryEntityNotFound:   "entity_not_found",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}

	return "unknown"
}

// Error is a failure tagged with its category.
//
// BusinessRule and EntityNotFound errors carry their own Key and Description.
// TypeMismatch errors carry the offending parameter in Name, Value and Type.
// The remaining categories only wrap the underlying cause in Err.
type Error struct {
	Category    Category
	Key         string
	Description string

	Name  string
	Value string
	Type  string

	Err error
}
