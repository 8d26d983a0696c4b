package schema

// FieldType represents the semantic type declared for a FIX tag.
type FieldType string

const (
	FieldTypeInt     FieldType = "int"
	FieldTypeFloat   FieldType = "float"
	FieldTypeChar    FieldType = "char"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeData    FieldType = "data"
	FieldTypeString  FieldType = "string"
	FieldTypeDate    FieldType = "date"
	FieldTypeTime    FieldType = "time"
)

// FieldProperty marks tags that need handling beyond plain tag=value scanning.
type FieldProperty string

const (
	PropertyNone FieldProperty = ""
	// PropertyRepeated marks a counter tag that introduces a repeating group.
	PropertyRepeated FieldProperty = "repeated"
	// PropertyDataLength marks a tag whose integer value declares the byte
	// length of the next field's raw payload.
	PropertyDataLength FieldProperty = "data_length"
	// PropertyData marks a tag whose value is a raw payload of exactly the
	// previously declared length. Delimiter bytes inside it are opaque.
	PropertyData FieldProperty = "data"
	// PropertyEncoded marks a string tag whose bytes use the message's
	// configured text encoding rather than the default.
	PropertyEncoded FieldProperty = "encoded"
	// PropertyMultiValueString marks a space-separated multiple-value string.
	PropertyMultiValueString FieldProperty = "multi_value_string"
)

// TagDescriptor describes a single FIX tag: its number, semantic type and
// special property. Descriptors are built once at registry construction and
// shared by reference; they must never be mutated afterward.
type TagDescriptor struct {
	Key      int           `yaml:"key" json:"key"`
	Name     string        `yaml:"name" json:"name"`
	Type     FieldType     `yaml:"type" json:"type"`
	Property FieldProperty `yaml:"property,omitempty" json:"property,omitempty"`
}

// Dictionary is the on-disk format for supplemental tag definitions. A YAML
// dictionary may span multiple documents; each document carries a tags list.
type Dictionary struct {
	Tags []*TagDescriptor `yaml:"tags" json:"tags"`
}

var validTypes = map[FieldType]struct{}{
	FieldTypeInt:     {},
	FieldTypeFloat:   {},
	FieldTypeChar:    {},
	FieldTypeBoolean: {},
	FieldTypeData:    {},
	FieldTypeString:  {},
	FieldTypeDate:    {},
	FieldTypeTime:    {},
}

// IsValidType checks and returns if t is a declared semantic type.
func IsValidType(t FieldType) bool {
	_, ok := validTypes[t]
	return ok
}

var validProperties = map[FieldProperty]struct{}{
	PropertyNone:             {},
	PropertyRepeated:         {},
	PropertyDataLength:       {},
	PropertyData:             {},
	PropertyEncoded:          {},
	PropertyMultiValueString: {},
}

// IsValidProperty checks and returns if p is a declared field property.
func IsValidProperty(p FieldProperty) bool {
	_, ok := validProperties[p]
	return ok
}
