package registry

import (
	"sort"
	"testing"

	"github.com/fixwire/fixwire/schema"
)

func TestRegistry_LookupBuiltin(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		tag      int
		name     string
		typ      schema.FieldType
		property schema.FieldProperty
	}{
		{8, "BeginString", schema.FieldTypeString, schema.PropertyNone},
		{9, "BodyLength", schema.FieldTypeInt, schema.PropertyNone},
		{35, "MsgType", schema.FieldTypeString, schema.PropertyNone},
		{43, "PossDupFlag", schema.FieldTypeBoolean, schema.PropertyNone},
		{52, "SendingTime", schema.FieldTypeDate, schema.PropertyNone},
		{54, "Side", schema.FieldTypeChar, schema.PropertyNone},
		{73, "NoOrders", schema.FieldTypeInt, schema.PropertyRepeated},
		{90, "SecureDataLen", schema.FieldTypeInt, schema.PropertyDataLength},
		{91, "SecureData", schema.FieldTypeData, schema.PropertyData},
		{93, "SignatureLength", schema.FieldTypeInt, schema.PropertyDataLength},
		{95, "RawDataLength", schema.FieldTypeInt, schema.PropertyDataLength},
		{96, "RawData", schema.FieldTypeData, schema.PropertyData},
		{212, "XmlDataLen", schema.FieldTypeInt, schema.PropertyDataLength},
		{355, "EncodedText", schema.FieldTypeString, schema.PropertyEncoded},
	}

	for _, tt := range tests {
		d := r.Lookup(tt.tag)
		if d.Name != tt.name || d.Type != tt.typ || d.Property != tt.property {
			t.Errorf("Lookup(%d) = %+v, want {%s %s %s}", tt.tag, d, tt.name, tt.typ, tt.property)
		}
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := NewRegistry()

	d := r.Lookup(99999)
	if d != Unknown {
		t.Fatalf("Lookup(99999) = %+v, want the shared Unknown sentinel", d)
	}
	if d.Type != schema.FieldTypeInt || d.Property != schema.PropertyNone {
		t.Errorf("Unknown sentinel = %+v, want type int with no property", d)
	}

	// Total function: the same sentinel for every absent key.
	if r.Lookup(-1) != Unknown || r.Lookup(0) != Unknown {
		t.Error("distinct descriptors returned for absent keys")
	}
}

func TestRegistry_SharedDescriptors(t *testing.T) {
	r := NewRegistry()
	if r.Lookup(35) != r.Lookup(35) {
		t.Error("Lookup returns a fresh descriptor per call; must share")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	custom := &schema.TagDescriptor{Key: 5000, Name: "VendorField", Type: schema.FieldTypeString}
	if err := r.Register(custom); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if r.Lookup(5000) != custom {
		t.Error("registered descriptor not returned by Lookup")
	}

	// Replacing a built-in tag is allowed during construction.
	override := &schema.TagDescriptor{Key: 58, Name: "Text", Type: schema.FieldTypeString, Property: schema.PropertyMultiValueString}
	if err := r.Register(override); err != nil {
		t.Fatalf("Register override failed: %v", err)
	}
	if r.Lookup(58).Property != schema.PropertyMultiValueString {
		t.Error("override did not replace the built-in descriptor")
	}
}

func TestRegistry_RegisterRejectsInvalid(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		desc *schema.TagDescriptor
	}{
		{"zero key", &schema.TagDescriptor{Key: 0, Type: schema.FieldTypeInt}},
		{"negative key", &schema.TagDescriptor{Key: -5, Type: schema.FieldTypeInt}},
		{"unknown type", &schema.TagDescriptor{Key: 5000, Type: "decimal"}},
		{"unknown property", &schema.TagDescriptor{Key: 5000, Type: schema.FieldTypeInt, Property: "grouped"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Register(tt.desc); err == nil {
				t.Errorf("Register(%+v) accepted invalid descriptor", tt.desc)
			}
		})
	}
}

func TestRegistry_ListTags(t *testing.T) {
	r := NewRegistry()
	tags := r.ListTags()

	if !sort.IntsAreSorted(tags) {
		t.Error("ListTags not in increasing order")
	}
	found := false
	for _, tag := range tags {
		if tag == 8 {
			found = true
		}
	}
	if !found {
		t.Error("ListTags missing tag 8")
	}
}
