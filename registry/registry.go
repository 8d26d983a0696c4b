package registry

import (
	"sort"

	"github.com/fixwire/fixwire/schema"
)

// Registry stores the tag dictionary for a FIX protocol version. We look this
// up during tokenization to decide how a field's value bytes are delimited and
// during typed access to enforce the declared semantic type.
//
// A Registry is built once (built-in table plus any loaded dictionaries) and
// read-only afterward; unsynchronized concurrent Lookup calls are safe as long
// as no LoadDictionary/Register call runs at the same time.
type Registry struct {
	tags map[int]*schema.TagDescriptor
}

// Unknown is the shared descriptor returned for tag numbers absent from the
// registry. It deliberately carries type Int and no property, matching the
// original dictionary behavior; truly unknown fields are therefore mis-typed
// as integers and callers that care must check for this sentinel.
var Unknown = &schema.TagDescriptor{Name: "Unknown", Type: schema.FieldTypeInt, Property: schema.PropertyNone}

// NewRegistry creates a registry populated with the built-in FIX 4.4 table.
func NewRegistry() *Registry {
	r := &Registry{
		tags: make(map[int]*schema.TagDescriptor, len(builtinTags)),
	}
	for i := range builtinTags {
		d := builtinTags[i]
		r.tags[d.Key] = &d
	}
	return r
}

// Lookup returns the descriptor for a tag number. It is a total function: an
// unregistered tag yields the Unknown sentinel, never nil and never an error.
func (r *Registry) Lookup(tag int) *schema.TagDescriptor {
	if d, ok := r.tags[tag]; ok {
		return d
	}
	return Unknown
}

// Register adds or replaces a single tag descriptor. It is part of registry
// construction and must not race with Lookup.
func (r *Registry) Register(d *schema.TagDescriptor) error {
	if d.Key <= 0 {
		return &DictionaryError{Tag: d.Key, Reason: "tag number must be positive"}
	}
	if !schema.IsValidType(d.Type) {
		return &DictionaryError{Tag: d.Key, Reason: "unknown semantic type " + string(d.Type)}
	}
	if !schema.IsValidProperty(d.Property) {
		return &DictionaryError{Tag: d.Key, Reason: "unknown property " + string(d.Property)}
	}
	r.tags[d.Key] = d
	return nil
}

// ListTags returns all registered tag numbers in increasing order.
func (r *Registry) ListTags() []int {
	keys := make([]int, 0, len(r.tags))
	for k := range r.tags {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// builtinTags is the FIX 4.4 subset this parser ships with. Price and
// quantity tags are registered with type Int even though their values are
// decimal on the wire; GetFloat relies on exactly this registration (see the
// accessor documentation in the wire package).
var builtinTags = []schema.TagDescriptor{
	{Key: 1, Name: "Account", Type: schema.FieldTypeString},
	{Key: 6, Name: "AvgPx", Type: schema.FieldTypeInt},
	{Key: 8, Name: "BeginString", Type: schema.FieldTypeString},
	{Key: 9, Name: "BodyLength", Type: schema.FieldTypeInt},
	{Key: 10, Name: "CheckSum", Type: schema.FieldTypeString},
	{Key: 11, Name: "ClOrdID", Type: schema.FieldTypeString},
	{Key: 14, Name: "CumQty", Type: schema.FieldTypeInt},
	{Key: 15, Name: "Currency", Type: schema.FieldTypeString},
	{Key: 17, Name: "ExecID", Type: schema.FieldTypeString},
	{Key: 18, Name: "ExecInst", Type: schema.FieldTypeString, Property: schema.PropertyMultiValueString},
	{Key: 21, Name: "HandlInst", Type: schema.FieldTypeChar},
	{Key: 22, Name: "SecurityIDSource", Type: schema.FieldTypeString},
	{Key: 30, Name: "LastMkt", Type: schema.FieldTypeString},
	{Key: 31, Name: "LastPx", Type: schema.FieldTypeInt},
	{Key: 32, Name: "LastQty", Type: schema.FieldTypeInt},
	{Key: 34, Name: "MsgSeqNum", Type: schema.FieldTypeInt},
	{Key: 35, Name: "MsgType", Type: schema.FieldTypeString},
	{Key: 37, Name: "OrderID", Type: schema.FieldTypeInt},
	{Key: 38, Name: "OrderQty", Type: schema.FieldTypeInt},
	{Key: 39, Name: "OrdStatus", Type: schema.FieldTypeChar},
	{Key: 40, Name: "OrdType", Type: schema.FieldTypeChar},
	{Key: 43, Name: "PossDupFlag", Type: schema.FieldTypeBoolean},
	{Key: 44, Name: "Price", Type: schema.FieldTypeInt},
	{Key: 48, Name: "SecurityID", Type: schema.FieldTypeString},
	{Key: 49, Name: "SenderCompID", Type: schema.FieldTypeString},
	{Key: 50, Name: "SenderSubID", Type: schema.FieldTypeString},
	{Key: 52, Name: "SendingTime", Type: schema.FieldTypeDate},
	{Key: 54, Name: "Side", Type: schema.FieldTypeChar},
	{Key: 55, Name: "Symbol", Type: schema.FieldTypeString},
	{Key: 56, Name: "TargetCompID", Type: schema.FieldTypeString},
	{Key: 57, Name: "TargetSubID", Type: schema.FieldTypeString},
	{Key: 58, Name: "Text", Type: schema.FieldTypeString},
	{Key: 59, Name: "TimeInForce", Type: schema.FieldTypeChar},
	{Key: 60, Name: "TransactTime", Type: schema.FieldTypeDate},
	{Key: 64, Name: "SettlDate", Type: schema.FieldTypeString},
	{Key: 73, Name: "NoOrders", Type: schema.FieldTypeInt, Property: schema.PropertyRepeated},
	{Key: 78, Name: "NoAllocs", Type: schema.FieldTypeInt, Property: schema.PropertyRepeated},
	{Key: 89, Name: "Signature", Type: schema.FieldTypeData, Property: schema.PropertyData},
	{Key: 90, Name: "SecureDataLen", Type: schema.FieldTypeInt, Property: schema.PropertyDataLength},
	{Key: 91, Name: "SecureData", Type: schema.FieldTypeData, Property: schema.PropertyData},
	{Key: 93, Name: "SignatureLength", Type: schema.FieldTypeInt, Property: schema.PropertyDataLength},
	{Key: 95, Name: "RawDataLength", Type: schema.FieldTypeInt, Property: schema.PropertyDataLength},
	{Key: 96, Name: "RawData", Type: schema.FieldTypeData, Property: schema.PropertyData},
	{Key: 97, Name: "PossResend", Type: schema.FieldTypeBoolean},
	{Key: 103, Name: "OrdRejReason", Type: schema.FieldTypeInt},
	{Key: 107, Name: "SecurityDesc", Type: schema.FieldTypeString},
	{Key: 110, Name: "MinQty", Type: schema.FieldTypeInt},
	{Key: 122, Name: "OrigSendingTime", Type: schema.FieldTypeDate},
	{Key: 146, Name: "NoRelatedSym", Type: schema.FieldTypeInt, Property: schema.PropertyRepeated},
	{Key: 150, Name: "ExecType", Type: schema.FieldTypeChar},
	{Key: 151, Name: "LeavesQty", Type: schema.FieldTypeInt},
	{Key: 167, Name: "SecurityType", Type: schema.FieldTypeString},
	{Key: 207, Name: "SecurityExchange", Type: schema.FieldTypeString},
	{Key: 212, Name: "XmlDataLen", Type: schema.FieldTypeInt, Property: schema.PropertyDataLength},
	{Key: 213, Name: "XmlData", Type: schema.FieldTypeData, Property: schema.PropertyData},
	{Key: 268, Name: "NoMDEntries", Type: schema.FieldTypeInt, Property: schema.PropertyRepeated},
	{Key: 272, Name: "MDEntryDate", Type: schema.FieldTypeDate},
	{Key: 273, Name: "MDEntryTime", Type: schema.FieldTypeTime},
	{Key: 354, Name: "EncodedTextLen", Type: schema.FieldTypeInt, Property: schema.PropertyDataLength},
	{Key: 355, Name: "EncodedText", Type: schema.FieldTypeString, Property: schema.PropertyEncoded},
	{Key: 453, Name: "NoPartyIDs", Type: schema.FieldTypeInt, Property: schema.PropertyRepeated},
}
