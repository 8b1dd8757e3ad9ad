// Package ir provides the intermediate representation (IR) for decoded data.
//
// # Overview
//
// The IR package defines the tree of nodes that AS3 validation walks. All
// data (whether decoded from JSON or YAML text or created programmatically)
// is represented as ir.Node trees. The IR contains no position information
// from input documents, making it purely semantic.
//
// # Node Structure
//
// A Node represents a single value. The Type field selects the node's kind:
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - IntegerType: 64-bit signed integer
//   - FloatType: 64-bit IEEE float
//   - StringType: string value
//   - SequenceType: ordered list of nodes
//   - ObjectType: field-keyed values
//
// The IR works as a recursive tagged union structure, where values are
// placed in fields depending on the node type. For ObjectType nodes,
// Fields[i] is the name of the value at Values[i], so there are always as
// many fields as values, and field names are unique within one node.
//
// Decoded numbers land as IntegerType when the source token parses exactly
// as int64 and FloatType otherwise, so an integer-valued float literal such
// as 1.0 stays a Float.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "key", Val: ir.FromString("value")},
//	})
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//
// FromKeyVals keeps the given field order; FromMap sorts keys so results do
// not depend on Go map iteration.
//
// # Paths
//
// A Path locates a node in a tree as a sequence of field names and sequence
// indices; the root is the empty path. Paths render JSONPath-style:
//
//	p := ir.Path{}.Field("foo").Index(0)
//	p.String() // "$.foo[0]"
//
// # Thread Safety
//
// Node structures are not thread-safe for mutation. Validation never
// mutates nodes, so read-only sharing across goroutines is safe.
//
// # Related Packages
//
//   - github.com/appcove/AS3/parse - Decodes text into IR nodes
//   - github.com/appcove/AS3/encode - Encodes IR nodes to text
//   - github.com/appcove/AS3/schema - Schema validation over IR trees
package ir
