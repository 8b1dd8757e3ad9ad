package ir

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: an object field name or a sequence index.
type Segment struct {
	Field string
	Index int

	indexed bool
}

func FieldSegment(name string) Segment {
	return Segment{Field: name}
}

func IndexSegment(i int) Segment {
	return Segment{Index: i, indexed: true}
}

func (s Segment) IsIndex() bool {
	return s.indexed
}

// Path locates a node in a value tree. The root is the empty path. Paths
// are built by appending during traversal; Field and Index return extended
// copies so sibling branches never alias one another's backing array.
type Path []Segment

func (p Path) Field(name string) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, FieldSegment(name))
}

func (p Path) Index(i int) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, IndexSegment(i))
}

// String renders the path in the form "$.a.b[0]"; the root path is "$".
// Field names containing path syntax are quoted.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, seg := range p {
		if seg.IsIndex() {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteByte(']')
			continue
		}
		sb.WriteByte('.')
		if pathQuoteField(seg.Field) {
			sb.WriteString(strconv.Quote(seg.Field))
		} else {
			sb.WriteString(seg.Field)
		}
	}
	return sb.String()
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Find navigates a value tree along the path. It returns nil when any step
// does not exist in the tree.
func (p Path) Find(node *Node) *Node {
	res := node
	for _, seg := range p {
		if res == nil {
			return nil
		}
		if seg.IsIndex() {
			if res.Type != SequenceType || seg.Index < 0 || seg.Index >= len(res.Values) {
				return nil
			}
			res = res.Values[seg.Index]
			continue
		}
		if res.Type != ObjectType {
			return nil
		}
		res = Get(res, seg.Field)
	}
	return res
}

func pathQuoteField(f string) bool {
	if f == "" {
		return true
	}
	return strings.ContainsAny(f, ".[]$\" \t\n")
}
