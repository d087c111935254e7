package spclient

import (
	"fmt"
	"strings"
)

// ResourcePath is an immutable relative resource identifier. Methods return
// new values; composing a child path never mutates the parent, so proxies
// can share path prefixes safely.
type ResourcePath struct {
	segments []string
}

// NewResourcePath creates a resource path from the given segments
func NewResourcePath(segments ...string) ResourcePath {
	return ResourcePath{segments: append([]string(nil), segments...)}
}

// Append returns a new path with the given segments added
func (p ResourcePath) Append(segments ...string) ResourcePath {
	combined := make([]string, 0, len(p.segments)+len(segments))
	combined = append(combined, p.segments...)
	combined = append(combined, segments...)
	return ResourcePath{segments: combined}
}

// Op returns a new path ending in an operation segment, e.g. Op("checkin",
// "comment='x'", "checkintype=0") yields ".../checkin(comment='x',checkintype=0)"
func (p ResourcePath) Op(name string, args ...string) ResourcePath {
	return p.Append(fmt.Sprintf("%s(%s)", name, strings.Join(args, ",")))
}

// String renders the relative URL handed to the transport
func (p ResourcePath) String() string {
	return strings.Join(p.segments, "/")
}

// EscapeLiteral escapes a string for use inside an OData string literal by
// doubling embedded single quotes
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// StringArg formats a named OData string-literal argument
func StringArg(name, value string) string {
	return fmt.Sprintf("%s='%s'", name, EscapeLiteral(value))
}

// GUIDArg formats a named OData guid argument
func GUIDArg(name, value string) string {
	return fmt.Sprintf("%s=guid'%s'", name, value)
}

// IntArg formats a named OData integer argument
func IntArg(name string, value int64) string {
	return fmt.Sprintf("%s=%d", name, value)
}

// BoolArg formats a named OData boolean argument
func BoolArg(name string, value bool) string {
	return fmt.Sprintf("%s=%t", name, value)
}
