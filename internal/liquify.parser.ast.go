package internal

import (
	"fmt"
	"io"
	"strings"
)

// Node is the interface all renderable AST nodes implement.
// Rendering is a single synchronous call: the node writes its output to w,
// reading and possibly mutating the caller-supplied bindings.
type Node interface {
	// Type returns the node type identifier
	Type() NodeType
	// Pos returns the source position of this node
	Pos() Position
	// String returns a human-readable representation
	String() string
	// Render writes the node's output to w using the given bindings
	Render(w io.Writer, b Bindings) error
}

// RootNode is the top-level container for a compiled template
type RootNode struct {
	Children []Node
}

// Type returns NodeTypeRoot
func (n *RootNode) Type() NodeType {
	return NodeTypeRoot
}

// Pos returns a zero position (root has no specific position)
func (n *RootNode) Pos() Position {
	return Position{Offset: 0, Line: 1, Column: 1}
}

// String returns a string representation of the root node
func (n *RootNode) String() string {
	var sb strings.Builder
	sb.WriteString("RootNode{\n")
	for i, child := range n.Children {
		sb.WriteString(fmt.Sprintf("  [%d] %s\n", i, child.String()))
	}
	sb.WriteString("}")
	return sb.String()
}

// Render renders all children in order
func (n *RootNode) Render(w io.Writer, b Bindings) error {
	for _, child := range n.Children {
		if err := child.Render(w, b); err != nil {
			return err
		}
	}
	return nil
}

// TextNode represents literal text content
type TextNode struct {
	pos     Position
	Content string
}

// Type returns NodeTypeText
func (n *TextNode) Type() NodeType {
	return NodeTypeText
}

// Pos returns the source position
func (n *TextNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *TextNode) String() string {
	content := n.Content
	if len(content) > MaxStringDisplayLength {
		content = content[:TruncatedStringLength] + TruncationSuffix
	}
	return fmt.Sprintf("TextNode{%q @ %s}", content, n.pos)
}

// Render writes the literal content
func (n *TextNode) Render(w io.Writer, b Bindings) error {
	_, err := io.WriteString(w, n.Content)
	return err
}

// NewTextNode creates a new text node
func NewTextNode(content string, pos Position) *TextNode {
	return &TextNode{
		pos:     pos,
		Content: content,
	}
}

// OutputNode represents an {{ expression }} element: a value with an
// optional filter chain
type OutputNode struct {
	pos     Position
	Value   Argument
	Filters []FilterCall
}

// Type returns NodeTypeOutput
func (n *OutputNode) Type() NodeType {
	return NodeTypeOutput
}

// Pos returns the source position
func (n *OutputNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *OutputNode) String() string {
	return fmt.Sprintf("OutputNode{%s, filters=%d @ %s}", n.Value, len(n.Filters), n.pos)
}

// Render resolves the value, applies the filter chain, and writes the result
func (n *OutputNode) Render(w io.Writer, b Bindings) error {
	val, _ := n.Value.Resolve(b)

	for _, fc := range n.Filters {
		applied, err := fc.Apply(val, b)
		if err != nil {
			return err
		}
		val = applied
	}

	_, err := io.WriteString(w, FormatValue(val))
	return err
}

// NewOutputNode creates a new output node
func NewOutputNode(value Argument, filters []FilterCall, pos Position) *OutputNode {
	return &OutputNode{
		pos:     pos,
		Value:   value,
		Filters: filters,
	}
}

// IncludeNode embeds a fully compiled snippet. The partial is compiled once,
// when the enclosing template is compiled, and is immutable afterwards;
// rendering only delegates to it.
type IncludeNode struct {
	pos     Position
	Name    string
	Partial *RootNode
}

// Type returns NodeTypeInclude
func (n *IncludeNode) Type() NodeType {
	return NodeTypeInclude
}

// Pos returns the source position
func (n *IncludeNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *IncludeNode) String() string {
	return fmt.Sprintf("IncludeNode{%q, nodes=%d @ %s}", n.Name, len(n.Partial.Children), n.pos)
}

// Render delegates to the compiled snippet, sharing the writer and the
// bindings with the includer. Failures gain a trace annotation naming this
// include site.
func (n *IncludeNode) Render(w io.Writer, b Bindings) error {
	if err := n.Partial.Render(w, b); err != nil {
		return TraceInclude(err, n.Name)
	}
	return nil
}

// NewIncludeNode creates a new include node
func NewIncludeNode(name string, partial *RootNode, pos Position) *IncludeNode {
	return &IncludeNode{
		pos:     pos,
		Name:    name,
		Partial: partial,
	}
}

// ConditionalNode represents an if/else block
type ConditionalNode struct {
	pos       Position
	Condition Condition
	Then      []Node
	Else      []Node
}

// Type returns NodeTypeConditional
func (n *ConditionalNode) Type() NodeType {
	return NodeTypeConditional
}

// Pos returns the source position
func (n *ConditionalNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *ConditionalNode) String() string {
	return fmt.Sprintf("ConditionalNode{%s, then=%d, else=%d @ %s}",
		n.Condition, len(n.Then), len(n.Else), n.pos)
}

// Render evaluates the condition and renders the matching branch
func (n *ConditionalNode) Render(w io.Writer, b Bindings) error {
	branch := n.Else
	if n.Condition.Evaluate(b) {
		branch = n.Then
	}
	for _, child := range branch {
		if err := child.Render(w, b); err != nil {
			return err
		}
	}
	return nil
}

// NewConditionalNode creates a new conditional node
func NewConditionalNode(cond Condition, then, els []Node, pos Position) *ConditionalNode {
	return &ConditionalNode{
		pos:       pos,
		Condition: cond,
		Then:      then,
		Else:      els,
	}
}

// AssignNode represents an {% assign x = value %} tag. It produces no
// output; rendering mutates the shared bindings.
type AssignNode struct {
	pos     Position
	Target  string
	Value   Argument
	Filters []FilterCall
}

// Type returns NodeTypeAssign
func (n *AssignNode) Type() NodeType {
	return NodeTypeAssign
}

// Pos returns the source position
func (n *AssignNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *AssignNode) String() string {
	return fmt.Sprintf("AssignNode{%s = %s @ %s}", n.Target, n.Value, n.pos)
}

// Render resolves the value, applies any filters, and binds it
func (n *AssignNode) Render(w io.Writer, b Bindings) error {
	val, _ := n.Value.Resolve(b)

	for _, fc := range n.Filters {
		applied, err := fc.Apply(val, b)
		if err != nil {
			return err
		}
		val = applied
	}

	b.Set(n.Target, val)
	return nil
}

// NewAssignNode creates a new assign node
func NewAssignNode(target string, value Argument, filters []FilterCall, pos Position) *AssignNode {
	return &AssignNode{
		pos:     pos,
		Target:  target,
		Value:   value,
		Filters: filters,
	}
}

// RawNode emits its content verbatim, delimiters included
type RawNode struct {
	pos     Position
	Content string
}

// Type returns NodeTypeRaw
func (n *RawNode) Type() NodeType {
	return NodeTypeRaw
}

// Pos returns the source position
func (n *RawNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *RawNode) String() string {
	content := n.Content
	if len(content) > MaxStringDisplayLength {
		content = content[:TruncatedStringLength] + TruncationSuffix
	}
	return fmt.Sprintf("RawNode{%q @ %s}", content, n.pos)
}

// Render writes the raw content
func (n *RawNode) Render(w io.Writer, b Bindings) error {
	_, err := io.WriteString(w, n.Content)
	return err
}

// NewRawNode creates a new raw node
func NewRawNode(content string, pos Position) *RawNode {
	return &RawNode{
		pos:     pos,
		Content: content,
	}
}
