package etree

import (
	"strings"

	"github.com/antchfx/xpath"
	"github.com/beevik/etree"
)

// Ensure navigator implements xpath.NodeNavigator at compile time.
var _ xpath.NodeNavigator = (*navigator)(nil)

// navigator walks an etree document for the XPath engine. Elements,
// character data and comments are visible; processing instructions and
// directives are skipped. attr is the index of the current attribute of
// an element, or -1.
type navigator struct {
	root *etree.Element
	curr etree.Token
	attr int
}

func newNavigator(doc *etree.Document) *navigator {
	return &navigator{root: &doc.Element, curr: &doc.Element, attr: -1}
}

func (n *navigator) NodeType() xpath.NodeType {
	switch t := n.curr.(type) {
	case *etree.Element:
		if n.attr != -1 {
			return xpath.AttributeNode
		}
		if t == n.root {
			return xpath.RootNode
		}
		return xpath.ElementNode
	case *etree.Comment:
		return xpath.CommentNode
	}
	return xpath.TextNode
}

func (n *navigator) LocalName() string {
	if e, ok := n.curr.(*etree.Element); ok {
		if n.attr != -1 {
			return e.Attr[n.attr].Key
		}
		return e.Tag
	}
	return ""
}

func (n *navigator) Prefix() string {
	if e, ok := n.curr.(*etree.Element); ok {
		if n.attr != -1 {
			return e.Attr[n.attr].Space
		}
		return e.Space
	}
	return ""
}

func (n *navigator) NamespaceURL() string {
	if e, ok := n.curr.(*etree.Element); ok && n.attr == -1 && e != n.root {
		return e.NamespaceURI()
	}
	return ""
}

func (n *navigator) Value() string {
	switch t := n.curr.(type) {
	case *etree.Element:
		if n.attr != -1 {
			return t.Attr[n.attr].Value
		}
		var b strings.Builder
		writeText(&b, t)
		return b.String()
	case *etree.CharData:
		return t.Data
	case *etree.Comment:
		return t.Data
	}
	return ""
}

func (n *navigator) Copy() xpath.NodeNavigator {
	c := *n
	return &c
}

func (n *navigator) MoveToRoot() {
	n.curr = n.root
	n.attr = -1
}

func (n *navigator) MoveToParent() bool {
	if n.attr != -1 {
		n.attr = -1
		return true
	}
	parent := n.curr.Parent()
	if parent == nil {
		return false
	}
	n.curr = parent
	return true
}

func (n *navigator) MoveToNextAttribute() bool {
	e, ok := n.curr.(*etree.Element)
	if !ok || e == n.root || n.attr >= len(e.Attr)-1 {
		return false
	}
	n.attr++
	return true
}

func (n *navigator) MoveToChild() bool {
	if n.attr != -1 {
		return false
	}
	e, ok := n.curr.(*etree.Element)
	if !ok {
		return false
	}
	for _, tok := range e.Child {
		if visible(tok) {
			n.curr = tok
			return true
		}
	}
	return false
}

func (n *navigator) MoveToFirst() bool {
	if n.attr != -1 {
		return false
	}
	parent := n.curr.Parent()
	if parent == nil {
		return false
	}
	for _, tok := range parent.Child {
		if visible(tok) {
			n.curr = tok
			return true
		}
	}
	return false
}

func (n *navigator) MoveToNext() bool {
	if n.attr != -1 {
		return false
	}
	parent := n.curr.Parent()
	if parent == nil {
		return false
	}
	for i := indexOf(parent, n.curr) + 1; i < len(parent.Child); i++ {
		if visible(parent.Child[i]) {
			n.curr = parent.Child[i]
			return true
		}
	}
	return false
}

func (n *navigator) MoveToPrevious() bool {
	if n.attr != -1 {
		return false
	}
	parent := n.curr.Parent()
	if parent == nil {
		return false
	}
	for i := indexOf(parent, n.curr) - 1; i >= 0; i-- {
		if visible(parent.Child[i]) {
			n.curr = parent.Child[i]
			return true
		}
	}
	return false
}

func (n *navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*navigator)
	if !ok || o.root != n.root {
		return false
	}
	n.curr = o.curr
	n.attr = o.attr
	return true
}

func visible(tok etree.Token) bool {
	switch tok.(type) {
	case *etree.Element, *etree.CharData, *etree.Comment:
		return true
	}
	return false
}

// indexOf returns the position of tok among parent's children, or -1.
func indexOf(parent *etree.Element, tok etree.Token) int {
	for i, c := range parent.Child {
		if c == tok {
			return i
		}
	}
	return -1
}
