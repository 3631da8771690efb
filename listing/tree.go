package listing

import (
	"strings"

	"github.com/beevik/etree"
)

// firstDescendant returns the first element below e whose local tag is tag,
// searching depth-first in document order. e itself is not considered.
func firstDescendant(e *etree.Element, tag string) *etree.Element {
	for _, child := range e.ChildElements() {
		if child.Tag == tag {
			return child
		}
		if found := firstDescendant(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// descendants returns every element below e whose local tag is tag, in document order
func descendants(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(parent *etree.Element) {
		for _, child := range parent.ChildElements() {
			if child.Tag == tag {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(e)
	return out
}

// textContent concatenates the character data of e and all of its descendants
func textContent(e *etree.Element) string {
	var sb strings.Builder
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, tok := range el.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				sb.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(e)
	return sb.String()
}

// childText returns the text content of the first descendant named tag, or def if absent
func childText(e *etree.Element, tag, def string) string {
	found := firstDescendant(e, tag)
	if found == nil {
		return def
	}
	return textContent(found)
}
