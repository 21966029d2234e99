package patcher

import "github.com/beevik/etree"

// slotKind tags the two representations a declaration can use for its
// version value.
type slotKind int

const (
	slotChildElement slotKind = iota
	slotAttribute
)

// versionSlot points at the single place a declaration stores its
// version, so the update logic stays unaware of which form was found.
// A slot never outlives the patcher call that produced it.
type versionSlot struct {
	kind    slotKind
	element *etree.Element // nested element holding the version text
	attr    *etree.Attr    // inline attribute on the declaration
}

func (s *versionSlot) value() string {
	if s.kind == slotChildElement {
		return s.element.Text()
	}
	return s.attr.Value
}

func (s *versionSlot) set(version string) {
	if s.kind == slotChildElement {
		s.element.SetText(version)
		return
	}
	s.attr.Value = version
}

// findVersionSlot locates the version of a PackageReference element.
// The nested <Version> element takes priority over the attribute form.
func findVersionSlot(el *etree.Element) (versionSlot, bool) {
	if child := el.SelectElement("Version"); child != nil {
		return versionSlot{kind: slotChildElement, element: child}, true
	}
	if attr := el.SelectAttr("Version"); attr != nil {
		return versionSlot{kind: slotAttribute, attr: attr}, true
	}
	return versionSlot{}, false
}
