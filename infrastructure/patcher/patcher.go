package patcher

import (
	"strings"

	"github.com/beevik/etree"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/nugetbump/domain"
)

const indentSpaces = 2

// ProjectPatcher rewrites package reference versions inside MSBuild
// project files and packages.config manifests. Parse and I/O failures
// for a single file are logged and absorbed so one bad document cannot
// abort the tree scan.
type ProjectPatcher struct{}

// NewProjectPatcher creates a new ProjectPatcher.
func NewProjectPatcher() *ProjectPatcher {
	return &ProjectPatcher{}
}

// UpdateProjectFile patches every PackageReference declaration matching
// the request in an MSBuild project file. The version may live in a
// nested <Version> element or in a Version attribute on the declaration
// itself; exactly one of the two is updated per declaration. It returns
// whether any declaration changed and whether the file was processed
// without failure.
func (p *ProjectPatcher) UpdateProjectFile(path string, req *domain.UpdateRequest) (bool, bool) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		logger.Errorf("Failed to parse %s: %v", req.DisplayPath(path), err)
		return false, false
	}

	changed := false
	for _, el := range doc.FindElements("//PackageReference") {
		name := el.SelectAttrValue("Include", "")
		if !strings.EqualFold(name, req.PackageName) {
			continue
		}

		slot, found := findVersionSlot(el)
		if !found {
			logger.Warnf(
				"PackageReference %q in %s declares no version, skipping",
				name, req.DisplayPath(path),
			)
			continue
		}

		if p.reconcile(&slot, name, path, req) {
			changed = true
		}
	}

	return changed, p.persist(doc, path, changed, req)
}

// UpdatePackagesConfig patches the flat packages.config manifest, where
// each package element carries its id and version as attributes.
func (p *ProjectPatcher) UpdatePackagesConfig(path string, req *domain.UpdateRequest) (bool, bool) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		logger.Errorf("Failed to parse %s: %v", req.DisplayPath(path), err)
		return false, false
	}

	changed := false
	for _, el := range doc.FindElements("//package") {
		name := el.SelectAttrValue("id", "")
		if !strings.EqualFold(name, req.PackageName) {
			continue
		}

		attr := el.SelectAttr("version")
		if attr == nil {
			logger.Warnf(
				"package %q in %s declares no version, skipping",
				name, req.DisplayPath(path),
			)
			continue
		}

		slot := versionSlot{kind: slotAttribute, attr: attr}
		if p.reconcile(&slot, name, path, req) {
			changed = true
		}
	}

	return changed, p.persist(doc, path, changed, req)
}

// reconcile classifies one declaration against the target version and
// rewrites its slot when an update is due. The decision itself is the
// pure domain.Classify; this only handles logging and the mutation.
func (p *ProjectPatcher) reconcile(
	slot *versionSlot,
	name, path string,
	req *domain.UpdateRequest,
) bool {
	current, err := domain.ParseVersion(slot.value())
	if err != nil {
		logger.Warnf(
			"Cannot parse version %q for %s in %s: %v",
			slot.value(), name, req.DisplayPath(path), err,
		)
		return false
	}

	switch domain.Classify(current, req.Target, req.Rollback) {
	case domain.ActionUpdate:
		verb := "updating"
		if req.Preview {
			verb = "would update"
		}
		logger.Infof("%s version from %s to %s for %s", verb, current, req.Target, name)
		slot.set(req.Target.String())
		return true
	case domain.ActionUpToDate:
		logger.Infof("version %s already up-to-date for %s", current, name)
	case domain.ActionSkipNewer:
		logger.Warnf(
			"version %s is newer than target %s for %s (use --rollback to downgrade)",
			current, req.Target, name,
		)
	}

	return false
}

// persist serializes the document back to path with the house style
// (UTF-8, two-space indent, CRLF) and restores the two-line empty-tag
// convention. Nothing is written in preview mode or when no declaration
// changed. It reports whether the file ended up in a good state.
func (p *ProjectPatcher) persist(
	doc *etree.Document,
	path string,
	changed bool,
	req *domain.UpdateRequest,
) bool {
	if !changed || req.Preview {
		return true
	}

	doc.Indent(indentSpaces)
	doc.WriteSettings.UseCRLF = true

	if err := doc.WriteToFile(path); err != nil {
		logger.Errorf("Failed to write %s: %v", req.DisplayPath(path), err)
		return false
	}

	// The document on disk is already patched at this point; a failed
	// normalization leaves it valid but unnormalized.
	if err := expandEmptyTagPairs(path); err != nil {
		logger.Errorf("Failed to normalize %s: %v", req.DisplayPath(path), err)
		return false
	}

	return true
}
