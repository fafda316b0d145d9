package manifest

import (
	"fmt"
	"path"
	"strings"
)

const (
	optionalTrueValueConstant     = "true"
	groupListSeparatorConstant    = ","
	adjustmentDescriptionConstant = "%w: %s"
)

// applyProjectAdjustments folds remove-project and extend-project elements into
// the project elements that precede them and drops the adjusting elements, so
// that every project left in the document carries its final attributes.
func applyProjectAdjustments(manifest *Manifest) error {
	root := manifest.Root()
	adjustedChildren := make([]Node, 0, len(root.Children))

	for childIndex := range root.Children {
		child := root.Children[childIndex]
		switch child.Name() {
		case RemoveProjectElementName:
			remainingChildren, removedCount := removeMatchingProjects(adjustedChildren, &child)
			if removedCount == 0 && child.AttributeValue(OptionalAttributeName) != optionalTrueValueConstant {
				return fmt.Errorf(adjustmentDescriptionConstant, ErrUnmatchedRemoveProject, child.AttributeValue(NameAttributeName))
			}
			adjustedChildren = remainingChildren
		case ExtendProjectElementName:
			if extendedCount := extendMatchingProjects(adjustedChildren, &child); extendedCount == 0 {
				return fmt.Errorf(adjustmentDescriptionConstant, ErrUnmatchedExtendProject, child.AttributeValue(NameAttributeName))
			}
		default:
			adjustedChildren = append(adjustedChildren, child)
		}
	}

	root.Children = adjustedChildren
	return nil
}

func removeMatchingProjects(children []Node, adjustment *Node) ([]Node, int) {
	remainingChildren := children[:0]
	removedCount := 0
	for childIndex := range children {
		if projectMatches(&children[childIndex], adjustment) {
			removedCount++
			continue
		}
		remainingChildren = append(remainingChildren, children[childIndex])
	}
	return remainingChildren, removedCount
}

func extendMatchingProjects(children []Node, adjustment *Node) int {
	extendedCount := 0
	for childIndex := range children {
		project := &children[childIndex]
		if !projectMatches(project, adjustment) {
			continue
		}
		extendedCount++

		for _, attribute := range adjustment.Attributes {
			if len(attribute.Name.Space) > 0 {
				project.Attributes = append(project.Attributes, attribute)
				continue
			}
			switch attribute.Name.Local {
			case NameAttributeName, PathAttributeName, BaseRevAttributeName:
			case DestPathAttributeName:
				project.SetAttribute(PathAttributeName, attribute.Value)
			case GroupsAttributeName:
				project.SetAttribute(GroupsAttributeName, joinGroups(project.AttributeValue(GroupsAttributeName), strings.TrimSpace(attribute.Value)))
			default:
				project.SetAttribute(attribute.Name.Local, attribute.Value)
			}
		}
		for grandchildIndex := range adjustment.Children {
			project.Children = append(project.Children, adjustment.Children[grandchildIndex].clone())
		}
	}
	return extendedCount
}

func projectMatches(candidate *Node, adjustment *Node) bool {
	if candidate.Name() != ProjectElementName {
		return false
	}
	if candidate.AttributeValue(NameAttributeName) != adjustment.AttributeValue(NameAttributeName) {
		return false
	}
	adjustmentPath := adjustment.AttributeValue(PathAttributeName)
	if len(adjustmentPath) == 0 {
		return true
	}
	candidatePath := candidate.AttributeValue(PathAttributeName)
	if len(candidatePath) == 0 {
		candidatePath = candidate.AttributeValue(NameAttributeName)
	}
	return path.Clean(candidatePath) == path.Clean(adjustmentPath)
}

func joinGroups(existingGroups string, additionalGroups string) string {
	switch {
	case len(additionalGroups) == 0:
		return existingGroups
	case len(existingGroups) == 0:
		return additionalGroups
	default:
		return existingGroups + groupListSeparatorConstant + additionalGroups
	}
}
