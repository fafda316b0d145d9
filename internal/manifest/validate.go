package manifest

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

const (
	problemTemplateConstant          = "%w: %s"
	parentDirectoryReferenceConstant = ".."
)

// Validate checks structural invariants of an include-expanded manifest.
// Every violation is reported; the returned error joins them.
func Validate(manifest *Manifest) error {
	var problems []error

	defaultCount := 0
	for childIndex := range manifest.root.Children {
		if manifest.root.Children[childIndex].Name() == DefaultElementName {
			defaultCount++
		}
	}
	if defaultCount > 1 {
		problems = append(problems, ErrDuplicateDefault)
	}

	declaredRemotes := make(map[string]struct{})
	for _, remote := range manifest.Remotes() {
		if len(remote.Name) == 0 {
			problems = append(problems, ErrRemoteNameMissing)
			continue
		}
		if _, duplicate := declaredRemotes[remote.Name]; duplicate {
			problems = append(problems, fmt.Errorf(problemTemplateConstant, ErrDuplicateRemote, remote.Name))
			continue
		}
		declaredRemotes[remote.Name] = struct{}{}
	}

	defaults, _ := manifest.Default()
	seenPaths := make(map[string]struct{})
	for _, project := range manifest.Projects() {
		if len(project.Name) == 0 {
			problems = append(problems, fmt.Errorf(problemTemplateConstant, ErrProjectNameMissing, project.Path))
			continue
		}

		checkoutPath := path.Clean(project.CheckoutPath())
		if escapesWorkspace(checkoutPath) {
			problems = append(problems, fmt.Errorf(problemTemplateConstant, ErrPathOutsideWorkspace, project.CheckoutPath()))
			continue
		}
		if _, duplicate := seenPaths[checkoutPath]; duplicate {
			problems = append(problems, fmt.Errorf(problemTemplateConstant, ErrDuplicateProjectPath, checkoutPath))
		}
		seenPaths[checkoutPath] = struct{}{}

		effectiveRemote := project.EffectiveRemote(defaults)
		if len(effectiveRemote) == 0 {
			problems = append(problems, fmt.Errorf(problemTemplateConstant, ErrProjectRemoteMissing, checkoutPath))
			continue
		}
		if _, declared := declaredRemotes[effectiveRemote]; !declared {
			problems = append(problems, fmt.Errorf("%w %q: %s", ErrUndeclaredRemote, effectiveRemote, checkoutPath))
		}
	}

	return errors.Join(problems...)
}

func escapesWorkspace(cleanedPath string) bool {
	if path.IsAbs(cleanedPath) || cleanedPath == "." {
		return true
	}
	return cleanedPath == parentDirectoryReferenceConstant || strings.HasPrefix(cleanedPath, parentDirectoryReferenceConstant+"/")
}
