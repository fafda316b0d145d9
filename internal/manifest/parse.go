package manifest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	includeDescriptionTemplateConstant = "%w: %s"
	includeChainSeparatorConstant      = " -> "
	elementDescriptionTemplateConstant = "%w: <%s>"
)

// FileReader reads manifest files.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// Parse decodes a single manifest document without expanding includes.
// The whole input must be one well-formed element: trailing content, a second
// root, and text outside the root are rejected.
func Parse(manifestPath string, data []byte) (*Manifest, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = true

	var root *Node
	var openElements []Node
	for {
		token, tokenError := decoder.RawToken()
		if errors.Is(tokenError, io.EOF) {
			break
		}
		if tokenError != nil {
			return nil, newParseError(manifestPath, tokenError)
		}

		switch typedToken := token.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, newParseError(manifestPath, ErrMultipleRootElements)
			}
			element := Node{XMLName: typedToken.Name}
			if len(typedToken.Attr) > 0 {
				element.Attributes = append([]xml.Attr{}, typedToken.Attr...)
			}
			openElements = append(openElements, element)
		case xml.EndElement:
			if len(openElements) == 0 {
				return nil, newParseError(manifestPath, fmt.Errorf(elementDescriptionTemplateConstant, ErrMismatchedEndElement, qualifiedName(typedToken.Name)))
			}
			closed := openElements[len(openElements)-1]
			if closed.Name() != qualifiedName(typedToken.Name) {
				return nil, newParseError(manifestPath, fmt.Errorf(elementDescriptionTemplateConstant, ErrMismatchedEndElement, qualifiedName(typedToken.Name)))
			}
			openElements = openElements[:len(openElements)-1]
			if len(openElements) == 0 {
				root = &closed
				continue
			}
			parent := &openElements[len(openElements)-1]
			parent.Children = append(parent.Children, closed)
		case xml.CharData:
			if len(openElements) == 0 {
				if len(bytes.TrimSpace(typedToken)) > 0 {
					return nil, newParseError(manifestPath, ErrTextOutsideRoot)
				}
				continue
			}
			openElements[len(openElements)-1].Text += string(typedToken)
		}
	}

	if len(openElements) > 0 {
		return nil, newParseError(manifestPath, fmt.Errorf(elementDescriptionTemplateConstant, ErrUnclosedElement, openElements[len(openElements)-1].Name()))
	}
	if root == nil {
		return nil, newParseError(manifestPath, ErrMissingRootElement)
	}
	if root.Name() != ManifestElementName {
		return nil, newParseError(manifestPath, ErrUnexpectedRootElement)
	}

	return New(*root), nil
}

// Loader reads manifests from disk and expands include elements in place.
type Loader struct {
	fileReader FileReader
}

// NewLoader constructs a Loader backed by the provided reader.
func NewLoader(fileReader FileReader) *Loader {
	return &Loader{fileReader: fileReader}
}

// Load reads the manifest at manifestPath, expands includes recursively
// relative to the including file, folds remove-project and extend-project
// elements into the projects they name, and validates the resulting document.
func (loader *Loader) Load(manifestPath string) (*Manifest, error) {
	absolutePath, absoluteError := filepath.Abs(manifestPath)
	if absoluteError != nil {
		return nil, newParseError(manifestPath, absoluteError)
	}

	expandedManifest, expansionError := loader.loadExpanded(absolutePath, nil)
	if expansionError != nil {
		return nil, expansionError
	}

	if adjustmentError := applyProjectAdjustments(expandedManifest); adjustmentError != nil {
		return nil, newParseError(manifestPath, adjustmentError)
	}
	if validationError := Validate(expandedManifest); validationError != nil {
		return nil, newParseError(manifestPath, validationError)
	}
	return expandedManifest, nil
}

func (loader *Loader) loadExpanded(manifestPath string, includeChain []string) (*Manifest, error) {
	for _, visitedPath := range includeChain {
		if visitedPath == manifestPath {
			cycleDescription := strings.Join(append(append([]string{}, includeChain...), manifestPath), includeChainSeparatorConstant)
			return nil, newParseError(includeChain[0], fmt.Errorf(includeDescriptionTemplateConstant, ErrIncludeCycle, cycleDescription))
		}
	}

	manifestData, readError := loader.fileReader.ReadFile(manifestPath)
	if readError != nil {
		return nil, newParseError(manifestPath, readError)
	}

	parsedManifest, parseError := Parse(manifestPath, manifestData)
	if parseError != nil {
		return nil, parseError
	}

	nextChain := append(append([]string{}, includeChain...), manifestPath)
	manifestDirectory := filepath.Dir(manifestPath)

	root := parsedManifest.Root()
	expandedChildren := make([]Node, 0, len(root.Children))
	for childIndex := range root.Children {
		child := &root.Children[childIndex]
		if child.Name() != IncludeElementName {
			expandedChildren = append(expandedChildren, *child)
			continue
		}

		includeName := child.AttributeValue(NameAttributeName)
		if len(includeName) == 0 {
			return nil, newParseError(manifestPath, ErrIncludeNameMissing)
		}

		includePath := includeName
		if !filepath.IsAbs(includePath) {
			includePath = filepath.Join(manifestDirectory, includePath)
		}

		includedManifest, includeError := loader.loadExpanded(filepath.Clean(includePath), nextChain)
		if includeError != nil {
			return nil, includeError
		}
		expandedChildren = append(expandedChildren, includedManifest.Root().Children...)
	}
	root.Children = expandedChildren

	return parsedManifest, nil
}
