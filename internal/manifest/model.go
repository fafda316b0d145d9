package manifest

import (
	"encoding/xml"
	"strings"
)

// Element and attribute names defined by the manifest format.
const (
	ManifestElementName = "manifest"
	RemoteElementName   = "remote"
	DefaultElementName  = "default"
	ProjectElementName  = "project"
	IncludeElementName  = "include"

	ExtendProjectElementName = "extend-project"
	RemoveProjectElementName = "remove-project"

	NameAttributeName     = "name"
	PathAttributeName     = "path"
	FetchAttributeName    = "fetch"
	RemoteAttributeName   = "remote"
	RevisionAttributeName = "revision"
	GroupsAttributeName   = "groups"
	OptionalAttributeName = "optional"
	DestPathAttributeName = "dest-path"
	BaseRevAttributeName  = "base-rev"
)

const groupSeparatorCharactersConstant = ", \t\n"

const qualifiedNameSeparatorConstant = ":"

// Node is a single manifest element with its attributes and children in document order.
// Names keep the prefix written in the source document in Space rather than a
// resolved namespace URI.
type Node struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Text       string
	Children   []Node
}

// Name returns the element name as written, including any namespace prefix.
func (node *Node) Name() string {
	return qualifiedName(node.XMLName)
}

func qualifiedName(name xml.Name) string {
	if len(name.Space) == 0 {
		return name.Local
	}
	return name.Space + qualifiedNameSeparatorConstant + name.Local
}

// Attribute returns the value of the named attribute.
func (node *Node) Attribute(name string) (string, bool) {
	for _, attribute := range node.Attributes {
		if attribute.Name.Space == "" && attribute.Name.Local == name {
			return attribute.Value, true
		}
	}
	return "", false
}

// AttributeValue returns the trimmed value of the named attribute or an empty string.
func (node *Node) AttributeValue(name string) string {
	value, _ := node.Attribute(name)
	return strings.TrimSpace(value)
}

// SetAttribute replaces the named attribute in place or appends it when absent.
func (node *Node) SetAttribute(name string, value string) {
	for attributeIndex := range node.Attributes {
		attribute := &node.Attributes[attributeIndex]
		if attribute.Name.Space == "" && attribute.Name.Local == name {
			attribute.Value = value
			return
		}
	}
	node.Attributes = append(node.Attributes, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

func (node *Node) clone() Node {
	cloned := Node{XMLName: node.XMLName, Text: node.Text}
	if node.Attributes != nil {
		cloned.Attributes = append([]xml.Attr{}, node.Attributes...)
	}
	if node.Children != nil {
		cloned.Children = make([]Node, len(node.Children))
		for childIndex := range node.Children {
			cloned.Children[childIndex] = node.Children[childIndex].clone()
		}
	}
	return cloned
}

// normalize drops whitespace-only character data and trims the rest so that
// re-encoding with indentation is stable across repeated read-write cycles.
func (node *Node) normalize() {
	node.Text = strings.TrimSpace(node.Text)
	for childIndex := range node.Children {
		node.Children[childIndex].normalize()
	}
}

// Remote declares a fetch location shared by projects.
type Remote struct {
	Name  string
	Fetch string
}

// Default carries the fallback remote and revision for projects.
type Default struct {
	Remote   string
	Revision string
}

// Project is a typed view over a project element.
type Project struct {
	Name     string
	Path     string
	Remote   string
	Revision string
	Groups   []string
	node     *Node
}

// CheckoutPath returns the project path, falling back to the project name as the checkout tool does.
func (project Project) CheckoutPath() string {
	if len(project.Path) > 0 {
		return project.Path
	}
	return project.Name
}

// EffectiveRemote returns the project remote, falling back to the manifest default remote.
func (project Project) EffectiveRemote(defaults Default) string {
	if len(project.Remote) > 0 {
		return project.Remote
	}
	return defaults.Remote
}

// Pin sets the revision attribute of the underlying project element.
func (project Project) Pin(revision string) {
	if project.node == nil {
		return
	}
	project.node.SetAttribute(RevisionAttributeName, revision)
}

// Manifest is an ordered manifest document.
type Manifest struct {
	root Node
}

// New wraps a root element into a Manifest.
func New(root Node) *Manifest {
	normalizedRoot := root.clone()
	normalizedRoot.normalize()
	return &Manifest{root: normalizedRoot}
}

// Root exposes the root element.
func (manifest *Manifest) Root() *Node {
	return &manifest.root
}

// Clone returns a deep copy so that pinning never touches the source document.
func (manifest *Manifest) Clone() *Manifest {
	return &Manifest{root: manifest.root.clone()}
}

// Remotes lists the declared remotes in document order.
func (manifest *Manifest) Remotes() []Remote {
	var remotes []Remote
	for childIndex := range manifest.root.Children {
		child := &manifest.root.Children[childIndex]
		if child.Name() != RemoteElementName {
			continue
		}
		remotes = append(remotes, Remote{
			Name:  child.AttributeValue(NameAttributeName),
			Fetch: child.AttributeValue(FetchAttributeName),
		})
	}
	return remotes
}

// Default returns the first default element, if any.
func (manifest *Manifest) Default() (Default, bool) {
	for childIndex := range manifest.root.Children {
		child := &manifest.root.Children[childIndex]
		if child.Name() != DefaultElementName {
			continue
		}
		return Default{
			Remote:   child.AttributeValue(RemoteAttributeName),
			Revision: child.AttributeValue(RevisionAttributeName),
		}, true
	}
	return Default{}, false
}

// Projects lists the top-level projects in document order.
func (manifest *Manifest) Projects() []Project {
	var projects []Project
	for childIndex := range manifest.root.Children {
		child := &manifest.root.Children[childIndex]
		if child.Name() != ProjectElementName {
			continue
		}
		projects = append(projects, Project{
			Name:     child.AttributeValue(NameAttributeName),
			Path:     child.AttributeValue(PathAttributeName),
			Remote:   child.AttributeValue(RemoteAttributeName),
			Revision: child.AttributeValue(RevisionAttributeName),
			Groups:   splitGroups(child.AttributeValue(GroupsAttributeName)),
			node:     child,
		})
	}
	return projects
}

// Includes lists the names referenced by include elements that remain in the document.
func (manifest *Manifest) Includes() []string {
	var includes []string
	for childIndex := range manifest.root.Children {
		child := &manifest.root.Children[childIndex]
		if child.Name() == IncludeElementName {
			includes = append(includes, child.AttributeValue(NameAttributeName))
		}
	}
	return includes
}

func splitGroups(rawGroups string) []string {
	return strings.FieldsFunc(rawGroups, func(character rune) bool {
		return strings.ContainsRune(groupSeparatorCharactersConstant, character)
	})
}
