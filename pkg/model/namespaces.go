package model

import (
	"encoding/xml"
	"strings"
)

// NamespaceManager assigns short prefixes to the namespaces used by GEDCOM X
// resources.
type NamespaceManager struct {
	prefixes   map[string]string
	namespaces map[string]string
}

var defaultPrefixes = map[string]string{
	ConclusionNamespace: "gx",
	FoafNamespace:       "foaf",
	RDFNamespace:        "rdf",
	DCTermsNamespace:    "dcterms",
	DCElementsNamespace: "dc",
	OAIDCNamespace:      "oai_dc",
}

// NewNamespaceManager returns a manager preloaded with the GEDCOM X
// namespaces. Extra maps namespace URIs to additional prefixes.
func NewNamespaceManager(extra map[string]string) *NamespaceManager {
	nm := &NamespaceManager{
		prefixes:   make(map[string]string, len(defaultPrefixes)+len(extra)),
		namespaces: make(map[string]string, len(defaultPrefixes)+len(extra)),
	}
	for ns, p := range defaultPrefixes {
		nm.add(ns, p)
	}
	for ns, p := range extra {
		nm.add(ns, p)
	}
	return nm
}

func (nm *NamespaceManager) add(ns, prefix string) {
	if old, ok := nm.prefixes[ns]; ok {
		delete(nm.namespaces, old)
	}
	nm.prefixes[ns] = prefix
	nm.namespaces[prefix] = ns
}

// Prefix returns the prefix registered for ns.
func (nm *NamespaceManager) Prefix(ns string) (string, bool) {
	p, ok := nm.prefixes[ns]
	return p, ok
}

// Namespace returns the namespace registered for prefix.
func (nm *NamespaceManager) Namespace(prefix string) (string, bool) {
	ns, ok := nm.namespaces[prefix]
	return ns, ok
}

// QualifiedName renders name as "prefix:local". Names in an unknown namespace
// render as "{namespace}local" and names without a namespace as "local".
func (nm *NamespaceManager) QualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if p, ok := nm.prefixes[name.Space]; ok {
		return p + ":" + name.Local
	}
	return "{" + name.Space + "}" + name.Local
}

// ParseQualifiedName is the inverse of QualifiedName.
func (nm *NamespaceManager) ParseQualifiedName(s string) (xml.Name, bool) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 || end == len(s)-1 {
			return xml.Name{}, false
		}
		return xml.Name{Space: s[1:end], Local: s[end+1:]}, true
	}
	prefix, local, found := strings.Cut(s, ":")
	if !found {
		return xml.Name{Local: s}, s != ""
	}
	ns, ok := nm.namespaces[prefix]
	if !ok || local == "" {
		return xml.Name{}, false
	}
	return xml.Name{Space: ns, Local: local}, true
}
