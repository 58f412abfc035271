package doxygen

// Kind is the category of a documented entity as reported by Doxygen.
type Kind string

const (
	KindIndex     Kind = "index"
	KindNamespace Kind = "namespace"
	KindClass     Kind = "class"
	KindStruct    Kind = "struct"
	KindUnion     Kind = "union"
	KindInterface Kind = "interface"
	KindFunction  Kind = "function"
	KindVariable  Kind = "variable"
	KindTypedef   Kind = "typedef"
	KindEnum      Kind = "enum"
	KindEnumValue Kind = "enumvalue"
	KindDefine    Kind = "define"
	KindFriend    Kind = "friend"
	KindGroup     Kind = "group"
	KindDir       Kind = "dir"
	KindFile      Kind = "file"
	KindPage      Kind = "page"
	KindExample   Kind = "example"
)

// Phase is one of the ordered construction passes of a load.
type Phase int

const (
	// PhaseLanguage builds namespaces, classes and other language entities.
	PhaseLanguage Phase = iota
	// PhaseGroups builds groups (modules).
	PhaseGroups
	// PhaseFiles builds directories and files.
	PhaseFiles
)

var phaseNames = [...]string{"language", "groups", "files"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Phases lists the construction phases in load order.
func Phases() []Phase {
	return []Phase{PhaseLanguage, PhaseGroups, PhaseFiles}
}

// Accepts reports whether compounds of kind k are constructed in phase p.
func (p Phase) Accepts(k Kind) bool {
	switch p {
	case PhaseLanguage:
		switch k {
		case KindNamespace, KindClass, KindStruct, KindInterface,
			KindFunction, KindVariable, KindTypedef, KindEnum:
			return true
		}
	case PhaseGroups:
		return k == KindGroup
	case PhaseFiles:
		return k == KindDir || k == KindFile
	}
	return false
}

// RecurseMembers reports whether member declarations owned by other compounds
// are materialized during phase p. Language entities only build their own
// members; groups and files also pick up members nobody claimed before.
func (p Phase) RecurseMembers() bool {
	return p != PhaseLanguage
}

// IsStructured reports whether k is a compound that gets its own page.
func (k Kind) IsStructured() bool {
	switch k {
	case KindNamespace, KindClass, KindStruct, KindUnion, KindInterface,
		KindGroup, KindDir, KindFile, KindPage, KindExample:
		return true
	}
	return false
}

// IsClassLike reports whether k is a class, struct, union or interface.
func (k Kind) IsClassLike() bool {
	switch k {
	case KindClass, KindStruct, KindUnion, KindInterface:
		return true
	}
	return false
}
