package doxygen

// Details is the deferred payload of a Node, filled in by Finalize.
type Details struct {
	Title      string    `json:"title,omitempty"`
	URL        string    `json:"url,omitempty"`
	Brief      string    `json:"brief,omitempty"`
	Body       string    `json:"body,omitempty"`
	InBody     string    `json:"in_body,omitempty"`
	Visibility string    `json:"visibility,omitempty"`
	Static     bool      `json:"static,omitempty"`
	Const      bool      `json:"const,omitempty"`
	Virtual    string    `json:"virtual,omitempty"`
	Type       string    `json:"type,omitempty"`
	Definition string    `json:"definition,omitempty"`
	Args       string    `json:"args,omitempty"`
	Initial    string    `json:"initializer,omitempty"`
	Language   string    `json:"language,omitempty"`
	Params     []Param   `json:"params,omitempty"`
	Templates  []Param   `json:"template_params,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Includes   []Link    `json:"includes,omitempty"`
	Bases      []Link    `json:"base_classes,omitempty"`
	Derived    []Link    `json:"derived_classes,omitempty"`
	Related    []Link    `json:"related,omitempty"`
}

// Param is a function or template parameter.
type Param struct {
	Type    string `json:"type,omitempty"`
	Name    string `json:"name,omitempty"`
	Default string `json:"default,omitempty"`
}

// Location is where an entity is declared and defined.
type Location struct {
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	BodyFile  string `json:"body_file,omitempty"`
	BodyStart int    `json:"body_start,omitempty"`
	BodyEnd   int    `json:"body_end,omitempty"`
}

// Link is a cross reference to another entity. Target and URL are set only
// when the refid resolved against the cache.
type Link struct {
	Refid      string `json:"refid,omitempty"`
	Name       string `json:"name"`
	URL        string `json:"url,omitempty"`
	Kind       Kind   `json:"kind,omitempty"`
	Visibility string `json:"visibility,omitempty"`
	Virtual    string `json:"virtual,omitempty"`
	Target     *Node  `json:"-"`
}

// Resolved reports whether the link points at a cached Node.
func (l Link) Resolved() bool {
	return l.Target != nil
}
