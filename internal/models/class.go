package models

import "path/filepath"

// Class is an annotated class or struct
type Class struct {
	Declaration

	ParentClass string
	Flags       ClassFlags
	Fields      []Field
	Methods     []Method
	Properties  map[string]*Property
	BodyLine    int
}

// Property returns the property called name, creating it on first use.
func (c *Class) Property(name string) *Property {
	if c.Properties == nil {
		c.Properties = make(map[string]*Property)
	}
	p, ok := c.Properties[name]
	if !ok {
		p = &Property{}
		c.Properties[name] = p
	}
	return p
}

// AddArtificialMethod appends a synthesized public method. It has no source
// line and HasBody is set whenever body is not empty.
func (c *Class) AddArtificialMethod(result, name, params, body string, comments []string, flags MethodFlags) *Method {
	m := Method{
		Declaration: Declaration{
			Name:     name,
			Access:   AccessPublic,
			Comments: comments,
		},
		Type:  result,
		Body:  body,
		Flags: flags | MethodArtificial,
	}
	m.SetParameters(params)
	if body != "" {
		m.Flags.Set(MethodHasBody)
	}
	c.Methods = append(c.Methods, m)
	return &c.Methods[len(c.Methods)-1]
}

// FileMirror is everything reflected from one source file
type FileMirror struct {
	SourceFilePath string
	Classes        []*Class
	Enums          []*Enum
}

// NewFileMirror returns an empty mirror for path, made absolute when possible.
func NewFileMirror(path string) *FileMirror {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &FileMirror{SourceFilePath: filepath.Clean(path)}
}

// CurrentClass returns the class opened last, or nil.
func (f *FileMirror) CurrentClass() *Class {
	if len(f.Classes) == 0 {
		return nil
	}
	return f.Classes[len(f.Classes)-1]
}

// IsEmpty reports whether nothing was reflected from the file.
func (f *FileMirror) IsEmpty() bool {
	return len(f.Classes) == 0 && len(f.Enums) == 0
}

// FindEnum returns the first enum of this file called name.
func (f *FileMirror) FindEnum(name string) *Enum {
	for _, e := range f.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}
