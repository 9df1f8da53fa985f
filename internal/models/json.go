package models

import (
	"github.com/goccy/go-json"
)

// JSONObject is the generic form entities are rendered to. Keys are sorted
// on encoding, so the output is stable.
type JSONObject = map[string]interface{}

func (d *Declaration) toJSON() JSONObject {
	out := JSONObject{
		"Name":            d.Name,
		"DeclarationLine": d.DeclarationLine,
	}
	if d.Attributes.Len() > 0 {
		out["Attributes"] = d.Attributes
	}
	if d.Access != AccessUnspecified {
		out["Access"] = d.Access.String()
	}
	if len(d.Comments) > 0 {
		out["Comments"] = d.Comments
	}
	return out
}

func addFlags(out JSONObject, names []string) {
	for _, n := range names {
		out[n] = true
	}
}

// ToJSON renders the field
func (f *Field) ToJSON() JSONObject {
	out := f.Declaration.toJSON()
	out["Type"] = f.Type
	if f.InitializingExpression != "" {
		out["InitializingExpression"] = f.InitializingExpression
	}
	if f.DisplayName != "" && f.DisplayName != f.Name {
		out["DisplayName"] = f.DisplayName
	}
	addFlags(out, f.Flags.Names())
	return out
}

// ToJSON renders the parameter
func (p Parameter) ToJSON() JSONObject {
	out := JSONObject{"Type": p.Type}
	if p.Name != "" {
		out["Name"] = p.Name
	}
	if p.Initializer != "" {
		out["Initializer"] = p.Initializer
	}
	return out
}

// ToJSON renders the method
func (m *Method) ToJSON() JSONObject {
	out := m.Declaration.toJSON()
	out["Type"] = m.Type

	params := make([]JSONObject, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = p.ToJSON()
	}
	out["Parameters"] = params

	if m.Body != "" {
		out["Body"] = m.Body
	}
	if m.UniqueName != "" {
		out["UniqueName"] = m.UniqueName
	}
	if line := m.SourceFieldDeclarationLine(); line != 0 {
		out["SourceFieldDeclarationLine"] = line
	}
	addFlags(out, m.Flags.Names())
	return out
}

// ToJSON renders the enumerator
func (e *Enumerator) ToJSON() JSONObject {
	out := e.Declaration.toJSON()
	out["Value"] = e.Value
	return out
}

// ToJSON renders the enum. Enumerators sharing a name collapse onto the last.
func (e *Enum) ToJSON() JSONObject {
	out := e.Declaration.toJSON()
	enumerators := JSONObject{}
	for i := range e.Enumerators {
		enumerators[e.Enumerators[i].Name] = e.Enumerators[i].ToJSON()
	}
	out["Enumerators"] = enumerators
	return out
}

// ToJSON renders the property
func (p *Property) ToJSON() JSONObject {
	out := JSONObject{"Name": p.Name}
	if p.Type != "" {
		out["Type"] = p.Type
	}
	if p.GetterName != "" {
		out["GetterName"] = p.GetterName
		out["GetterLine"] = p.GetterLine
	}
	if p.SetterName != "" {
		out["SetterName"] = p.SetterName
		out["SetterLine"] = p.SetterLine
	}
	return out
}

// ToJSON renders the class. Fields and methods are keyed by name; for
// overloads the last declaration wins.
func (c *Class) ToJSON() JSONObject {
	out := c.Declaration.toJSON()
	if c.ParentClass != "" {
		out["ParentClass"] = c.ParentClass
	}
	addFlags(out, c.Flags.Names())

	if len(c.Fields) > 0 {
		fields := JSONObject{}
		for i := range c.Fields {
			fields[c.Fields[i].Name] = c.Fields[i].ToJSON()
		}
		out["Fields"] = fields
	}
	if len(c.Methods) > 0 {
		methods := JSONObject{}
		for i := range c.Methods {
			methods[c.Methods[i].Name] = c.Methods[i].ToJSON()
		}
		out["Methods"] = methods
	}
	if len(c.Properties) > 0 {
		props := JSONObject{}
		for name, p := range c.Properties {
			props[name] = p.ToJSON()
		}
		out["Properties"] = props
	}
	out["BodyLine"] = c.BodyLine
	return out
}

// ToJSON renders the mirror
func (f *FileMirror) ToJSON() JSONObject {
	classes := JSONObject{}
	for _, c := range f.Classes {
		classes[c.Name] = c.ToJSON()
	}
	enums := JSONObject{}
	for _, e := range f.Enums {
		enums[e.Name] = e.ToJSON()
	}
	return JSONObject{
		"SourceFilePath": f.SourceFilePath,
		"Classes":        classes,
		"Enums":          enums,
	}
}

// MarshalJSON implements json.Marshaler
func (f *FileMirror) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.ToJSON())
}

// MarshalJSON renders every published mirror as a JSON array
func (r *Registry) MarshalJSON() ([]byte, error) {
	mirrors := r.Mirrors()
	out := make([]JSONObject, len(mirrors))
	for i, m := range mirrors {
		out[i] = m.ToJSON()
	}
	return json.Marshal(out)
}

// Encode renders v as indented JSON terminated by a newline.
func Encode(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
