package parser

import (
	"github.com/toyz/reflector/internal/errors"
	"github.com/toyz/reflector/internal/models"
)

// resolveProperty links a method carrying `GetterFor` or `SetterFor` to the
// named property of its class. A property has at most one of each.
func resolveProperty(class *models.Class, method *models.Method, lineNum int) error {
	if name, ok, err := propertyName(method, "GetterFor"); err != nil {
		return err
	} else if ok {
		prop := class.Property(name)
		if prop.GetterName != "" {
			return errors.DuplicateAccessor("getter", name, prop.GetterLine)
		}
		prop.GetterName = method.Name
		prop.GetterLine = lineNum
		prop.Type = method.Type
		if prop.Name == "" {
			prop.Name = name
		}
	}

	if name, ok, err := propertyName(method, "SetterFor"); err != nil {
		return err
	} else if ok {
		prop := class.Property(name)
		if prop.SetterName != "" {
			return errors.DuplicateAccessor("setter", name, prop.SetterLine)
		}
		if prop.Type == "" {
			if len(method.Parameters) == 0 {
				return errors.MissingParameter(method.Name)
			}
			prop.Type = method.Parameters[0].Type
		}
		prop.SetterName = method.Name
		prop.SetterLine = lineNum
		if prop.Name == "" {
			prop.Name = name
		}
	}
	return nil
}

func propertyName(method *models.Method, key string) (string, bool, error) {
	v, ok := method.Attributes.Lookup(key)
	if !ok {
		return "", false, nil
	}
	name, isString := v.AsString()
	if !isString || name == "" {
		return "", false, errors.SyntaxErrorf("`%s` must name a property", key)
	}
	return name, true, nil
}
