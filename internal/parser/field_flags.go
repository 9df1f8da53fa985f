package parser

import (
	"strings"

	"github.com/toyz/reflector/internal/annotations"
	"github.com/toyz/reflector/internal/models"
)

const containerPrefix = "ChildVector<"

// accessorSwitches maps attributes to the flag they suppress when false
// and restore when true. Editor and Edit are synonyms.
var accessorSwitches = []struct {
	keys []string
	flag models.FieldFlags
}{
	{[]string{"Getter"}, models.FieldNoGetter},
	{[]string{"Setter"}, models.FieldNoSetter},
	{[]string{"Editor", "Edit"}, models.FieldNoEdit},
	{[]string{"Save"}, models.FieldNoSave},
	{[]string{"Load"}, models.FieldNoLoad},
}

// deriveFieldFlags applies the suppression rules in order; later rules
// override earlier ones flag by flag.
func deriveFieldFlags(fieldType string, attrs annotations.Attributes) models.FieldFlags {
	var flags models.FieldFlags

	for _, sw := range accessorSwitches {
		if anyKey(sw.keys, attrs.IsFalse) {
			flags.Set(sw.flag)
		}
	}

	if attrs.IsFalse("Serialize") {
		flags.Set(models.FieldNoSave | models.FieldNoLoad)
	}
	if attrs.IsTrue("Private") {
		flags.Set(models.FieldNoEdit | models.FieldNoSetter | models.FieldNoGetter)
	}
	if attrs.IsTrue("ParentPointer") {
		flags.Set(models.FieldNoEdit | models.FieldNoSetter)
	}

	for _, sw := range accessorSwitches {
		if anyKey(sw.keys, attrs.IsTrue) {
			flags.Clear(sw.flag)
		}
	}

	// containers are never assignable, whatever the attributes say
	if strings.HasPrefix(fieldType, containerPrefix) {
		flags.Set(models.FieldNoSetter)
	}
	return flags
}

func anyKey(keys []string, pred func(string) bool) bool {
	for _, k := range keys {
		if pred(k) {
			return true
		}
	}
	return false
}
