package naming

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidName is wrapped by the errors returned from ValidateName.
var ErrInvalidName = errors.New("invalid name")

// ValidateName checks a name against the naming convention:
//  1. Elements are separated by dots, for example "Sim.LRU". No element may be
//     empty, so "Sim..LRU" and "Sim." are not valid.
//  2. Elements are capitalized CamelCase and contain no "_", "-", or quotes.
//  3. Elements in a series use square brackets, for example "Cache[2]".
func ValidateName(name string) error {
	for _, token := range strings.Split(name, ".") {
		if err := tokenMustBeValid(token); err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidName, name, err)
		}
	}

	return nil
}

// NameMustBeValid panics if the name does not follow the naming convention.
func NameMustBeValid(name string) {
	if err := ValidateName(name); err != nil {
		panic(err)
	}
}

func tokenMustBeValid(token string) error {
	elemName, indexPart, hasIndex := strings.Cut(token, "[")

	if elemName == "" {
		return errors.New("element must not be empty")
	}

	for _, c := range []string{"_", "\"", "'", "-"} {
		if strings.Contains(elemName, c) {
			return errors.New("element must not contain " + c)
		}
	}

	if elemName[0] < 'A' || elemName[0] > 'Z' {
		return errors.New("element must start with a capital letter")
	}

	if strings.Contains(elemName, "]") {
		return errors.New("brackets must match")
	}

	if hasIndex {
		return indicesMustBeValid("[" + indexPart)
	}

	return nil
}

// indicesMustBeValid accepts one or more "[n]" groups.
func indicesMustBeValid(s string) error {
	for s != "" {
		if s[0] != '[' {
			return errors.New("brackets must match")
		}

		end := strings.IndexByte(s, ']')
		if end < 0 {
			return errors.New("brackets must match")
		}

		if _, err := strconv.Atoi(s[1:end]); err != nil {
			return errors.New("index must be an integer")
		}

		s = s[end+1:]
	}

	return nil
}

// BuildName builds a name from a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// BuildNameWithIndex builds a name from a parent name, an element name and an
// index.
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName, elementName+"["+strconv.Itoa(index)+"]")
}
