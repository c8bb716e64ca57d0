package data

import "fmt"

type Relatives string

const (
	Ancestors   Relatives = "ancestors"
	Descendants Relatives = "descendants"
	Both        Relatives = "both"
)

func ValidRelatives() []Relatives {
	return []Relatives{Ancestors, Descendants, Both}
}

// ParseRelatives maps the empty string to Both.
func ParseRelatives(s string) (Relatives, error) {
	if s == "" {
		return Both, nil
	}
	for _, r := range ValidRelatives() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: '%s', needs to be one of %v", ErrInvalidRelatives, s, ValidRelatives())
}
