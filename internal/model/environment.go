package model

import "strings"

// environmentTokens maps hostname suffix tokens to environment labels.
// Full tokens come before single letters so PRO is not misread as P.
var environmentTokens = []struct {
	token string
	label string
}{
	{"DES", "DES"},
	{"PRE", "PRE"},
	{"PRO", "PRO"},
	{"D", "DES"},
	{"P", "PRE"},
	{"E", "PRO"},
}

// EnvironmentUnknown is returned when no suffix token matches.
const EnvironmentUnknown = "N/A"

// EnvironmentFor derives the environment label from the last three
// characters of a server name.
func EnvironmentFor(server string) string {
	segment := strings.ToUpper(server)
	if len(segment) > 3 {
		segment = segment[len(segment)-3:]
	}
	for _, t := range environmentTokens {
		if strings.Contains(segment, t.token) {
			return t.label
		}
	}
	return EnvironmentUnknown
}
