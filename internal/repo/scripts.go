package repo

import (
	"fmt"
	"regexp"
)

// makeTarget matches rule names at the start of a Makefile line, including
// double-colon rules ("all::"). A "=" right after the colons marks a
// variable assignment ("CC := gcc", "X ::= y") rather than a rule.
var makeTarget = regexp.MustCompile(`(?m)^([a-zA-Z_][a-zA-Z0-9_-]*)\s*:+(=?)`)

// Scripts lists runnable commands: package.json scripts as
// "`npm run name`: command" followed by Makefile targets as "`make name`".
func Scripts(m *Manifests) []string {
	var scripts []string

	if m.Package != nil {
		for _, name := range sortedKeys(m.Package.Scripts) {
			scripts = append(scripts, fmt.Sprintf("`npm run %s`: %s", name, m.Package.Scripts[name]))
		}
	}

	for _, target := range MakeTargets(m.Makefile) {
		scripts = append(scripts, fmt.Sprintf("`make %s`", target))
	}

	return scripts
}

// MakeTargets returns the rule names declared in a Makefile, in file order,
// without duplicates.
func MakeTargets(makefile string) []string {
	var targets []string
	for _, match := range makeTarget.FindAllStringSubmatch(makefile, -1) {
		if match[2] == "=" {
			continue
		}
		targets = append(targets, match[1])
	}
	return dedupe(targets)
}
