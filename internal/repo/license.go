package repo

import (
	"io/fs"
	"strings"
)

// licenseFiles are checked in order at the repository root.
var licenseFiles = []string{"LICENSE", "LICENSE.md", "LICENSE.txt", "LICENCE", "COPYING"}

// licenseSniffBytes bounds how much of a license file is inspected.
const licenseSniffBytes = 2048

type licenseRule struct {
	id      string
	markers []string
}

// licenseRules match normalized (lowercase, single-spaced) license text. All
// markers must be present; more specific rules come first.
var licenseRules = []licenseRule{
	{"AGPL-3.0", []string{"gnu affero general public license"}},
	{"LGPL-3.0", []string{"gnu lesser general public license", "version 3"}},
	{"LGPL-2.1", []string{"gnu lesser general public license", "version 2.1"}},
	{"GPL-3.0", []string{"gnu general public license", "version 3"}},
	{"GPL-2.0", []string{"gnu general public license", "version 2"}},
	{"Apache-2.0", []string{"apache license", "version 2.0"}},
	{"MPL-2.0", []string{"mozilla public license", "2.0"}},
	{"MIT", []string{"permission is hereby granted, free of charge"}},
	{"BSD-3-Clause", []string{"redistribution and use in source and binary forms", "neither the name"}},
	{"BSD-2-Clause", []string{"redistribution and use in source and binary forms"}},
	{"ISC", []string{"permission to use, copy, modify, and/or distribute this software for any purpose"}},
	{"Unlicense", []string{"this is free and unencumbered software released into the public domain"}},
}

// IdentifyLicense returns the SPDX identifier whose markers appear in text,
// or "" when none match.
func IdentifyLicense(text string) string {
	if len(text) > licenseSniffBytes {
		text = text[:licenseSniffBytes]
	}
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")

	for _, rule := range licenseRules {
		matched := true
		for _, marker := range rule.markers {
			if !strings.Contains(normalized, marker) {
				matched = false
				break
			}
		}
		if matched {
			return rule.id
		}
	}
	return ""
}

// License identifies the project license from a license file, then from
// manifest fields. A license file that cannot be identified yields "Custom"
// unless a manifest names the license.
func License(fsys fs.FS, l Listing, m *Manifests) string {
	haveFile := false
	for _, name := range licenseFiles {
		if !l.HasFile(name) {
			continue
		}
		haveFile = true
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			continue
		}
		if id := IdentifyLicense(string(data)); id != "" {
			return id
		}
	}

	if id := manifestLicense(m); id != "" {
		return id
	}
	if haveFile {
		return "Custom"
	}
	return ""
}

func manifestLicense(m *Manifests) string {
	if m.Package != nil {
		if s := rawString(m.Package.License, "type"); s != "" {
			return s
		}
	}
	if py := m.PyProject; py != nil {
		switch v := py.Project.License.(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if s, ok := v["text"].(string); ok && s != "" {
				return s
			}
		}
		if py.Tool.Poetry.License != "" {
			return py.Tool.Poetry.License
		}
	}
	if m.Cargo != nil && m.Cargo.Package.License != "" {
		return m.Cargo.Package.License
	}
	if m.Composer != nil {
		if s := rawString(m.Composer.License); s != "" {
			return s
		}
	}
	return ""
}
