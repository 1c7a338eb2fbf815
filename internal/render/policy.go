package render

import (
	"fmt"
	"strings"
)

// ListPolicy controls how a list value is joined when it is substituted.
type ListPolicy string

const (
	// PolicyBullets renders one "- item" per line.
	PolicyBullets ListPolicy = "bullets"

	// PolicyLines renders one raw item per line (for code blocks).
	PolicyLines ListPolicy = "lines"

	// PolicyComma renders "a, b, c".
	PolicyComma ListPolicy = "comma"

	// PolicyInline renders "a b c".
	PolicyInline ListPolicy = "inline"
)

// String returns the string representation of the policy.
func (p ListPolicy) String() string {
	return string(p)
}

// IsValid checks if the policy is one of the known policies.
func (p ListPolicy) IsValid() bool {
	switch p {
	case PolicyBullets, PolicyLines, PolicyComma, PolicyInline:
		return true
	default:
		return false
	}
}

// Join joins items according to the policy. Unknown policies fall back to
// PolicyBullets.
func (p ListPolicy) Join(items []string) string {
	switch p {
	case PolicyLines:
		return strings.Join(items, "\n")
	case PolicyComma:
		return strings.Join(items, ", ")
	case PolicyInline:
		return strings.Join(items, " ")
	default:
		var b strings.Builder
		for i, item := range items {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString("- ")
			b.WriteString(item)
		}
		return b.String()
	}
}

// ParseListPolicy parses a policy name, case-insensitively.
func ParseListPolicy(s string) (ListPolicy, error) {
	p := ListPolicy(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown list policy %q (valid: %s)", s, strings.Join(ValidListPolicies(), ", "))
	}
	return p, nil
}

// ValidListPolicies returns all valid policy names.
func ValidListPolicies() []string {
	return []string{
		string(PolicyBullets),
		string(PolicyLines),
		string(PolicyComma),
		string(PolicyInline),
	}
}

// DefaultListPolicies returns the per-field policies used by the built-in
// README template. Fields not listed use PolicyBullets.
func DefaultListPolicies() map[string]ListPolicy {
	return map[string]ListPolicy{
		"languages":    PolicyComma,
		"topics":       PolicyComma,
		"installation": PolicyLines,
		"usage":        PolicyLines,
		"structure":    PolicyLines,
		"badges":       PolicyInline,
	}
}
