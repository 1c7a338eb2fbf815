package git

import (
	"net/url"
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// githubHost is the only host ParseGitHubSlug recognises.
const githubHost = "github.com"

// ValidSlug reports whether s has the form owner/repo.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// ParseGitHubSlug extracts "owner/repo" from a GitHub remote URL. It accepts
// https, ssh and git URLs as well as scp-like "git@github.com:owner/repo.git".
func ParseGitHubSlug(remote string) (string, bool) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return "", false
	}

	var host, path string
	if u, err := url.Parse(remote); err == nil && u.Scheme != "" && u.Host != "" {
		host, path = u.Hostname(), u.Path
	} else if at := strings.Index(remote, "@"); at >= 0 {
		// scp-like syntax: user@host:path
		rest := remote[at+1:]
		h, p, ok := strings.Cut(rest, ":")
		if !ok {
			return "", false
		}
		host, path = h, p
	} else {
		return "", false
	}

	if !strings.EqualFold(host, githubHost) {
		return "", false
	}

	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")
	if !ValidSlug(path) {
		return "", false
	}
	return path, true
}
