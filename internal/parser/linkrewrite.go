package parser

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// compileLinkPattern builds the Markdown link pattern for a given follow
// marker, so a non-default marker (configured per-project) is matched
// literally rather than missed by a hardcoded "@".
func compileLinkPattern(marker string) *regexp.Regexp {
	return regexp.MustCompile(`(` + regexp.QuoteMeta(marker) + `)?\[([^\[\]]*)\]\(([^()]*)\)`)
}

// rewriteLinks rewrites every Markdown link in line so its path is expressed
// relative to root's directory instead of from's directory, and returns the
// set of link targets that carried the configured follow marker.
//
// Mirrors yarner's parse_links/parse.rs: every relative link's path is
// rewritten regardless of the marker; only marker-prefixed links are
// reported for link-following.
func rewriteLinks(mdLinkRe *regexp.Regexp, line, root, from, marker string) (rewritten string, follow []string) {
	out := mdLinkRe.ReplaceAllStringFunc(line, func(m string) string {
		sub := mdLinkRe.FindStringSubmatch(m)
		hasMarker, text, target := sub[1] == marker, sub[2], sub[3]

		if !isRelativeLink(target) {
			return m
		}

		abs := absoluteLink(from, target)
		rel := relativeLink(root, abs)

		if hasMarker {
			follow = append(follow, abs)
		}

		return "[" + text + "](" + rel + ")"
	})

	return out, follow
}

func isRelativeLink(target string) bool {
	if strings.HasPrefix(target, "#") {
		return false
	}
	for _, scheme := range []string{"file://", "http://", "https://", "ftp://"} {
		if strings.HasPrefix(target, scheme) {
			return false
		}
	}

	return true
}

// absoluteLink resolves target relative to from's containing directory and
// lexically cleans the result.
func absoluteLink(from, target string) string {
	dir := path.Dir(filepathToSlash(from))
	joined := path.Join(dir, target)

	return path.Clean(joined)
}

// relativeLink re-expresses an absolute (root-directory-relative) path
// relative to root's own containing directory.
func relativeLink(root, abs string) string {
	rootDir := path.Dir(filepathToSlash(root))
	rel, err := relPath(rootDir, abs)
	if err != nil {
		return abs
	}

	return rel
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func relPath(base, target string) (string, error) {
	if base == "" {
		base = "."
	}
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}
