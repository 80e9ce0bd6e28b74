package gitmodules

import "strings"

// RemoteName derives the short display label for a submodule URL.
//
// The URL is first stripped of one trailing slash and one trailing ".git"
// suffix. The remainder is scanned backward from the end: a '~' or ':'
// terminates the scan one character past itself (the scp/ssh separator
// between host and repository), a '.' terminates it in place (a domain
// label). When the scan stopped on a '.', the cursor moves forward to the
// next '/' to skip the rest of the host. The label is the substring from
// the final cursor position with leading slashes removed.
//
// URLs with no boundary character at all (a bare word such as a local
// directory name) scan to the start of the string and return it whole.
func RemoteName(url string) string {
	s := strings.TrimSuffix(url, "/")
	s = strings.TrimSuffix(s, ".git")

	i := len(s) - 1
	for i >= 0 {
		c := s[i]
		if c == '~' || c == ':' {
			i++
			break
		}
		if c == '.' {
			break
		}
		i--
	}
	if i < 0 {
		i = 0
	}
	if i < len(s) && s[i] == '.' {
		for i < len(s) && s[i] != '/' {
			i++
		}
	}
	return strings.TrimLeft(s[i:], "/")
}
