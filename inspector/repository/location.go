package repository

import (
	"path"
	"strings"
)

// JoinPath joins relative to baseURL cleaning `..` elements; scheme and host are preserved
func JoinPath(baseURL, relative string) string {
	if path.IsAbs(relative) {
		return relative
	}
	scheme, location := splitScheme(baseURL)
	return scheme + path.Join(location, relative)
}

// ParentPath returns the parent location of URL
func ParentPath(URL string) string {
	scheme, location := splitScheme(URL)
	return scheme + path.Dir(strings.TrimRight(location, "/"))
}

func splitScheme(URL string) (string, string) {
	if index := strings.Index(URL, "://"); index != -1 {
		return URL[:index+3], URL[index+3:]
	}
	return "", URL
}
