// Package webtech parses website/technology association lists. The accepted
// line format is a URL optionally followed by a bracketed technology list:
//
//	example.com [nginx, PHP, WordPress]
package webtech

import (
	"regexp"
	"strings"
)

// Website associates one site with the technologies observed on it.
type Website struct {
	URL          string   `json:"url"`
	Technologies []string `json:"technologies"`
}

var lineRe = regexp.MustCompile(`^(\S+)(?:\s*\[(.*)\])?$`)

// Parse reads association lines from file content. Blank lines and lines
// without a recognizable URL are skipped.
func Parse(content []byte) []Website {
	var sites []Website
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		m := lineRe.FindStringSubmatch(line)
		if m == nil || m[1] == "" {
			continue
		}
		sites = append(sites, Website{
			URL:          m[1],
			Technologies: splitList(m[2]),
		})
	}
	return sites
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var techs []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			techs = append(techs, t)
		}
	}
	return techs
}
