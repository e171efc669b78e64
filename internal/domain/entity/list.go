package entity

import "strings"

// CleanList limpia un campo de lista: recorta espacios y
// descarta entradas vacías. Transformación pura y repetible.
func CleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
