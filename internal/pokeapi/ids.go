package pokeapi

import (
	"fmt"
	"strconv"
	"strings"
)

// IDFromURL extracts the numeric ID from a resource reference URL such as
// "https://pokeapi.co/api/v2/pokemon/25/". Upstream list endpoints carry no
// explicit ID field; this is the only place that relies on the URL shape.
func IDFromURL(ref string) (int, error) {
	trimmed := strings.TrimRight(ref, "/")
	i := strings.LastIndexByte(trimmed, '/')
	if i < 0 || i == len(trimmed)-1 {
		return 0, fmt.Errorf("pokeapi: no id segment in %q", ref)
	}
	id, err := strconv.Atoi(trimmed[i+1:])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("pokeapi: invalid id segment in %q", ref)
	}
	return id, nil
}
