// Package pokeapitest serves a deterministic, in-memory PokeAPI for tests.
//
// Entities are numbered 1..N in generation order and named "<prefix>-<id>"
// unless a generation supplies explicit names. List endpoints honor
// offset/limit exactly like the real API, and reference URLs point back at
// the test server so the client's ID parsing is exercised end to end.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/abelbrown/dex/internal/pokeapi"
)

// Generation describes one fixture generation.
type Generation struct {
	Name   string
	Region string
	// Species lists member names in order. When nil, Count synthetic names
	// are generated.
	Species []string
	Count   int
}

// Dataset is the full fixture content.
type Dataset struct {
	Generations []Generation
	// Types maps a type name to the names of its members.
	Types map[string][]string
	// Relations maps a type name to its damage relations (detail views).
	Relations map[string]pokeapi.DamageRelations

	Pokemon   map[int]pokeapi.Pokemon
	Species   map[int]pokeapi.Species
	Chains    map[int]pokeapi.EvolutionChain
	Abilities map[string]pokeapi.Ability
	Moves     map[string]pokeapi.Move
}

// Counts builds a dataset with synthetic species for the given member counts.
func Counts(counts ...int) Dataset {
	ds := Dataset{Types: map[string][]string{}}
	for i, c := range counts {
		ds.Generations = append(ds.Generations, Generation{
			Name:   fmt.Sprintf("generation-%d", i+1),
			Region: fmt.Sprintf("region-%d", i+1),
			Count:  c,
		})
	}
	return ds
}

// Name returns the synthetic name for an entity ID.
func Name(id int) string {
	return "species-" + strconv.Itoa(id)
}

// Server is a running fixture API.
type Server struct {
	*httptest.Server

	ds    Dataset
	names []string // names[i] is entity ID i+1

	mu       sync.Mutex
	requests map[string]int
	fail     map[string]int // path prefix -> status
}

// NewServer starts a fixture server. Call Close when done.
func NewServer(ds Dataset) *Server {
	s := &Server{
		ds:       ds,
		requests: make(map[string]int),
		fail:     make(map[string]int),
	}
	for _, g := range ds.Generations {
		if g.Species != nil {
			s.names = append(s.names, g.Species...)
			continue
		}
		for i := 0; i < g.Count; i++ {
			s.names = append(s.names, Name(len(s.names)+1))
		}
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Client returns a pokeapi.Client pointed at the server with pacing disabled.
func (s *Server) Client() *pokeapi.Client {
	return pokeapi.NewClient(pokeapi.Options{
		BaseURL:           s.URL,
		RequestsPerSecond: 1e6,
		Burst:             1000,
	})
}

// Total returns the number of entities served.
func (s *Server) Total() int {
	return len(s.names)
}

// Fail makes every request whose path starts with prefix answer with status.
func (s *Server) Fail(prefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[prefix] = status
}

// Heal removes all failure injections.
func (s *Server) Heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = make(map[string]int)
}

// Requests returns how many requests hit paths starting with prefix.
func (s *Server) Requests(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for p, c := range s.requests {
		if strings.HasPrefix(p, prefix) {
			n += c
		}
	}
	return n
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	s.mu.Lock()
	s.requests[path]++
	status := 0
	for prefix, code := range s.fail {
		if strings.HasPrefix(path, prefix) {
			status = code
			break
		}
	}
	s.mu.Unlock()

	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "generation":
		writeJSON(w, pokeapi.ResourceList{Count: len(s.ds.Generations)})
	case len(parts) == 2 && parts[0] == "generation":
		s.serveGeneration(w, parts[1])
	case len(parts) == 1 && parts[0] == "pokemon":
		s.serveList(w, r, "pokemon")
	case len(parts) == 1 && parts[0] == "pokemon-species":
		s.serveList(w, r, "pokemon-species")
	case len(parts) == 1 && parts[0] == "type":
		s.serveTypes(w)
	case len(parts) == 2 && parts[0] == "type":
		s.serveType(w, parts[1])
	case len(parts) == 2 && parts[0] == "pokemon":
		serveByID(w, parts[1], s.ds.Pokemon)
	case len(parts) == 2 && parts[0] == "pokemon-species":
		serveByID(w, parts[1], s.ds.Species)
	case len(parts) == 2 && parts[0] == "evolution-chain":
		serveByID(w, parts[1], s.ds.Chains)
	case len(parts) == 2 && parts[0] == "ability":
		serveByName(w, parts[1], s.ds.Abilities)
	case len(parts) == 2 && parts[0] == "move":
		serveByName(w, parts[1], s.ds.Moves)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) serveGeneration(w http.ResponseWriter, raw string) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(s.ds.Generations) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	start := 0
	for _, g := range s.ds.Generations[:n-1] {
		start += generationSize(g)
	}
	g := s.ds.Generations[n-1]
	out := pokeapi.Generation{
		ID:   n,
		Name: g.Name,
		Names: []pokeapi.LocalizedName{
			{Name: "Generation " + strconv.Itoa(n), Language: pokeapi.NamedResource{Name: "en"}},
		},
		MainRegion: pokeapi.NamedResource{Name: g.Region},
	}
	for i := 0; i < generationSize(g); i++ {
		id := start + i + 1
		out.PokemonSpecies = append(out.PokemonSpecies, s.ref("pokemon-species", id))
	}
	writeJSON(w, out)
}

func (s *Server) serveList(w http.ResponseWriter, r *http.Request, kind string) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 20
	}
	out := pokeapi.ResourceList{Count: len(s.names), Results: []pokeapi.NamedResource{}}
	for i := offset; i < offset+limit && i < len(s.names); i++ {
		if i < 0 {
			continue
		}
		out.Results = append(out.Results, s.ref(kind, i+1))
	}
	writeJSON(w, out)
}

func (s *Server) serveTypes(w http.ResponseWriter) {
	out := pokeapi.ResourceList{}
	names := make([]string, 0, len(s.ds.Types)+2)
	for name := range s.ds.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	names = append(names, "unknown", "shadow")
	for _, name := range names {
		out.Results = append(out.Results, pokeapi.NamedResource{Name: name, URL: s.URL + "/type/" + name + "/"})
	}
	out.Count = len(out.Results)
	writeJSON(w, out)
}

func (s *Server) serveType(w http.ResponseWriter, name string) {
	members, ok := s.ds.Types[name]
	rel, hasRel := s.ds.Relations[name]
	if !ok && !hasRel {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	out := pokeapi.TypeDetail{Name: name, DamageRelations: rel}
	for _, m := range members {
		out.Pokemon = append(out.Pokemon, pokeapi.TypeMember{Slot: 1, Pokemon: pokeapi.NamedResource{Name: m}})
	}
	writeJSON(w, out)
}

func (s *Server) ref(kind string, id int) pokeapi.NamedResource {
	return pokeapi.NamedResource{
		Name: s.names[id-1],
		URL:  fmt.Sprintf("%s/%s/%d/", s.URL, kind, id),
	}
}

func generationSize(g Generation) int {
	if g.Species != nil {
		return len(g.Species)
	}
	return g.Count
}

func serveByID[T any](w http.ResponseWriter, raw string, m map[int]T) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	v, ok := m[id]
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, v)
}

func serveByName[T any](w http.ResponseWriter, name string, m map[string]T) {
	v, ok := m[name]
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, v)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
