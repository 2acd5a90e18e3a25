// Package gazetteer holds the place-name lookup data the field extractors
// depend on: known localities and their provinces, the per-publisher
// province lists, and the area-code table. The data ships as embedded JSON
// and can be overridden with an external file, so new regions are a config
// change rather than a code change.
package gazetteer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/gasdir-ar/gasdir/constants"
)

//go:embed data/gazetteer.json
var defaultData []byte

//go:embed data/schema.json
var schemaData []byte

type fileFormat struct {
	Localities map[string]string              `json:"localities"`
	Provinces  map[constants.Publisher][]string `json:"provinces"`
	AreaCodes  map[string]string              `json:"area_codes"`
}

// Gazetteer answers place-name questions over folded (accent-stripped,
// uppercased) token sequences.
type Gazetteer struct {
	localities map[string]string // folded locality -> province display name
	provinces  map[constants.Publisher][]string
	areaCodes  map[string]string

	// locality keys as token sequences, longest first, for greedy matching
	localityKeys [][]string
	// folded province -> display, per publisher, longest first
	provinceKeys map[constants.Publisher][][]string
	provinceName map[string]string
}

// Load builds a Gazetteer from the file at path, or from the embedded
// defaults when path is empty. The file is validated against the bundled
// schema before use.
func Load(path string) (*Gazetteer, error) {
	data := defaultData
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read gazetteer: %w", err)
		}
		data = b
	}
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("gazetteer does not match schema: %w", err)
	}

	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("unmarshal gazetteer: %w", err)
	}

	g := &Gazetteer{
		localities:   make(map[string]string, len(ff.Localities)),
		provinces:    ff.Provinces,
		areaCodes:    ff.AreaCodes,
		provinceKeys: make(map[constants.Publisher][][]string),
		provinceName: make(map[string]string),
	}
	for loc, prov := range ff.Localities {
		key := Fold(loc)
		g.localities[key] = prov
		g.localityKeys = append(g.localityKeys, strings.Fields(key))
	}
	sort.Slice(g.localityKeys, func(i, j int) bool {
		return len(g.localityKeys[i]) > len(g.localityKeys[j])
	})
	for pub, provs := range ff.Provinces {
		for _, p := range provs {
			key := Fold(p)
			g.provinceName[key] = p
			g.provinceKeys[pub] = append(g.provinceKeys[pub], strings.Fields(key))
		}
		sort.Slice(g.provinceKeys[pub], func(i, j int) bool {
			return len(g.provinceKeys[pub][i]) > len(g.provinceKeys[pub][j])
		})
	}
	return g, nil
}

func validate(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("gazetteer.schema.json", bytes.NewReader(schemaData)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("gazetteer.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	return schema.Validate(v)
}

// Fold strips accents, uppercases and collapses whitespace so that
// "Curuzú Cuatiá" and "CURUZU CUATIA" compare equal.
func Fold(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(unidecode.Unidecode(s))), " ")
}

// ProvinceForLocality resolves a locality (as written in a listing) to its
// province display name.
func (g *Gazetteer) ProvinceForLocality(locality string) (string, bool) {
	prov, ok := g.localities[Fold(locality)]
	return prov, ok
}

// ProvinceForAreaCode resolves a phone area code to a province.
func (g *Gazetteer) ProvinceForAreaCode(code string) (string, bool) {
	prov, ok := g.areaCodes[code]
	return prov, ok
}

// MatchLocalityPrefix greedily matches a known locality at the start of a
// token sequence. Returns the tokens consumed (0 when nothing matches) and
// the locality as it appears in the input.
func (g *Gazetteer) MatchLocalityPrefix(tokens []string) (locality string, consumed int) {
	folded := foldTokens(tokens)
	for _, key := range g.localityKeys {
		if len(key) > len(folded) {
			continue
		}
		if tokensEqual(folded[:len(key)], key) {
			return strings.Join(tokens[:len(key)], " "), len(key)
		}
	}
	return "", 0
}

// FindLocality scans a token sequence for any known locality, longest
// match first. Returns the matched span as [start, end).
func (g *Gazetteer) FindLocality(tokens []string) (locality string, start, end int, ok bool) {
	folded := foldTokens(tokens)
	for _, key := range g.localityKeys {
		for i := 0; i+len(key) <= len(folded); i++ {
			if tokensEqual(folded[i:i+len(key)], key) {
				return strings.Join(tokens[i:i+len(key)], " "), i, i + len(key), true
			}
		}
	}
	return "", 0, 0, false
}

// FindProvince looks for a standalone province name of the given publisher
// in a token sequence. Tokens inside known multi-word locality names are
// skipped first, so "JUJUY" inside "SAN SALVADOR DE JUJUY" never matches
// on its own. Returns the display name and the match start index.
func (g *Gazetteer) FindProvince(tokens []string, pub constants.Publisher) (string, int, bool) {
	folded := foldTokens(tokens)

	masked := make([]bool, len(folded))
	for _, key := range g.localityKeys {
		if len(key) < 2 {
			continue
		}
		for i := 0; i+len(key) <= len(folded); i++ {
			if tokensEqual(folded[i:i+len(key)], key) {
				for j := i; j < i+len(key); j++ {
					masked[j] = true
				}
			}
		}
	}

	for _, key := range g.provinceKeys[pub] {
		for i := 0; i+len(key) <= len(folded); i++ {
			if masked[i] {
				continue
			}
			if tokensEqual(folded[i:i+len(key)], key) {
				return g.provinceName[strings.Join(key, " ")], i, true
			}
		}
	}
	return "", 0, false
}

// StartsProvince reports whether token could begin a province name of the
// publisher. Used as a stop condition in name scanning.
func (g *Gazetteer) StartsProvince(token string, pub constants.Publisher) bool {
	folded := Fold(token)
	for _, key := range g.provinceKeys[pub] {
		if key[0] == folded {
			return true
		}
	}
	return false
}

func foldTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Fold(t)
	}
	return out
}

func tokensEqual(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
