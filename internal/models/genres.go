package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Genres is the set of genre tags attached to a venue or an artist.
// It is stored as a JSON array inside the owning entity's row.
type Genres []string

// NewGenres builds a genre set from raw form values, dropping blanks and duplicates while keeping the input order
func NewGenres(values []string) Genres {
	ret := Genres{}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		ret = append(ret, v)
	}
	return ret
}

// Value implements driver.Valuer
func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (g *Genres) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("Scan: cannot read genres from %T", src)
	}
	if len(raw) == 0 {
		*g = Genres{}
		return nil
	}
	var lst []string
	if err := json.Unmarshal(raw, &lst); err != nil {
		return fmt.Errorf("Scan: illegal genre list: %v", err)
	}
	*g = Genres(lst)
	return nil
}
