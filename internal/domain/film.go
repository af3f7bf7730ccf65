package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Film represents one catalog entry as returned by the backend.
// Optional fields are pointers; absence is nil, never a sentinel value.
type Film struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Year        *int     `json:"year"`
	Overview    string   `json:"overview"`
	PosterPath  *string  `json:"poster_path"`
	CriticScore *float64 `json:"critic_score"`
	Popularity  *float64 `json:"popularity"`
	Genres      []Tag    `json:"genres"`
	Keywords    []Tag    `json:"keywords"`
	Cast        []Credit `json:"cast"`
}

// Tag is a category or keyword label. The backend serializes tags either
// as bare strings or as {"name": ...} objects; both decode to Name.
type Tag struct {
	Name string
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("tag: unsupported shape: %w", err)
	}
	t.Name = obj.Name
	return nil
}

func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
	}{t.Name})
}

// Credit is one contributor entry (actor, director, writer...).
type Credit struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func (c *Credit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Name = s
		return nil
	}
	var obj struct {
		Name       string `json:"name"`
		PersonName string `json:"person_name"`
		Role       string `json:"role"`
		Job        string `json:"job"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("credit: unsupported shape: %w", err)
	}
	c.Name = obj.Name
	if c.Name == "" {
		c.Name = obj.PersonName
	}
	c.Role = obj.Role
	if c.Role == "" {
		c.Role = obj.Job
	}
	return nil
}

// DisplayTitle returns "Title (Year)" or just the title when the year is unknown.
func (f Film) DisplayTitle() string {
	if f.Year != nil {
		return fmt.Sprintf("%s (%d)", f.Title, *f.Year)
	}
	return f.Title
}

// GenreNames returns the genre labels in catalog order.
func (f Film) GenreNames() []string {
	names := make([]string, 0, len(f.Genres))
	for _, g := range f.Genres {
		names = append(names, g.Name)
	}
	return names
}

// SearchableText returns the lower-cased space-joined haystack used by the
// free-text filter: title, year, overview, genres, keywords, cast names.
// Missing fields are skipped.
func (f Film) SearchableText() string {
	parts := make([]string, 0, 4+len(f.Genres)+len(f.Keywords)+len(f.Cast))
	if f.Title != "" {
		parts = append(parts, f.Title)
	}
	if f.Year != nil {
		parts = append(parts, fmt.Sprintf("%d", *f.Year))
	}
	if f.Overview != "" {
		parts = append(parts, f.Overview)
	}
	for _, g := range f.Genres {
		if g.Name != "" {
			parts = append(parts, g.Name)
		}
	}
	for _, k := range f.Keywords {
		if k.Name != "" {
			parts = append(parts, k.Name)
		}
	}
	for _, c := range f.Cast {
		if c.Name != "" {
			parts = append(parts, c.Name)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Score returns the critic score, or 0 when absent (sort semantics).
func (f Film) Score() float64 {
	if f.CriticScore == nil {
		return 0
	}
	return *f.CriticScore
}

// Pop returns the popularity metric, or 0 when absent (sort semantics).
func (f Film) Pop() float64 {
	if f.Popularity == nil {
		return 0
	}
	return *f.Popularity
}

// YearOrZero returns the release year, or 0 when absent (sort semantics).
func (f Film) YearOrZero() int {
	if f.Year == nil {
		return 0
	}
	return *f.Year
}
