package domain

import "encoding/json"

// DefaultWatchlistName is used when no list name is given.
const DefaultWatchlistName = "Watchlist"

// Favourite is one favourites-membership record. The backend serializes the
// film either as a bare id or as an embedded film object; FilmID carries the
// id either way.
type Favourite struct {
	ID     int
	FilmID int
}

func (f *Favourite) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   int             `json:"id"`
		Film json.RawMessage `json:"film"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		// Bare film id form: [1, 2, 3]
		var id int
		if err2 := json.Unmarshal(data, &id); err2 == nil {
			f.FilmID = id
			return nil
		}
		return err
	}
	f.ID = raw.ID
	f.FilmID = filmRef(raw.Film)
	return nil
}

// MarshalJSON writes the backend's field names so cached records decode
// back through UnmarshalJSON.
func (f Favourite) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int `json:"id"`
		Film int `json:"film"`
	}{f.ID, f.FilmID})
}

// WatchlistEntry is one watchlist-membership record. Lists are identified by
// their name string; entries sharing a name form one logical list.
type WatchlistEntry struct {
	ID     int
	FilmID int
	Name   string
}

func (w *WatchlistEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     int             `json:"id"`
		FilmID int             `json:"film_id"`
		Film   json.RawMessage `json:"film"`
		Name   string          `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	w.ID = raw.ID
	w.FilmID = raw.FilmID
	if w.FilmID == 0 {
		w.FilmID = filmRef(raw.Film)
	}
	w.Name = raw.Name
	if w.Name == "" {
		w.Name = DefaultWatchlistName
	}
	return nil
}

func (w WatchlistEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     int    `json:"id"`
		FilmID int    `json:"film_id"`
		Name   string `json:"name"`
	}{w.ID, w.FilmID, w.Name})
}

// filmRef extracts a film id from either a bare id or an embedded object.
func filmRef(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var id int
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	var obj struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.ID
	}
	return 0
}
