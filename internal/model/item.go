package model

// Item is the domain model for a travel destination.
// ID is empty until a backend has stored the record.
type Item struct {
	ID string `json:"id,omitempty"`
	Fields
}

// Fields is everything about an Item except its id.
// Zero values mean "not set"; omitempty keeps them off the wire so a remote
// PATCH only touches what the caller filled in.
type Fields struct {
	Title       string `json:"titulo,omitempty"`
	Description string `json:"descricao,omitempty"`
	Category    string `json:"categoria,omitempty"`
	Image       string `json:"imagem,omitempty"`
	Country     string `json:"pais,omitempty"`
	Year        int    `json:"ano,omitempty"`
}

// Document returns every field keyed by its wire name. Zero values become
// null, which a merge-patch store treats as "delete this field".
func (f Fields) Document() map[string]any {
	orNull := func(s string) any {
		if s == "" {
			return nil
		}
		return s
	}
	var year any
	if f.Year != 0 {
		year = f.Year
	}
	return map[string]any{
		"titulo":    orNull(f.Title),
		"descricao": orNull(f.Description),
		"categoria": orNull(f.Category),
		"imagem":    orNull(f.Image),
		"pais":      orNull(f.Country),
		"ano":       year,
	}
}

// WithID attaches an id to a set of fields.
func (f Fields) WithID(id string) Item {
	return Item{ID: id, Fields: f}
}
