package extract

import (
	"encoding/json"
	"fmt"

	"github.com/leefowlercu/cinemalens/internal/entities"
)

// stringList accepts a JSON array of strings, a lone string, or null.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*l = nil
		} else {
			*l = stringList{one}
		}
		return nil
	}

	var many []*string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	out := make(stringList, 0, len(many))
	for _, s := range many {
		if s != nil && *s != "" {
			out = append(out, *s)
		}
	}
	*l = out
	return nil
}

// reply mirrors entities.Entities with lenient list fields.
type reply struct {
	Movie         stringList `json:"movie"`
	Actor         stringList `json:"actor"`
	Director      stringList `json:"director"`
	Genre         stringList `json:"genre"`
	YearStart     *int       `json:"year_start"`
	YearEnd       *int       `json:"year_end"`
	ActorsUnion   *bool      `json:"actors_union"`
	GenresUnion   *bool      `json:"genres_union"`
	MoviesPresent *bool      `json:"movies_present"`
	ParsingReview string     `json:"parsing_review"`
}

// Decode extracts the entity record from a model reply. The reply may wrap
// the JSON object in prose or a code fence.
func Decode(content string) (*entities.Entities, error) {
	raw := ExtractJSON(content)
	if raw == "" {
		return nil, fmt.Errorf("%w; no JSON object in reply", ErrMalformedResponse)
	}

	var r reply
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("%w; %v", ErrMalformedResponse, err)
	}

	return &entities.Entities{
		Movie:         nilIfEmpty(r.Movie),
		Actor:         nilIfEmpty(r.Actor),
		Director:      nilIfEmpty(r.Director),
		Genre:         nilIfEmpty(r.Genre),
		YearStart:     r.YearStart,
		YearEnd:       r.YearEnd,
		ActorsUnion:   r.ActorsUnion,
		GenresUnion:   r.GenresUnion,
		MoviesPresent: r.MoviesPresent,
		ParsingReview: r.ParsingReview,
	}, nil
}

func nilIfEmpty(l stringList) []string {
	if len(l) == 0 {
		return nil
	}
	return []string(l)
}
