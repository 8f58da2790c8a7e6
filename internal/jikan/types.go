package jikan

import "github.com/23himanshusingh/AnimeGpt/internal/models"

// Wire types of the Jikan v4 API. Only the fields the backend reads are
// declared.

type listResponse struct {
	Data       []animeData `json:"data"`
	Pagination pagination  `json:"pagination"`
}

type singleResponse struct {
	Data animeData `json:"data"`
}

type recommendationsResponse struct {
	Data []struct {
		Entry animeData `json:"entry"`
		Votes int       `json:"votes"`
	} `json:"data"`
}

type pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
}

type animeData struct {
	MalID    int      `json:"mal_id"`
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Score    *float64 `json:"score"`
	Year     *int     `json:"year"`
	Episodes *int     `json:"episodes"`
	Status   string   `json:"status"`
	Synopsis string   `json:"synopsis"`
	Images   struct {
		JPG struct {
			ImageURL      string `json:"image_url"`
			LargeImageURL string `json:"large_image_url"`
		} `json:"jpg"`
	} `json:"images"`
	Trailer struct {
		YoutubeID string `json:"youtube_id"`
	} `json:"trailer"`
	Aired struct {
		Prop struct {
			From struct {
				Year *int `json:"year"`
			} `json:"from"`
		} `json:"prop"`
	} `json:"aired"`
	Genres  []named `json:"genres"`
	Themes  []named `json:"themes"`
	Studios []named `json:"studios"`
}

type named struct {
	Name string `json:"name"`
}

func names(in []named) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, n := range in {
		if n.Name != "" {
			out = append(out, n.Name)
		}
	}
	return out
}

// toModel flattens a Jikan record. The poster prefers the large jpg and the
// year falls back to the airing start when Jikan leaves `year` empty.
func (d animeData) toModel() models.Anime {
	a := models.Anime{
		ID:       d.MalID,
		Title:    d.Title,
		Genres:   names(d.Genres),
		Type:     d.Type,
		Studios:  names(d.Studios),
		URL:      d.URL,
		Synopsis: d.Synopsis,
		Airing:   d.Status,
		Trailer:  d.Trailer.YoutubeID,
		Image:    d.Images.JPG.LargeImageURL,
	}
	if a.Image == "" {
		a.Image = d.Images.JPG.ImageURL
	}
	if d.Score != nil {
		a.Score = *d.Score
	}
	if d.Episodes != nil {
		a.Episodes = *d.Episodes
	}
	switch {
	case d.Year != nil:
		a.Year = *d.Year
	case d.Aired.Prop.From.Year != nil:
		a.Year = *d.Aired.Prop.From.Year
	}
	return a
}

func toModels(in []animeData) []models.Anime {
	out := make([]models.Anime, 0, len(in))
	for _, d := range in {
		if d.MalID == 0 {
			continue
		}
		out = append(out, d.toModel())
	}
	return out
}
