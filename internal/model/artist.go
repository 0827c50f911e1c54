package model

// Artist is one row of the tracker's /artists endpoint.
type Artist struct {
	ID           int      `json:"id"`
	Image        string   `json:"image"`
	Name         string   `json:"name"`
	Members      []string `json:"members"`
	CreationDate int      `json:"creationDate"`
	FirstAlbum   string   `json:"firstAlbum"`
}

// LocationIndex holds the concert locations of one artist.
type LocationIndex struct {
	ID        int      `json:"id"`
	Locations []string `json:"locations"`
}

// DatesIndex holds the concert dates of one artist.
type DatesIndex struct {
	ID    int      `json:"id"`
	Dates []string `json:"dates"`
}

// RelationIndex maps each location of one artist to its concert dates.
type RelationIndex struct {
	ID             int                 `json:"id"`
	DatesLocations map[string][]string `json:"datesLocations"`
}

// Detail is everything known about one artist, joined across endpoints.
// It is what a card carries and what the modal displays.
type Detail struct {
	Name         string              `json:"name"`
	Image        string              `json:"image"`
	Members      []string            `json:"members"`
	FirstAlbum   string              `json:"firstAlbum"`
	CreationDate int                 `json:"creationDate"`
	Dates        []string            `json:"dates"`
	Relations    map[string][]string `json:"relations"`
	Locations    []string            `json:"locations"`
}
