package domain

// Snapshot is the full in-memory state of all collections at a point in time,
// as published to observers after every mutation. All slices are copies; a
// subscriber can hold a snapshot indefinitely without aliasing live state.
type Snapshot struct {
	Books        []Book        `json:"books"`
	Goals        []Goal        `json:"goals"`
	Achievements []Achievement `json:"achievements"`
	Settings     UserSettings  `json:"settings"`
}

// GenreCount is one bucket of the genre breakdown projection.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}
