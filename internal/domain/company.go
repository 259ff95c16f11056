package domain

// Company is one roster entry for an ATS board.
type Company struct {
	Slug string // board identifier on the ATS (e.g. boards-api.greenhouse.io/v1/boards/<slug>)
	Name string // canonical display name
}
