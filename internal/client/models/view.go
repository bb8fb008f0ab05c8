package models

// View is the screen the navigator currently shows.
type View int

const (
	ViewUnauthenticated View = iota
	ViewLanding
	ViewFavorites
	ViewDetail
	ViewEditor
	ViewLibrary
	ViewSettings
)

var viewNames = map[View]string{
	ViewUnauthenticated: "login",
	ViewLanding:         "dashboard",
	ViewFavorites:       "favorites",
	ViewDetail:          "detail",
	ViewEditor:          "editor",
	ViewLibrary:         "library",
	ViewSettings:        "settings",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "unknown"
}
