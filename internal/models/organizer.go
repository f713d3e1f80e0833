package models

type Organizer struct {
	ID        int    `json:"id"`
	PID       int    `json:"pid"`
	Organizer string `json:"organizer"`
	Link      *Link  `json:"link,omitempty"`
}

type Category struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type Link struct {
	Title string `json:"title,omitempty"`
	Link  string `json:"link"`
}
