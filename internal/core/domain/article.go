package domain

// Article is a news entry served to authenticated clients.
type Article struct {
	ID      string `json:"id" bson:"id"`
	Title   string `json:"title" bson:"title"`
	Image   string `json:"image" bson:"image"`
	Content string `json:"content" bson:"content"`
}
