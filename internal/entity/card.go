package entity

// Card is a single cell of the 4x4 grid. ID is assigned in creation order and
// stays unique within a deck; exactly two cards in a deck share a Content.
type Card struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	FaceUp  bool   `json:"face_up"`
	Matched bool   `json:"matched"`
}

// IsRevealed reports whether the card's content is currently visible to the
// player. A matched card counts as revealed even if FaceUp was not kept in sync.
func (that *Card) IsRevealed() bool {
	return that.FaceUp || that.Matched
}
