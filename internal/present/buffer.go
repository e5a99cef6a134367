package present

// Role says which rendition of a file a display item shows.
type Role string

const (
	RoleOriginal Role = "original"
	RoleInverted Role = "inverted"
)

// Item is one inline image.
type Item struct {
	RequestID uint64 `json:"request_id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	URI       string `json:"uri"`
}

// Text is one preformatted ASCII block.
type Text struct {
	RequestID uint64 `json:"request_id"`
	Name      string `json:"name"`
	Body      string `json:"body"`
}

// DisplayBuffer is an append-only list of display items and ASCII blocks.
// Insertion order is display order. It is not safe for concurrent use;
// the owning session serializes access.
type DisplayBuffer struct {
	items []Item
	texts []Text
}

// Append adds items to the end of the image list.
func (b *DisplayBuffer) Append(items ...Item) {
	b.items = append(b.items, items...)
}

// AppendText adds ASCII blocks to the end of the text list.
func (b *DisplayBuffer) AppendText(texts ...Text) {
	b.texts = append(b.texts, texts...)
}

// Items returns a copy of the image list.
func (b *DisplayBuffer) Items() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

// Texts returns a copy of the ASCII list.
func (b *DisplayBuffer) Texts() []Text {
	out := make([]Text, len(b.texts))
	copy(out, b.texts)
	return out
}

// Len returns the number of images.
func (b *DisplayBuffer) Len() int { return len(b.items) }
