package command

// Client is the producer handle; copies share the same queue and are safe for concurrent use
type Client struct {
	q *Queue
}

// NewClient wraps q
func NewClient(q *Queue) Client {
	return Client{q: q}
}

// Appear requests a new sprite from an image file
func (c Client) Appear(filename, name string) error {
	return c.q.Push(Appear{Header: newHeader(), Filename: filename, Name: name})
}

// Disappear requests the active sprite to leave
func (c Client) Disappear(name string) error {
	return c.q.Push(Disappear{Header: newHeader(), Name: name})
}

// Caption sets the primary caption
func (c Client) Caption(text string, pos int) error {
	return c.q.Push(Caption{Header: newHeader(), Text: text, Pos: pos})
}

// SubCaption sets the secondary caption
func (c Client) SubCaption(text string, pos int) error {
	return c.q.Push(SubCaption{Header: newHeader(), Text: text, Pos: pos})
}

// Title shows static title art
func (c Client) Title(filename string) error {
	return c.q.Push(Title{Header: newHeader(), Filename: filename})
}

// Speech reads text aloud
func (c Client) Speech(text, lang string) error {
	return c.q.Push(Speech{Header: newHeader(), Text: text, Lang: lang})
}

// Character flashes a typed character
func (c Client) Character(ch rune) error {
	return c.q.Push(Character{Header: newHeader(), Char: ch})
}
