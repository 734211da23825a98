// Package command defines the messages producers send to the stage dispatch loop
// and the unbounded queue that carries them.
package command

import (
	"github.com/google/uuid"
)

// Kind names a command variant, used for logging and routing
type Kind int

const (
	KindAppear Kind = iota
	KindDisappear
	KindCaption
	KindSubCaption
	KindTitle
	KindSpeech
	KindCharacter
)

var kindNames = [...]string{
	KindAppear:     "appear",
	KindDisappear:  "disappear",
	KindCaption:    "caption",
	KindSubCaption: "subcaption",
	KindTitle:      "title",
	KindSpeech:     "speech",
	KindCharacter:  "character",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Command is implemented only by the variants in this package
type Command interface {
	ID() uuid.UUID
	Kind() Kind
	command()
}

// Header carries the fields common to every command
type Header struct {
	id uuid.UUID
}

func newHeader() Header {
	return Header{id: uuid.New()}
}

// ID uniquely identifies a command instance in logs
func (h Header) ID() uuid.UUID { return h.id }

func (Header) command() {}

// Appear shows the image at Filename as a new sprite and optionally announces Name
type Appear struct {
	Header
	Filename string
	Name     string
}

// Disappear hides the active sprite; Name is announced when set
type Disappear struct {
	Header
	Name string
}

// Caption replaces the primary caption; Pos runes are marked as typed
type Caption struct {
	Header
	Text string
	Pos  int
}

// SubCaption replaces the secondary caption
type SubCaption struct {
	Header
	Text string
	Pos  int
}

// Title shows static title art
type Title struct {
	Header
	Filename string
}

// Speech reads Text aloud in Lang
type Speech struct {
	Header
	Text string
	Lang string
}

// Character flashes a typed character over the picture
type Character struct {
	Header
	Char rune
}

func (Appear) Kind() Kind     { return KindAppear }
func (Disappear) Kind() Kind  { return KindDisappear }
func (Caption) Kind() Kind    { return KindCaption }
func (SubCaption) Kind() Kind { return KindSubCaption }
func (Title) Kind() Kind      { return KindTitle }
func (Speech) Kind() Kind     { return KindSpeech }
func (Character) Kind() Kind  { return KindCharacter }
