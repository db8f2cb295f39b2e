package record

import "github.com/tenuki/goban/board"

// PositionValuation judges the board position a node leads to.
type PositionValuation int

const (
	PositionUnvalued PositionValuation = iota
	GoodForBlack
	GoodForWhite
	EvenPosition
	UnclearPosition
)

// MoveValuation judges the move a node carries.
type MoveValuation int

const (
	MoveUnvalued MoveValuation = iota
	GoodMove
	BadMove
	InterestingMove
	DoubtfulMove
)

// Annotation is free-text commentary plus valuations attached to a node.
// Presentation-only: it never affects board state or hashing.
type Annotation struct {
	ShortText string
	LongText  string

	PositionVal PositionValuation
	MoveVal     MoveValuation

	// EstimatedScore is positive when black is ahead, negative when white
	// is. Meaningful only when HasEstimatedScore is set.
	EstimatedScore    float32
	HasEstimatedScore bool

	Hotspot bool
}

// SymbolKind is a board markup symbol.
type SymbolKind int

const (
	CircleSymbol SymbolKind = iota
	SquareSymbol
	TriangleSymbol
	CrossSymbol
	SelectedSymbol
)

// ConnectionKind distinguishes markup connections between two points.
type ConnectionKind int

const (
	ArrowConnection ConnectionKind = iota
	LineConnection
)

// Connection is a markup line or arrow between two points.
type Connection struct {
	From, To *board.Point
	Kind     ConnectionKind
}

// Markup is presentation-only decoration of board points: symbols, text
// labels and point-to-point connections. Like Annotation it never affects
// board state or hashing.
type Markup struct {
	Symbols     map[*board.Point]SymbolKind
	Labels      map[*board.Point]string
	Connections []Connection
	DimmedAll   bool
	Dimmings    []*board.Point
}

// NewMarkup returns an empty markup set.
func NewMarkup() *Markup {
	return &Markup{
		Symbols: make(map[*board.Point]SymbolKind),
		Labels:  make(map[*board.Point]string),
	}
}

// IsEmpty reports whether the markup decorates nothing.
func (m *Markup) IsEmpty() bool {
	return len(m.Symbols) == 0 && len(m.Labels) == 0 && len(m.Connections) == 0 &&
		!m.DimmedAll && len(m.Dimmings) == 0
}
