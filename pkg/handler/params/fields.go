package params

// Closed field enumerations for the sortable tables. Parsing an unknown
// value yields the *Unknown member; the predicate builder turns that into
// a bad-sort error so the string never reaches the SQL layer.

type InteractionField int

const (
	InteractionFieldPValue InteractionField = iota
	InteractionFieldMscor
	InteractionFieldCorrelation
	InteractionFieldUnknown
)

func (f InteractionField) String() string {
	switch f {
	case InteractionFieldPValue:
		return "pValue"
	case InteractionFieldMscor:
		return "mscor"
	case InteractionFieldCorrelation:
		return "correlation"
	default:
		return "unknown"
	}
}

func ParseInteractionField(field string) InteractionField {
	switch field {
	case "pValue", "p_value":
		return InteractionFieldPValue
	case "mscor":
		return InteractionFieldMscor
	case "correlation":
		return InteractionFieldCorrelation
	default:
		return InteractionFieldUnknown
	}
}

type CentralityField int

const (
	CentralityFieldBetweenness CentralityField = iota
	CentralityFieldDegree
	CentralityFieldEigenvector
	CentralityFieldUnknown
)

func (f CentralityField) String() string {
	switch f {
	case CentralityFieldBetweenness:
		return "betweenness"
	case CentralityFieldDegree:
		return "degree"
	case CentralityFieldEigenvector:
		return "eigenvector"
	default:
		return "unknown"
	}
}

func ParseCentralityField(field string) CentralityField {
	switch field {
	case "betweenness":
		return CentralityFieldBetweenness
	case "degree", "node_degree":
		return CentralityFieldDegree
	case "eigenvector":
		return CentralityFieldEigenvector
	default:
		return CentralityFieldUnknown
	}
}

type OccurrenceField int

const (
	OccurrenceFieldOccurrences OccurrenceField = iota
	OccurrenceFieldUnknown
)

func (f OccurrenceField) String() string {
	switch f {
	case OccurrenceFieldOccurrences:
		return "occurences"
	default:
		return "unknown"
	}
}

func ParseOccurrenceField(field string) OccurrenceField {
	switch field {
	case "occurences", "occurrences":
		return OccurrenceFieldOccurrences
	default:
		return OccurrenceFieldUnknown
	}
}

// SortDirection defaults to descending everywhere; only "asc" flips it.
type SortDirection int

const (
	SortDesc SortDirection = iota
	SortAsc
	SortDirectionUnknown
)

func (d SortDirection) String() string {
	switch d {
	case SortDesc:
		return "desc"
	case SortAsc:
		return "asc"
	default:
		return "unknown"
	}
}

func ParseSortDirection(dir string) SortDirection {
	switch dir {
	case "", "desc":
		return SortDesc
	case "asc":
		return SortAsc
	default:
		return SortDirectionUnknown
	}
}

// CutoffDirection is the comparison side of a statistical threshold.
type CutoffDirection int

const (
	CutoffLess CutoffDirection = iota
	CutoffGreater
	CutoffDirectionUnknown
)

func (d CutoffDirection) String() string {
	switch d {
	case CutoffLess:
		return "<"
	case CutoffGreater:
		return ">"
	default:
		return "unknown"
	}
}

func ParseCutoffDirection(dir string) CutoffDirection {
	switch dir {
	case "", "<":
		return CutoffLess
	case ">":
		return CutoffGreater
	default:
		return CutoffDirectionUnknown
	}
}
