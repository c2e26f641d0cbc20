package request

import (
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
)

// One discriminated request type per endpoint family. Handlers parse the
// raw query into these; the model layer is a pure function of them.

// Scope is the dataset selection shared by scoped endpoints.
type Scope struct {
	DatasetIDs    []int64
	DiseaseName   string
	Subtype       string
	SubtypeIsNull bool
	DataOrigin    string
	Version       int64
}

// Cutoffs are the directional statistical thresholds on edges.
type Cutoffs struct {
	PValue         *float64
	PValueDir      params.CutoffDirection
	Mscor          *float64
	MscorDir       params.CutoffDirection
	Correlation    *float64
	CorrelationDir params.CutoffDirection
}

// InteractionFindAll asks for edges involving any of the given nodes.
type InteractionFindAll struct {
	Scope         Scope
	ENSGNumbers   []string
	GeneSymbols   []string
	ENSTNumbers   []string
	Cutoffs       Cutoffs
	Sorting       string
	SortDirection params.SortDirection
	Limit         int
	Offset        int
}

// InteractionFindSpecific asks for edges among the given node set.
type InteractionFindSpecific struct {
	Scope         Scope
	ENSGNumbers   []string
	GeneSymbols   []string
	ENSTNumbers   []string
	Cutoffs       Cutoffs
	Sorting       string
	SortDirection params.SortDirection
	Limit         int
	Offset        int
}

// Minima are the node centrality thresholds.
type Minima struct {
	Betweenness *float64
	NodeDegree  *float64
	Eigenvector *float64
}

// CeRNAFind asks for node-level network analysis rows.
type CeRNAFind struct {
	Scope         Scope
	ENSGNumbers   []string
	GeneSymbols   []string
	ENSTNumbers   []string
	Minima        Minima
	Sorting       string
	SortDirection params.SortDirection
	Limit         int
	Offset        int
}

// InteractionCheck asks, per sponge run, whether one node interacts.
type InteractionCheck struct {
	ENSGNumbers []string
	GeneSymbols []string
	ENSTNumbers []string
	Version     int64
}

// Network asks for a coherent graph slice with separate node and edge
// predicates and coupled pagination.
type Network struct {
	Scope         Scope
	Cutoffs       Cutoffs
	Minima        Minima
	EdgeSorting   string
	NodeSortings  []string
	SortDirection params.SortDirection
	MaxNodes      int
	OffsetNodes   int
	MaxEdges      int
	OffsetEdges   int
}

// MirnaFindSpecific asks for sponge edges touching the given node set.
// Between requires each returned miRNA to touch every node of the set
// (distinct-count equality with the set size).
type MirnaFindSpecific struct {
	Scope       Scope
	ENSGNumbers []string
	GeneSymbols []string
	ENSTNumbers []string
	Between     bool
	Limit       int
	Offset      int
}

// MirnaOccurrences asks for miRNA participation counts.
type MirnaOccurrences struct {
	Scope          Scope
	MimatNumbers   []string
	HsNumbers      []string
	MinOccurrences int64
	Sorting        string
	SortDirection  params.SortDirection
	Limit          int
	Offset         int
}

// Expression asks for expression values of one level.
type Expression struct {
	Scope       Scope
	ENSGNumbers []string
	GeneSymbols []string
	ENSTNumbers []string
	Mimats      []string
	HsNumbers   []string
	Cluster     bool
	Limit       int
	Offset      int
}

// Survival asks for clinical rows of a dataset scope.
type Survival struct {
	Scope       Scope
	ENSGNumbers []string
	GeneSymbols []string
	SampleIDs   []string
}

// ComparisonSelect identifies a stored comparison by two dataset scopes
// and two conditions.
type ComparisonSelect struct {
	DatasetID1   []int64
	DatasetID2   []int64
	DiseaseName1 string
	DiseaseName2 string
	Condition1   string
	Condition2   string
	Level        string
	Version      int64
}

// DifferentialExpression asks for DE statistics of a comparison.
type DifferentialExpression struct {
	Comparison  ComparisonSelect
	ENSGNumbers []string
	GeneSymbols []string
	ENSTNumbers []string
}

// Gsea selects enrichment artifacts of a comparison.
type Gsea struct {
	Comparison  ComparisonSelect
	GeneSetName string
	Term        string
}

// SpongEffects selects ML run artifacts under a dataset scope.
type SpongEffects struct {
	Scope       Scope
	Level       string
	ENSGNumbers []string
	GeneSymbols []string
	ENSTNumbers []string
	Limit       int
	Offset      int
}

// Predict is the multipart classification request.
type Predict struct {
	Scope      Scope
	Level      string
	Subtypes   bool
	LogScaling bool
	FileName   string
	FileData   []byte
}

// SplicingEvents selects alternative-splicing artifacts.
type SplicingEvents struct {
	ENSTNumbers []string
	EventIDs    []int64
	EventTypes  []string
	SampleIDs   []string
	StartPos    int64
	EndPos      int64
}

// MirnaCeRNA asks for sponge edges touching the given miRNAs.
type MirnaCeRNA struct {
	Scope        Scope
	MimatNumbers []string
	HsNumbers    []string
	Level        string
	Limit        int
	Offset       int
}

// NetworkResults selects run-similarity rows under a dataset scope.
type NetworkResults struct {
	Scope Scope
	Level string
}

// Counts asks for per-node interaction counts under a dataset scope.
type Counts struct {
	Scope        Scope
	ENSGNumbers  []string
	GeneSymbols  []string
	ENSTNumbers  []string
	MinCountAll  int64
	MinCountSign int64
	Limit        int
	Offset       int
}
