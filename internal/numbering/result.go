// internal/numbering/result.go
package numbering

// Assignment is the numbering tool's call for one chain.
type Assignment struct {
	ChainType string // H, K, L, ...
	VGene     string
	JGene     string
}

// Result is the outcome of one batch: either Success or Failure.
type Result interface {
	BatchIndex() int
	isResult()
}

// Success holds the assignments of a batch keyed by sequence identifier.
// Sequences the tool could not number are simply absent.
type Success struct {
	Batch       int
	Assignments map[string]Assignment
}

// Failure records a batch the tool could not process.
type Failure struct {
	Batch   int
	Size    int
	Message string
}

func (s Success) BatchIndex() int { return s.Batch }
func (f Failure) BatchIndex() int { return f.Batch }
func (Success) isResult()         {}
func (Failure) isResult()         {}
