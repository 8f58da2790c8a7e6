package recommend

import "fmt"

type Algorithm string

const (
	AlgorithmContent       Algorithm = "content"
	AlgorithmCollaborative Algorithm = "collaborative"
	AlgorithmHybrid        Algorithm = "hybrid"
)

// ParseAlgorithm maps a query value to an Algorithm. Empty means hybrid.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "":
		return AlgorithmHybrid, nil
	case AlgorithmContent, AlgorithmCollaborative, AlgorithmHybrid:
		return Algorithm(s), nil
	}
	return "", fmt.Errorf("unknown recommendation type %q (content|collaborative|hybrid)", s)
}

func (a Algorithm) String() string { return string(a) }
