package perturb

import (
	"math"
	"strings"
)

// SplitDocs splits an example into its documents. Each document is trimmed of
// surrounding whitespace and empty documents are dropped.
func SplitDocs(example, docSepToken string) []string {
	parts := strings.Split(example, docSepToken)
	docs := make([]string, 0, len(parts))
	for _, part := range parts {
		if doc := strings.TrimSpace(part); doc != "" {
			docs = append(docs, doc)
		}
	}
	return docs
}

// JoinDocs joins documents with the separator padded by a single space on each side.
func JoinDocs(docs []string, docSepToken string) string {
	return strings.Join(docs, " "+docSepToken+" ")
}

// NumDocs returns the number of documents in an example.
func NumDocs(example, docSepToken string) int {
	return len(SplitDocs(example, docSepToken))
}

// NumToPerturb converts a perturbation fraction into an absolute document count, rounding up.
func NumToPerturb(perturbedFrac float64, numDocs int) int {
	return int(math.Ceil(perturbedFrac * float64(numDocs)))
}

// dedupe removes repeated strings, keeping the first occurrence of each.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// pick returns docs at the given positions, in position order of idx.
func pick(docs []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = docs[j]
	}
	return out
}
