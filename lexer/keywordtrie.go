package lexer

import "sort"

// keywordTrie is a case-sensitive multi-literal prefix search structure
// backing a dialect's reserved/unreserved keyword sets, so the lexer can
// test "does the upcoming identifier-shaped run of characters match one
// of N keywords" in a single pass instead of N string compares.
type keywordTrie struct {
	term  bool
	width int
	keys  []string
	subs  []keywordTrie
}

// newKeywordTrie builds a trie over words, which need not be sorted or
// deduplicated.
func newKeywordTrie(words []string) keywordTrie {
	uniq := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		uniq[w] = struct{}{}
	}
	sorted := make([]string, 0, len(uniq))
	for w := range uniq {
		sorted = append(sorted, w)
	}
	sort.Strings(sorted)
	return buildKeywordTrie(sorted)
}

func buildKeywordTrie(sorted []string) keywordTrie {
	tree := keywordTrie{}
	var i int
	for ; i < len(sorted) && sorted[i] == ""; i++ {
		tree.term = true
	}
	sorted = sorted[i:]
	if len(sorted) == 0 {
		return tree
	}

	width := len(sorted[0])
	for _, s := range sorted {
		if len(s) < width {
			width = len(s)
		}
	}
	tree.width = width

	lastPrefix := sorted[0][:width]
	lastTail := sorted[0][width:]
	tails := []string{lastTail}
	for _, s := range sorted[1:] {
		prefix, tail := s[:width], s[width:]
		if prefix == lastPrefix {
			if tail != lastTail {
				tails = append(tails, tail)
				lastTail = tail
			}
			continue
		}
		tree.keys = append(tree.keys, lastPrefix)
		tree.subs = append(tree.subs, buildKeywordTrie(tails))
		lastPrefix = prefix
		lastTail = tail
		tails = []string{lastTail}
	}
	tree.keys = append(tree.keys, lastPrefix)
	tree.subs = append(tree.subs, buildKeywordTrie(tails))
	return tree
}

// matchLongest returns the length of the longest word in the trie that is
// a prefix of s, and whether any word matched at all. Ties among words of
// the same length never arise (the trie stores a set, not a priority
// list); same-length keyword priority is handled by the matcher that owns
// this trie.
func (tree keywordTrie) matchLongest(s string) (int, bool) {
	return matchLongestFrom(tree, s, 0)
}

func matchLongestFrom(node keywordTrie, s string, consumed int) (int, bool) {
	best, ok := 0, false
	if node.term {
		best, ok = consumed, true
	}
	if node.width == 0 || consumed+node.width > len(s) {
		return best, ok
	}
	probe := s[consumed : consumed+node.width]
	i, found := node.search(probe)
	if !found {
		return best, ok
	}
	if childBest, childOk := matchLongestFrom(node.subs[i], s, consumed+node.width); childOk {
		return childBest, true
	}
	return best, ok
}

func (tree keywordTrie) search(s string) (int, bool) {
	i, j := 0, len(tree.keys)
	for i < j {
		m := i + (j-i)/2
		if s == tree.keys[m] {
			return m, true
		} else if s > tree.keys[m] {
			i = m + 1
		} else {
			j = m
		}
	}
	return 0, false
}
