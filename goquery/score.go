package goquery

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readmode"
	"golang.org/x/net/html"
)

// Scoring factors.
const (
	// TextFactor scales depth * text length into the base priority.
	TextFactor = 100
	// EliminationFactor is the number of candidates kept after round one.
	EliminationFactor = 5
	// TextTagFactor penalizes inline text wrappers in round one.
	TextTagFactor = 0.6
	// ChildrenFactor rewards each direct child in round one.
	ChildrenFactor = 10

	// PriorityCompareFactor is the ratio below the leader at which round
	// two drops a candidate.
	PriorityCompareFactor = 1.66
	NegativeFactor        = 10
	PositiveFactor        = 10
	PBrFactor             = 1
	CommaFactor           = 10

	offsetWeight = 4
)

// fullwidthComma is counted alongside ',' in the final round.
const fullwidthComma = "，"

// textTags are inline wrappers penalized in round one.
var textTags = map[string]bool{"p": true, "b": true, "span": true, "i": true}

// Candidate is the scoring record of one element considered as the
// article root.
type Candidate struct {
	// Node is the scored element. It belongs to the session's tree.
	Node *html.Node

	Depth      int
	ChildCount int
	TextLength int

	Priority         float64
	PreviousPriority float64

	// Populated by the final round only.
	NegativeScore int
	PositiveScore int
	PBrCount      int
	CommaCount    int

	sel   *goquery.Selection
	order int
}

// Selection returns the candidate node as a goquery selection.
func (c *Candidate) Selection() *goquery.Selection {
	return c.sel
}

func newCandidate(order int, sel *goquery.Selection) *Candidate {
	c := &Candidate{
		Node:       sel.Get(0),
		Depth:      sel.Parents().Length(),
		ChildCount: sel.Contents().Length(),
		TextLength: textLength(sel.Text()),
		sel:        sel,
		order:      order,
	}
	c.Priority = float64(c.Depth) * float64(c.TextLength) / TextFactor
	return c
}

// textLength counts the characters of text once surrounding whitespace,
// newlines and spaces are removed.
func textLength(text string) int {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n", "")
	text = strings.ReplaceAll(text, " ", "")
	return utf8.RuneCountInString(text)
}

// Scorer ranks the elements of a pruned tree by how likely each one is
// to be the article body.
type Scorer struct {
	// Extended enables the elimination rounds that follow round one:
	// priority ratio pruning, ancestor rejection and the keyword and
	// punctuation density final round.
	Extended bool

	Logger *slog.Logger
}

// Score initializes one candidate per element below body and runs the
// configured rounds. It returns every candidate in document order and the
// surviving candidates ranked by priority; the first ranked candidate is
// the winner. Returns EEMPTY when body holds no element.
func (s *Scorer) Score(body *goquery.Selection) (candidates, ranked []*Candidate, err error) {
	// Initialization needs the final tree shape, so it runs as its own
	// pass after pruning.
	body.Find("*").Each(func(i int, sel *goquery.Selection) {
		candidates = append(candidates, newCandidate(i, sel))
	})

	switch len(candidates) {
	case 0:
		return nil, nil, readmode.Errorf(readmode.EEMPTY, "document body has no elements")
	case 1:
		return candidates, []*Candidate{candidates[0]}, nil
	}

	ranked = s.roundOne(candidates)
	if !s.Extended || len(ranked) == 1 {
		return candidates, ranked, nil
	}

	ranked = s.roundTwo(ranked)
	if len(ranked) == 1 {
		return candidates, ranked, nil
	}

	ranked = s.roundThree(ranked)
	if len(ranked) == 1 {
		return candidates, ranked, nil
	}

	return candidates, s.finalRound(ranked), nil
}

// roundOne keeps the EliminationFactor best candidates, penalizes inline
// text wrappers and rewards structural children.
func (s *Scorer) roundOne(candidates []*Candidate) []*Candidate {
	front := rank(candidates)
	if len(front) > EliminationFactor {
		front = front[:EliminationFactor]
	}
	s.logRound("one (basic)", front)

	for _, c := range front {
		if textTags[c.Node.Data] {
			c.Priority *= TextTagFactor
		}
		c.Priority += float64(c.ChildCount * ChildrenFactor)
	}

	front = rank(front)
	s.logRound("one", front)
	return front
}

// roundTwo drops candidates that trail the leader by more than
// PriorityCompareFactor.
func (s *Scorer) roundTwo(ranked []*Candidate) []*Candidate {
	leader := ranked[0]
	next := []*Candidate{leader}
	for _, c := range ranked[1:] {
		if c.Priority*PriorityCompareFactor < leader.Priority {
			continue
		}
		next = append(next, c)
	}
	s.logRound("two", next)
	return next
}

// roundThree drops candidates that contain another surviving candidate.
func (s *Scorer) roundThree(ranked []*Candidate) []*Candidate {
	var next []*Candidate
	for i, c := range ranked {
		contains := false
		for j, other := range ranked {
			if i != j && isAncestor(c.Node, other.Node) {
				contains = true
				break
			}
		}
		if !contains {
			next = append(next, c)
		}
	}
	s.logRound("three", next)
	return next
}

// finalRound adjusts priorities by id/class keywords, paragraph and line
// break counts, and comma density.
func (s *Scorer) finalRound(ranked []*Candidate) []*Candidate {
	for _, c := range ranked {
		c.PreviousPriority = c.Priority

		c.NegativeScore, c.PositiveScore = 0, 0
		for _, token := range idAndClassTokens(c.sel) {
			neg, pos := IsNegative(token), IsPositive(token)
			switch {
			case neg && !pos:
				c.NegativeScore++
			case pos && !neg:
				c.PositiveScore++
			}
		}

		c.PBrCount = c.sel.Find("p, br").Length()

		text := c.sel.Text()
		c.CommaCount = strings.Count(text, ",") + strings.Count(text, fullwidthComma)

		offset := -c.NegativeScore*NegativeFactor +
			c.PositiveScore*PositiveFactor +
			c.PBrCount/PBrFactor +
			c.CommaCount/CommaFactor
		c.Priority += float64(offset * offsetWeight)
	}

	ranked = rank(ranked)
	s.logRound("final", ranked)
	return ranked
}

// idAndClassTokens lists the id and every class token of the selected
// element and its element descendants, in document order.
func idAndClassTokens(sel *goquery.Selection) []string {
	var tokens []string
	collect := func(n *html.Node) {
		if id := attr(n, "id"); id != "" {
			tokens = append(tokens, id)
		}
		tokens = append(tokens, strings.Fields(attr(n, "class"))...)
	}
	for _, n := range sel.Nodes {
		collect(n)
	}
	for _, n := range sel.Find("*").Nodes {
		collect(n)
	}
	return tokens
}

// rank returns a copy of candidates sorted by priority, highest first.
// Equal priorities fall back to document order.
func rank(candidates []*Candidate) []*Candidate {
	ranked := make([]*Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Priority != ranked[j].Priority {
			return ranked[i].Priority > ranked[j].Priority
		}
		return ranked[i].order < ranked[j].order
	})
	return ranked
}

func isAncestor(a, b *html.Node) bool {
	for p := b.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}

func (s *Scorer) logRound(round string, candidates []*Candidate) {
	logger := loggerOrDiscard(s.Logger)
	ctx := context.Background()
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	logger.Debug("scoring round", "round", round, "candidates", len(candidates))
	for _, c := range candidates {
		logger.Debug("candidate",
			"round", round,
			"tag", c.Node.Data,
			"depth", c.Depth,
			"text_len", c.TextLength,
			"priority", c.Priority,
			"previous_priority", c.PreviousPriority,
			"negative_score", c.NegativeScore,
			"positive_score", c.PositiveScore,
			"p_br", c.PBrCount,
			"commas", c.CommaCount,
		)
	}
}
