// Package prompt turns a medical note into the system and user messages for
// one of the four prompting strategies.  Building a prompt never fails and
// never performs I/O.
package prompt

import (
	"fmt"

	"medsimplify/pkg"
)

// Output budgets per strategy.  Reasoning strategies echo their working and
// need more room.
const (
	ShortOutputTokens = 1000
	LongOutputTokens  = 1500
)

// Prompt is the pair of messages sent to the generation service.
type Prompt struct {
	System string
	User   string
}

// Build constructs the prompt for note, written for audience, in the shape of
// strategy.  The note is inserted verbatim.  Identical inputs always produce
// identical output.
func Build(note string, audience pkg.Audience, strategy pkg.Strategy) Prompt {
	profile := ProfileFor(audience)
	var user string
	switch strategy {
	case pkg.StrategyFewShot:
		user = fmt.Sprintf(fewShotTemplate, profile.Description, ExampleBank(audience), note)
	case pkg.StrategyChainOfThought:
		user = fmt.Sprintf(chainOfThoughtTemplate, profile.Description, profile.StyleClause, note)
	case pkg.StrategyTreeOfThoughts:
		user = fmt.Sprintf(treeOfThoughtsTemplate, profile.Description, note,
			profile.StylePhrase, profile.StylePhrase, profile.StylePhrase)
	default:
		user = fmt.Sprintf(zeroShotTemplate, profile.Description, note, profile.StyleClause)
	}
	return Prompt{System: SystemInstruction, User: user}
}

// MaxTokens returns the output-length budget for strategy.
func MaxTokens(strategy pkg.Strategy) int {
	switch strategy {
	case pkg.StrategyChainOfThought, pkg.StrategyTreeOfThoughts:
		return LongOutputTokens
	default:
		return ShortOutputTokens
	}
}
