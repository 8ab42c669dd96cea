package prompt

import "medsimplify/pkg"

// Profile describes how to address one audience.  StyleClause is a full
// instruction sentence; StylePhrase is the same guidance as a noun phrase so
// it reads naturally after "Use ...".
type Profile struct {
	Description string
	StyleClause string
	StylePhrase string
}

var profiles = map[pkg.Audience]Profile{
	pkg.AudienceGeneral: {
		Description: "patients with limited health literacy",
		StyleClause: "Use plain language at approximately an 8th grade reading level.",
		StylePhrase: "plain language at approximately an 8th grade reading level",
	},
	pkg.AudienceElderly: {
		Description: "elderly patients (70+ years) who may have some vision or hearing difficulties",
		StyleClause: "Use larger conceptual chunks, clear organization with headings, and avoid information overload.",
		StylePhrase: "larger conceptual chunks, clear organization with headings, and avoid information overload",
	},
	pkg.AudienceLowLiteracy: {
		Description: "patients with low health literacy (reading at a 4th-5th grade level)",
		StyleClause: "Use very simple words (1-2 syllables when possible), short sentences, and concrete examples.",
		StylePhrase: "very simple words (1-2 syllables when possible), short sentences, and concrete examples",
	},
	pkg.AudienceESL: {
		Description: "patients who speak English as a second language",
		StyleClause: "Use common everyday vocabulary, avoid idioms and cultural references, and use consistent terminology.",
		StylePhrase: "common everyday vocabulary, no idioms or cultural references, and consistent terminology",
	},
}

// ProfileFor returns the profile of audience.  Anything outside the closed
// set gets the general profile.
func ProfileFor(audience pkg.Audience) Profile {
	if p, ok := profiles[audience]; ok {
		return p
	}
	return profiles[pkg.AudienceGeneral]
}
