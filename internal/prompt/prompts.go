package prompt

// prompts.go holds the fixed text of every prompt shape.  Keeping the wording
// here makes it easy to tweak without touching the builder logic.

const (
	// SystemInstruction is sent as the system message for every strategy.
	SystemInstruction = "You are a helpful assistant that specializes in making medical information accessible to patients."

	// zeroShotTemplate takes the audience description, the note and the
	// audience style clause.
	zeroShotTemplate = `Please simplify the following medical note to make it more understandable for %s:

%s

The simplified note should:
- Use plain language instead of medical jargon
- Maintain all important medical information
- Be organized in a clear structure
- Explain medical terms when necessary
- %s
`

	// fewShotTemplate takes the audience description, the example bank and
	// the note.
	fewShotTemplate = `I'll show you how to simplify medical notes for %s. Here are some examples:

%s

Now, please simplify the following medical note in a similar way:

%s
`

	// chainOfThoughtTemplate takes the audience description, the style clause
	// and the note.
	chainOfThoughtTemplate = `Please simplify the following medical note for %s. Think step by step:

1. First, identify all medical terms and jargon that need simplification
2. Determine the core medical information that must be preserved
3. Reorganize the information in a more logical flow for the patient
4. Rewrite each section using plain language appropriate for the patient
5. Add brief explanations for medical terms and values when needed
6. Ensure all important information is included and accurate
7. Format the information in a patient-friendly way with clear headings
8. Check that the simplification addresses these specific needs: %s

Medical Note:
%s

Now, first identify the medical terms that need simplification:
`

	// treeOfThoughtsTemplate takes the audience description, the note and the
	// style phrase three times, once per approach.
	treeOfThoughtsTemplate = `I will simplify this medical note for %s by exploring different approaches and selecting the best one.

Medical Note:
%s

Approach 1: Focus on simplifying vocabulary while maintaining the structure
- Identify all medical terms
- Replace with simpler alternatives or brief explanations
- Keep the original structure of the note
- Use %s

Approach 2: Restructure the note to be more narrative and conversational
- Convert the note into a summary of what happened and what it means
- Use second-person perspective ("you have..." instead of "patient has...")
- Group related information together regardless of original structure
- Use %s

Approach 3: Create a hybrid approach with simplified sections and explanations
- Keep key sections (history, medications, etc.) but rename them to be more patient-friendly
- Simplify the language within each section
- Add brief explanations of what each section means for the patient's health
- Use %s

Evaluate each approach for this specific note and decide which one is the most effective.
Then write the simplified note using only that approach.

Output only the final simplified note. Do not include your evaluations or which approach you chose.
`
)
