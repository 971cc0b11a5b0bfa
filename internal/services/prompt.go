package services

import (
	"strings"
)

const answerInstructions = `You are a legal-aware AI assistant specializing in insurance document analysis. Carefully analyze the provided document and answer each question as accurately and precisely as you can.

CRITICAL GUIDELINES:
1.  **Information Source**: Use ONLY information explicitly stated in the provided document. Do not rely on outside knowledge or assumptions.
2.  **Answer Quality**:
    * Give exact details and keep each answer under 100 words without losing completeness.
    * For a Yes or No question, begin the answer with "Yes" or "No", then explain why.
3.  **Handling Missing Information**:
    * If there is no direct answer, interpret the intent of the question and give the closest answer the document supports, and say that the exact information is absent.
    * If the answer is NOT in the document, state clearly: "This information is not explicitly stated in the provided document."
    * Suggest which sections or topics would likely contain the missing information.
4.  **Citation Requirements**:
    * ALWAYS cite the section, article number, clause number, or page reference for every piece of information you give.
`

const answerFormat = `
7.  **Output Format**: Return ONLY a JSON object in exactly this shape, with no extra commentary or formatting. Give exactly one answer per question, in the same order as the questions above:
{
  "answers": [
    "Answer to question 1",
    "Answer to question 2"
  ]
}
`

// BuildPrompt renders the answering prompt: the fixed instructions, the
// document text verbatim, and the questions as an ordered bullet list.
func BuildPrompt(documentText string, questions []string) string {
	var b strings.Builder
	b.WriteString(answerInstructions)

	b.WriteString("\n5.  **Document Content**:\n---\n")
	b.WriteString(documentText)
	b.WriteString("\n---\n")

	b.WriteString("\n6.  **Questions to Answer**:\n")
	b.WriteString(questionList(questions))
	b.WriteString("\n")

	b.WriteString(answerFormat)
	return b.String()
}

func questionList(questions []string) string {
	lines := make([]string, len(questions))
	for i, q := range questions {
		lines[i] = "- " + q
	}
	return strings.Join(lines, "\n")
}
