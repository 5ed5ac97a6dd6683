package openai

import "fmt"

// scoringPrompt instructs the model to grade a document's relevance to a
// query. The response must be bare JSON so it can be parsed directly.
const scoringPrompt = `You grade how well a passage of text answers a question.

Rate the passage on an integer scale from 0 to 10:
- 0 means the passage is completely unrelated to the question.
- 5 means the passage is on topic but does not answer the question.
- 10 means the passage directly and fully answers the question.

Respond with ONLY a JSON object of the form {"score": <integer>}.
Do not include explanations, markdown, or any other text.`

func scoringInput(query, document string) string {
	return fmt.Sprintf("Question:\n%s\n\nPassage:\n%s", query, document)
}
