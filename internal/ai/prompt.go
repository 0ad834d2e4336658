package ai

import (
	"fmt"
	"strings"
)

const extractPrompt = `You are a data extraction expert specializing in employee information. From the user's input below, extract key-value pairs for the following fields:

- Full Name: The person's complete name
- Employee ID: Any identification number mentioned
- Department: The specific department or team the person works in (e.g., "Machine Learning", "Data Science", "Engineering")
- Company: The organization or company name (e.g., "Radiant Technologies", "Google", "Microsoft")
- Start Date: When the person started working
- Job Title: The person's role or position
- Manager Name: The name of their manager or supervisor
- Annual Salary: The yearly salary amount

IMPORTANT DISTINCTIONS:
- Department refers to the functional area or team (e.g., "Machine Learning", "Marketing")
- Company refers to the organization they work for (e.g., "Radiant Technologies")
- If someone says "I am a [role] at [company]", the [company] is the Company, not the Department
- If someone says "I work in the [department]", the [department] is the Department

Return the result as a single JSON object. If a piece of information is not present, do not include it in the JSON. Do not add any text before or after the JSON.

User Input:
---
%s
---`

func buildExtractPrompt(utterance string) string {
	return fmt.Sprintf(extractPrompt, utterance)
}

func buildAnswerPrompt(question, document string) string {
	if strings.TrimSpace(document) == "" {
		return question
	}

	var b strings.Builder
	b.WriteString("Answer the question using the document below. ")
	b.WriteString("Reply in the language of the question. Keep the answer short enough to be read aloud.\n\n")
	b.WriteString("Document:\n---\n")
	b.WriteString(document)
	b.WriteString("\n---\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}
