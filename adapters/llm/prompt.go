package llm

import "fmt"

// solutionPrompt wraps question text in the fixed tutor instruction template.
func solutionPrompt(questions string) string {
	return fmt.Sprintf(`You are an expert academic tutor specializing in providing comprehensive, step-by-step solutions to academic questions.

Analyze and solve the following questions with detailed explanations:

%s

For each question, provide:

## Question Analysis
- Identify the key concepts and requirements
- Note any given data or constraints

## Step-by-Step Solution
- Break down the solution into clear, logical steps
- Show all calculations and reasoning
- Explain why each step is necessary

## Final Answer
- Clearly highlight the final result
- Include units where applicable
- Verify the answer makes sense

Format your response using proper markdown with clear headings and structure. Make the solutions educational and easy to follow.`, questions)
}
