package ai

import (
	"fmt"
	"strings"
)

const analysisSystemPrompt = `You are a startup analyst who evaluates business ideas for an internal innovation platform.

Rules:
1. Be concrete and realistic
2. List at most 5 similar existing solutions, 3 recommendations and 3 risks
3. The market opportunity score is an integer from 1 to 10
4. Return ONLY valid JSON, no markdown, no explanation`

const assistantSystemPrompt = `You are a friendly innovation mentor helping an employee develop a business idea.
Answer in 2-4 sentences, conversationally, without markdown.`

func analysisPrompt(title, description string, tags []string) string {
	tagList := "none"
	if len(tags) > 0 {
		tagList = strings.Join(tags, ", ")
	}
	return fmt.Sprintf(`Analyze this business idea.

Title: %s
Description: %s
Tags: %s

Return JSON with this exact format:
{
  "similar_solutions": [{"name": "...", "description": "..."}],
  "market_opportunity": {"score": 7, "explanation": "..."},
  "recommendations": ["...", "...", "..."],
  "risks": ["...", "...", "..."]
}`, title, description, tagList)
}

func assistantPrompt(question, title, description, phase string) string {
	return fmt.Sprintf(`Idea context:
Title: %s
Description: %s
Current phase: %s

Question: %s`, title, description, phase, question)
}
