package meeting

import (
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

// Generation kinds, used as metric labels and job types
const (
	KindSummary     = "summary"
	KindEntities    = "entities"
	KindActionItems = "action_items"
	KindTitle       = "title"
)

// DefaultTitle is returned when no title can be generated
const DefaultTitle = "Meeting Summary"

// titleSampleRunes bounds how much transcript is sent for a title
const titleSampleRunes = 1000

const summarySystemPrompt = `You are an expert meeting summarizer. Your task is to create a concise, well-structured summary of the meeting transcript provided.

The summary should:
- Be 2-4 paragraphs long
- Capture the main topics discussed
- Highlight key decisions made
- Include important outcomes or conclusions
- Be written in professional, clear language
- Focus on the most important information

Do not include action items in the summary (they will be extracted separately).`

const entitySystemPrompt = `You are an expert at extracting entities from meeting transcripts.

Extract and return a list of important entities mentioned in the meeting, including:
- People's names (colleagues, clients, stakeholders)
- Company names
- Project names
- Product names
- Important tools or systems mentioned

Rules:
- Return each entity in the format "EntityName|EntityType" where EntityType is one of: Person, Company, Project, Product, Tool, Other
- Use the exact name as mentioned in the transcript
- Don't include common words or generic terms
- Focus on proper nouns and specific named entities
- If a person's full name isn't given, use what's provided (e.g., "John|Person" if that's all that's mentioned)
- If you're unsure of the type, use "Other"

Examples:
- John Smith|Person
- Microsoft|Company
- Project Alpha|Project
- Slack|Tool
- iPhone 15|Product

Return only the entity names with types, one per line, no explanations or formatting.`

const actionItemSystemPrompt = `You are an expert at extracting action items from meeting transcripts.

Extract all action items, tasks, and follow-up items mentioned in the meeting.

For each action item, include:
- What needs to be done
- Who is responsible (if mentioned)
- When it should be done (if mentioned)

Format each action item as a clear, actionable statement.

Examples:
- "John will send the project proposal to the client by Friday"
- "Review the budget document and provide feedback"
- "Sarah to schedule follow-up meeting with stakeholders"

Return only the action items, one per line, no explanations or formatting.`

const titleSystemPrompt = `Generate a concise, descriptive title for this meeting based on the transcript.

The title should:
- Be 3-8 words long
- Capture the main purpose or topic
- Be professional and clear
- Not include dates or meeting-specific words like "Meeting"

Examples:
- "Q1 Budget Planning Discussion"
- "Product Launch Strategy Review"
- "Client Onboarding Process"

Return only the title, no explanations.`

// withInstructions appends per-type instructions to a base system prompt
func withInstructions(base string, custom *string) string {
	if custom == nil || *custom == "" {
		return base
	}
	return base + "\n\nCustom instructions for this meeting type:\n" + *custom
}

func summaryRequest(transcript string, mt *entities.MeetingType) ai.CompletionRequest {
	var custom *string
	if mt != nil {
		custom = mt.SummaryInstructions
	}
	return ai.CompletionRequest{
		System:      withInstructions(summarySystemPrompt, custom),
		Prompt:      "Please summarize this meeting transcript:\n\n" + transcript,
		Temperature: 0.3,
		MaxTokens:   700,
	}
}

func entityRequest(transcript string, mt *entities.MeetingType) ai.CompletionRequest {
	var custom *string
	if mt != nil {
		custom = mt.EntityInstructions
	}
	return ai.CompletionRequest{
		System:      withInstructions(entitySystemPrompt, custom),
		Prompt:      "Extract entities from this meeting transcript:\n\n" + transcript,
		Temperature: 0.1,
		MaxTokens:   300,
	}
}

func actionItemRequest(transcript string, mt *entities.MeetingType) ai.CompletionRequest {
	var custom *string
	if mt != nil {
		custom = mt.ActionItemInstructions
	}
	return ai.CompletionRequest{
		System:      withInstructions(actionItemSystemPrompt, custom),
		Prompt:      "Extract action items from this meeting transcript:\n\n" + transcript,
		Temperature: 0.1,
		MaxTokens:   400,
	}
}

func titleRequest(transcript string) ai.CompletionRequest {
	sample := []rune(transcript)
	if len(sample) > titleSampleRunes {
		sample = sample[:titleSampleRunes]
	}
	return ai.CompletionRequest{
		System:      titleSystemPrompt,
		Prompt:      "Generate a title for this meeting:\n\n" + string(sample) + "...",
		Temperature: 0.3,
		MaxTokens:   50,
	}
}
