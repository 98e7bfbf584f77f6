package gemini

import "fmt"

// extractionPromptTemplate instructs the model to emit a single JSON object
// with the six extraction fields. The user message is embedded verbatim.
const extractionPromptTemplate = `You are an expert assistant that extracts event details from user messages.
Analyze the following user message and extract information to create a calendar event.
All times should be interpreted in the %[1]s time zone.

Provide the output strictly as a JSON object with the following keys:
- "title": string (The main subject or name of the event. Be concise.)
- "start_time_str": string (The start date and time, e.g., "tomorrow 3 PM", "July 20th 10am", "2024-12-25 17:00". If a year is not specified, assume the current year or next year if the date has passed.)
- "end_time_str": string (The end date and time. If only a duration is given (e.g., "for 1 hour"), calculate and provide this. If not specified and no duration, set to null.)
- "duration_str": string (The duration of the event, e.g., "1 hour", "30 minutes". If an explicit end_time_str is found, this can be null.)
- "location": string (The physical location of the event. Set to null if not mentioned.)
- "reminder_minutes": integer (Minutes before the event to send a reminder. Look for phrases like "remind me 10 minutes before". If not specified, set to null.)

Important rules for your JSON output:
1. Only output the JSON object. Do not include any explanatory text before or after the JSON.
2. If a piece of information is not found, use null for its value in the JSON (e.g., "location": null).
3. If only a start time is given and no explicit end time or duration, set "end_time_str" and "duration_str" to null.
4. Be precise with date and time strings. Try to include AM/PM or use 24-hour format if it's clear from the input.
5. The user writes numeric dates day-first (DD/MM/YYYY or DD.MM.YY).

User message: "%[2]s"

JSON Output:`

// ExtractionPrompt builds the fixed-template extraction prompt.
func ExtractionPrompt(userMessage, timezone string) string {
	return fmt.Sprintf(extractionPromptTemplate, timezone, userMessage)
}
