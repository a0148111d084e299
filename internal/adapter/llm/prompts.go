package llm

import "github.com/polkiloo/meetsum/internal/domain/model"

const detectLanguagePrompt = `Based on the following text, detect the language it's written in.
Return only the language name in English (e.g., "English", "Spanish", "Japanese").

Text:`

const translatePrompt = `Translate the following text to %s.
If the text is already in that language, return it unchanged.
Only provide the translation without any explanations or comments.

Text to translate:`

const improvePrompt = `You are an expert transcriptionist. Improve the following meeting transcript:
fix spelling and grammar, add punctuation, separate speakers, split into paragraphs
and remove filler words while preserving the original meaning.
Return only the improved transcript without explanations.

Original transcript:`

const summarizePrompt = `Summarize the following meeting transcript in a concise and informative way.
Highlight the key discussion points, decisions made, and important takeaways.

IMPORTANT: Your summary must be written in %s language.

Transcript:`

const actionItemsPrompt = `You are an AI that extracts structured action items from meeting transcripts.
Identify action items, responsible persons, and deadlines where available.

IMPORTANT: Translate the action descriptions into %s language.

Return a JSON object {"action_items": [...]} where each item has the keys "person", "action" and "deadline".
Keep person names in their original form. If no deadline is mentioned, use "Not specified".

Transcript:`

const deadlinesPrompt = `Extract all deadlines mentioned in the following meeting transcript.
Return a JSON object {"deadlines": [...]} holding strings in YYYY-MM-DD format.
If no deadlines are found, return an empty list.

Transcript:`

var sentimentPrompts = map[model.SentimentMode]string{
	model.SentimentStandard: `Analyze the overall sentiment of the following meeting transcript.
Return the sentiment as one of the following: "Positive", "Negative", or "Neutral".

Transcript:`,
	model.SentimentDetailed: `Analyze the sentiment of the following meeting transcript in detail.
Give the overall sentiment (Positive, Negative or Neutral), then the sentiment of each
main topic and participant, citing short supporting phrases.

Transcript:`,
	model.SentimentEmotional: `Analyze the emotional tone of the following meeting transcript.
Name the dominant emotions (for example enthusiasm, frustration, anxiety, confidence),
how they shift during the meeting, and what likely triggered them.

Transcript:`,
}
