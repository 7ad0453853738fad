package podcast

import (
	"fmt"
	"strings"
)

func researchPrompt(topic string, minutes int) string {
	return fmt.Sprintf(`Research this topic for creating an engaging podcast conversation: %s

Focus on:
1. Key concepts and definitions
2. Current trends and developments
3. Interesting facts and insights
4. Practical implications
5. Different perspectives or debates
6. Real-world examples or case studies

Provide comprehensive information suitable for a %d-minute podcast discussion.`, topic, minutes)
}

func videoPrompt(topic string, minutes int) string {
	return fmt.Sprintf(`Analyze this video for creating a podcast conversation about: %s

Extract and focus on:
1. Main themes and key messages
2. Important insights or revelations
3. Interesting quotes or statements
4. Visual elements worth describing
5. Context and background information
6. Actionable takeaways
7. Discussion-worthy points

Structure your analysis to be suitable for a %d-minute podcast conversation.`, topic, minutes)
}

func synthesisPrompt(topic, searchText, videoText string) string {
	return fmt.Sprintf(`You are a content synthesizer for podcast creation. Analyze all the provided content about "%s" and create:

1. A comprehensive content summary (2-3 paragraphs)
2. A list of 5-7 key insights that would make for engaging podcast discussion

RESEARCH CONTENT:
%s

VIDEO CONTENT:
%s

Focus on:
- Most interesting and discussion-worthy points
- Practical insights and takeaways
- Surprising or counterintuitive information
- Different perspectives or debates
- Real-world applications

Format your response as JSON:
{
    "content_summary": "comprehensive summary...",
    "key_insights": ["insight 1", "insight 2", "insight 3", ...]
}`, topic, searchText, videoText)
}

func metadataPrompt(topic, summary string, insights []string, minutes int) string {
	return fmt.Sprintf(`Create engaging podcast metadata for a %d-minute episode about "%s".

CONTENT SUMMARY:
%s

KEY INSIGHTS:
%s

Generate:
1. Catchy, professional podcast title (60 characters max)
2. Engaging description (150-200 words) that would make people want to listen
3. List of 3-5 main topics covered

Format as JSON:
{
    "title": "Engaging Podcast Title",
    "description": "Professional description that hooks the listener...",
    "topics_covered": ["topic 1", "topic 2", "topic 3"]
}`, minutes, topic, summary, strings.Join(insights, ", "))
}

func scriptPrompt(cfg Configuration, topic, summary string, insights []string, minutes int) string {
	host, expert := cfg.HostName, cfg.ExpertName
	return fmt.Sprintf(`Create a natural, engaging %[1]d-minute podcast conversation between %[2]s (curious host) and %[3]s (knowledgeable expert) about "%[4]s".

CONTENT TO COVER:
%[5]s

KEY INSIGHTS TO DISCUSS:
%[6]s

CONVERSATION STYLE: %[7]s

Structure (aim for ~%[8]d words total):
1. %[2]s introduces the topic and %[3]s (30 seconds)
2. Main discussion covering key insights (3-4 minutes)
3. Practical takeaways and wrap-up (30-60 seconds)

Guidelines:
- Make it conversational and natural
- %[2]s asks thoughtful questions
- %[3]s provides clear, insightful answers
- Include smooth transitions between topics
- End with a memorable takeaway

Format exactly like this:
%[2]s: [opening introduction]
%[3]s: [expert response]
%[2]s: [follow-up question]
%[3]s: [detailed explanation]
[continue natural conversation...]`,
		minutes, host, expert, topic, summary, strings.Join(insights, ", "),
		cfg.ConversationStyle, minutes*wordsPerMinute)
}

func ttsPrompt(cfg Configuration, script string) string {
	return fmt.Sprintf("Create a professional podcast conversation between %s and %s:\n\n%s",
		cfg.HostName, cfg.ExpertName, script)
}
