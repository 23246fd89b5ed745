package chat

const (
	// summaryTitleLimit is the maximum title length in runes before truncation.
	summaryTitleLimit = 50

	// defaultSummaryTitle is used when the conversation has no user turn yet.
	defaultSummaryTitle = "New Chat"
)

// Summarize produces the listing view of a conversation. Pure function: the
// title is the content of the first user turn, truncated to 50 runes with a
// trailing ellipsis when longer.
func Summarize(conv Conversation) Summary {
	title := defaultSummaryTitle
	for _, t := range conv.Turns {
		if t.Role == RoleUser {
			title = truncateTitle(t.Content)
			break
		}
	}
	return Summary{
		ID:          conv.ID,
		Title:       title,
		LastUpdated: conv.LastUpdated,
	}
}

// truncateTitle cuts on rune boundaries so multi-byte content is never split.
func truncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= summaryTitleLimit {
		return s
	}
	return string(runes[:summaryTitleLimit]) + "…"
}
