package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	// DefaultSessionID is used when the caller does not supply one.
	DefaultSessionID = "default"

	// SearchTopK is how many candidates the search provider is asked for.
	SearchTopK = 5

	// DistanceThreshold is the maximum cosine distance (0 = identical) a
	// candidate may have to be surfaced to the user. The boundary is
	// inclusive: exactly 1.0 is kept.
	DistanceThreshold = 1.0

	// Fixed responses for turns that never reach the summarize LLM call.
	FallbackNonProductMessage = "I can assist with disaster relief products or order inquiries. Please specify your request."
	FallbackNoMatchesMessage  = "No matching products found."
)
