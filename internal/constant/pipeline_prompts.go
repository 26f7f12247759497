package constant

const (
	// ClassifyIntentPrompt asks for a single lowercase label. Few-shot
	// examples keep small local models from replying in full sentences.
	ClassifyIntentPrompt = `You are a relief system assistant.
Classify the intent of this message into one of: [product, order, fraud, other].

Examples:
Message: "I need food or water for my family"
Label: product
Message: "Where is my order? It never arrived"
Label: order
Message: "Someone used my card to buy things I never ordered"
Label: fraud
Message: "hi"
Label: other

Message: %s
Respond with only the label.`

	// SummarizeProductsPrompt formats surviving candidates for the user.
	// First placeholder: the user's query. Second: candidate JSON.
	SummarizeProductsPrompt = `Summarize these relief products for this query: "%s"

Products:
%s

Format each product as a markdown section with:
- Name (prefixed with its emoji when one is provided in the metadata)
- Description
- Utility (what situations it helps with)
- Price
- Availability

Keep it brief, friendly and relevant to the query.`

	// SummarizeConversationPrompt backs the auxiliary /summarize endpoint.
	SummarizeConversationPrompt = `Summarize the following conversation between a user and a bot in 1-2 sentences.
Focus on what the user is looking for.

Conversation:
%s`

	FraudCheckSystemPrompt = `You are an expert fraud analyst for an e-commerce company. Look for risky patterns, contradictions, or refund abuse. Respond ONLY with JSON. No markdown.`

	// FraudCheckPrompt placeholders: order JSON, issue type, problem text.
	FraudCheckPrompt = `Analyze for fraud:

Order: %s
Issue Type: %s
Customer Problem: %s

Return ONLY JSON in this structure:
{
  "fraud_flag": true,
  "fraud_risk_level": "low",
  "reasons": ["..."],
  "suggested_action_hint": "likely_legit"
}`

	ImageAnalysisSystemPrompt = `You are an AI that verifies image evidence for damaged/missing item claims. Respond ONLY with JSON.`

	// ImageAnalysisPrompt placeholders: order JSON, issue type, problem text.
	ImageAnalysisPrompt = `Inspect the customer-provided image and evaluate if it supports the claim.

Order: %s
Issue Type: %s
Problem Description: %s

Return ONLY JSON:
{
  "image_relevant": true,
  "supports_claim": true,
  "suspicious_signals": ["..."],
  "short_summary": "..."
}`

	DecisionSystemPrompt = `You are a senior customer support specialist and risk-aware decision maker for an e-commerce platform. Respond ONLY with JSON.`

	// DecisionPrompt placeholders: order JSON, issue type, problem text,
	// fraud analysis JSON, image analysis JSON.
	DecisionPrompt = `Make the FINAL DECISION.

Order:
%s

Issue Type: %s
Customer Problem: %s

Fraud Analysis:
%s

Image Analysis:
%s

Return ONLY JSON using this structure:
{
  "decision": "refund_approved",
  "reason": "short internal reason",
  "polite_message": "Friendly message",
  "internal_notes": "",
  "fraud_flag": false,
  "fraud_risk_level": "low"
}`
)
