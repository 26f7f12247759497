package dto

import "reliefconnect-ai-be/pkg/search"

type RecommendRequest struct {
	SessionId string `json:"session_id"`
	Query     string `json:"query" validate:"required"`
}

type RecommendResponse struct {
	SessionId string             `json:"session_id"`
	Intent    string             `json:"intent"`
	Response  string             `json:"response"`
	Products  []search.Candidate `json:"products"`
	History   []string           `json:"history"`
}

type SummarizeRequest struct {
	Text string `json:"text" validate:"required"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}
