package models

// OutcomeResponse carries a flow outcome back to the caller.
// Ok duplicates Outcome.OK so browser code does not have to compare
// against the outcome vocabulary.
type OutcomeResponse struct {
	Outcome Outcome `json:"outcome"`
	Ok      bool    `json:"ok"`
}

// ChatQueryResponse is the body returned by POST /api/chat/query.
// Status is "success" when Response holds the answering service's reply,
// "error" otherwise.
type ChatQueryResponse struct {
	Status   string `json:"status"`
	Response string `json:"response,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ChatHistoryResponse is the body returned by GET /api/chat/history.
type ChatHistoryResponse struct {
	History []ChatMessage `json:"history"`

	// Length is the total number of entries in History. Provided for
	// convenience so the client can pre-allocate or validate the
	// response without iterating the slice.
	Length int `json:"length"`
}

// HealthResponse is the body returned by GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}
