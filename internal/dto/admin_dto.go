package dto

type PhaseCount struct {
	Phase      string `json:"phase"`
	PhaseIndex int    `json:"phase_index"`
	Count      int64  `json:"count"`
}

type AnalyticsResponse struct {
	UsersByRole            map[string]int64 `json:"users_by_role"`
	IdeasByPhase           []PhaseCount     `json:"ideas_by_phase"`
	TotalUsers             int64            `json:"total_users"`
	TotalIdeas             int64            `json:"total_ideas"`
	AcceptedCollaborations int64            `json:"accepted_collaborations"`
	TotalLikes             int64            `json:"total_likes"`
}
