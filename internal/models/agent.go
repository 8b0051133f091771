package models

// AgentType identifies one of the three response-generation strategies
type AgentType string

const (
	// AgentPlanner handles trip planning and route materialization
	AgentPlanner AgentType = "planner"
	// AgentCommunicator handles general conversation
	AgentCommunicator AgentType = "communicator"
	// AgentSearch handles place search and recommendation requests
	AgentSearch AgentType = "search_agent"
)

// Valid reports whether the value is one of the three known agent tags
func (a AgentType) Valid() bool {
	switch a {
	case AgentPlanner, AgentCommunicator, AgentSearch:
		return true
	}
	return false
}

// AgentSelection is the supervisor's routing decision for a single user turn
type AgentSelection struct {
	Agent  AgentType `json:"agent"`
	Reason string    `json:"reason"`
}

// TurnResult is the unified envelope returned for one chat turn.
// RoutePaths is always non-nil; an empty slice means "no route this turn"
// and callers must clear any previously drawn route.
type TurnResult struct {
	Response    string     `json:"response"`
	Agent       AgentType  `json:"agent"`
	SearchQuery string     `json:"searchQuery,omitempty"`
	RoutePaths  []RouteLeg `json:"routePaths"`
}
