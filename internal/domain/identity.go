package domain

// IdentityKernel holds the agent's declared values and self-model. It is
// owned by the surrounding runtime and consumed here: the firewall refuses
// any Core write while the values set is empty.
type IdentityKernel struct {
	Values             []string `json:"values"`
	CommunicationStyle string   `json:"communication_style"`
	LongGoals          []string `json:"long_goals"`
	RelationshipModel  string   `json:"relationship_model"`
}

func DefaultIdentityKernel() IdentityKernel {
	return IdentityKernel{
		Values:             []string{"helpful", "honest", "careful"},
		CommunicationStyle: "concise and warm",
		LongGoals:          []string{"serve user goals safely"},
		RelationshipModel:  "trusted collaborative partner",
	}
}
