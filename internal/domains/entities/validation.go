package entities

// Validation is the verdict a validator attaches to a record after
// inspection. Clients treat valid=false as "discard local state and
// resynchronize from server-held truth".
type Validation struct {
	Valid  bool   `dynamodbav:"valid" json:"valid"`
	Reason string `dynamodbav:"reason,omitempty" json:"reason,omitempty"`
}

func Valid() Validation {
	return Validation{Valid: true}
}

func Invalid(reason string) Validation {
	return Validation{Valid: false, Reason: reason}
}
